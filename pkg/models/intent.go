package models

// Intent is the action type inferred from a user chat message.
type Intent string

const (
	IntentCreateLead           Intent = "create_lead"
	IntentCreateTask           Intent = "create_task"
	IntentCreateInvoice        Intent = "create_invoice"
	IntentBookMeeting          Intent = "book_meeting"
	IntentSearchEmail          Intent = "search_email"
	IntentListTasks            Intent = "list_tasks"
	IntentListLeads            Intent = "list_leads"
	IntentCheckCalendar        Intent = "check_calendar"
	IntentRequestFlytterPhotos Intent = "request_flytter_photos"
	IntentJobCompletion        Intent = "job_completion"
	IntentUnknown              Intent = "unknown"
)

// actionableIntents are the intents that may be wrapped in a PendingAction
// and routed through the action executor. The pure listing intents
// (list_tasks, list_leads, check_calendar) are executed inline without an
// approval round-trip.
var actionableIntents = map[Intent]bool{
	IntentCreateLead:           true,
	IntentCreateTask:           true,
	IntentCreateInvoice:        true,
	IntentBookMeeting:          true,
	IntentSearchEmail:          true,
	IntentRequestFlytterPhotos: true,
	IntentJobCompletion:        true,
}

// Actionable reports whether the intent requires approval gating before
// execution.
func (i Intent) Actionable() bool {
	return actionableIntents[i]
}

// Params is the intent-shape-dependent parameter bag extracted by the
// classifier. Keys and value types are defined per intent; values must
// survive a JSON round-trip unchanged in meaning since the approval flow
// echoes them back over the wire.
type Params map[string]interface{}

// ParsedIntent is the classifier output for a single message.
// Confidence is a fixed constant per classifier rule; it is 0 iff the
// intent is unknown.
type ParsedIntent struct {
	Intent     Intent  `json:"intent"`
	Params     Params  `json:"params"`
	Confidence float64 `json:"confidence"`
}
