package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendetalje/friday/pkg/models"
)

// tuesday anchors relative dates: 2026-09-08 10:00 local.
var tuesday = time.Date(2026, 9, 8, 10, 0, 0, 0, time.Local)

func TestParseUnknown(t *testing.T) {
	for _, message := range []string{
		"",
		"hej med dig",
		"hvad er vejret i dag?",
	} {
		parsed := Parse(message)
		assert.Equal(t, models.IntentUnknown, parsed.Intent, message)
		assert.Zero(t, parsed.Confidence, message)
		assert.Empty(t, parsed.Params, message)
	}
}

func TestParseCreateLead(t *testing.T) {
	parsed := parse("Opret lead: Peter Hansen, peter@test.dk, 12345678", tuesday)

	assert.Equal(t, models.IntentCreateLead, parsed.Intent)
	assert.Equal(t, 0.9, parsed.Confidence)
	assert.Equal(t, "Peter Hansen", parsed.Params["name"])
	assert.Equal(t, "peter@test.dk", parsed.Params["email"])
	assert.Equal(t, "12345678", parsed.Params["phone"])
}

func TestParseCreateLeadLabelledFields(t *testing.T) {
	parsed := parse(
		"Opret kunde - Navn: Anna Nielsen, Email: anna@firma.dk, Telefon: 87 65 43 21, Kilde: hjemmeside",
		tuesday,
	)

	assert.Equal(t, models.IntentCreateLead, parsed.Intent)
	assert.Equal(t, "Anna Nielsen", parsed.Params["name"])
	assert.Equal(t, "anna@firma.dk", parsed.Params["email"])
	assert.Equal(t, "87654321", parsed.Params["phone"])
	assert.Equal(t, "hjemmeside", parsed.Params["source"])
}

func TestParseCreateInvoice(t *testing.T) {
	parsed := parse("Opret faktura til Marie for 6 arbejdstimer", tuesday)

	assert.Equal(t, models.IntentCreateInvoice, parsed.Intent)
	assert.Equal(t, 0.85, parsed.Confidence)
	assert.Equal(t, "Marie", parsed.Params["customerName"])
	assert.Equal(t, "6 arbejdstimer", parsed.Params["description"])
}

func TestParseCreateInvoiceWithAmount(t *testing.T) {
	parsed := parse("Opret faktura, kunde: Marie Jensen, 2094 kr", tuesday)

	assert.Equal(t, models.IntentCreateInvoice, parsed.Intent)
	assert.Equal(t, "Marie Jensen", parsed.Params["customerName"])
	assert.Equal(t, 2094.0, parsed.Params["amount"])
}

func TestParseCreateTask(t *testing.T) {
	parsed := parse("Opret opgave: Ring til Peter i morgen kl. 14, høj prioritet", tuesday)

	assert.Equal(t, models.IntentCreateTask, parsed.Intent)
	assert.Equal(t, 0.9, parsed.Confidence)
	assert.Equal(t, "Ring til Peter i morgen kl. 14", parsed.Params["title"])
	assert.Equal(t, models.TaskPriorityHigh, parsed.Params["priority"])

	due, err := time.Parse(time.RFC3339, parsed.Params["dueDate"].(string))
	require.NoError(t, err)
	assert.Equal(t, 9, due.Day())
	assert.Equal(t, 14, due.Hour())
	assert.Equal(t, 0, due.Minute())
}

func TestParseCreateTaskNoDueDate(t *testing.T) {
	parsed := parse("Opret opgave: Bestil rengøringsmidler", tuesday)

	assert.Equal(t, models.IntentCreateTask, parsed.Intent)
	assert.Equal(t, "Bestil rengøringsmidler", parsed.Params["title"])
	assert.NotContains(t, parsed.Params, "dueDate")
	assert.NotContains(t, parsed.Params, "priority")
}

func TestParseBookMeeting(t *testing.T) {
	parsed := parse("Book Anna til rengøring fredag kl. 10", tuesday)

	assert.Equal(t, models.IntentBookMeeting, parsed.Intent)
	assert.Equal(t, 0.8, parsed.Confidence)
	assert.Equal(t, "Anna", parsed.Params["participant"])
	assert.Equal(t, "Rengøring", parsed.Params["jobType"])
	assert.Equal(t, "fredag", parsed.Params["dateHint"])
	assert.Equal(t, 10, parsed.Params["startHour"])
	assert.Equal(t, 0, parsed.Params["startMinute"])
	assert.NotContains(t, parsed.Params, "endHour")
}

func TestParseBookMeetingTimeRange(t *testing.T) {
	parsed := parse("Book hovedrengøring hos Jens Hansen tirsdag kl. 9:30-13:00", tuesday)

	assert.Equal(t, models.IntentBookMeeting, parsed.Intent)
	assert.Equal(t, "Jens Hansen", parsed.Params["participant"])
	assert.Equal(t, "Hovedrengøring", parsed.Params["jobType"])
	assert.Equal(t, "tirsdag", parsed.Params["dateHint"])
	assert.Equal(t, 9, parsed.Params["startHour"])
	assert.Equal(t, 30, parsed.Params["startMinute"])
	assert.Equal(t, 13, parsed.Params["endHour"])
	assert.Equal(t, 0, parsed.Params["endMinute"])
}

func TestParseSearchEmail(t *testing.T) {
	parsed := parse("Søg emails fra peter@test.dk om tilbud, sidste uge", tuesday)

	assert.Equal(t, models.IntentSearchEmail, parsed.Intent)
	assert.Equal(t, 0.85, parsed.Confidence)
	assert.Equal(t, "peter@test.dk", parsed.Params["from"])
	assert.Equal(t, "tilbud", parsed.Params["subject"])
	assert.Equal(t, "last_week", parsed.Params["timeRange"])
}

func TestParseListTasks(t *testing.T) {
	parsed := parse("Vis mine opgaver", tuesday)
	assert.Equal(t, models.IntentListTasks, parsed.Intent)
	assert.Equal(t, 0.9, parsed.Confidence)
}

func TestParseListLeadsRecent(t *testing.T) {
	parsed := parse("Vis nye leads fra sidste uge", tuesday)
	assert.Equal(t, models.IntentListLeads, parsed.Intent)
	assert.Equal(t, "recent", parsed.Params["filter"])
}

func TestParseCheckCalendar(t *testing.T) {
	parsed := parse("Tjek min kalender", tuesday)
	assert.Equal(t, models.IntentCheckCalendar, parsed.Intent)
	assert.Equal(t, 0.8, parsed.Confidence)
}

func TestParseRequestFlytterPhotos(t *testing.T) {
	parsed := parse("Nyt lead: Jens ønsker flytterengøring, 85m²", tuesday)

	assert.Equal(t, models.IntentRequestFlytterPhotos, parsed.Intent)
	assert.Equal(t, 0.9, parsed.Confidence)
	assert.Equal(t, "Jens", parsed.Params["customerName"])
	assert.Equal(t, 85, parsed.Params["squareMeters"])
}

func TestParseJobCompletion(t *testing.T) {
	parsed := parse("Maries rengøring er færdig", tuesday)

	assert.Equal(t, models.IntentJobCompletion, parsed.Intent)
	assert.Equal(t, 0.85, parsed.Confidence)
	assert.Equal(t, "Maries", parsed.Params["customerName"])
}

// A message matching both the lead and booking vocabularies resolves by
// rule order, not by specificity.
func TestParseRuleOrderTieBreak(t *testing.T) {
	parsed := parse("Opret kunde og book rengøring fredag", tuesday)
	assert.Equal(t, models.IntentCreateLead, parsed.Intent)
}

func TestParseIsCaseInsensitiveOnTriggers(t *testing.T) {
	parsed := parse("OPRET OPGAVE: RING TIL BANKEN", tuesday)
	assert.Equal(t, models.IntentCreateTask, parsed.Intent)
	assert.Equal(t, "RING TIL BANKEN", parsed.Params["title"])
}
