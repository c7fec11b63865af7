package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rendetalje/friday/pkg/models"
)

// rule pairs a trigger predicate with a parameter extractor. The match
// predicate sees the lower-cased message; extractors see both forms so
// case-sensitive captures (names) work on the original text.
type rule struct {
	intent     models.Intent
	confidence float64
	match      func(lower string) bool
	extract    func(message, lower string, now time.Time, params models.Params)
}

// rules is evaluated in order; earlier rules win over later ones.
var rules = []rule{
	{
		intent:     models.IntentCreateLead,
		confidence: 0.9,
		match: func(lower string) bool {
			return strings.Contains(lower, "opret") && containsAny(lower, "lead", "kunde")
		},
		extract: extractCreateLead,
	},
	{
		intent:     models.IntentCreateInvoice,
		confidence: 0.85,
		match: func(lower string) bool {
			return strings.Contains(lower, "opret") && strings.Contains(lower, "faktura")
		},
		extract: extractCreateInvoice,
	},
	{
		intent:     models.IntentCreateTask,
		confidence: 0.9,
		match: func(lower string) bool {
			return strings.Contains(lower, "opret") && containsAny(lower, "opgave", "task")
		},
		extract: extractCreateTask,
	},
	{
		intent:     models.IntentBookMeeting,
		confidence: 0.8,
		match: func(lower string) bool {
			return containsAny(lower, "book", "opret") &&
				containsAny(lower, "møde", "aftale", "tid", "rengøring", "hovedrengøring", "flytterengøring")
		},
		extract: extractBookMeeting,
	},
	{
		intent:     models.IntentSearchEmail,
		confidence: 0.85,
		match: func(lower string) bool {
			return containsAny(lower, "søg", "find") && containsAny(lower, "email", "mail", "besked")
		},
		extract: extractSearchEmail,
	},
	{
		intent:     models.IntentListTasks,
		confidence: 0.9,
		match: func(lower string) bool {
			return containsAny(lower, "vis", "list") && containsAny(lower, "opgave", "task", "todo")
		},
	},
	{
		intent:     models.IntentListLeads,
		confidence: 0.85,
		match: func(lower string) bool {
			return containsAny(lower, "vis", "find", "list") && strings.Contains(lower, "lead")
		},
		extract: func(_, lower string, _ time.Time, params models.Params) {
			if containsAny(lower, "nye", "seneste") {
				params["filter"] = "recent"
			}
		},
	},
	{
		intent:     models.IntentCheckCalendar,
		confidence: 0.8,
		match: func(lower string) bool {
			return containsAny(lower, "tjek", "se") && containsAny(lower, "kalender", "aftale")
		},
	},
	{
		intent:     models.IntentRequestFlytterPhotos,
		confidence: 0.9,
		match: func(lower string) bool {
			return containsAny(lower, "nyt lead", "lead", "kunde") &&
				containsAny(lower, "flytterengøring", "flytte")
		},
		extract: extractFlytterPhotos,
	},
	{
		intent:     models.IntentJobCompletion,
		confidence: 0.85,
		match: func(lower string) bool {
			return containsAny(lower, "færdig", "afslut", "done") &&
				containsAny(lower, "rengøring", "job", "opgave")
		},
		extract: extractJobCompletion,
	},
}

var (
	reLeadName         = regexp.MustCompile(`(?i)navn:?\s*([^,\n]+)`)
	reLeadNameFallback = regexp.MustCompile(`(?i)opret\s+(?:nyt?\s+)?(?:lead|kunde):?\s*([^,\n@]+)`)
	reEmailLabelled    = regexp.MustCompile(`(?i)email:?\s*([^\s,\n]+@[^\s,\n]+)`)
	reEmailBare        = regexp.MustCompile(`([^\s,\n]+@[^\s,\n]+)`)
	rePhoneLabelled    = regexp.MustCompile(`(?i)telefon:?\s*(\+?[0-9][0-9 ]*)`)
	rePhoneBare        = regexp.MustCompile(`(\+?\d[\d ]{6,}\d)`)
	reLeadSource       = regexp.MustCompile(`(?i)kilde:?\s*([^,\n]+)`)
)

func extractCreateLead(message, _ string, _ time.Time, params models.Params) {
	if m, ok := firstGroup(reLeadName, message); ok {
		params["name"] = m
	} else if m, ok := firstGroup(reLeadNameFallback, message); ok {
		params["name"] = m
	}
	if m, ok := firstGroup(reEmailLabelled, message); ok {
		params["email"] = m
	} else if m, ok := firstGroup(reEmailBare, message); ok {
		params["email"] = m
	}
	if m, ok := firstGroup(rePhoneLabelled, message); ok {
		params["phone"] = strings.ReplaceAll(m, " ", "")
	} else if m, ok := firstGroup(rePhoneBare, message); ok {
		params["phone"] = strings.ReplaceAll(m, " ", "")
	}
	if m, ok := firstGroup(reLeadSource, message); ok {
		params["source"] = m
	}
}

var (
	reInvoiceCustomer         = regexp.MustCompile(`(?i)kunde:?\s*([^,\n]+)`)
	reInvoiceCustomerFallback = regexp.MustCompile(`(?i)faktura\s+til\s+(.+?)(?:\s+for\b|,|\n|$)`)
	reInvoiceAmount           = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*kr`)
	reInvoiceDescription      = regexp.MustCompile(`(?i)(?:for|beskrivelse):?\s+([^,\n]+)`)
)

func extractCreateInvoice(message, _ string, _ time.Time, params models.Params) {
	if m, ok := firstGroup(reInvoiceCustomer, message); ok {
		params["customerName"] = m
	} else if m, ok := firstGroup(reInvoiceCustomerFallback, message); ok {
		params["customerName"] = m
	}
	if m, ok := firstGroup(reInvoiceAmount, message); ok {
		if amount, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64); err == nil {
			params["amount"] = amount
		}
	}
	if m, ok := firstGroup(reInvoiceDescription, message); ok {
		params["description"] = m
	}
}

var (
	reTaskTitle = regexp.MustCompile(`(?i)opret\s+(?:en\s+)?opgave:?\s*([^,\n]+)`)
	reClockTime = regexp.MustCompile(`(?i)kl\.?\s*(\d{1,2})(?::(\d{2}))?`)
)

func extractCreateTask(message, lower string, now time.Time, params models.Params) {
	if m, ok := firstGroup(reTaskTitle, message); ok {
		params["title"] = m
	}

	switch {
	case containsAny(lower, "høj prioritet", "vigtig"):
		params["priority"] = models.TaskPriorityHigh
	case strings.Contains(lower, "lav prioritet"):
		params["priority"] = models.TaskPriorityLow
	case strings.Contains(lower, "urgent"):
		params["priority"] = models.TaskPriorityUrgent
	}

	var due time.Time
	switch {
	case strings.Contains(lower, "i morgen"):
		due = now.AddDate(0, 0, 1)
	case strings.Contains(lower, "i dag"):
		due = now
	default:
		return
	}

	if m := reClockTime.FindStringSubmatch(message); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		due = time.Date(due.Year(), due.Month(), due.Day(), hour, minute, 0, 0, due.Location())
	}
	params["dueDate"] = due.Format(time.RFC3339)
}

var (
	reParticipantBook = regexp.MustCompile(`(?i)book\s+(.+?)\s+til`)
	reParticipantWith = regexp.MustCompile(
		`(?i)(?:med|hos)\s+(.+?)(?:\s+(?:mandag|tirsdag|onsdag|torsdag|fredag|lørdag|søndag|i\s+dag|i\s+morgen|kl\.?|på)|,|\n|$)`,
	)
	reDateHint  = regexp.MustCompile(`(?i)(mandag|tirsdag|onsdag|torsdag|fredag|lørdag|søndag|i\s+dag|i\s+morgen)`)
	reTimeRange = regexp.MustCompile(`(?i)kl\.?\s*(\d{1,2})(?::(\d{2}))?\s*-\s*(\d{1,2})(?::(\d{2}))?`)
)

// jobTypeLabels maps trigger keywords to canonical job type labels.
// Order matters: the more specific types embed "rengøring".
var jobTypeLabels = []struct {
	keyword string
	label   string
}{
	{"flytterengøring", "Flytterengøring"},
	{"hovedrengøring", "Hovedrengøring"},
	{"fast rengøring", "Fast Rengøring"},
	{"rengøring", "Rengøring"},
}

func extractBookMeeting(message, lower string, _ time.Time, params models.Params) {
	if m, ok := firstGroup(reParticipantBook, message); ok {
		params["participant"] = m
	} else if m, ok := firstGroup(reParticipantWith, message); ok {
		params["participant"] = m
	}

	for _, jt := range jobTypeLabels {
		if strings.Contains(lower, jt.keyword) {
			params["jobType"] = jt.label
			break
		}
	}

	if m, ok := firstGroup(reDateHint, lower); ok {
		params["dateHint"] = normalizeSpaces(m)
	}

	if m := reTimeRange.FindStringSubmatch(message); m != nil {
		params["startHour"] = mustAtoi(m[1])
		params["startMinute"] = atoiDefault(m[2], 0)
		params["endHour"] = mustAtoi(m[3])
		params["endMinute"] = atoiDefault(m[4], 0)
	} else if m := reClockTime.FindStringSubmatch(message); m != nil {
		params["startHour"] = mustAtoi(m[1])
		params["startMinute"] = atoiDefault(m[2], 0)
	}
}

var (
	reEmailFrom    = regexp.MustCompile(`(?i)fra\s+(.+?)(?:\s+om\b|,|\n|$)`)
	reEmailSubject = regexp.MustCompile(`(?i)\bom\s+([^,\n]+)`)
)

func extractSearchEmail(message, lower string, _ time.Time, params models.Params) {
	if m, ok := firstGroup(reEmailFrom, message); ok {
		params["from"] = m
	}
	if m, ok := firstGroup(reEmailSubject, message); ok {
		params["subject"] = m
	}
	switch {
	case containsAny(lower, "sidste uge", "seneste uge"):
		params["timeRange"] = "last_week"
	case containsAny(lower, "sidste 7 dage", "seneste 7 dage"):
		params["timeRange"] = "last_7_days"
	}
}

var (
	reFlytterName = regexp.MustCompile(`(?i)(?:navn|lead):?\s*(.+?)(?:\s+ønsker|\s+skal|,|\n|$)`)
	reSquareMeter = regexp.MustCompile(`(?i)(\d+)\s*m(?:²|2)`)
)

func extractFlytterPhotos(message, _ string, _ time.Time, params models.Params) {
	if m, ok := firstGroup(reFlytterName, message); ok {
		params["customerName"] = m
	}
	if m, ok := firstGroup(reSquareMeter, message); ok {
		params["squareMeters"] = mustAtoi(m)
	}
}

// reCapitalizedName guesses a customer name from the first capitalized
// word pair. Intentionally case-sensitive.
var reCapitalizedName = regexp.MustCompile(`([A-ZÆØÅ][a-zæøå]+(?:\s+[A-ZÆØÅ][a-zæøå]+)?)`)

func extractJobCompletion(message, _ string, _ time.Time, params models.Params) {
	if m, ok := firstGroup(reCapitalizedName, message); ok {
		params["customerName"] = m
	}
}

func firstGroup(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
