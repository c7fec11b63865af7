package actions

import (
	"fmt"

	"github.com/rendetalje/friday/pkg/models"
)

// missingField substitutes for params the classifier could not extract.
// Previews are user-facing; they must never print a raw zero value.
const missingField = "Ikke angivet"

func orMissing(s string) string {
	if s == "" {
		return missingField
	}
	return s
}

// PreviewFor renders a human-readable, Danish one-liner describing what
// the action will do with the given params.
func PreviewFor(intentType models.Intent, params models.Params) string {
	switch intentType {
	case models.IntentCreateLead:
		return fmt.Sprintf(
			"Opret lead: %s, Email: %s, Telefon: %s, Kilde: %s",
			orMissing(paramString(params, "name")),
			orMissing(paramString(params, "email")),
			orMissing(paramString(params, "phone")),
			orMissing(paramString(params, "source")),
		)
	case models.IntentCreateTask:
		preview := fmt.Sprintf("Opret opgave: %s", orMissing(paramString(params, "title")))
		if priority := paramString(params, "priority"); priority != "" {
			preview += fmt.Sprintf(" (%s prioritet)", priority)
		}
		if due := paramString(params, "dueDate"); due != "" {
			preview += fmt.Sprintf(" - Deadline: %s", due)
		}
		return preview
	case models.IntentCreateInvoice:
		preview := fmt.Sprintf(
			"Opret faktura-kladde til %s: %s",
			orMissing(paramString(params, "customerName")),
			orMissing(paramString(params, "description")),
		)
		if amount, ok := paramFloat(params, "amount"); ok {
			preview += fmt.Sprintf(" (%.0f kr)", amount)
		}
		return preview
	case models.IntentBookMeeting:
		jobType := paramString(params, "jobType")
		if jobType == "" {
			jobType = defaultJobLabel
		}
		preview := fmt.Sprintf(
			"Book %s for %s, %s",
			jobType,
			orMissing(paramString(params, "participant")),
			orMissing(paramString(params, "dateHint")),
		)
		if startHour, ok := paramInt(params, "startHour"); ok {
			startMinute, _ := paramInt(params, "startMinute")
			preview += fmt.Sprintf(" kl. %d:%02d", startHour, startMinute)
			if endHour, ok := paramInt(params, "endHour"); ok {
				endMinute, _ := paramInt(params, "endMinute")
				preview += fmt.Sprintf("-%d:%02d", endHour, endMinute)
			}
		}
		return preview
	case models.IntentSearchEmail:
		return fmt.Sprintf(
			"Søg i emails - Fra: %s, Emne: %s",
			orMissing(paramString(params, "from")),
			orMissing(paramString(params, "subject")),
		)
	case models.IntentRequestFlytterPhotos:
		preview := fmt.Sprintf(
			"Opret flytterengørings-lead: %s",
			orMissing(paramString(params, "customerName")),
		)
		if sqm, ok := paramInt(params, "squareMeters"); ok {
			preview += fmt.Sprintf(" (%dm²)", sqm)
		}
		return preview + " og bed kunden om billeder"
	case models.IntentJobCompletion:
		return fmt.Sprintf(
			"Start afslutnings-checklist for %s",
			orMissing(paramString(params, "customerName")),
		)
	default:
		return fmt.Sprintf("Udfør handling: %s", intentType)
	}
}

// impacts describe what executing each action changes, including the
// cross-cutting safety guarantees the user relies on when approving.
var impacts = map[models.Intent]string{
	models.IntentCreateLead: "Opretter et nyt lead i Leads-fanen. " +
		"Der sendes ingen email til kunden.",
	models.IntentCreateTask: "Opretter en ny opgave i Tasks-fanen.",
	models.IntentCreateInvoice: "Opretter en faktura i Billy som kladde (draft), " +
		"der kræver manuel godkendelse. Fakturaen sendes ikke til kunden.",
	models.IntentBookMeeting: "Opretter en aftale i kalenderen. " +
		"Der tilføjes ingen deltagere, så kunden modtager ingen automatisk invitation.",
	models.IntentSearchEmail: "Søger i indbakken. Ændrer ingenting.",
	models.IntentRequestFlytterPhotos: "Opretter et lead og giver et manuskript til at bede " +
		"kunden om billeder og budget. Der sendes ikke tilbud før billeder er modtaget.",
	models.IntentJobCompletion: "Viser afslutnings-checklisten. " +
		"Ændrer ingenting automatisk - alle punkter bekræftes manuelt.",
}

// ImpactFor describes what executing the action changes. Static per type.
func ImpactFor(intentType models.Intent, _ models.Params) string {
	if impact, ok := impacts[intentType]; ok {
		return impact
	}
	return "Udfører den foreslåede handling."
}
