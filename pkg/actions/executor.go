package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rendetalje/friday/pkg/models"
)

var timeNow = time.Now

// Execute performs the side effect for an approved (or approval-exempt)
// intent on behalf of userID and returns a structured result. Validation
// failures and collaborator errors are reported in the result, never as a
// raw error: only the message and error text may reach chat history.
func Execute(
	ctx context.Context,
	appState *models.AppState,
	parsed models.ParsedIntent,
	userID int64,
) models.ActionResult {
	switch parsed.Intent {
	case models.IntentCreateLead:
		return executeCreateLead(ctx, appState, parsed.Params, userID)
	case models.IntentCreateTask:
		return executeCreateTask(ctx, appState, parsed.Params, userID)
	case models.IntentCreateInvoice:
		return executeCreateInvoice(ctx, appState, parsed.Params)
	case models.IntentBookMeeting:
		return executeBookMeeting(ctx, appState, parsed.Params)
	case models.IntentSearchEmail:
		return executeSearchEmail(ctx, appState, parsed.Params)
	case models.IntentListTasks:
		return executeListTasks(ctx, appState, userID)
	case models.IntentListLeads:
		return executeListLeads(ctx, appState, parsed.Params, userID)
	case models.IntentCheckCalendar:
		return executeCheckCalendar(ctx, appState)
	case models.IntentRequestFlytterPhotos:
		return executeRequestFlytterPhotos(ctx, appState, parsed.Params, userID)
	case models.IntentJobCompletion:
		return executeJobCompletion(parsed.Params)
	default:
		return models.ActionResult{
			Success: false,
			Message: "Jeg forstod ikke helt hvad du ønsker. Kan du omformulere?",
		}
	}
}

func executeCreateLead(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
	userID int64,
) models.ActionResult {
	name := paramString(params, "name")
	email := paramString(params, "email")

	if name == "" || email == "" {
		return models.ActionResult{
			Success: false,
			Message: "Jeg mangler navn og email for at oprette et lead. Prøv igen med: Navn: X, Email: Y",
		}
	}

	source := paramString(params, "source")
	if source == "" {
		source = "manual"
	}

	lead, err := appState.LeadStore.Create(ctx, &models.Lead{
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  paramString(params, "phone"),
		Source: source,
		Score:  50,
		Status: models.LeadStatusNew,
	})
	if err != nil {
		log.Errorf("executeCreateLead: failed to create lead: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Der opstod en fejl under oprettelsen af leadet.",
			Error:   err.Error(),
		}
	}

	message := fmt.Sprintf("✅ Lead oprettet: **%s** (%s)", name, email)
	if phone := paramString(params, "phone"); phone != "" {
		message += fmt.Sprintf(", Telefon: %s", phone)
	}
	message += ". Leadet er nu synligt i Leads-fanen."

	return models.ActionResult{Success: true, Message: message, Data: lead}
}

func executeCreateTask(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
	userID int64,
) models.ActionResult {
	title := paramString(params, "title")
	if title == "" {
		return models.ActionResult{
			Success: false,
			Message: "Jeg mangler en titel for opgaven. Prøv: Opret opgave: [titel]",
		}
	}

	priority := paramString(params, "priority")
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	var dueDate *time.Time
	if due := paramString(params, "dueDate"); due != "" {
		if parsedDue, err := time.Parse(time.RFC3339, due); err == nil {
			dueDate = &parsedDue
		}
	}

	task, err := appState.TaskStore.Create(ctx, &models.Task{
		UserID:   userID,
		Title:    title,
		DueDate:  dueDate,
		Priority: priority,
		Status:   models.TaskStatusTodo,
	})
	if err != nil {
		log.Errorf("executeCreateTask: failed to create task: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Der opstod en fejl under oprettelsen af opgaven.",
			Error:   err.Error(),
		}
	}

	message := fmt.Sprintf("✅ Opgave oprettet: **%s** (%s prioritet)", title, priority)
	if dueDate != nil {
		message += fmt.Sprintf(" - Deadline: %s", dueDate.Format("02-01-2006 15:04"))
	}
	message += ". Opgaven er nu synlig i Tasks-fanen."

	return models.ActionResult{Success: true, Message: message, Data: task}
}

func executeSearchEmail(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
) models.ActionResult {
	var query strings.Builder
	from := paramString(params, "from")
	if from != "" {
		fmt.Fprintf(&query, "from:%s ", from)
	}
	if subject := paramString(params, "subject"); subject != "" {
		fmt.Fprintf(&query, "subject:%s ", subject)
	}
	switch paramString(params, "timeRange") {
	case "last_week", "last_7_days":
		weekAgo := timeNow().AddDate(0, 0, -7)
		fmt.Fprintf(&query, "after:%s", weekAgo.Format("2006-01-02"))
	}

	q := strings.TrimSpace(query.String())
	if q == "" {
		q = "in:inbox"
	}

	threads, err := appState.Email.SearchThreads(ctx, q, 20)
	if err != nil {
		log.Errorf("executeSearchEmail: search failed: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Email-søgningen fejlede. Prøv igen om lidt.",
			Error:   err.Error(),
		}
	}

	message := fmt.Sprintf("📧 Jeg fandt **%d emails**", len(threads))
	if from != "" {
		message += fmt.Sprintf(" fra %s", from)
	}
	message += ". Resultaterne vises i Email-fanen."

	return models.ActionResult{Success: true, Message: message, Data: threads}
}

func executeListTasks(
	ctx context.Context,
	appState *models.AppState,
	userID int64,
) models.ActionResult {
	tasks, err := appState.TaskStore.ListByUser(ctx, userID)
	if err != nil {
		log.Errorf("executeListTasks: list failed: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Kunne ikke hente dine opgaver.",
			Error:   err.Error(),
		}
	}

	if len(tasks) == 0 {
		return models.ActionResult{
			Success: true,
			Message: "📝 Du har ingen opgaver endnu. Vil du have mig til at oprette en?",
			Data:    tasks,
		}
	}

	active := 0
	for _, task := range tasks {
		if task.Status != models.TaskStatusDone && task.Status != models.TaskStatusCancelled {
			active++
		}
	}

	return models.ActionResult{
		Success: true,
		Message: fmt.Sprintf(
			"📝 Du har **%d aktive opgaver** (%d total). Se dem i Tasks-fanen.",
			active, len(tasks),
		),
		Data: tasks,
	}
}

func executeListLeads(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
	userID int64,
) models.ActionResult {
	leads, err := appState.LeadStore.ListByUser(ctx, userID)
	if err != nil {
		log.Errorf("executeListLeads: list failed: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Kunne ikke hente dine leads.",
			Error:   err.Error(),
		}
	}

	if len(leads) == 0 {
		return models.ActionResult{
			Success: true,
			Message: "👥 Du har ingen leads endnu. Vil du have mig til at søge efter nye leads i dine emails?",
			Data:    leads,
		}
	}

	filtered := leads
	recent := paramString(params, "filter") == "recent"
	if recent {
		weekAgo := timeNow().AddDate(0, 0, -7)
		filtered = nil
		for _, lead := range leads {
			if lead.CreatedAt.After(weekAgo) {
				filtered = append(filtered, lead)
			}
		}
	}

	newLeads := 0
	for _, lead := range filtered {
		if lead.Status == models.LeadStatusNew {
			newLeads++
		}
	}

	message := fmt.Sprintf("👥 Du har **%d nye leads** (%d total", newLeads, len(filtered))
	if recent {
		message += " fra sidste uge"
	}
	message += "). Se dem i Leads-fanen."

	return models.ActionResult{Success: true, Message: message, Data: filtered}
}

func executeCheckCalendar(ctx context.Context, appState *models.AppState) models.ActionResult {
	now := timeNow()
	events, err := appState.Calendar.ListEvents(ctx, now, now.AddDate(0, 0, 7))
	if err != nil {
		log.Errorf("executeCheckCalendar: list failed: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Kunne ikke hente din kalender.",
			Error:   err.Error(),
		}
	}

	return models.ActionResult{
		Success: true,
		Message: fmt.Sprintf(
			"📅 Du har **%d aftaler** i din kalender de næste 7 dage. Se dem i Calendar-fanen.",
			len(events),
		),
		Data: events,
	}
}

func executeRequestFlytterPhotos(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
	userID int64,
) models.ActionResult {
	customerName := paramString(params, "customerName")
	if customerName == "" {
		return models.ActionResult{
			Success: false,
			Message: "Jeg mangler kundens navn. Prøv: Nyt lead: [Navn] ønsker flytterengøring, [antal]m²",
		}
	}

	notes := "Flytterengøring"
	sqm, hasSqm := paramInt(params, "squareMeters")
	if hasSqm {
		notes += fmt.Sprintf(" - %dm²", sqm)
	}

	lead, err := appState.LeadStore.Create(ctx, &models.Lead{
		UserID: userID,
		Name:   customerName,
		Source: "flytterengøring",
		Notes:  notes,
		Score:  60,
		Status: models.LeadStatusNew,
	})
	if err != nil {
		log.Errorf("executeRequestFlytterPhotos: failed to create lead: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Der opstod en fejl under oprettelsen af leadet.",
			Error:   err.Error(),
		}
	}

	message := fmt.Sprintf("✅ Lead oprettet: **%s** - Flytterengøring", customerName)
	if hasSqm {
		message += fmt.Sprintf(" (%dm²)", sqm)
	}
	message += fmt.Sprintf(`

⚠️ **VIGTIG REGEL: BED OM BILLEDER FØRST!**

📸 **Næste skridt - Spørg kunden:**

"Hej %s! 👋

For at give dig det mest præcise tilbud på din flytterengøring, har jeg brug for nogle billeder:

1. **Køkken** (ovn, emhætte, skabe)
2. **Badeværelse** (fliser, fuger, brusekabine)
3. **Problemområder** (hvis der er særligt beskidte områder)

Derudover har jeg brug for:
- Dit **budget** for rengøringen
- **Fokusområder** (hvad skal prioriteres?)
- **Deadline** (hvornår skal det være færdigt?)

Send billeder og info, så sender jeg dig et skræddersyet tilbud! 😊"

🚫 **SEND IKKE tilbud før billeder er modtaget!**

Leadet er nu synligt i Leads-fanen.`, customerName)

	return models.ActionResult{
		Success: true,
		Message: message,
		Data:    map[string]interface{}{"lead": lead, "requiresPhotos": true},
	}
}

func executeJobCompletion(params models.Params) models.ActionResult {
	customerName := paramString(params, "customerName")
	if customerName == "" {
		return models.ActionResult{
			Success: false,
			Message: "Jeg mangler kundens navn. Prøv: [Navn]'s rengøring er færdig",
		}
	}

	// Guided workflow only: nothing is mutated here, the operator confirms
	// each point manually.
	message := fmt.Sprintf(`✅ **Job Afslutnings-Workflow for %s**

📋 **CHECKLIST:**

1️⃣ **Er fakturaen oprettet i Billy?**
2️⃣ **Hvilket team udførte jobbet?**
3️⃣ **Betaling modtaget?** (MobilePay / bankoverførsel / afventer)
4️⃣ **Faktisk arbejdstid?** Sammenlign med booket tid
5️⃣ **Opdater kalender event:** team, faktisk arbejdstid, betalingsmetode
6️⃣ **Email labels:** fjern INBOX/IMPORTANT, tilføj COMPLETED

---

**Når alle punkter er tjekket:**
Svar "Checklist færdig for %s" så opdaterer jeg systemet.

Vil du have hjælp til nogle af punkterne?`, customerName, customerName)

	return models.ActionResult{
		Success: true,
		Message: message,
		Data: map[string]interface{}{
			"customerName":      customerName,
			"checklistComplete": false,
		},
	}
}
