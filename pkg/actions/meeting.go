package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/rendetalje/friday/pkg/models"
)

// defaultJobLabel is the calendar title for bookings without an
// explicit job type.
const defaultJobLabel = "Rengøring"

var weekdayIndexes = map[string]time.Weekday{
	"søndag":  time.Sunday,
	"mandag":  time.Monday,
	"tirsdag": time.Tuesday,
	"onsdag":  time.Wednesday,
	"torsdag": time.Thursday,
	"fredag":  time.Friday,
	"lørdag":  time.Saturday,
}

// resolveTargetDate turns a date hint into a concrete calendar day.
// A weekday name always resolves forward: when today is the named
// weekday, the booking lands a full week out, never today.
func resolveTargetDate(now time.Time, hint string) (time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch hint {
	case "i dag":
		return day, true
	case "i morgen":
		return day.AddDate(0, 0, 1), true
	}
	weekday, ok := weekdayIndexes[hint]
	if !ok {
		return time.Time{}, false
	}
	daysAhead := int(weekday-now.Weekday()+7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return day.AddDate(0, 0, daysAhead), true
}

// snapHalfHour snaps minutes onto the half-hour grid: below 30 rounds
// down to :00, 30 and above round down to :30.
func snapHalfHour(minute int) int {
	if minute >= 30 {
		return 30
	}
	return 0
}

func executeBookMeeting(
	ctx context.Context,
	appState *models.AppState,
	params models.Params,
) models.ActionResult {
	participant := paramString(params, "participant")
	startHour, hasStart := paramInt(params, "startHour")
	if participant == "" || !hasStart {
		return models.ActionResult{
			Success: false,
			Message: "Jeg mangler et navn og et tidspunkt. Prøv: Book [navn] til rengøring fredag kl. 10",
		}
	}

	dateHint := paramString(params, "dateHint")
	targetDate, ok := resolveTargetDate(timeNow(), dateHint)
	if !ok {
		return models.ActionResult{
			Success: false,
			Message: "Jeg kunne ikke forstå datoen. Prøv med en ugedag, \"i dag\" eller \"i morgen\".",
		}
	}

	startMinute, _ := paramInt(params, "startMinute")
	start := time.Date(
		targetDate.Year(), targetDate.Month(), targetDate.Day(),
		startHour, snapHalfHour(startMinute), 0, 0, targetDate.Location(),
	)

	var end time.Time
	if endHour, hasEnd := paramInt(params, "endHour"); hasEnd {
		endMinute, _ := paramInt(params, "endMinute")
		end = time.Date(
			targetDate.Year(), targetDate.Month(), targetDate.Day(),
			endHour, snapHalfHour(endMinute), 0, 0, targetDate.Location(),
		)
	} else {
		end = start.Add(time.Duration(appState.Config.Assistant.DefaultBookingHours) * time.Hour)
	}
	if !end.After(start) {
		return models.ActionResult{
			Success: false,
			Message: "Sluttidspunktet ligger før starttidspunktet. Tjek tiderne og prøv igen.",
		}
	}

	// Double bookings abort the action; a failed availability check only
	// logs a warning so an API hiccup cannot block all bookings.
	existing, err := appState.Calendar.ListEvents(ctx, start, end)
	if err != nil {
		log.Warnf("executeBookMeeting: conflict check failed, continuing: %v", err)
	} else if len(existing) > 0 {
		return models.ActionResult{
			Success: false,
			Message: fmt.Sprintf(
				"⚠️ Tidspunktet er optaget: der er allerede %d aftale(r) %s kl. %s-%s. "+
					"Vælg et andet tidspunkt.",
				len(existing), dateHint, start.Format("15:04"), end.Format("15:04"),
			),
		}
	}

	jobType := paramString(params, "jobType")
	if jobType == "" {
		jobType = defaultJobLabel
	}

	// No attendees on the event: the customer must never receive an
	// automatic invitation.
	event, err := appState.Calendar.CreateEvent(ctx, &models.CreateEventRequest{
		Summary:     fmt.Sprintf("🏠 %s - %s", jobType, participant),
		Description: fmt.Sprintf("%s for %s\n\nOprettet af Friday AI", jobType, participant),
		Start:       start,
		End:         end,
	})
	if err != nil {
		log.Errorf("executeBookMeeting: failed to create event: %v", err)
		return models.ActionResult{
			Success: false,
			Message: "Der opstod en fejl under oprettelsen af kalenderaftalen.",
			Error:   err.Error(),
		}
	}

	return models.ActionResult{
		Success: true,
		Message: fmt.Sprintf(
			"✅ Booket: **%s - %s** %s den %s kl. %s-%s (%.1f timer). "+
				"Kunden har ikke fået en invitation.",
			jobType, participant, dateHint, start.Format("02-01-2006"),
			start.Format("15:04"), end.Format("15:04"), end.Sub(start).Hours(),
		),
		Data: event,
	}
}
