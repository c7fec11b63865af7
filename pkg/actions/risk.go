// Package actions turns classified intents into previewed, risk-labelled
// pending actions and executes approved actions against the external
// collaborators (lead/task stores, calendar, invoicing, email search).
package actions

import (
	"github.com/rendetalje/friday/internal"
	"github.com/rendetalje/friday/pkg/models"
)

var log = internal.GetLogger()

// riskLevels is a static map from intent type to risk level. Risk is a
// pure function of the intent type only, never of its parameters.
var riskLevels = map[models.Intent]models.RiskLevel{
	// read-only or low-impact creates
	models.IntentSearchEmail:          models.RiskLow,
	models.IntentCreateLead:           models.RiskLow,
	models.IntentCreateTask:           models.RiskLow,
	models.IntentRequestFlytterPhotos: models.RiskLow,
	// calendar writes and guided completion
	models.IntentBookMeeting:   models.RiskMedium,
	models.IntentJobCompletion: models.RiskMedium,
	// financial writes
	models.IntentCreateInvoice: models.RiskHigh,
}

// RiskLevelFor returns the risk level for an intent type. Unknown types
// default to medium.
func RiskLevelFor(intentType models.Intent) models.RiskLevel {
	if level, ok := riskLevels[intentType]; ok {
		return level
	}
	return models.RiskMedium
}
