package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendetalje/friday/pkg/models"
)

func TestNewPendingAction(t *testing.T) {
	parsed := models.ParsedIntent{
		Intent: models.IntentCreateLead,
		Params: models.Params{
			"name":  "Peter Hansen",
			"email": "peter@test.dk",
		},
		Confidence: 0.9,
	}

	pending, err := NewPendingAction(parsed)
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(pending.ID))
	assert.Equal(t, models.IntentCreateLead, pending.Type)
	assert.Equal(t, models.RiskLow, pending.RiskLevel)
	assert.Contains(t, pending.Preview, "Peter Hansen")
	assert.NotEmpty(t, pending.Impact)
}

func TestNewPendingActionRejectsNonActionable(t *testing.T) {
	for _, intent := range []models.Intent{
		models.IntentListTasks,
		models.IntentListLeads,
		models.IntentCheckCalendar,
		models.IntentUnknown,
	} {
		_, err := NewPendingAction(models.ParsedIntent{Intent: intent})
		assert.Error(t, err, string(intent))
	}
}

func TestNewPendingActionCopiesParams(t *testing.T) {
	params := models.Params{"name": "Peter Hansen", "email": "peter@test.dk"}
	pending, err := NewPendingAction(models.ParsedIntent{
		Intent:     models.IntentCreateLead,
		Params:     params,
		Confidence: 0.9,
	})
	require.NoError(t, err)

	// mutating the classifier output must not leak into the pending action
	params["name"] = "Someone Else"
	assert.Equal(t, "Peter Hansen", pending.Params["name"])
}

func TestNewPendingActionIDsAreUnique(t *testing.T) {
	parsed := models.ParsedIntent{
		Intent:     models.IntentCreateTask,
		Params:     models.Params{"title": "Ring til kunde"},
		Confidence: 0.85,
	}
	first, err := NewPendingAction(parsed)
	require.NoError(t, err)
	second, err := NewPendingAction(parsed)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestParamAccessorsAfterRoundTrip(t *testing.T) {
	params := roundTripParams(t, models.Params{
		"startHour":   10,
		"amount":      2094.0,
		"participant": "Anna",
	})

	hour, ok := paramInt(params, "startHour")
	require.True(t, ok)
	assert.Equal(t, 10, hour)

	amount, ok := paramFloat(params, "amount")
	require.True(t, ok)
	assert.Equal(t, 2094.0, amount)

	assert.Equal(t, "Anna", paramString(params, "participant"))

	_, ok = paramInt(params, "missing")
	assert.False(t, ok)
}
