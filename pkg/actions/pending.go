package actions

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/rendetalje/friday/pkg/models"
)

// NewPendingAction wraps a classified intent in an immutable approval
// request. The params are deep-copied so the pending action cannot be
// affected by later mutation of the classifier output: what the user
// approves is exactly what executes. No side effects are performed here.
func NewPendingAction(parsed models.ParsedIntent) (*models.PendingAction, error) {
	if !parsed.Intent.Actionable() {
		return nil, fmt.Errorf("intent %q is not actionable", parsed.Intent)
	}

	params := models.Params{}
	if err := copier.CopyWithOption(&params, parsed.Params, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy intent params: %w", err)
	}

	return &models.PendingAction{
		ID:        uuid.New(),
		Type:      parsed.Intent,
		Params:    params,
		Impact:    ImpactFor(parsed.Intent, params),
		Preview:   PreviewFor(parsed.Intent, params),
		RiskLevel: RiskLevelFor(parsed.Intent),
	}, nil
}
