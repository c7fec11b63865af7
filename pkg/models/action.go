package models

import "github.com/google/uuid"

// RiskLevel classifies how consequential executing an action is.
// Total order: low < medium < high.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PendingAction is an action awaiting explicit user approval. It is
// immutable after creation: approval only determines whether Execute is
// invoked with the captured Type and Params, it never alters them.
type PendingAction struct {
	ID        uuid.UUID `json:"id"`
	Type      Intent    `json:"type"`
	Params    Params    `json:"params"`
	Impact    string    `json:"impact"`
	Preview   string    `json:"preview"`
	RiskLevel RiskLevel `json:"riskLevel"`
}

// ActionResult is the outcome of a single action execution. Only the
// message and error text cross into LLM context and chat history; the
// original error object never leaves the executor.
type ActionResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
