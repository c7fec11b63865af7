package models

import "time"

// Lead statuses follow the pipeline new -> contacted -> qualified ->
// proposal -> won/lost.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusProposal  = "proposal"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

type Lead struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"user_id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Company   string                 `json:"company,omitempty"`
	Source    string                 `json:"source"`
	Notes     string                 `json:"notes,omitempty"`
	Score     int                    `json:"score"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// LeadScoreAnalysis is the LLM-derived scoring of a lead email.
type LeadScoreAnalysis struct {
	Score    int            `json:"score"`
	Factors  map[string]int `json:"factors"`
	Verified bool           `json:"verified"`
}
