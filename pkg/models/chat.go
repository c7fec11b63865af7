package models

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message, both as persisted and as sent to the LLM.
type Message struct {
	ID             int64                  `json:"id,omitempty"`
	ConversationID int64                  `json:"conversation_id,omitempty"`
	CreatedAt      time.Time              `json:"created_at,omitempty"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	Model          string                 `json:"model,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type Conversation struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"user_id"`
	Title     string                 `json:"title"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// CompletionUsage reports LLM token usage for a single completion, when the
// provider returns it.
type CompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the result of one orchestrated conversation turn.
// Exactly one of ActionResult and PendingAction may be set; both are nil
// for plain conversational turns.
type ChatResponse struct {
	Content       string           `json:"content"`
	Model         string           `json:"model"`
	Usage         *CompletionUsage `json:"usage,omitempty"`
	PendingAction *PendingAction   `json:"pendingAction,omitempty"`
	ActionResult  *ActionResult    `json:"actionResult,omitempty"`
}
