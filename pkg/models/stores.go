package models

import "context"

// LeadStore persists sales leads.
type LeadStore interface {
	Create(ctx context.Context, lead *Lead) (*Lead, error)
	ListByUser(ctx context.Context, userID int64) ([]Lead, error)
	UpdateStatus(ctx context.Context, leadID int64, status string) error
	UpdateScore(ctx context.Context, leadID int64, score int) error
	Get(ctx context.Context, leadID int64) (*Lead, error)
}

// TaskStore persists todo items.
type TaskStore interface {
	Create(ctx context.Context, task *Task) (*Task, error)
	ListByUser(ctx context.Context, userID int64) ([]Task, error)
	UpdateStatus(ctx context.Context, taskID int64, status string) error
}

// ChatStore persists conversations and their messages. Messages are
// returned in insertion order.
type ChatStore interface {
	CreateConversation(ctx context.Context, conversation *Conversation) (*Conversation, error)
	GetConversation(ctx context.Context, conversationID int64) (*Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]Conversation, error)
	UpdateConversationMetadata(
		ctx context.Context,
		conversationID int64,
		metadata map[string]interface{},
	) (*Conversation, error)
	CreateMessage(ctx context.Context, message *Message) (*Message, error)
	GetMessages(ctx context.Context, conversationID int64) ([]Message, error)
	Close() error
}
