package models

import (
	"context"

	"github.com/rendetalje/friday/config"
)

// ChatCompletion is a single LLM chat completion.
type ChatCompletion struct {
	Content string           `json:"content"`
	Model   string           `json:"model"`
	Usage   *CompletionUsage `json:"usage,omitempty"`
}

// FridayLLM is the language model consumed by the conversation
// orchestrator.
type FridayLLM interface {
	// Chat runs a chat completion over the full message list.
	Chat(ctx context.Context, messages []Message) (*ChatCompletion, error)
	// Init initializes the LLM
	Init(ctx context.Context, cfg *config.Config) error
}
