package models

import (
	"github.com/rendetalje/friday/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	LLM       FridayLLM
	LeadStore LeadStore
	TaskStore TaskStore
	ChatStore ChatStore
	Calendar  CalendarClient
	Invoicing InvoicingClient
	Email     EmailSearcher
	Config    *config.Config
}
