package models

import (
	"context"
	"time"
)

// CalendarEvent is a calendar event as returned by the calendar API.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// CreateEventRequest is the payload for creating a calendar event.
// It deliberately has no attendee field: calendar events created by the
// assistant must never trigger invites to the customer.
type CreateEventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// CalendarClient is the calendar collaborator consumed by the action
// executor.
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, event *CreateEventRequest) (*CalendarEvent, error)
}

// Customer is an accounting contact, fuzzy-matchable by name.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type InvoiceLine struct {
	ProductID   string  `json:"productId,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CreateInvoiceRequest creates an invoice in the accounting system.
// Created invoices always start in the draft state; nothing in this
// codebase transitions an invoice to approved or sent.
type CreateInvoiceRequest struct {
	ContactID        string        `json:"contactId"`
	EntryDate        string        `json:"entryDate"`
	PaymentTermsDays int           `json:"paymentTermsDays"`
	Lines            []InvoiceLine `json:"lines"`
}

type Invoice struct {
	ID               string        `json:"id"`
	InvoiceNo        string        `json:"invoiceNo,omitempty"`
	ContactID        string        `json:"contactId"`
	EntryDate        string        `json:"entryDate"`
	PaymentTermsDays int           `json:"paymentTermsDays"`
	State            string        `json:"state"`
	Lines            []InvoiceLine `json:"lines"`
}

// InvoicingClient is the accounting collaborator consumed by the action
// executor and the inbox handlers.
type InvoicingClient interface {
	GetCustomers(ctx context.Context) ([]Customer, error)
	CreateInvoice(ctx context.Context, invoice *CreateInvoiceRequest) (*Invoice, error)
	GetInvoices(ctx context.Context) ([]Invoice, error)
	GetProducts(ctx context.Context) ([]Product, error)
}

// Product is a catalogue item in the accounting system.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	SalesPrice  float64 `json:"salesPrice"`
}

type EmailMessage struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Date     string `json:"date"`
}

type EmailThread struct {
	ID       string         `json:"id"`
	Snippet  string         `json:"snippet"`
	Messages []EmailMessage `json:"messages"`
}

// EmailSearcher is the mailbox collaborator consumed by the action executor.
type EmailSearcher interface {
	SearchThreads(ctx context.Context, query string, maxResults int) ([]EmailThread, error)
}
