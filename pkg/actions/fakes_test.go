package actions

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

// roundTripParams simulates the approval flow echoing params over the
// wire: all numbers come back as float64.
func roundTripParams(t *testing.T, params models.Params) models.Params {
	t.Helper()
	encoded, err := json.Marshal(params)
	require.NoError(t, err)
	var decoded models.Params
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	return decoded
}

// In-memory fakes for the executor's collaborators. Each fake records its
// calls so tests can assert both on results and on what was (not) invoked.

type fakeLeadStore struct {
	created  []models.Lead
	leads    []models.Lead
	createID int64
	err      error
}

func (f *fakeLeadStore) Create(_ context.Context, lead *models.Lead) (*models.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.createID++
	stored := *lead
	stored.ID = f.createID
	stored.CreatedAt = time.Now()
	f.created = append(f.created, stored)
	return &stored, nil
}

func (f *fakeLeadStore) ListByUser(_ context.Context, _ int64) ([]models.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.leads, nil
}

func (f *fakeLeadStore) UpdateStatus(_ context.Context, _ int64, _ string) error { return f.err }
func (f *fakeLeadStore) UpdateScore(_ context.Context, _ int64, _ int) error     { return f.err }

func (f *fakeLeadStore) Get(_ context.Context, leadID int64) (*models.Lead, error) {
	for i := range f.leads {
		if f.leads[i].ID == leadID {
			return &f.leads[i], nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeTaskStore struct {
	created  []models.Task
	tasks    []models.Task
	createID int64
	err      error
}

func (f *fakeTaskStore) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.createID++
	stored := *task
	stored.ID = f.createID
	f.created = append(f.created, stored)
	return &stored, nil
}

func (f *fakeTaskStore) ListByUser(_ context.Context, _ int64) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeTaskStore) UpdateStatus(_ context.Context, _ int64, _ string) error { return f.err }

type fakeCalendar struct {
	events      []models.CalendarEvent
	created     []models.CreateEventRequest
	listErr     error
	createErr   error
	listedMin   time.Time
	listedMax   time.Time
	listedCalls int
}

func (f *fakeCalendar) ListEvents(
	_ context.Context, timeMin, timeMax time.Time,
) ([]models.CalendarEvent, error) {
	f.listedCalls++
	f.listedMin, f.listedMax = timeMin, timeMax
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(
	_ context.Context, event *models.CreateEventRequest,
) (*models.CalendarEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *event)
	return &models.CalendarEvent{
		ID:          "evt-1",
		Summary:     event.Summary,
		Description: event.Description,
		Start:       event.Start,
		End:         event.End,
	}, nil
}

type fakeInvoicing struct {
	customers    []models.Customer
	created      []models.CreateInvoiceRequest
	customersErr error
	createErr    error
}

func (f *fakeInvoicing) GetCustomers(_ context.Context) ([]models.Customer, error) {
	if f.customersErr != nil {
		return nil, f.customersErr
	}
	return f.customers, nil
}

func (f *fakeInvoicing) CreateInvoice(
	_ context.Context, invoice *models.CreateInvoiceRequest,
) (*models.Invoice, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *invoice)
	return &models.Invoice{
		ID:               "inv-1",
		ContactID:        invoice.ContactID,
		EntryDate:        invoice.EntryDate,
		PaymentTermsDays: invoice.PaymentTermsDays,
		State:            "draft",
		Lines:            invoice.Lines,
	}, nil
}

func (f *fakeInvoicing) GetInvoices(_ context.Context) ([]models.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoicing) GetProducts(_ context.Context) ([]models.Product, error) {
	return nil, nil
}

type fakeEmail struct {
	threads []models.EmailThread
	queries []string
	err     error
}

func (f *fakeEmail) SearchThreads(
	_ context.Context, query string, _ int,
) ([]models.EmailThread, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.threads, nil
}

type testCollaborators struct {
	leads     *fakeLeadStore
	tasks     *fakeTaskStore
	calendar  *fakeCalendar
	invoicing *fakeInvoicing
	email     *fakeEmail
}

func newTestAppState() (*models.AppState, *testCollaborators) {
	collaborators := &testCollaborators{
		leads:     &fakeLeadStore{},
		tasks:     &fakeTaskStore{},
		calendar:  &fakeCalendar{},
		invoicing: &fakeInvoicing{},
		email:     &fakeEmail{},
	}
	appState := &models.AppState{
		LeadStore: collaborators.leads,
		TaskStore: collaborators.tasks,
		Calendar:  collaborators.calendar,
		Invoicing: collaborators.invoicing,
		Email:     collaborators.email,
		Config: &config.Config{
			Assistant: config.AssistantConfig{
				RequireApproval:         true,
				ConfidenceThreshold:     0.7,
				HourlyRate:              349,
				InvoicePaymentTermsDays: 1,
				DefaultBookingHours:     3,
			},
		},
	}
	return appState, collaborators
}

// fixedNow pins the executor clock for a test and restores it afterwards.
func fixedNow(t interface{ Cleanup(func()) }, now time.Time) {
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}
