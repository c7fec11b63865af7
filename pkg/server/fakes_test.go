package server

import (
	"context"
	"sync"
	"time"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(_ context.Context, _ []models.Message) (*models.ChatCompletion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ChatCompletion{Content: f.reply, Model: "fake-model"}, nil
}

func (f *fakeLLM) Init(_ context.Context, _ *config.Config) error {
	return nil
}

type fakeChatStore struct {
	mu            sync.Mutex
	conversations map[int64]*models.Conversation
	messages      map[int64][]models.Message
	nextConvID    int64
	nextMsgID     int64
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		conversations: map[int64]*models.Conversation{},
		messages:      map[int64][]models.Message{},
	}
}

func (f *fakeChatStore) CreateConversation(
	_ context.Context,
	conversation *models.Conversation,
) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextConvID++
	stored := *conversation
	stored.ID = f.nextConvID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.conversations[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeChatStore) GetConversation(
	_ context.Context,
	conversationID int64,
) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conversation, ok := f.conversations[conversationID]
	if !ok {
		return nil, models.NewNotFoundError("conversation")
	}
	result := *conversation
	return &result, nil
}

func (f *fakeChatStore) ListConversations(
	_ context.Context,
	userID int64,
) ([]models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Conversation
	for _, conversation := range f.conversations {
		if conversation.UserID == userID {
			result = append(result, *conversation)
		}
	}
	return result, nil
}

func (f *fakeChatStore) UpdateConversationMetadata(
	_ context.Context,
	conversationID int64,
	metadata map[string]interface{},
) (*models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conversation, ok := f.conversations[conversationID]
	if !ok {
		return nil, models.NewNotFoundError("conversation")
	}
	if conversation.Metadata == nil {
		conversation.Metadata = map[string]interface{}{}
	}
	for k, v := range metadata {
		conversation.Metadata[k] = v
	}
	result := *conversation
	return &result, nil
}

func (f *fakeChatStore) CreateMessage(
	_ context.Context,
	message *models.Message,
) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMsgID++
	stored := *message
	stored.ID = f.nextMsgID
	stored.CreatedAt = time.Now()
	f.messages[stored.ConversationID] = append(f.messages[stored.ConversationID], stored)
	result := stored
	return &result, nil
}

func (f *fakeChatStore) GetMessages(
	_ context.Context,
	conversationID int64,
) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Message(nil), f.messages[conversationID]...), nil
}

func (f *fakeChatStore) Close() error {
	return nil
}

type fakeLeadStore struct {
	leads   []models.Lead
	created []*models.Lead
	scores  map[int64]int
	nextID  int64
}

func (f *fakeLeadStore) Create(_ context.Context, lead *models.Lead) (*models.Lead, error) {
	f.nextID++
	stored := *lead
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.created = append(f.created, &stored)
	f.leads = append(f.leads, stored)
	result := stored
	return &result, nil
}

func (f *fakeLeadStore) ListByUser(_ context.Context, userID int64) ([]models.Lead, error) {
	var result []models.Lead
	for _, lead := range f.leads {
		if lead.UserID == userID {
			result = append(result, lead)
		}
	}
	return result, nil
}

func (f *fakeLeadStore) UpdateStatus(_ context.Context, leadID int64, status string) error {
	for i := range f.leads {
		if f.leads[i].ID == leadID {
			f.leads[i].Status = status
			return nil
		}
	}
	return models.NewNotFoundError("lead")
}

func (f *fakeLeadStore) UpdateScore(_ context.Context, leadID int64, score int) error {
	for i := range f.leads {
		if f.leads[i].ID == leadID {
			f.leads[i].Score = score
			if f.scores == nil {
				f.scores = map[int64]int{}
			}
			f.scores[leadID] = score
			return nil
		}
	}
	return models.NewNotFoundError("lead")
}

func (f *fakeLeadStore) Get(_ context.Context, leadID int64) (*models.Lead, error) {
	for i := range f.leads {
		if f.leads[i].ID == leadID {
			result := f.leads[i]
			return &result, nil
		}
	}
	return nil, models.NewNotFoundError("lead")
}

type fakeTaskStore struct {
	tasks   []models.Task
	created []*models.Task
	nextID  int64
}

func (f *fakeTaskStore) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	f.nextID++
	stored := *task
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.created = append(f.created, &stored)
	f.tasks = append(f.tasks, stored)
	result := stored
	return &result, nil
}

func (f *fakeTaskStore) ListByUser(_ context.Context, userID int64) ([]models.Task, error) {
	var result []models.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (f *fakeTaskStore) UpdateStatus(_ context.Context, taskID int64, status string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Status = status
			return nil
		}
	}
	return models.NewNotFoundError("task")
}

type fakeCalendar struct {
	events    []models.CalendarEvent
	created   []*models.CreateEventRequest
	listedMin time.Time
	listedMax time.Time
}

func (f *fakeCalendar) ListEvents(
	_ context.Context,
	timeMin, timeMax time.Time,
) ([]models.CalendarEvent, error) {
	f.listedMin = timeMin
	f.listedMax = timeMax
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(
	_ context.Context,
	event *models.CreateEventRequest,
) (*models.CalendarEvent, error) {
	f.created = append(f.created, event)
	return &models.CalendarEvent{
		ID:      "evt-1",
		Summary: event.Summary,
		Start:   event.Start,
		End:     event.End,
	}, nil
}

type fakeInvoicing struct {
	customers []models.Customer
	invoices  []models.Invoice
	products  []models.Product
	created   []*models.CreateInvoiceRequest
}

func (f *fakeInvoicing) GetCustomers(_ context.Context) ([]models.Customer, error) {
	return f.customers, nil
}

func (f *fakeInvoicing) CreateInvoice(
	_ context.Context,
	invoice *models.CreateInvoiceRequest,
) (*models.Invoice, error) {
	f.created = append(f.created, invoice)
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
	return f.invoices, nil
}

func (f *fakeInvoicing) GetProducts(_ context.Context) ([]models.Product, error) {
	return f.products, nil
}

type fakeEmail struct {
	threads []models.EmailThread
	queries []string
	maxes   []int
}

func (f *fakeEmail) SearchThreads(
	_ context.Context,
	query string,
	maxResults int,
) ([]models.EmailThread, error) {
	f.queries = append(f.queries, query)
	f.maxes = append(f.maxes, maxResults)
	return f.threads, nil
}

func newTestAppState() *models.AppState {
	return &models.AppState{
		LLM:       &fakeLLM{reply: "Selvfølgelig!"},
		LeadStore: &fakeLeadStore{},
		TaskStore: &fakeTaskStore{},
		ChatStore: newFakeChatStore(),
		Calendar:  &fakeCalendar{},
		Invoicing: &fakeInvoicing{},
		Email:     &fakeEmail{},
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
}
