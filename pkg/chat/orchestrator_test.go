package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

type fakeLLM struct {
	reply    string
	err      error
	received [][]models.Message
}

func (f *fakeLLM) Chat(_ context.Context, messages []models.Message) (*models.ChatCompletion, error) {
	f.received = append(f.received, messages)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ChatCompletion{Content: f.reply, Model: "test-model"}, nil
}

func (f *fakeLLM) Init(_ context.Context, _ *config.Config) error { return nil }

type recordingLeadStore struct {
	created []models.Lead
}

func (r *recordingLeadStore) Create(_ context.Context, lead *models.Lead) (*models.Lead, error) {
	r.created = append(r.created, *lead)
	stored := *lead
	stored.ID = int64(len(r.created))
	return &stored, nil
}

func (r *recordingLeadStore) ListByUser(_ context.Context, _ int64) ([]models.Lead, error) {
	return r.created, nil
}

func (r *recordingLeadStore) UpdateStatus(_ context.Context, _ int64, _ string) error { return nil }
func (r *recordingLeadStore) UpdateScore(_ context.Context, _ int64, _ int) error     { return nil }
func (r *recordingLeadStore) Get(_ context.Context, _ int64) (*models.Lead, error) {
	return nil, models.ErrNotFound
}

type recordingTaskStore struct {
	tasks []models.Task
}

func (r *recordingTaskStore) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.tasks = append(r.tasks, *task)
	return task, nil
}

func (r *recordingTaskStore) ListByUser(_ context.Context, _ int64) ([]models.Task, error) {
	return r.tasks, nil
}

func (r *recordingTaskStore) UpdateStatus(_ context.Context, _ int64, _ string) error { return nil }

func newChatAppState(llm *fakeLLM) (*models.AppState, *recordingLeadStore) {
	leadStore := &recordingLeadStore{}
	return &models.AppState{
		LLM:       llm,
		LeadStore: leadStore,
		TaskStore: &recordingTaskStore{},
		Config: &config.Config{
			Assistant: config.AssistantConfig{
				RequireApproval:     true,
				ConfidenceThreshold: 0.7,
				HourlyRate:          349,
			},
		},
	}, leadStore
}

func userTurn(content string) []models.Message {
	return []models.Message{{Role: models.RoleUser, Content: content}}
}

func TestRouteConversationTurnApprovalGated(t *testing.T) {
	llm := &fakeLLM{reply: "Skal jeg oprette leadet?"}
	appState, leads := newChatAppState(llm)

	response, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("Opret lead: Peter Hansen, peter@test.dk"),
		TurnOptions{UserID: 1, RequireApproval: true},
	)
	require.NoError(t, err)

	require.NotNil(t, response.PendingAction)
	assert.Equal(t, models.IntentCreateLead, response.PendingAction.Type)
	assert.Nil(t, response.ActionResult)
	// approval gating must not execute anything
	assert.Empty(t, leads.created)
}

func TestRouteConversationTurnImmediateExecution(t *testing.T) {
	llm := &fakeLLM{reply: "Leadet er klar."}
	appState, leads := newChatAppState(llm)

	response, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("Opret lead: Peter Hansen, peter@test.dk"),
		TurnOptions{UserID: 1, RequireApproval: false},
	)
	require.NoError(t, err)

	require.NotNil(t, response.ActionResult)
	assert.True(t, response.ActionResult.Success)
	assert.Nil(t, response.PendingAction)
	assert.Len(t, leads.created, 1)
	// success message leads, LLM reply follows
	assert.Contains(t, response.Content, "Lead oprettet")
	assert.Contains(t, response.Content, "Leadet er klar.")
}

func TestRouteConversationTurnListIntentsBypassApproval(t *testing.T) {
	llm := &fakeLLM{reply: "Her er dine opgaver."}
	appState, _ := newChatAppState(llm)

	response, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("Vis mine opgaver"),
		TurnOptions{UserID: 1, RequireApproval: true},
	)
	require.NoError(t, err)

	assert.Nil(t, response.PendingAction)
	require.NotNil(t, response.ActionResult)
	assert.True(t, response.ActionResult.Success)
}

func TestRouteConversationTurnPlainConversation(t *testing.T) {
	llm := &fakeLLM{reply: "Hej! Hvordan kan jeg hjælpe?"}
	appState, _ := newChatAppState(llm)

	response, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("hej med dig"),
		TurnOptions{UserID: 1, RequireApproval: true},
	)
	require.NoError(t, err)

	assert.Nil(t, response.PendingAction)
	assert.Nil(t, response.ActionResult)
	assert.Equal(t, "Hej! Hvordan kan jeg hjælpe?", response.Content)
	assert.Equal(t, "test-model", response.Model)
}

func TestRouteConversationTurnInjectsSystemPrompt(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	appState, _ := newChatAppState(llm)

	_, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("hej"),
		TurnOptions{UserID: 1, RequireApproval: true},
	)
	require.NoError(t, err)

	require.Len(t, llm.received, 1)
	first := llm.received[0][0]
	assert.Equal(t, models.RoleSystem, first.Role)
	assert.Contains(t, first.Content, "Du er Friday")
}

func TestRouteConversationTurnKeepsExistingSystemPrompt(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	appState, _ := newChatAppState(llm)

	messages := []models.Message{
		{Role: models.RoleSystem, Content: "custom prompt"},
		{Role: models.RoleUser, Content: "hej"},
	}
	_, err := RouteConversationTurn(
		context.Background(), appState, messages, TurnOptions{UserID: 1},
	)
	require.NoError(t, err)

	systemCount := 0
	for _, message := range llm.received[0] {
		if message.Role == models.RoleSystem {
			systemCount++
		}
	}
	assert.Equal(t, 1, systemCount)
	assert.Equal(t, "custom prompt", llm.received[0][0].Content)
}

func TestRouteConversationTurnPendingActionContext(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	appState, _ := newChatAppState(llm)

	_, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("Opret lead: Peter Hansen, peter@test.dk"),
		TurnOptions{UserID: 1, RequireApproval: true},
	)
	require.NoError(t, err)

	last := llm.received[0][len(llm.received[0])-1]
	assert.Equal(t, models.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "afventer brugerens godkendelse")
}

func TestRouteConversationTurnLLMFailureAfterSuccess(t *testing.T) {
	llm := &fakeLLM{err: errors.New("llm unavailable")}
	appState, leads := newChatAppState(llm)

	response, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("Opret lead: Peter Hansen, peter@test.dk"),
		TurnOptions{UserID: 1, RequireApproval: false},
	)
	require.NoError(t, err)

	assert.Len(t, leads.created, 1)
	assert.Contains(t, response.Content, "Lead oprettet")
}

func TestRouteConversationTurnLLMFailurePlainTurn(t *testing.T) {
	llm := &fakeLLM{err: errors.New("llm unavailable")}
	appState, _ := newChatAppState(llm)

	_, err := RouteConversationTurn(
		context.Background(), appState, userTurn("hej"), TurnOptions{UserID: 1},
	)
	assert.Error(t, err)
}

func TestRouteConversationTurnNoUserID(t *testing.T) {
	llm := &fakeLLM{reply: "ok"}
	appState, leads := newChatAppState(llm)

	response, err := RouteConversationTurn(
		context.Background(),
		appState,
		userTurn("Opret lead: Peter Hansen, peter@test.dk"),
		TurnOptions{UserID: 0, RequireApproval: false},
	)
	require.NoError(t, err)

	assert.Nil(t, response.PendingAction)
	assert.Nil(t, response.ActionResult)
	assert.Empty(t, leads.created)
}
