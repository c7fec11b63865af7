package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendetalje/friday/pkg/models"
)

func doJSONRequest(
	t *testing.T,
	router *chi.Mux,
	method, path string,
	body interface{},
) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func seedConversation(t *testing.T, appState *models.AppState, userID int64) *models.Conversation {
	t.Helper()
	conversation, err := appState.ChatStore.CreateConversation(
		context.Background(),
		&models.Conversation{UserID: userID, Title: "Test"},
	)
	require.NoError(t, err)
	return conversation
}

func TestCreateConversationRoute(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat",
		map[string]interface{}{"user_id": 42, "title": "Fakturaer"})
	require.Equal(t, http.StatusCreated, res.Code)

	var created models.Conversation
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, "Fakturaer", created.Title)
}

func TestCreateConversationRouteValidation(t *testing.T) {
	router := setupRouter(newTestAppState())

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat",
		map[string]interface{}{"title": "no user"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestListConversationsRoute(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	seedConversation(t, appState, 42)
	seedConversation(t, appState, 7)

	res := doJSONRequest(t, router, http.MethodGet, "/api/v1/chat?user_id=42", nil)
	require.Equal(t, http.StatusOK, res.Code)

	var conversations []models.Conversation
	require.NoError(t, json.NewDecoder(res.Body).Decode(&conversations))
	assert.Len(t, conversations, 1)

	res = doJSONRequest(t, router, http.MethodGet, "/api/v1/chat", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestGetConversationRoute(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	conversation := seedConversation(t, appState, 42)
	_, err := appState.ChatStore.CreateMessage(context.Background(), &models.Message{
		ConversationID: conversation.ID,
		Role:           models.RoleUser,
		Content:        "Hej Friday",
	})
	require.NoError(t, err)

	res := doJSONRequest(t, router, http.MethodGet, "/api/v1/chat/1", nil)
	require.Equal(t, http.StatusOK, res.Code)

	var body conversationResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, conversation.ID, body.Conversation.ID)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "Hej Friday", body.Messages[0].Content)
}

func TestGetConversationRouteNotFound(t *testing.T) {
	router := setupRouter(newTestAppState())

	res := doJSONRequest(t, router, http.MethodGet, "/api/v1/chat/99", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestPostMessageRoutePlainTurn(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	conversation := seedConversation(t, appState, 42)

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat/1/message",
		map[string]interface{}{"content": "Hej Friday, hvordan går det?"})
	require.Equal(t, http.StatusOK, res.Code)

	var response models.ChatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Selvfølgelig!", response.Content)
	assert.Nil(t, response.PendingAction)
	assert.Nil(t, response.ActionResult)

	messages, err := appState.ChatStore.GetMessages(context.Background(), conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
}

func TestPostMessageRouteActionableGatesOnApproval(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	conversation := seedConversation(t, appState, 42)

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat/1/message",
		map[string]interface{}{"content": "Opret lead: Peter Hansen, peter@test.dk, 12345678"})
	require.Equal(t, http.StatusOK, res.Code)

	var response models.ChatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	require.NotNil(t, response.PendingAction)
	assert.Equal(t, models.IntentCreateLead, response.PendingAction.Type)
	assert.Nil(t, response.ActionResult)

	// Nothing is executed until the action is approved.
	leadStore := appState.LeadStore.(*fakeLeadStore)
	assert.Empty(t, leadStore.created)

	// The pending action is recorded on the conversation for audit.
	updated, err := appState.ChatStore.GetConversation(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Metadata, "pendingAction")
}

func TestPostMessageRouteValidation(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	seedConversation(t, appState, 42)

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat/1/message",
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestApproveActionRoute(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	conversation := seedConversation(t, appState, 42)

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat/1/approve",
		map[string]interface{}{
			"actionType": "create_lead",
			"params": map[string]interface{}{
				"name":  "Peter Hansen",
				"email": "peter@test.dk",
			},
		})
	require.Equal(t, http.StatusOK, res.Code)

	var result models.ActionResult
	require.NoError(t, json.NewDecoder(res.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "Peter Hansen")

	leadStore := appState.LeadStore.(*fakeLeadStore)
	require.Len(t, leadStore.created, 1)
	assert.Equal(t, conversation.UserID, leadStore.created[0].UserID)

	// The executed action leaves a system message in the conversation.
	messages, err := appState.ChatStore.GetMessages(context.Background(), conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Equal(t, true, messages[0].Metadata["approved"])
}

func TestApproveActionRouteValidation(t *testing.T) {
	appState := newTestAppState()
	router := setupRouter(appState)
	seedConversation(t, appState, 42)

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat/1/approve",
		map[string]interface{}{"params": map[string]interface{}{}})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestApproveActionRouteConversationNotFound(t *testing.T) {
	router := setupRouter(newTestAppState())

	res := doJSONRequest(t, router, http.MethodPost, "/api/v1/chat/99/approve",
		map[string]interface{}{"actionType": "create_lead"})
	assert.Equal(t, http.StatusNotFound, res.Code)
}
