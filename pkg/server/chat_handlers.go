package server

import (
	"net/http"

	"github.com/rendetalje/friday/internal"
	"github.com/rendetalje/friday/pkg/chat"
	"github.com/rendetalje/friday/pkg/models"
)

var log = internal.GetLogger()

const OKResponse = "OK"

type createConversationRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Title  string `json:"title"`
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type conversationResponse struct {
	Conversation *models.Conversation `json:"conversation"`
	Messages     []models.Message     `json:"messages"`
}

// CreateConversationHandler godoc
//
//	@Summary		Start a new conversation
//	@Description	create a new conversation for a user
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			conversation	body		createConversationRequest	true	"Conversation"
//	@Success		201				{object}	models.Conversation
//	@Failure		400				{object}	APIError	"Bad Request"
//	@Failure		500				{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/chat [post]
func CreateConversationHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createConversationRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		conversation := models.Conversation{
			UserID: payload.UserID,
			Title:  payload.Title,
		}
		created, err := appState.ChatStore.CreateConversation(r.Context(), &conversation)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := encodeJSON(w, created); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// ListConversationsHandler godoc
//
//	@Summary		List conversations for a user
//	@Tags			chat
//	@Produce		json
//	@Param			user_id	query		int64	true	"User ID"
//	@Success		200		{array}		models.Conversation
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/chat [get]
func ListConversationsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requireQueryUserID(r, w)
		if userID == 0 {
			return
		}

		conversations, err := appState.ChatStore.ListConversations(r.Context(), userID)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		if err := encodeJSON(w, conversations); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// GetConversationHandler godoc
//
//	@Summary		Get a conversation and its messages
//	@Tags			chat
//	@Produce		json
//	@Param			conversationId	path		int64	true	"Conversation ID"
//	@Success		200				{object}	conversationResponse
//	@Failure		404				{object}	APIError	"Not Found"
//	@Failure		500				{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/chat/{conversationId} [get]
func GetConversationHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID := parseIDFromURL(r, w, "conversationId")
		if conversationID == 0 {
			return
		}

		conversation, err := appState.ChatStore.GetConversation(r.Context(), conversationID)
		if err != nil {
			if isNotFound(err) {
				renderError(w, err, http.StatusNotFound)
				return
			}
			renderError(w, err, http.StatusInternalServerError)
			return
		}
		messages, err := appState.ChatStore.GetMessages(r.Context(), conversationID)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		if err := encodeJSON(w, conversationResponse{
			Conversation: conversation,
			Messages:     messages,
		}); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}

// PostMessageHandler godoc
//
//	@Summary		Send a message to the assistant
//	@Description	persists the user message, runs one assistant turn over the
//	@Description	conversation history and persists the reply
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			conversationId	path		int64				true	"Conversation ID"
//	@Param			message			body		postMessageRequest	true	"Message"
//	@Success		200				{object}	models.ChatResponse
//	@Failure		400				{object}	APIError	"Bad Request"
//	@Failure		404				{object}	APIError	"Not Found"
//	@Failure		500				{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/chat/{conversationId}/message [post]
func PostMessageHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID := parseIDFromURL(r, w, "conversationId")
		if conversationID == 0 {
			return
		}
		var payload postMessageRequest
		if err := decodeAndValidateJSON(r, &payload); err != nil {
			renderError(w, err, http.StatusBadRequest)
			return
		}

		conversation, err := appState.ChatStore.GetConversation(r.Context(), conversationID)
		if err != nil {
			if isNotFound(err) {
				renderError(w, err, http.StatusNotFound)
				return
			}
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		userMessage := models.Message{
			ConversationID: conversationID,
			Role:           models.RoleUser,
			Content:        payload.Content,
		}
		if _, err := appState.ChatStore.CreateMessage(r.Context(), &userMessage); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		history, err := appState.ChatStore.GetMessages(r.Context(), conversationID)
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		response, err := chat.RouteConversationTurn(r.Context(), appState, history, chat.TurnOptions{
			UserID:          conversation.UserID,
			RequireApproval: appState.Config.Assistant.RequireApproval,
		})
		if err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		assistantMessage := models.Message{
			ConversationID: conversationID,
			Role:           models.RoleAssistant,
			Content:        response.Content,
			Model:          response.Model,
		}
		if _, err := appState.ChatStore.CreateMessage(r.Context(), &assistantMessage); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}

		// Executed actions leave an audit trail in the conversation itself.
		if response.ActionResult != nil {
			auditMessage := models.Message{
				ConversationID: conversationID,
				Role:           models.RoleSystem,
				Content:        response.ActionResult.Message,
				Metadata: map[string]interface{}{
					"success": response.ActionResult.Success,
				},
			}
			if _, err := appState.ChatStore.CreateMessage(r.Context(), &auditMessage); err != nil {
				log.Warnf("failed to persist action audit message: %v", err)
			}
		}
		if response.PendingAction != nil {
			_, err := appState.ChatStore.UpdateConversationMetadata(
				r.Context(),
				conversationID,
				map[string]interface{}{"pendingAction": response.PendingAction},
			)
			if err != nil {
				log.Warnf("failed to record pending action on conversation: %v", err)
			}
		}

		if err := encodeJSON(w, response); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
