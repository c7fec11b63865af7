package server

import (
	"net/http"

	"github.com/rendetalje/friday/pkg/actions"
	"github.com/rendetalje/friday/pkg/models"
)

type approveActionRequest struct {
	ActionType string        `json:"actionType" validate:"required"`
	Params     models.Params `json:"params"`
}

// ApproveActionHandler godoc
//
//	@Summary		Approve and execute a pending action
//	@Description	executes the action exactly as previewed; the params are
//	@Description	taken verbatim from the pending action echoed by the client
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			conversationId	path		int64					true	"Conversation ID"
//	@Param			action			body		approveActionRequest	true	"Approved action"
//	@Success		200				{object}	models.ActionResult
//	@Failure		400				{object}	APIError	"Bad Request"
//	@Failure		404				{object}	APIError	"Not Found"
//	@Failure		500				{object}	APIError	"Internal Server Error"
//	@Router			/api/v1/chat/{conversationId}/approve [post]
func ApproveActionHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID := parseIDFromURL(r, w, "conversationId")
		if conversationID == 0 {
			return
		}
		var payload approveActionRequest
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

		parsed := models.ParsedIntent{
			Intent:     models.Intent(payload.ActionType),
			Params:     payload.Params,
			Confidence: 1.0,
		}
		result := actions.Execute(r.Context(), appState, parsed, conversation.UserID)

		auditMessage := models.Message{
			ConversationID: conversationID,
			Role:           models.RoleSystem,
			Content:        result.Message,
			Metadata: map[string]interface{}{
				"success":  result.Success,
				"approved": true,
			},
		}
		if _, err := appState.ChatStore.CreateMessage(r.Context(), &auditMessage); err != nil {
			log.Warnf("failed to persist action audit message: %v", err)
		}

		if err := encodeJSON(w, result); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
