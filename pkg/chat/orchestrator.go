// Package chat orchestrates a single conversation turn: classification,
// approval gating or execution, LLM context assembly and the final reply.
package chat

import (
	"context"

	"github.com/rendetalje/friday/internal"
	"github.com/rendetalje/friday/pkg/actions"
	"github.com/rendetalje/friday/pkg/intent"
	"github.com/rendetalje/friday/pkg/models"
)

var log = internal.GetLogger()

// TurnOptions control one orchestrated turn.
type TurnOptions struct {
	UserID int64
	// RequireApproval gates actionable intents behind a pending-action
	// round-trip instead of executing them inline.
	RequireApproval bool
}

// RouteConversationTurn handles one chat turn over the full message
// history. The last user message is classified; a confident actionable
// intent either becomes a PendingAction (approval on) or is executed
// immediately (approval off). The LLM is then invoked with the history
// plus a system context entry describing what happened.
func RouteConversationTurn(
	ctx context.Context,
	appState *models.AppState,
	messages []models.Message,
	opts TurnOptions,
) (*models.ChatResponse, error) {
	var pendingAction *models.PendingAction
	var actionResult *models.ActionResult

	if last, ok := lastUserMessage(messages); ok && opts.UserID != 0 {
		parsed := intent.Parse(last.Content)
		threshold := appState.Config.Assistant.ConfidenceThreshold
		if parsed.Intent != models.IntentUnknown && parsed.Confidence > threshold {
			switch {
			case parsed.Intent.Actionable() && opts.RequireApproval:
				pending, err := actions.NewPendingAction(parsed)
				if err != nil {
					return nil, err
				}
				pendingAction = pending
			default:
				result := actions.Execute(ctx, appState, parsed, opts.UserID)
				actionResult = &result
			}
		}
	}

	llmMessages := ensureSystemPrompt(messages)
	llmMessages = appendTurnContext(llmMessages, actionResult, pendingAction)

	completion, err := appState.LLM.Chat(ctx, llmMessages)
	if err != nil {
		// a completed action outranks a broken LLM: answer with the
		// action's own message instead of failing the turn
		if actionResult != nil && actionResult.Success {
			log.Warnf("llm call failed after successful action, using action message: %v", err)
			return &models.ChatResponse{
				Content:      actionResult.Message,
				ActionResult: actionResult,
			}, nil
		}
		return nil, err
	}

	content := completion.Content
	if actionResult != nil && actionResult.Success {
		content = actionResult.Message + "\n\n" + content
	}

	return &models.ChatResponse{
		Content:       content,
		Model:         completion.Model,
		Usage:         completion.Usage,
		PendingAction: pendingAction,
		ActionResult:  actionResult,
	}, nil
}

func lastUserMessage(messages []models.Message) (models.Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleUser {
			return messages[i], true
		}
	}
	return models.Message{}, false
}

// ensureSystemPrompt prepends the persona prompt unless the history
// already carries a system message.
func ensureSystemPrompt(messages []models.Message) []models.Message {
	for _, message := range messages {
		if message.Role == models.RoleSystem {
			return messages
		}
	}
	withPrompt := make([]models.Message, 0, len(messages)+1)
	withPrompt = append(withPrompt, models.Message{
		Role:    models.RoleSystem,
		Content: fridayPersonaPrompt,
	})
	return append(withPrompt, messages...)
}

func appendTurnContext(
	messages []models.Message,
	actionResult *models.ActionResult,
	pendingAction *models.PendingAction,
) []models.Message {
	switch {
	case actionResult != nil:
		content, err := internal.ParsePrompt(actionResultContext, actionResult)
		if err != nil {
			log.Errorf("failed to render action result context: %v", err)
			return messages
		}
		return append(messages, models.Message{Role: models.RoleSystem, Content: content})
	case pendingAction != nil:
		content, err := internal.ParsePrompt(pendingActionContext, pendingAction)
		if err != nil {
			log.Errorf("failed to render pending action context: %v", err)
			return messages
		}
		return append(messages, models.Message{Role: models.RoleSystem, Content: content})
	}
	return messages
}
