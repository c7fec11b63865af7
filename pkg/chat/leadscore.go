package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rendetalje/friday/internal"
	"github.com/rendetalje/friday/pkg/models"
)

// LeadScoreInput is the email content handed to the scoring model.
type LeadScoreInput struct {
	SenderName   string `json:"senderName"`
	SenderEmail  string `json:"senderEmail"`
	EmailContent string `json:"emailContent"`
}

type leadScoreResponse struct {
	Score        int            `json:"score"`
	Factors      map[string]int `json:"factors"`
	VerifiedName bool           `json:"verified_name"`
}

// AnalyzeLeadScore scores an inbound lead email 0-100 with a factor
// breakdown. A completion that cannot be parsed as JSON yields the zero
// analysis, never an error: a broken model reply must not fail lead intake.
func AnalyzeLeadScore(
	ctx context.Context,
	llm models.FridayLLM,
	input LeadScoreInput,
) (*models.LeadScoreAnalysis, error) {
	userPrompt, err := internal.ParsePrompt(leadScoreUserPrompt, input)
	if err != nil {
		return nil, err
	}

	completion, err := llm.Chat(ctx, []models.Message{
		{Role: models.RoleSystem, Content: leadScorePrompt},
		{Role: models.RoleUser, Content: userPrompt},
	})
	if err != nil {
		return nil, err
	}

	var parsed leadScoreResponse
	if err := json.Unmarshal([]byte(extractJSON(completion.Content)), &parsed); err != nil {
		log.Warnf("failed to parse lead score response, defaulting to zero: %v", err)
		return &models.LeadScoreAnalysis{Factors: map[string]int{}}, nil
	}

	factors := parsed.Factors
	if factors == nil {
		factors = map[string]int{}
	}
	return &models.LeadScoreAnalysis{
		Score:    parsed.Score,
		Factors:  factors,
		Verified: parsed.VerifiedName,
	}, nil
}

// extractJSON trims chatty framing around a JSON object, if any.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}
