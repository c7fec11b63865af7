package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLeadScore(t *testing.T) {
	llm := &fakeLLM{
		reply: `{"score": 75, "factors": {"urgency": 20, "business_email": 15}, "verified_name": true}`,
	}

	analysis, err := AnalyzeLeadScore(context.Background(), llm, LeadScoreInput{
		SenderName:   "Peter Hansen",
		SenderEmail:  "peter@firma.dk",
		EmailContent: "Vi skal bruge rengøring hurtigst muligt",
	})
	require.NoError(t, err)

	assert.Equal(t, 75, analysis.Score)
	assert.Equal(t, 20, analysis.Factors["urgency"])
	assert.True(t, analysis.Verified)

	// the email content must reach the model
	require.Len(t, llm.received, 1)
	assert.Contains(t, llm.received[0][1].Content, "peter@firma.dk")
}

func TestAnalyzeLeadScoreChattyReply(t *testing.T) {
	llm := &fakeLLM{
		reply: "Here is the analysis:\n{\"score\": 40, \"factors\": {}, \"verified_name\": false}\nLet me know!",
	}

	analysis, err := AnalyzeLeadScore(context.Background(), llm, LeadScoreInput{})
	require.NoError(t, err)
	assert.Equal(t, 40, analysis.Score)
}

func TestAnalyzeLeadScoreUnparseableDefaultsToZero(t *testing.T) {
	llm := &fakeLLM{reply: "I cannot score this lead."}

	analysis, err := AnalyzeLeadScore(context.Background(), llm, LeadScoreInput{})
	require.NoError(t, err)

	assert.Zero(t, analysis.Score)
	assert.Empty(t, analysis.Factors)
	assert.NotNil(t, analysis.Factors)
	assert.False(t, analysis.Verified)
}
