package llms

import (
	"context"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

const AnthropicAPITimeout = 60 * time.Second
const AnthropicAPIKeyNotSetError = "FRIDAY_ANTHROPIC_API_KEY is not set" //nolint:gosec

var _ models.FridayLLM = &FridayAnthropicLLM{}

func NewAnthropicLLM(ctx context.Context, cfg *config.Config) (*FridayAnthropicLLM, error) {
	fllm := &FridayAnthropicLLM{}
	err := fllm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return fllm, nil
}

type FridayAnthropicLLM struct {
	client *anthropic.LLM
	model  string
}

func (fllm *FridayAnthropicLLM) Init(_ context.Context, cfg *config.Config) error {
	options, err := fllm.configureClient(cfg)
	if err != nil {
		return err
	}

	llm, err := anthropic.New(options...)
	if err != nil {
		return err
	}
	fllm.client = llm
	fllm.model = cfg.LLM.Model

	return nil
}

func (fllm *FridayAnthropicLLM) Chat(
	ctx context.Context,
	messages []models.Message,
) (*models.ChatCompletion, error) {
	// If the LLM is not initialized, return an error
	if fllm.client == nil {
		return nil, NewLLMError(InvalidLLMModelError, nil)
	}

	thisCtx, cancel := context.WithTimeout(ctx, AnthropicAPITimeout)
	defer cancel()

	completion, err := fllm.client.Call(
		thisCtx,
		promptFromMessages(messages),
		llms.WithTemperature(DefaultTemperature),
	)
	if err != nil {
		return nil, err
	}

	return &models.ChatCompletion{
		Content: completion,
		Model:   fllm.model,
	}, nil
}

// promptFromMessages flattens a chat transcript into the Human/Assistant
// prompt format the completion endpoint expects.
func promptFromMessages(messages []models.Message) string {
	var prompt strings.Builder
	for _, message := range messages {
		switch message.Role {
		case models.RoleAssistant:
			prompt.WriteString("Assistant: ")
		default:
			// system instructions ride in the first Human turn
			prompt.WriteString("Human: ")
		}
		prompt.WriteString(message.Content)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("Assistant:")
	return prompt.String()
}

func (fllm *FridayAnthropicLLM) configureClient(cfg *config.Config) ([]anthropic.Option, error) {
	apiKey := cfg.LLM.AnthropicAPIKey
	// If the key is not set, log a fatal error and exit
	if apiKey == "" {
		log.Fatal(AnthropicAPIKeyNotSetError)
	}

	options := make([]anthropic.Option, 0)
	options = append(
		options,
		anthropic.WithModel(cfg.LLM.Model),
		anthropic.WithToken(apiKey),
	)

	return options, nil
}
