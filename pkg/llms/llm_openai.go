package llms

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/pkg/models"
)

const OpenAIAPITimeout = 60 * time.Second
const OpenAIAPIKeyNotSetError = "FRIDAY_OPENAI_API_KEY is not set" //nolint:gosec

var _ models.FridayLLM = &FridayOpenAILLM{}

func NewOpenAILLM(ctx context.Context, cfg *config.Config) (*FridayOpenAILLM, error) {
	fllm := &FridayOpenAILLM{}
	err := fllm.Init(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return fllm, nil
}

type FridayOpenAILLM struct {
	llm   *openai.Chat
	model string
}

func (fllm *FridayOpenAILLM) Init(_ context.Context, cfg *config.Config) error {
	options, err := fllm.configureClient(cfg)
	if err != nil {
		return err
	}

	llm, err := openai.NewChat(options...)
	if err != nil {
		return err
	}
	fllm.llm = llm
	fllm.model = cfg.LLM.Model

	return nil
}

func (fllm *FridayOpenAILLM) Chat(
	ctx context.Context,
	messages []models.Message,
) (*models.ChatCompletion, error) {
	// If the LLM is not initialized, return an error
	if fllm.llm == nil {
		return nil, NewLLMError(InvalidLLMModelError, nil)
	}

	thisCtx, cancel := context.WithTimeout(ctx, OpenAIAPITimeout)
	defer cancel()

	chatMessages := make([]schema.ChatMessage, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case models.RoleSystem:
			chatMessages = append(chatMessages, schema.SystemChatMessage{Content: message.Content})
		case models.RoleAssistant:
			chatMessages = append(chatMessages, schema.AIChatMessage{Content: message.Content})
		default:
			chatMessages = append(chatMessages, schema.HumanChatMessage{Content: message.Content})
		}
	}

	completion, err := fllm.llm.Call(
		thisCtx,
		chatMessages,
		llms.WithTemperature(DefaultTemperature),
	)
	if err != nil {
		return nil, err
	}

	return &models.ChatCompletion{
		Content: completion.GetContent(),
		Model:   fllm.model,
	}, nil
}

func (fllm *FridayOpenAILLM) configureClient(cfg *config.Config) ([]openai.Option, error) {
	apiKey := cfg.LLM.OpenAIAPIKey
	// If the key is not set, log a fatal error and exit
	if apiKey == "" {
		log.Fatal(OpenAIAPIKeyNotSetError)
	}

	options := make([]openai.Option, 0)
	options = append(
		options,
		openai.WithModel(cfg.LLM.Model),
		openai.WithToken(apiKey),
	)
	if cfg.LLM.OpenAIEndpoint != "" {
		options = append(options, openai.WithBaseURL(cfg.LLM.OpenAIEndpoint))
	}
	if cfg.LLM.OpenAIOrgID != "" {
		options = append(options, openai.WithOrganization(cfg.LLM.OpenAIOrgID))
	}

	return options, nil
}
