package usecase

import (
	"context"
	"log/slog"
	"strings"

	"uniai/internal/domain"
	"uniai/internal/infra/config"
)

const (
	minTemperature = 0.0
	maxTemperature = 2.0
	minMaxTokens   = 1
	maxMaxTokens   = 5000
)

// ChatInput carries a validated-shape chat completion request.
type ChatInput struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
	PromptID    string
	UserID      string
	UserRole    string
}

// ModelInfo identifies which model produced a chat result.
type ModelInfo struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Version  string `json:"version"`
}

// ChatOutput is the data section of a successful chat envelope.
type ChatOutput struct {
	Result    string            `json:"result"`
	ModelInfo ModelInfo         `json:"model_info"`
	Usage     domain.TokenUsage `json:"usage"`
}

// ChatUsecase forwards a chat completion to the provider after checking the
// model allow-list and resolving the scene's system prompt.
type ChatUsecase interface {
	Execute(ctx context.Context, input ChatInput) (*ChatOutput, error)
}

type chatUsecase struct {
	llmClient domain.LLMClient
	cfg       *config.Config
	logger    *slog.Logger
}

func NewChatUsecase(llmClient domain.LLMClient, cfg *config.Config, logger *slog.Logger) ChatUsecase {
	return &chatUsecase{
		llmClient: llmClient,
		cfg:       cfg,
		logger:    logger,
	}
}

func (u *chatUsecase) Execute(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	if !u.cfg.IsModelSupported(input.Model) {
		return nil, domain.NewModelNotSupportedError(input.Model)
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return nil, domain.NewValidationError("prompt is required")
	}
	if input.Temperature < minTemperature || input.Temperature > maxTemperature {
		return nil, domain.NewValidationError("temperature must be between %.1f and %.1f", minTemperature, maxTemperature)
	}
	if input.MaxTokens < minMaxTokens || input.MaxTokens > maxMaxTokens {
		return nil, domain.NewValidationError("max_tokens must be between %d and %d", minMaxTokens, maxMaxTokens)
	}

	systemPrompt := ""
	if input.PromptID != "" {
		prompt, ok := u.cfg.GetPrompt(input.PromptID)
		if !ok {
			return nil, domain.NewSceneNotFoundError(input.PromptID)
		}
		systemPrompt = prompt
	}

	reply, err := u.llmClient.Complete(ctx, domain.CompletionRequest{
		Model:        input.Model,
		Prompt:       input.Prompt,
		SystemPrompt: systemPrompt,
		Temperature:  input.Temperature,
		MaxTokens:    input.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("chat completion served",
		"model", input.Model,
		"user_id", input.UserID,
		"total_tokens", reply.Usage.TotalTokens,
	)

	return &ChatOutput{
		Result: reply.Content,
		ModelInfo: ModelInfo{
			Name:     input.Model,
			Provider: u.llmClient.Provider(),
			Version:  reply.Model,
		},
		Usage: reply.Usage,
	}, nil
}
