package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"uniai/internal/domain"
	"uniai/internal/infra/config"
	"uniai/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLMClient struct {
	reply      *domain.ProviderReply
	err        error
	lastReq    domain.CompletionRequest
	callCount  int
	replyQueue []func() (*domain.ProviderReply, error)
}

func (s *stubLLMClient) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.ProviderReply, error) {
	s.lastReq = req
	s.callCount++
	if len(s.replyQueue) > 0 {
		fn := s.replyQueue[0]
		s.replyQueue = s.replyQueue[1:]
		return fn()
	}
	return s.reply, s.err
}

func (s *stubLLMClient) Provider() string { return "deepseek" }

func chatConfig() *config.Config {
	return &config.Config{
		SupportedModels: []string{"deepseek-chat"},
		SystemPrompts:   map[string]string{"customer_support": "You are a support agent."},
	}
}

func validChatInput() usecase.ChatInput {
	return usecase.ChatInput{
		Model:       "deepseek-chat",
		Prompt:      "Hello",
		Temperature: 0.7,
		MaxTokens:   100,
		UserID:      "u1",
		UserRole:    "member",
	}
}

func TestChatUsecase_Success(t *testing.T) {
	client := &stubLLMClient{reply: &domain.ProviderReply{
		Content: "Hi there!",
		Usage:   domain.TokenUsage{PromptTokens: 3, CompletionTokens: 5, TotalTokens: 8},
		Model:   "deepseek-chat-v2",
	}}
	uc := usecase.NewChatUsecase(client, chatConfig(), slog.Default())

	output, err := uc.Execute(context.Background(), validChatInput())
	require.NoError(t, err)

	assert.Equal(t, "Hi there!", output.Result)
	assert.Equal(t, "deepseek-chat", output.ModelInfo.Name)
	assert.Equal(t, "deepseek", output.ModelInfo.Provider)
	assert.Equal(t, "deepseek-chat-v2", output.ModelInfo.Version)
	assert.Equal(t, 8, output.Usage.TotalTokens)
	assert.Empty(t, client.lastReq.SystemPrompt)
}

func TestChatUsecase_ResolvesScenePrompt(t *testing.T) {
	client := &stubLLMClient{reply: &domain.ProviderReply{Content: "ok"}}
	uc := usecase.NewChatUsecase(client, chatConfig(), slog.Default())

	input := validChatInput()
	input.PromptID = "customer_support"
	_, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "You are a support agent.", client.lastReq.SystemPrompt)
}

func TestChatUsecase_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*usecase.ChatInput)
		wantKind domain.ErrorKind
		wantMsg  string
	}{
		{
			name:     "unsupported model",
			mutate:   func(in *usecase.ChatInput) { in.Model = "gpt-4" },
			wantKind: domain.KindModelNotSupported,
			wantMsg:  "Model 'gpt-4' is not supported",
		},
		{
			name:     "unknown scene",
			mutate:   func(in *usecase.ChatInput) { in.PromptID = "nope" },
			wantKind: domain.KindSceneNotFound,
			wantMsg:  "Scene 'nope' not found",
		},
		{
			name:     "empty prompt",
			mutate:   func(in *usecase.ChatInput) { in.Prompt = "  " },
			wantKind: domain.KindValidation,
			wantMsg:  "prompt is required",
		},
		{
			name:     "temperature too high",
			mutate:   func(in *usecase.ChatInput) { in.Temperature = 2.5 },
			wantKind: domain.KindValidation,
			wantMsg:  "temperature must be between",
		},
		{
			name:     "max_tokens too large",
			mutate:   func(in *usecase.ChatInput) { in.MaxTokens = 9000 },
			wantKind: domain.KindValidation,
			wantMsg:  "max_tokens must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubLLMClient{reply: &domain.ProviderReply{Content: "ok"}}
			uc := usecase.NewChatUsecase(client, chatConfig(), slog.Default())

			input := validChatInput()
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			require.Error(t, err)

			var domErr *domain.Error
			require.ErrorAs(t, err, &domErr)
			assert.Equal(t, tt.wantKind, domErr.Kind)
			assert.Equal(t, 400, domErr.Status)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Zero(t, client.callCount, "provider must not be called on validation failure")
		})
	}
}

func TestChatUsecase_PropagatesProviderError(t *testing.T) {
	client := &stubLLMClient{err: domain.NewProviderError("deepseek", errors.New("request failed"))}
	uc := usecase.NewChatUsecase(client, chatConfig(), slog.Default())

	_, err := uc.Execute(context.Background(), validChatInput())
	require.Error(t, err)

	var domErr *domain.Error
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domain.KindProvider, domErr.Kind)
	assert.Equal(t, 500, domErr.Status)
	assert.Equal(t, 1, client.callCount, "chat calls are not retried")
}
