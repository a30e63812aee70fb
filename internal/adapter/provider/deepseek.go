package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"uniai/internal/domain"
	"uniai/internal/infra/httpclient"
	"uniai/internal/infra/metrics"
)

// Name identifies the provider in error messages and metrics labels.
const Name = "deepseek"

const completionsPath = "/v1/chat/completions"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Model string `json:"model"`
}

// DeepSeekClient performs one completion round trip against a
// DeepSeek-compatible chat endpoint. It never retries; retry policy lives in
// the usecase layer.
type DeepSeekClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewDeepSeekClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *DeepSeekClient {
	return &DeepSeekClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpclient.NewPooledClient(timeout),
		logger:  logger,
	}
}

// Complete sends the optional system message plus the user message and
// returns the assistant reply with usage metadata.
func (c *DeepSeekClient) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.ProviderReply, error) {
	if c.apiKey == "" {
		return nil, domain.NewProviderError(Name, errors.New("API key not found"))
	}

	messages := make([]chatMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	payload, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, domain.NewProviderError(Name, fmt.Errorf("failed to marshal chat request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewProviderError(Name, fmt.Errorf("failed to create chat request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(Name, "transport").Observe(time.Since(start).Seconds())
		return nil, domain.NewProviderError(Name, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ProviderRequestDuration.WithLabelValues(Name, "status").Observe(time.Since(start).Seconds())
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, domain.NewProviderError(Name, fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(Name, "status").Observe(time.Since(start).Seconds())
		return nil, domain.NewProviderError(Name, fmt.Errorf("failed to decode completion response: %w", err))
	}
	if len(chatResp.Choices) == 0 {
		metrics.ProviderRequestDuration.WithLabelValues(Name, "status").Observe(time.Since(start).Seconds())
		return nil, domain.NewProviderError(Name, errors.New("invalid response format: missing choices"))
	}
	metrics.ProviderRequestDuration.WithLabelValues(Name, "success").Observe(time.Since(start).Seconds())

	model := chatResp.Model
	if model == "" {
		model = req.Model
	}
	c.logger.Debug("completion received",
		"model", model,
		"prompt_tokens", chatResp.Usage.PromptTokens,
		"completion_tokens", chatResp.Usage.CompletionTokens,
	)

	return &domain.ProviderReply{
		Content: chatResp.Choices[0].Message.Content,
		Usage: domain.TokenUsage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:      chatResp.Usage.TotalTokens,
		},
		Model: model,
	}, nil
}

// Provider returns the provider name used in error messages.
func (c *DeepSeekClient) Provider() string {
	return Name
}

var _ domain.LLMClient = (*DeepSeekClient)(nil)
