package domain

import "context"

// CompletionRequest carries one prompt exchange to the provider. A non-empty
// SystemPrompt becomes a leading system message.
type CompletionRequest struct {
	Model        string
	Prompt       string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// TokenUsage mirrors the provider's usage accounting.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderReply is the raw LLM output plus usage metadata.
type ProviderReply struct {
	Content string
	Usage   TokenUsage
	Model   string
}

// LLMClient defines the capability to send one completion request to the
// external model endpoint. Implementations do not retry; retries belong to
// the caller.
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*ProviderReply, error)
	Provider() string
}
