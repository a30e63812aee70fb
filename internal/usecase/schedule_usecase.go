package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"uniai/internal/domain"
	"uniai/internal/infra/metrics"
)

const (
	scheduleModel       = "deepseek-chat"
	scheduleTemperature = 0.3
	scheduleMaxTokens   = 1500
)

// ScheduleUsecase turns a schedule request into an optimized schedule by
// delegating the actual planning to the LLM and recovering a structured
// result from its reply.
type ScheduleUsecase interface {
	Execute(ctx context.Context, req domain.ScheduleRequest) (*domain.ScheduleResult, error)
	Sample() *domain.ScheduleResult
}

type scheduleUsecase struct {
	llmClient  domain.LLMClient
	prompts    SchedulePromptBuilder
	recoverer  OutputRecoverer
	normalizer ScheduleNormalizer
	retry      RetryPolicy
	logger     *slog.Logger
}

func NewScheduleUsecase(llmClient domain.LLMClient, retry RetryPolicy, logger *slog.Logger) ScheduleUsecase {
	return &scheduleUsecase{
		llmClient:  llmClient,
		prompts:    NewSchedulePromptBuilder(),
		recoverer:  NewOutputRecoverer(),
		normalizer: NewScheduleNormalizer(),
		retry:      retry,
		logger:     logger,
	}
}

func (u *scheduleUsecase) Execute(ctx context.Context, req domain.ScheduleRequest) (*domain.ScheduleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var prompt string
	var err error
	if strings.TrimSpace(req.Prompt) != "" {
		prompt, err = u.prompts.BuildPlanningPrompt(req.Prompt, req.UserPreferences, req.Constraints)
	} else {
		normalized := u.normalizer.AssignTimestamps(req.Events)
		prompt, err = u.prompts.BuildOptimizationPrompt(normalized, req.UserPreferences, req.Constraints)
	}
	if err != nil {
		return nil, domain.NewProviderError(u.llmClient.Provider(), err)
	}

	result, err := retryCompletion(ctx, u.retry, u.llmClient.Provider(), u.logger, func(ctx context.Context) (*domain.ScheduleResult, error) {
		reply, err := u.llmClient.Complete(ctx, domain.CompletionRequest{
			Model:       scheduleModel,
			Prompt:      prompt,
			Temperature: scheduleTemperature,
			MaxTokens:   scheduleMaxTokens,
		})
		if err != nil {
			return nil, err
		}
		recovered, err := u.recoverer.Recover(reply.Content)
		if err != nil {
			metrics.RecoveryFailures.Inc()
			return nil, err
		}
		return recovered, nil
	})
	if err != nil {
		return nil, err
	}

	result.Events = u.normalizer.AssignTimestamps(result.Events)

	u.logger.Info("schedule request served",
		"request_id", req.RequestID,
		"total_events", result.TotalEvents,
		"estimated_total_time", result.EstimatedTotalTime,
	)
	return result, nil
}

// Sample returns a static example schedule. It never touches the provider.
func (u *scheduleUsecase) Sample() *domain.ScheduleResult {
	morning := domain.TimeOfDayMorning
	return &domain.ScheduleResult{
		Events: []domain.Event{
			{
				Title:         "Algorithm fundamentals review",
				Description:   "Review core data structures: arrays, linked lists, stacks, and queues",
				Duration:      120,
				Priority:      domain.PriorityHigh,
				Category:      "study",
				SuggestedTime: &morning,
				StartDate:     time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
				EndDate:       time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC),
			},
			{
				Title:       "LeetCode practice",
				Description: "Solve ten medium problems with a focus on dynamic programming",
				Duration:    90,
				Priority:    domain.PriorityHigh,
				Category:    "study",
				StartDate:   time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2025, 1, 15, 15, 30, 0, 0, time.UTC),
			},
		},
		TotalEvents:        2,
		EstimatedTotalTime: 210,
	}
}
