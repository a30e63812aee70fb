package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"uniai/internal/domain"
	"uniai/internal/usecase"
)

const (
	defaultChatTemperature = 0.7
	defaultChatMaxTokens   = 100
)

type Handler struct {
	chatUsecase     usecase.ChatUsecase
	scheduleUsecase usecase.ScheduleUsecase
	version         string
	logger          *slog.Logger
}

func NewHandler(
	chatUsecase usecase.ChatUsecase,
	scheduleUsecase usecase.ScheduleUsecase,
	version string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		chatUsecase:     chatUsecase,
		scheduleUsecase: scheduleUsecase,
		version:         version,
		logger:          logger,
	}
}

// Register attaches all routes to the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/chat/completions", h.ChatCompletions)
	v1.POST("/schedule", h.Schedule)
	v1.GET("/schedule/sample", h.ScheduleSample)
	e.GET("/health", h.Health)
}

type chatParameters struct {
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
	PromptID    string   `json:"prompt_id"`
}

type chatUserInfo struct {
	UserID   string `json:"user_id"`
	UserRole string `json:"user_role"`
}

type chatRequest struct {
	Model      string         `json:"model"`
	Parameters chatParameters `json:"parameters"`
	UserInfo   chatUserInfo   `json:"user_info"`
	RequestID  string         `json:"request_id"`
}

type scheduleRequest struct {
	Prompt             string         `json:"prompt"`
	Events             []domain.Event `json:"events"`
	TotalEvents        *int           `json:"total_events"`
	EstimatedTotalTime *int           `json:"estimated_total_time"`
	UserPreferences    map[string]any `json:"user_preferences"`
	Constraints        map[string]any `json:"constraints"`
	RequestID          string         `json:"request_id"`
}

// ChatCompletions handles POST /api/v1/chat/completions.
func (h *Handler) ChatCompletions(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, req.RequestID, domain.NewValidationError("invalid request body"))
	}
	requestID := ensureRequestID(req.RequestID)

	input := usecase.ChatInput{
		Model:       req.Model,
		Prompt:      req.Parameters.Prompt,
		Temperature: defaultChatTemperature,
		MaxTokens:   defaultChatMaxTokens,
		PromptID:    req.Parameters.PromptID,
		UserID:      req.UserInfo.UserID,
		UserRole:    req.UserInfo.UserRole,
	}
	if req.Parameters.Temperature != nil {
		input.Temperature = *req.Parameters.Temperature
	}
	if req.Parameters.MaxTokens != nil {
		input.MaxTokens = *req.Parameters.MaxTokens
	}

	output, err := h.chatUsecase.Execute(c.Request().Context(), input)
	if err != nil {
		return h.fail(c, requestID, err)
	}
	return c.JSON(http.StatusOK, successEnvelope(requestID, output))
}

// Schedule handles POST /api/v1/schedule for both prompt and structured
// input.
func (h *Handler) Schedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, req.RequestID, domain.NewValidationError("invalid request body"))
	}
	requestID := ensureRequestID(req.RequestID)

	result, err := h.scheduleUsecase.Execute(c.Request().Context(), domain.ScheduleRequest{
		Prompt:             req.Prompt,
		Events:             req.Events,
		TotalEvents:        req.TotalEvents,
		EstimatedTotalTime: req.EstimatedTotalTime,
		UserPreferences:    req.UserPreferences,
		Constraints:        req.Constraints,
		RequestID:          requestID,
	})
	if err != nil {
		return h.fail(c, requestID, err)
	}
	return c.JSON(http.StatusOK, successEnvelope(requestID, result))
}

// ScheduleSample handles GET /api/v1/schedule/sample. The payload is static
// and the call has no side effects.
func (h *Handler) ScheduleSample(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduleUsecase.Sample())
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
	})
}

// fail translates a domain error into the error envelope. Anything that is
// not a *domain.Error is logged in full and surfaced as a generic 500.
func (h *Handler) fail(c echo.Context, requestID string, err error) error {
	requestID = ensureRequestID(requestID)

	var domErr *domain.Error
	if errors.As(err, &domErr) {
		if domErr.Status >= 500 {
			h.logger.Error("request failed", "kind", domErr.Kind, "request_id", requestID, "error", err)
		} else {
			h.logger.Warn("request rejected", "kind", domErr.Kind, "request_id", requestID, "error", err)
		}
		return c.JSON(domErr.Status, errorEnvelope(domErr.Status, domErr.Message, requestID))
	}

	h.logger.Error("unexpected error", "request_id", requestID, "error", err)
	return c.JSON(http.StatusInternalServerError, errorEnvelope(http.StatusInternalServerError, "Internal server error", requestID))
}

func ensureRequestID(requestID string) string {
	if requestID == "" {
		return uuid.NewString()
	}
	return requestID
}
