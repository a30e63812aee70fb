package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"uniai/internal/domain"
)

// OutputRecoverer extracts the JSON object embedded in a raw model reply and
// validates it into a schedule result. Models routinely wrap their JSON in
// prose or markdown fences, so extraction must tolerate surrounding text.
type OutputRecoverer struct{}

func NewOutputRecoverer() OutputRecoverer {
	return OutputRecoverer{}
}

// rawEvent mirrors the event shape the prompt format section asks the model
// for. Pointers distinguish absent fields from zero values so the per-field
// repair policy can apply.
type rawEvent struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Duration      *int    `json:"duration"`
	Priority      *string `json:"priority"`
	Category      *string `json:"category"`
	SuggestedTime *string `json:"suggested_time"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
}

type rawSchedule struct {
	Events             []rawEvent `json:"events"`
	TotalEvents        *int       `json:"total_events"`
	EstimatedTotalTime *int       `json:"estimated_total_time"`
}

// Recover parses the model reply into a ScheduleResult. Events without
// timestamps are left with zero times; the normalizer assigns them later.
func (r OutputRecoverer) Recover(raw string) (*domain.ScheduleResult, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var decoded rawSchedule
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, domain.NewMalformedOutputError("failed to parse model response: %v", err)
	}
	if decoded.Events == nil {
		return nil, domain.NewMalformedOutputError("model response missing 'events' field")
	}

	events := make([]domain.Event, 0, len(decoded.Events))
	totalDuration := 0
	for i, re := range decoded.Events {
		event, err := re.toEvent(i)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
		totalDuration += event.Duration
	}

	estimated := totalDuration
	if decoded.EstimatedTotalTime != nil && *decoded.EstimatedTotalTime > totalDuration {
		estimated = *decoded.EstimatedTotalTime
	}

	return &domain.ScheduleResult{
		Events:             events,
		TotalEvents:        len(events),
		EstimatedTotalTime: estimated,
	}, nil
}

func (re rawEvent) toEvent(index int) (domain.Event, error) {
	var event domain.Event

	if re.Duration == nil {
		return event, domain.NewMalformedOutputError("event %d missing required field: duration", index)
	}
	if *re.Duration <= 0 {
		return event, domain.NewMalformedOutputError("event %d has non-positive duration", index)
	}
	if re.Description == nil {
		return event, domain.NewMalformedOutputError("event %d missing required field: description", index)
	}

	event.Duration = *re.Duration
	event.Description = *re.Description

	// Recoverable-default fields.
	event.Title = "Untitled event"
	if re.Title != nil && strings.TrimSpace(*re.Title) != "" {
		event.Title = *re.Title
	}
	event.Priority = domain.PriorityMedium
	if re.Priority != nil && domain.Priority(*re.Priority).Valid() {
		event.Priority = domain.Priority(*re.Priority)
	}
	event.Category = "other"
	if re.Category != nil && strings.TrimSpace(*re.Category) != "" {
		event.Category = *re.Category
	}
	if re.SuggestedTime != nil {
		if slot := domain.TimeOfDay(*re.SuggestedTime); slot.Valid() {
			event.SuggestedTime = &slot
		}
	}

	if re.StartDate != nil {
		parsed, err := parseEventDate(*re.StartDate)
		if err != nil {
			return event, domain.NewMalformedOutputError("event %d has unparsable start_date '%s'", index, *re.StartDate)
		}
		event.StartDate = parsed
	}
	if re.EndDate != nil {
		parsed, err := parseEventDate(*re.EndDate)
		if err != nil {
			return event, domain.NewMalformedOutputError("event %d has unparsable end_date '%s'", index, *re.EndDate)
		}
		event.EndDate = parsed
	}

	return event, nil
}

// parseEventDate accepts ISO-8601 with or without an offset. A trailing Z is
// UTC per RFC 3339.
func parseEventDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

// extractJSONObject returns the first syntactically balanced JSON object in
// text. Depth is tracked with JSON string awareness instead of slicing
// between the first '{' and the last '}', so stray braces in trailing prose
// cannot corrupt the payload.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	for start != -1 {
		if candidate, ok := scanBalancedObject(text[start:]); ok && json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next == -1 {
			break
		}
		start += 1 + next
	}
	return "", domain.NewMalformedOutputError("no valid JSON object found in model response")
}

func scanBalancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
