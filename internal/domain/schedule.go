package domain

import "strings"

// ScheduleRequest is the caller's raw ask: a free-text prompt or a
// structured event list, never both. Preferences and constraints are opaque
// pass-through maps interpolated into the prompt.
type ScheduleRequest struct {
	Prompt             string
	Events             []Event
	TotalEvents        *int
	EstimatedTotalTime *int
	UserPreferences    map[string]any
	Constraints        map[string]any
	RequestID          string
}

// Validate enforces the mutual-exclusivity and per-event invariants. It is
// called exactly once per inbound request.
func (r *ScheduleRequest) Validate() error {
	hasPrompt := strings.TrimSpace(r.Prompt) != ""
	hasEvents := len(r.Events) > 0

	if hasPrompt && hasEvents {
		return NewValidationError("cannot provide both 'prompt' and 'events', choose one input method")
	}
	if !hasPrompt && !hasEvents {
		return NewValidationError("either 'prompt' or 'events' must be provided")
	}
	if hasEvents {
		if r.TotalEvents != nil && *r.TotalEvents != len(r.Events) {
			return NewValidationError("total_events count doesn't match events list length")
		}
		for _, e := range r.Events {
			if err := e.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ScheduleResult is the normalized schedule handed back to the caller.
// TotalEvents always equals len(Events) and EstimatedTotalTime is never
// below the sum of event durations.
type ScheduleResult struct {
	Events             []Event `json:"events"`
	TotalEvents        int     `json:"total_events"`
	EstimatedTotalTime int     `json:"estimated_total_time"`
}
