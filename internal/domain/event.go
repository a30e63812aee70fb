package domain

import "time"

// Priority ranks an event's importance. Only the three listed values are
// accepted on input.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TimeOfDay is the coarse slot the model may suggest for an event.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
)

func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return true
	}
	return false
}

// Event is one schedulable activity. Duration is in minutes and EndDate is
// always StartDate plus Duration once timestamps are assigned.
type Event struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Duration      int        `json:"duration"`
	Priority      Priority   `json:"priority"`
	Category      string     `json:"category"`
	SuggestedTime *TimeOfDay `json:"suggested_time,omitempty"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
}

func (e Event) Validate() error {
	if e.Duration <= 0 {
		return NewValidationError("event '%s': duration must be positive", e.Title)
	}
	if !e.Priority.Valid() {
		return NewValidationError("event '%s': priority must be one of: high, medium, low", e.Title)
	}
	if e.SuggestedTime != nil && !e.SuggestedTime.Valid() {
		return NewValidationError("event '%s': suggested_time must be one of: morning, afternoon, evening", e.Title)
	}
	return nil
}
