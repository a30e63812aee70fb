package usecase

import (
	"time"

	"uniai/internal/domain"
)

const (
	// anchorHour is the start-of-day anchor for synthetic timestamps.
	anchorHour = 9
	// eventGap separates consecutive synthesized events.
	eventGap = 15 * time.Minute
)

// ScheduleNormalizer assigns synthetic timestamps to events that arrived
// without explicit start/end dates. It is a pure transformation; the clock
// is injectable for tests.
type ScheduleNormalizer struct {
	now func() time.Time
}

func NewScheduleNormalizer() ScheduleNormalizer {
	return ScheduleNormalizer{now: time.Now}
}

// AssignTimestamps places events lacking explicit timestamps back-to-back
// from the 09:00 anchor of the current day, with a 15-minute gap between
// consecutive events. Events that already carry both timestamps are kept
// as-is and advance the cursor past their own end.
func (n ScheduleNormalizer) AssignTimestamps(events []domain.Event) []domain.Event {
	now := n.now()
	cursor := time.Date(now.Year(), now.Month(), now.Day(), anchorHour, 0, 0, 0, now.Location())

	out := make([]domain.Event, len(events))
	for i, event := range events {
		if event.StartDate.IsZero() || event.EndDate.IsZero() {
			event.StartDate = cursor
			event.EndDate = cursor.Add(time.Duration(event.Duration) * time.Minute)
		}
		cursor = event.EndDate.Add(eventGap)
		out[i] = event
	}
	return out
}
