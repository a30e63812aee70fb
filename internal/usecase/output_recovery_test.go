package usecase

import (
	"testing"
	"time"

	"uniai/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedReply = `Here is the plan:
` + "```json" + `
{
  "events": [
    {
      "title": "Deep work",
      "description": "Focus block for the project",
      "duration": 120,
      "priority": "high",
      "category": "work",
      "suggested_time": "morning"
    }
  ],
  "total_events": 1,
  "estimated_total_time": 150
}
` + "```" + `
Enjoy!`

func TestOutputRecoverer_TolerantExtraction(t *testing.T) {
	recoverer := NewOutputRecoverer()

	result, err := recoverer.Recover("Here is the plan:\n```json\n{\"events\":[]}\n```\nEnjoy!")
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	assert.Equal(t, 0, result.TotalEvents)
}

func TestOutputRecoverer_WellFormedReply(t *testing.T) {
	recoverer := NewOutputRecoverer()

	result, err := recoverer.Recover(wellFormedReply)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)

	event := result.Events[0]
	assert.Equal(t, "Deep work", event.Title)
	assert.Equal(t, 120, event.Duration)
	assert.Equal(t, domain.PriorityHigh, event.Priority)
	assert.Equal(t, "work", event.Category)
	require.NotNil(t, event.SuggestedTime)
	assert.Equal(t, domain.TimeOfDayMorning, *event.SuggestedTime)
	assert.Equal(t, 1, result.TotalEvents)
	assert.Equal(t, 150, result.EstimatedTotalTime)
}

func TestOutputRecoverer_Idempotent(t *testing.T) {
	recoverer := NewOutputRecoverer()

	first, err := recoverer.Recover(wellFormedReply)
	require.NoError(t, err)
	second, err := recoverer.Recover(wellFormedReply)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOutputRecoverer_StrayBracesAfterPayload(t *testing.T) {
	recoverer := NewOutputRecoverer()

	// Prose after the payload contains an unrelated {...} block; the
	// balanced scan must stop at the real object.
	raw := `{"events":[{"title":"a","description":"b","duration":30}]} and by the way {"note":"ignore me"}`
	result, err := recoverer.Recover(raw)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "a", result.Events[0].Title)
}

func TestOutputRecoverer_BracesInsideStrings(t *testing.T) {
	recoverer := NewOutputRecoverer()

	raw := `{"events":[{"title":"use {curly} braces","description":"d","duration":10}]}`
	result, err := recoverer.Recover(raw)
	require.NoError(t, err)
	assert.Equal(t, "use {curly} braces", result.Events[0].Title)
}

func TestOutputRecoverer_RecoverableDefaults(t *testing.T) {
	recoverer := NewOutputRecoverer()

	raw := `{"events":[{"description":"no title here","duration":45}]}`
	result, err := recoverer.Recover(raw)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)

	event := result.Events[0]
	assert.Equal(t, "Untitled event", event.Title)
	assert.Equal(t, domain.PriorityMedium, event.Priority)
	assert.Equal(t, "other", event.Category)
	assert.Nil(t, event.SuggestedTime)
}

func TestOutputRecoverer_EstimatedTimeNeverBelowSum(t *testing.T) {
	recoverer := NewOutputRecoverer()

	raw := `{"events":[
		{"title":"a","description":"d","duration":120},
		{"title":"b","description":"d","duration":90}
	],"estimated_total_time":10}`
	result, err := recoverer.Recover(raw)
	require.NoError(t, err)
	assert.Equal(t, 210, result.EstimatedTotalTime)
}

func TestOutputRecoverer_DateParsing(t *testing.T) {
	recoverer := NewOutputRecoverer()

	raw := `{"events":[{"title":"a","description":"d","duration":60,
		"start_date":"2025-01-15T09:00:00Z","end_date":"2025-01-15T10:00:00"}]}`
	result, err := recoverer.Recover(raw)
	require.NoError(t, err)

	event := result.Events[0]
	assert.Equal(t, time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), event.StartDate)
	assert.Equal(t, 10, event.EndDate.Hour())
}

func TestOutputRecoverer_Failures(t *testing.T) {
	recoverer := NewOutputRecoverer()

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "no braces at all",
			raw:     "I could not produce a schedule, sorry.",
			wantErr: "no valid JSON object",
		},
		{
			name:    "unbalanced object",
			raw:     `{"events":[`,
			wantErr: "no valid JSON object",
		},
		{
			name:    "missing events field",
			raw:     `{"total_events":2}`,
			wantErr: "missing 'events'",
		},
		{
			name:    "missing duration",
			raw:     `{"events":[{"title":"a","description":"d"}]}`,
			wantErr: "missing required field: duration",
		},
		{
			name:    "non-positive duration",
			raw:     `{"events":[{"title":"a","description":"d","duration":0}]}`,
			wantErr: "non-positive duration",
		},
		{
			name:    "missing description",
			raw:     `{"events":[{"title":"a","duration":30}]}`,
			wantErr: "missing required field: description",
		},
		{
			name:    "unparsable date",
			raw:     `{"events":[{"title":"a","description":"d","duration":30,"start_date":"tomorrow-ish"}]}`,
			wantErr: "unparsable start_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := recoverer.Recover(tt.raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var domErr *domain.Error
			require.ErrorAs(t, err, &domErr)
			assert.Equal(t, domain.KindMalformedOutput, domErr.Kind)
			assert.Equal(t, 500, domErr.Status)
		})
	}
}
