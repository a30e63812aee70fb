package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"uniai/internal/domain"
)

// SchedulePromptBuilder renders the planning and optimization prompts sent
// to the LLM. Prompts separate instructions, format, and user input into
// tagged sections so the model cannot confuse caller text with directives.
type SchedulePromptBuilder struct{}

func NewSchedulePromptBuilder() SchedulePromptBuilder {
	return SchedulePromptBuilder{}
}

var scheduleFormatLines = []string{
	"JSON: {",
	`  "events": [`,
	"    {",
	`      "title": "event title (same language as the user input)",`,
	`      "description": "detailed description",`,
	`      "duration": 120,  // minutes, must be positive`,
	`      "priority": "high | medium | low",`,
	`      "category": "study | work | health | entertainment | personal | other",`,
	`      "suggested_time": "morning | afternoon | evening"`,
	"    }",
	"  ],",
	`  "total_events": 2,`,
	`  "estimated_total_time": 225  // minutes, including buffer time`,
	"}",
}

// BuildPlanningPrompt renders the prompt for free-text schedule requests.
func (b SchedulePromptBuilder) BuildPlanningPrompt(userPrompt string, preferences, constraints map[string]any) (string, error) {
	prefsJSON, err := marshalMap(preferences)
	if err != nil {
		return "", fmt.Errorf("failed to encode user preferences: %w", err)
	}
	constraintsJSON, err := marshalMap(constraints)
	if err != nil {
		return "", fmt.Errorf("failed to encode constraints: %w", err)
	}

	instructions := []string{
		"You are a professional schedule-planning assistant with a strong grasp of time management.",
		"1. Analyze the user's request in <query> and break it into concrete events.",
		"2. Assign priorities from importance and urgency, and a category to each event.",
		"3. Suggest the best time of day for each event based on its nature and typical energy curves.",
		"4. Keep durations realistic and reserve 15-20% buffer time in the total estimate.",
		"5. Respect the <preferences> and <constraints> sections.",
		"6. Reply in the same language the user wrote in.",
		"7. Return ONLY the JSON object described in <format>, with no surrounding commentary.",
	}

	var sb strings.Builder
	writeInstructionBlock(&sb, instructions)
	writeFormatBlock(&sb)

	sb.WriteString("<preferences>\n")
	sb.WriteString(prefsJSON)
	sb.WriteString("\n</preferences>\n\n")
	sb.WriteString("<constraints>\n")
	sb.WriteString(constraintsJSON)
	sb.WriteString("\n</constraints>\n\n")
	sb.WriteString("<query>\n")
	sb.WriteString(userPrompt)
	sb.WriteString("\n</query>\n")

	return sb.String(), nil
}

// BuildOptimizationPrompt renders the prompt for structured event-list
// requests. The normalized schedule is interpolated as JSON.
func (b SchedulePromptBuilder) BuildOptimizationPrompt(events []domain.Event, preferences, constraints map[string]any) (string, error) {
	scheduleJSON, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode schedule: %w", err)
	}
	prefsJSON, err := marshalMap(preferences)
	if err != nil {
		return "", fmt.Errorf("failed to encode user preferences: %w", err)
	}
	constraintsJSON, err := marshalMap(constraints)
	if err != nil {
		return "", fmt.Errorf("failed to encode constraints: %w", err)
	}

	instructions := []string{
		"You are a professional schedule-planning assistant with a strong grasp of time management.",
		"1. Analyze the current schedule in <schedule> for conflicts and inefficiencies.",
		"2. Reorder events by priority and category, grouping similar work to cut switching costs.",
		"3. Place high-focus tasks in high-energy time slots and add breaks where needed.",
		"4. Respect the <preferences> and <constraints> sections.",
		"5. Keep every event's title language unchanged.",
		"6. Return ONLY the JSON object described in <format>, with no surrounding commentary.",
	}

	var sb strings.Builder
	writeInstructionBlock(&sb, instructions)
	writeFormatBlock(&sb)

	sb.WriteString("<preferences>\n")
	sb.WriteString(prefsJSON)
	sb.WriteString("\n</preferences>\n\n")
	sb.WriteString("<constraints>\n")
	sb.WriteString(constraintsJSON)
	sb.WriteString("\n</constraints>\n\n")
	sb.WriteString("<schedule>\n")
	sb.Write(scheduleJSON)
	sb.WriteString("\n</schedule>\n")

	return sb.String(), nil
}

func writeInstructionBlock(sb *strings.Builder, instructions []string) {
	sb.WriteString("<instructions>\n")
	for _, inst := range instructions {
		sb.WriteString("  <line>")
		sb.WriteString(inst)
		sb.WriteString("</line>\n")
	}
	sb.WriteString("</instructions>\n\n")
}

func writeFormatBlock(sb *strings.Builder) {
	sb.WriteString("<format>\n")
	for _, line := range scheduleFormatLines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("</format>\n\n")
}

func marshalMap(m map[string]any) (string, error) {
	if m == nil {
		m = map[string]any{}
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
