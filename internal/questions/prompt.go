package questions

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior technical interviewer screening job candidates.

Rules:
- Write open questions that test practical knowledge and need more than a yes/no answer.
- Each question targets exactly one technology from the declared stack; set "technology" to it.
- Cover every declared technology at least once when the requested count allows.
- For junior candidates favour breadth: fundamentals across the whole stack.
- For senior candidates favour depth: design, trade-offs, internals and production experience.
- Never repeat a question, even reworded.
- Plain text only. No numbering, no markdown.`

// Level is the difficulty band derived from years of experience.
type Level string

const (
	LevelEntry        Level = "entry-level"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// LevelFor maps years of experience to a difficulty band.
func LevelFor(years int) Level {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}

// buildUserMessage constructs the user message for one generation attempt.
// Rejection reasons from earlier attempts are listed so the model can
// correct them.
func buildUserMessage(stack []string, years int, rejections []string, cfg Config) string {
	level := LevelFor(years)
	focus := "breadth across the stack"
	if level == LevelAdvanced {
		focus = "depth on the core technologies"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(stack, ", "))
	fmt.Fprintf(&b, "Years of experience: %d\n", years)
	fmt.Fprintf(&b, "Difficulty: %s\n", level)
	fmt.Fprintf(&b, "Focus: %s\n", focus)
	fmt.Fprintf(&b, "Number of questions: between %d and %d\n", cfg.Min, cfg.Max)

	b.WriteString("\nPrevious attempts rejected because:\n")
	b.WriteString(buildRejections(rejections))

	return b.String()
}

func buildRejections(rejections []string) string {
	if len(rejections) == 0 {
		return "None"
	}
	var b strings.Builder
	for i, r := range rejections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}
	return strings.TrimRight(b.String(), "\n")
}
