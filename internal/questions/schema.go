package questions

import "github.com/talentscout/screener/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "screening-questions",
	Description: "Technical screening questions for a job candidate, each tied to one declared technology",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"technology": map[string]any{
							"type":        "string",
							"description": "The declared technology this question assesses",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the candidate",
						},
					},
					"required":             []any{"technology", "question"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
