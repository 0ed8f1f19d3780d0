package feedback

import "github.com/edusense/edusense/internal/llm"

// NarrativeSchema defines the JSON schema for narrative feedback.
var NarrativeSchema = &llm.Schema{
	Name:        "student-feedback",
	Description: "Constructive written feedback for one student, addressed to a parent or teacher",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "3-5 sentence constructive summary of the student's performance",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Up to three concrete next steps (8-15 words each)",
			},
		},
		"required":             []any{"summary", "suggestions"},
		"additionalProperties": false,
	},
}
