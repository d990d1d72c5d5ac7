package author

import "github.com/junwei/stepmath/internal/llm"

// DistractorSchema defines the JSON schema for LLM distractor responses.
var DistractorSchema = &llm.Schema{
	Name:        "step-distractors",
	Description: "Plausible wrong options for one step of a guided math problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"distractors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The option text, in the same language and format as the existing options",
						},
						"feedback": map[string]any{
							"type":        "string",
							"description": "One sentence telling the learner why this choice is wrong, without revealing the answer",
						},
					},
					"required":             []any{"text", "feedback"},
					"additionalProperties": false,
				},
				"description": "The requested number of wrong options, each reflecting a distinct common mistake",
			},
		},
		"required":             []any{"distractors"},
		"additionalProperties": false,
	},
}
