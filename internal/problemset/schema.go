package problemset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema is the JSON Schema for problem-set bank files. It checks shape
// and required fields; cross-reference checks (dangling transitions and the
// like) live in Validate, which a schema cannot express.
var bankSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "version", "metadata", "items"},
	"properties": map[string]any{
		"$schema": map[string]any{"type": "string"},
		"id":      map[string]any{"type": "string", "minLength": 1},
		"version": map[string]any{"type": "string", "minLength": 1},
		"locale":  map[string]any{"type": "string"},
		"metadata": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"gradeBand": map[string]any{"type": "string"},
				"subject":   map[string]any{"type": "string"},
				"tags":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"createdAt": map[string]any{"type": "string"},
				"author":    map[string]any{"type": "string"},
			},
		},
		"items": map[string]any{
			"type":  "array",
			"items": itemSchema,
		},
	},
}

var itemSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "stem", "steps", "transitions", "scoring"},
	"properties": map[string]any{
		"id": map[string]any{"type": "string", "minLength": 1},
		"stem": map[string]any{
			"type":     "object",
			"required": []any{"text"},
			"properties": map[string]any{
				"text":   map[string]any{"type": "string"},
				"assets": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"variables": map[string]any{
					"type": "object",
					"additionalProperties": map[string]any{
						"type":     "object",
						"required": []any{"type"},
						"properties": map[string]any{
							"type": map[string]any{"type": "string", "enum": []any{"int", "float", "choice"}},
							"range": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"min": map[string]any{"type": "number"},
									"max": map[string]any{"type": "number"},
								},
							},
							"choices":     map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
							"constraints": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						},
					},
				},
			},
		},
		"taxonomy": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"concepts":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"skills":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"difficulty": map[string]any{"type": "string", "enum": []any{"E", "M", "H"}},
			},
		},
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "prompt", "options"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{"type": "string", "enum": []any{"read", "extract", "question", "relation", "plan", "compute", "check"}},
					"prompt": map[string]any{
						"type": "string",
					},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "text", "correct"},
							"properties": map[string]any{
								"id":             map[string]any{"type": "string", "minLength": 1},
								"text":           map[string]any{"type": "string"},
								"correct":        map[string]any{"type": "boolean"},
								"distractorType": map[string]any{"type": "string"},
								"feedback":       map[string]any{"type": "string"},
								"nextStep":       map[string]any{"type": "string"},
							},
						},
					},
					"multipleSelect": map[string]any{"type": "boolean"},
					"hints":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"transitions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"fromStep"},
				"properties": map[string]any{
					"fromStep":   map[string]any{"type": "string", "minLength": 1},
					"onCorrect":  map[string]any{"type": "string"},
					"onWrong":    map[string]any{"type": "string"},
					"maxRetries": map[string]any{"type": "integer", "minimum": 0},
				},
			},
		},
		"scoring": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"total": map[string]any{"type": "number"},
				"perStep": map[string]any{
					"type": "object",
					"additionalProperties": map[string]any{
						"type":     "object",
						"required": []any{"score"},
						"properties": map[string]any{
							"score":           map[string]any{"type": "number"},
							"penaltyPerRetry": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
							"minScore":        map[string]any{"type": "number"},
							"timeBonus":       map[string]any{"type": "number"},
						},
					},
				},
			},
		},
		"answer": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"final":     map[string]any{"type": "string"},
				"unit":      map[string]any{"type": "string"},
				"rationale": map[string]any{"type": "string"},
			},
		},
	},
}

var (
	compiledBankSchema *jsonschema.Schema
	compileBankOnce    sync.Once
	compileBankErr     error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileBankOnce.Do(func() {
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileBankErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileBankErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://problem-set.json"
		if err := c.AddResource(url, def); err != nil {
			compileBankErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledBankSchema, compileBankErr = c.Compile(url)
	})
	return compiledBankSchema, compileBankErr
}

// ValidateSchema checks raw bank JSON against the problem-set schema.
func ValidateSchema(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
