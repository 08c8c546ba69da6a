package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"quiz-api/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const batchSchemaURL = "schema://quiz-batch.json"

var (
	compileOnce   sync.Once
	compiledBatch *jsonschema.Schema
	compileErr    error
)

// batchSchemaDefinition describes the JSON document the generator is asked for.
// Cross-array alignment cannot be expressed here and is checked by ParseBatch.
func batchSchemaDefinition() map[string]any {
	levels := make([]any, len(domain.Levels))
	for i, l := range domain.Levels {
		levels[i] = string(l)
	}

	question := map[string]any{
		"type":     "object",
		"required": []any{"question", "choices", "level", "type"},
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"choices": map[string]any{
				"type":     "array",
				"minItems": domain.ChoicesPerQuestion,
				"maxItems": domain.ChoicesPerQuestion,
				"items":    map[string]any{"type": "string"},
			},
			"level": map[string]any{"enum": levels},
			"type":  map[string]any{"type": "string"},
		},
	}

	answer := map[string]any{
		"type":     "object",
		"required": []any{"correct", "explanation"},
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "array",
				"minItems":    1,
				"maxItems":    domain.ChoicesPerQuestion,
				"uniqueItems": true,
				"items": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": domain.ChoicesPerQuestion - 1,
				},
			},
			"explanation": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":     "object",
		"required": []any{"questions", "answers"},
		"properties": map[string]any{
			"questions": map[string]any{"type": "array", "items": question},
			"answers":   map[string]any{"type": "array", "items": answer},
		},
	}
}

func batchSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants decoded JSON values, not Go ints.
		raw, err := json.Marshal(batchSchemaDefinition())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(batchSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledBatch, compileErr = c.Compile(batchSchemaURL)
	})
	return compiledBatch, compileErr
}
