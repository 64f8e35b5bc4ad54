package generator

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// passageSchemaDef is the contract the generation service must meet. The
// parsed reply is rejected outright when it fails validation; no field-level
// repair is attempted.
var passageSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"content":     map[string]any{"type": "string", "minLength": 1},
		"translation": map[string]any{"type": "string"},
		"keyVocabulary": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"grammarPoints": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 4,
						"maxItems": 4,
						"items":    map[string]any{"type": "string"},
					},
					"correctAnswer": map[string]any{
						"type":    "integer",
						"minimum": 0,
						"maximum": 3,
					},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"question", "options", "correctAnswer"},
			},
		},
	},
	"required": []any{"title", "content", "translation", "keyVocabulary", "grammarPoints", "questions"},
}

var (
	compileOnce    sync.Once
	passageSchema  *jsonschema.Schema
	schemaCompErr  error
	passageSchemaU = "schema://reading-passage.json"
)

// compiledPassageSchema compiles the passage schema once.
func compiledPassageSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(passageSchemaDef)
		if err != nil {
			schemaCompErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(defBytes, &parsed); err != nil {
			schemaCompErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(passageSchemaU, parsed); err != nil {
			schemaCompErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		passageSchema, schemaCompErr = c.Compile(passageSchemaU)
	})
	return passageSchema, schemaCompErr
}

// validatePassageJSON validates a parsed JSON value against the passage
// schema. Returns ErrInvalidPassageShape (wrapped) on violation.
func validatePassageJSON(raw json.RawMessage) error {
	schema, err := compiledPassageSchema()
	if err != nil {
		return err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPassageShape, err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPassageShape, err)
	}
	return nil
}
