package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// pushSchemaJSON is the structural contract for a push batch. Semantic rules
// that a schema can't express (dates must parse and not lie in the future)
// are checked in the handler after this passes.
const pushSchemaJSON = `{
	"type": "object",
	"required": ["entries"],
	"additionalProperties": false,
	"properties": {
		"entries": {
			"type": "array",
			"minItems": 1,
			"maxItems": 100,
			"items": {
				"type": "object",
				"required": ["date", "score", "timeTakenSeconds"],
				"additionalProperties": false,
				"properties": {
					"date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
					"score": {"type": "integer", "minimum": 0, "maximum": 100},
					"timeTakenSeconds": {"type": "integer", "minimum": 1, "maximum": 7200}
				}
			}
		}
	}
}`

var (
	pushSchemaOnce sync.Once
	pushSchema     *jsonschema.Schema
	pushSchemaErr  error
)

// compiledPushSchema compiles the push batch schema once.
func compiledPushSchema() (*jsonschema.Schema, error) {
	pushSchemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(pushSchemaJSON), &parsed); err != nil {
			pushSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://push-entries.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			pushSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		pushSchema, pushSchemaErr = c.Compile(schemaURL)
	})
	return pushSchema, pushSchemaErr
}

// validatePushBody validates raw JSON against the push batch schema.
func validatePushBody(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledPushSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
