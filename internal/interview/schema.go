package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// Schemas constraining the model's structured output. The same documents are
// sent to the gateway as tool parameters and applied locally before anything
// is decoded or persisted, so a malformed payload never reaches the store.

const questionsSchemaJSON = `{
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 5,
      "maxItems": 5,
      "items": {
        "type": "object",
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "category": {"type": "string", "enum": ["technical", "behavioral", "situational"]},
          "expected_points": {
            "type": "array",
            "items": {"type": "string", "minLength": 1},
            "minItems": 1,
            "maxItems": 5
          }
        },
        "required": ["question", "category", "expected_points"],
        "additionalProperties": false
      }
    }
  },
  "required": ["questions"],
  "additionalProperties": false
}`

const evaluationSchemaJSON = `{
  "type": "object",
  "properties": {
    "score": {"type": "integer", "minimum": 0, "maximum": 10},
    "feedback": {"type": "string", "minLength": 1}
  },
  "required": ["score", "feedback"],
  "additionalProperties": false
}`

var (
	questionsSchema  = mustSchema(questionsSchemaJSON)
	evaluationSchema = mustSchema(evaluationSchemaJSON)
)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return rs
}

// validatePayload applies a compiled schema to raw model output and collapses
// key errors into a single message.
func validatePayload(ctx context.Context, rs *jsonschema.Schema, payload []byte) error {
	verrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("payload does not match schema: %s", sb.String())
	}
	return nil
}
