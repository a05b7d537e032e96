package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/invopop/jsonschema"
)

// ValidateInput checks raw model arguments against schema: the input must be a
// JSON object, required fields must be present and non-null, and declared
// fields must carry their primitive type. Undeclared fields are ignored.
func ValidateInput(schema *jsonschema.Schema, raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return fmt.Errorf("invalid input: expected a JSON object: %w", err)
	}
	if schema == nil {
		return nil
	}

	for _, name := range schema.Required {
		if v, ok := args[name]; !ok || v == nil {
			return fmt.Errorf("invalid input: missing required field %q", name)
		}
	}

	if schema.Properties == nil {
		return nil
	}
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		v, ok := args[pair.Key]
		if !ok || v == nil || pair.Value == nil {
			continue
		}
		if !hasType(v, pair.Value.Type) {
			return fmt.Errorf("invalid input: field %q must be of type %s", pair.Key, pair.Value.Type)
		}
	}
	return nil
}

func hasType(v any, typ string) bool {
	switch typ {
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "number":
		_, ok := v.(float64)
		return ok
	case "integer":
		f, ok := v.(float64)
		return ok && f == math.Trunc(f)
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	default:
		return true
	}
}

// decode validates raw against schema and unmarshals it into dst.
func decode(schema *jsonschema.Schema, raw json.RawMessage, dst any) error {
	if err := ValidateInput(schema, raw); err != nil {
		return err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
