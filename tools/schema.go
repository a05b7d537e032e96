package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/petasbytes/todo-agent/internal/fsops"
)

// ToolDefinition describes one tool: its identity, model-facing description,
// input schema and handler.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Function    func(input json.RawMessage) (string, error)
}

// GenerateSchema reflects T into an inline JSON Schema. Fields without
// omitempty are required.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// Property is a top-level input field, in declaration order.
type Property struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Properties flattens the definition's schema into declaration-ordered fields.
func (d ToolDefinition) Properties() []Property {
	s := d.InputSchema
	if s == nil || s.Properties == nil {
		return nil
	}
	req := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		req[r] = true
	}
	out := make([]Property, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		p := Property{Name: pair.Key, Required: req[pair.Key]}
		if pair.Value != nil {
			p.Type = pair.Value.Type
			p.Description = pair.Value.Description
		}
		out = append(out, p)
	}
	return out
}

// Required returns the required field names in declaration order.
func (d ToolDefinition) Required() []string {
	var out []string
	for _, p := range d.Properties() {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// PropertiesMap returns the properties as plain JSON Schema objects.
func (d ToolDefinition) PropertiesMap() map[string]any {
	props := map[string]any{}
	for _, p := range d.Properties() {
		m := map[string]any{"type": p.Type}
		if p.Description != "" {
			m["description"] = p.Description
		}
		props[p.Name] = m
	}
	return props
}

// ParametersMap returns the full object schema as a plain map, for providers
// that take raw JSON Schema.
func (d ToolDefinition) ParametersMap() map[string]any {
	m := map[string]any{
		"type":       "object",
		"properties": d.PropertiesMap(),
	}
	if req := d.Required(); len(req) > 0 {
		m["required"] = req
	}
	return m
}

// Failure returns the JSON failure result relayed to the model.
func Failure(msg string) string {
	return fsops.Failure(msg).JSON()
}
