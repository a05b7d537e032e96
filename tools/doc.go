// Package tools defines the tools exposed to the model.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - ValidateInput: check untrusted model arguments against a schema.
//   - Todo tools: writeFile, readFile, deleteFile, listTodos.
//   - Registry: immutable name -> definition lookup.
//
// Handlers return a JSON-encoded fsops.Result. A returned Go error means the
// input never reached the store.
package tools
