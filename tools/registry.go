package tools

import (
	"fmt"

	"github.com/petasbytes/todo-agent/internal/fsops"
)

// Registry is an immutable name -> definition mapping, built once at startup.
type Registry struct {
	defs   []ToolDefinition
	byName map[string]int
}

// NewRegistry builds a registry from defs, keeping their order.
// It panics on an empty or duplicate name.
func NewRegistry(defs ...ToolDefinition) *Registry {
	r := &Registry{
		defs:   append([]ToolDefinition(nil), defs...),
		byName: make(map[string]int, len(defs)),
	}
	for i, d := range r.defs {
		if d.Name == "" {
			panic("tools: definition with empty name")
		}
		if _, dup := r.byName[d.Name]; dup {
			panic(fmt.Sprintf("tools: duplicate tool name %q", d.Name))
		}
		r.byName[d.Name] = i
	}
	return r
}

// Definitions returns a copy of the definitions in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	return append([]ToolDefinition(nil), r.defs...)
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (ToolDefinition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ToolDefinition{}, false
	}
	return r.defs[i], true
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Name
	}
	return out
}

// TodoRegistry returns the todo manager's tools wired to store.
func TodoRegistry(store *fsops.Store) *Registry {
	return NewRegistry(
		WriteFileDefinition(store),
		ReadFileDefinition(store),
		DeleteFileDefinition(store),
		ListTodosDefinition(store),
	)
}

// DemoRegistry returns the registry used by the tool-calling demo.
func DemoRegistry() *Registry {
	return NewRegistry(WhereAmIDefinition)
}
