package tools

import (
	"encoding/json"

	"github.com/petasbytes/todo-agent/internal/fsops"
)

// WhereAmIDefinition is the single tool of the tool-calling demo.
var WhereAmIDefinition = ToolDefinition{
	Name:        "respondWhereAmI",
	Description: `Responds to a question "Where am I?" with "DevFest Armenia"`,
	InputSchema: GenerateSchema[struct{}](),
	Function: func(json.RawMessage) (string, error) {
		return fsops.Result{Success: true, Message: "DevFest Armenia"}.JSON(), nil
	},
}
