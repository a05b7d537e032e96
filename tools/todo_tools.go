package tools

import (
	"encoding/json"
	"log/slog"

	"github.com/petasbytes/todo-agent/internal/fsops"
)

type WriteFileInput struct {
	FilePath string `json:"filePath" jsonschema_description:"The path to the file (e.g., \"todos.md\" or \"shopping-list.md\")"`
	Content  string `json:"content" jsonschema_description:"The content to write to the file"`
}

type ReadFileInput struct {
	FilePath string `json:"filePath" jsonschema_description:"The path to the file to read (e.g., \"todos.md\")"`
}

type DeleteFileInput struct {
	FilePath string `json:"filePath" jsonschema_description:"The path to the file to delete (e.g., \"todos.md\")"`
}

type ListTodosInput struct{}

var (
	WriteFileInputSchema  = GenerateSchema[WriteFileInput]()
	ReadFileInputSchema   = GenerateSchema[ReadFileInput]()
	DeleteFileInputSchema = GenerateSchema[DeleteFileInput]()
	ListTodosInputSchema  = GenerateSchema[ListTodosInput]()
)

// WriteFileDefinition creates or overwrites a todo file in store.
func WriteFileDefinition(store *fsops.Store) ToolDefinition {
	return ToolDefinition{
		Name:        "writeFile",
		Description: "Write content to a todo file. Use markdown format for better organization. Always add .md extension if not provided.",
		InputSchema: WriteFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			var in WriteFileInput
			if err := decode(WriteFileInputSchema, input, &in); err != nil {
				return "", err
			}
			return logged("writeFile", store.Write(in.FilePath, in.Content)), nil
		},
	}
}

// ReadFileDefinition returns the content of a todo file in store.
func ReadFileDefinition(store *fsops.Store) ToolDefinition {
	return ToolDefinition{
		Name:        "readFile",
		Description: "Read the content of a todo file",
		InputSchema: ReadFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			var in ReadFileInput
			if err := decode(ReadFileInputSchema, input, &in); err != nil {
				return "", err
			}
			return logged("readFile", store.Read(in.FilePath)), nil
		},
	}
}

// DeleteFileDefinition removes a todo file from store.
func DeleteFileDefinition(store *fsops.Store) ToolDefinition {
	return ToolDefinition{
		Name:        "deleteFile",
		Description: "Delete a todo file",
		InputSchema: DeleteFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			var in DeleteFileInput
			if err := decode(DeleteFileInputSchema, input, &in); err != nil {
				return "", err
			}
			return logged("deleteFile", store.Delete(in.FilePath)), nil
		},
	}
}

// ListTodosDefinition lists the todo files in store.
func ListTodosDefinition(store *fsops.Store) ToolDefinition {
	return ToolDefinition{
		Name:        "listTodos",
		Description: "List all todo files in the todos directory",
		InputSchema: ListTodosInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			if err := ValidateInput(ListTodosInputSchema, input); err != nil {
				return "", err
			}
			return logged("listTodos", store.List()), nil
		},
	}
}

func logged(tool string, r fsops.Result) string {
	if r.Success {
		slog.Debug("tool succeeded", "tool", tool, "path", r.Path)
	} else {
		slog.Warn("tool failed", "tool", tool, "message", r.Message)
	}
	return r.JSON()
}
