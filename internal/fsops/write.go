package fsops

import (
	"os"
	"path/filepath"
)

// Write creates or overwrites the file at p with content, creating parent
// directories as needed.
func (s *Store) Write(p, content string) Result {
	abs, rel, err := s.resolve(p)
	if err != nil {
		return Result{Message: "Error writing file: " + err.Error(), Path: p}
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return Result{Message: "Error writing file: " + err.Error(), Path: p}
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return Result{Message: "Error writing file: " + err.Error(), Path: p}
	}

	return Result{
		Success: true,
		Message: "File written successfully: " + rel,
		Path:    rel,
	}
}
