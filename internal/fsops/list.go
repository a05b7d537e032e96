package fsops

import (
	"fmt"
	"os"
	"strings"
)

// todoExtensions are the file suffixes that count as todo files.
var todoExtensions = []string{".md", ".txt"}

// IsTodoFile reports whether name carries a todo file extension.
func IsTodoFile(name string) bool {
	for _, ext := range todoExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// List returns the names of todo files directly under the root, sorted by name.
// Directories and other extensions are skipped.
func (s *Store) List() Result {
	root, err := s.Root()
	if err != nil {
		return Failure("Error listing todos: " + err.Error())
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return Failure("Error listing todos: " + err.Error())
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsTodoFile(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %d todo file(s)", len(files)),
		Files:   files,
	}
}
