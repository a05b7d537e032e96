package fsops

import (
	"errors"
	"io/fs"
	"os"
)

// Read returns the content of the file at p.
func (s *Store) Read(p string) Result {
	abs, rel, err := s.resolve(p)
	if err != nil {
		return Result{Message: "Error reading file: " + err.Error(), Path: p}
	}

	fi, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Message: "File not found: " + rel, Path: rel}
	}
	if err != nil {
		return Result{Message: "Error reading file: " + err.Error(), Path: p}
	}
	if fi.IsDir() {
		return Result{Message: "Path is not a file: " + rel, Path: rel}
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return Result{Message: "Error reading file: " + err.Error(), Path: p}
	}
	content := string(b)
	return Result{
		Success: true,
		Message: "File read successfully: " + rel,
		Path:    rel,
		Content: &content,
	}
}
