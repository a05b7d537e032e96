package fsops

import (
	"errors"
	"io/fs"
	"os"

	"github.com/petasbytes/todo-agent/internal/safety"
)

// Delete removes the regular file at p. A symlink to a regular file inside
// the sandbox is removed itself; its target is left alone.
func (s *Store) Delete(p string) Result {
	abs, _, err := s.resolve(p)
	if err != nil {
		return Result{Message: "Error deleting file: " + err.Error(), Path: p}
	}
	root, _ := s.Root()
	link, err := safety.LinkPath(root, p)
	if err != nil {
		return Result{Message: "Error deleting file: " + err.Error(), Path: p}
	}
	rel := safety.RelToRoot(root, link)

	fi, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Message: "File not found: " + rel, Path: rel}
	}
	if err != nil {
		return Result{Message: "Error deleting file: " + err.Error(), Path: p}
	}
	if !fi.Mode().IsRegular() {
		return Result{Message: "Path is not a file: " + rel, Path: rel}
	}

	if err := os.Remove(link); err != nil {
		return Result{Message: "Error deleting file: " + err.Error(), Path: p}
	}
	return Result{
		Success: true,
		Message: "File deleted successfully: " + rel,
		Path:    rel,
	}
}
