// Package fsops implements the todo file store: write, read, delete and list
// operations on text files confined to a sandbox directory.
//
// Every operation returns a Result and never a Go error, so callers can relay
// the outcome to a model as data.
package fsops

import (
	"os"
	"sync"

	"github.com/petasbytes/todo-agent/internal/safety"
)

// Store is a sandboxed file store rooted at a single directory.
type Store struct {
	dir string

	once    sync.Once
	root    string
	rootErr error
}

// NewStore returns a store rooted at dir. An empty dir means <cwd>/todos.
// The directory is resolved and created on first use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Root returns the absolute sandbox root, creating it if needed.
func (s *Store) Root() (string, error) {
	s.once.Do(func() {
		s.root, s.rootErr = safety.InitSandboxRoot(s.dir)
	})
	if s.rootErr != nil {
		return "", s.rootErr
	}
	// The directory may have been removed since the first call.
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", err
	}
	return s.root, nil
}

// resolve validates p and returns its absolute location plus the display form
// relative to the root.
func (s *Store) resolve(p string) (abs, rel string, err error) {
	root, err := s.Root()
	if err != nil {
		return "", "", err
	}
	abs, err = safety.ValidateRelPath(root, p)
	if err != nil {
		return "", "", err
	}
	return abs, safety.RelToRoot(root, abs), nil
}
