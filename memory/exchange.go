package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/petasbytes/todo-agent/internal/provider"
)

// Exchange is one user line and the agent's final answer.
type Exchange struct {
	User  string    `json:"user"`
	Agent string    `json:"agent"`
	At    time.Time `json:"at"`
}

// Messages returns the exchange as a user turn followed by a model turn.
func (e Exchange) Messages() []provider.Message {
	return []provider.Message{
		provider.UserMessage(e.User),
		{Role: provider.RoleModel, Text: e.Agent},
	}
}

// LoadExchange reads an exchange from path. A missing file yields nil, nil.
func LoadExchange(path string) (*Exchange, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var e Exchange
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("memory: decode %s: %w", path, err)
	}
	return &e, nil
}

// SaveExchange writes e to path, creating parent directories.
func SaveExchange(path string, e Exchange) error {
	b, err := json.MarshalIndent(e, "", " ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}

// Memory holds the last exchange, optionally mirrored to a file.
type Memory struct {
	mu   sync.Mutex
	path string
	last *Exchange
}

// New returns a Memory backed by path. An empty path keeps it in-process only.
// An existing file seeds the first request.
func New(path string) (*Memory, error) {
	m := &Memory{path: path}
	if path == "" {
		return m, nil
	}
	last, err := LoadExchange(path)
	if err != nil {
		return nil, err
	}
	m.last = last
	return m, nil
}

// History returns the previous exchange as conversation turns, or nil.
func (m *Memory) History() []provider.Message {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil
	}
	return m.last.Messages()
}

// Record replaces the remembered exchange and persists it when file-backed.
func (m *Memory) Record(user, agent string) error {
	if m == nil {
		return nil
	}
	e := Exchange{User: user, Agent: agent, At: time.Now().UTC()}
	m.mu.Lock()
	m.last = &e
	m.mu.Unlock()
	if m.path == "" {
		return nil
	}
	return SaveExchange(m.path, e)
}
