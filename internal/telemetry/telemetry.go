// Package telemetry appends structured agent events to a JSONL file.
//
// Events never carry raw prompts, file contents or tool payloads; only
// names, sizes, counts and durations.
package telemetry

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recorder writes events to <dir>/events.jsonl. A nil Recorder drops events.
type Recorder struct {
	path string
	mu   sync.Mutex
}

// New returns a Recorder for cfg, or nil when emission is disabled.
func New(cfg Config) *Recorder {
	if !cfg.Enabled {
		return nil
	}
	return &Recorder{path: filepath.FromSlash(cfg.EventsPath())}
}

// Path returns the events file path.
func (r *Recorder) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Emit writes a single JSON line augmented with RFC3339Nano time and the
// event name. Failures are logged and otherwise ignored.
func (r *Recorder) Emit(name string, fields map[string]any) {
	if r == nil {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		slog.Warn("telemetry: marshal failed", "event", name, "error", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("telemetry: mkdir failed", "dir", dir, "error", err)
		return
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("telemetry: open failed", "path", r.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		slog.Warn("telemetry: write failed", "path", r.path, "error", err)
	}
}
