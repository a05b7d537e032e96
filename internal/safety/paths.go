// Package safety confines file access to a single sandbox directory.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSandboxDir is the sandbox directory name, relative to the working directory.
const DefaultSandboxDir = "todos"

// CodeOutsideSandbox marks a path that resolves outside the sandbox root.
const CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"

// ToolError is a policy violation that is reported back to the model as data.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ToolError) Error() string { return e.Message }

// JSON returns the compact machine-readable form of the error.
func (e ToolError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

func outside(input string) ToolError {
	return ToolError{
		Code:    CodeOutsideSandbox,
		Message: fmt.Sprintf("Access denied: Path %q is outside the allowed directory", input),
	}
}

// InitSandboxRoot resolves dir to an absolute, symlink-free path and creates it.
// An empty dir means <cwd>/todos.
func InitSandboxRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, DefaultSandboxDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs(%s): %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create sandbox root: %w", err)
	}
	// Boundary checks compare against resolved candidates, so the root must be resolved too.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidateRelPath resolves p against absRoot and returns the absolute location
// if it lies within the root. Parent traversal, absolute paths elsewhere on
// disk and symlinked ancestors pointing outside are all rejected with a ToolError.
func ValidateRelPath(absRoot, p string) (string, error) {
	var candidate string
	if filepath.IsAbs(p) {
		candidate = filepath.Clean(p)
	} else {
		candidate = filepath.Join(absRoot, filepath.Clean(p))
	}
	candidate = resolveExisting(candidate)

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", outside(p)
	}
	return candidate, nil
}

// LinkPath returns the location of p itself inside absRoot: ancestors are
// resolved but a symlink in the final element is kept, so removing the
// result removes the link and not its target. Callers should also check the
// fully resolved path with ValidateRelPath.
func LinkPath(absRoot, p string) (string, error) {
	var candidate string
	if filepath.IsAbs(p) {
		candidate = filepath.Clean(p)
	} else {
		candidate = filepath.Join(absRoot, filepath.Clean(p))
	}
	if candidate == absRoot {
		return candidate, nil
	}
	candidate = filepath.Join(resolveExisting(filepath.Dir(candidate)), filepath.Base(candidate))

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", outside(p)
	}
	return candidate, nil
}

// resolveExisting evaluates symlinks on the deepest existing ancestor of p and
// rejoins the missing tail, so a new file under a symlinked directory is still
// checked against its real location.
func resolveExisting(p string) string {
	var tail []string
	cur := p
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		tail = append(tail, filepath.Base(cur))
		cur = parent
	}
}

// RelToRoot returns abs relative to absRoot in slash form, for display.
func RelToRoot(absRoot, abs string) string {
	rel, err := filepath.Rel(absRoot, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}
