package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace hands out scoped scratch directories for intermediate
// artifacts (extracted page images, re-encoded files). Every temp dir
// lives under one root so cleanup cannot stray.
type Workspace struct {
	root string
}

// NewWorkspace creates a workspace rooted under dir, creating it if
// needed. An empty dir falls back to the system temp directory.
func NewWorkspace(dir string) (*Workspace, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	root := filepath.Join(dir, "doc-convert")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create workspace root: %w", err)
	}
	return &Workspace{root: root}, nil
}

// TempDir creates a fresh scratch directory. The returned cleanup
// removes it with everything inside.
func (w *Workspace) TempDir(prefix string) (string, func(), error) {
	dir, err := os.MkdirTemp(w.root, sanitizePrefix(prefix)+"-*")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temp dir: %w", err)
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

func sanitizePrefix(prefix string) string {
	if prefix == "" {
		return "job"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, prefix)
}
