package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator keeps file access scoped to the configured directory.
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a path validator for the given directory. The
// directory does not need to exist yet; validation is skipped until it
// does.
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	return &PathValidator{configuredDirectory: configuredDirectory}, nil
}

// ValidatePath checks that a path resolves inside the configured
// directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(v.configuredDirectory); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	within, err := v.isPathWithinDirectory(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// GetConfiguredDirectory returns the directory this validator scopes to.
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

func (v *PathValidator) isPathWithinDirectory(path string) (bool, error) {
	absDir, err := filepath.Abs(v.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	// Resolve symlinks when the targets exist so a link cannot escape
	// the configured directory.
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	rel, err := filepath.Rel(absDir, path)
	if err != nil {
		return false, nil
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)), nil
}
