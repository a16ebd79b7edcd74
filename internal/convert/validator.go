package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator gates conversion inputs: the file must exist, be a
// regular file, match the tool's extension allow-list, and stay under
// the size cap.
type FileValidator struct {
	maxFileSize int64
}

func NewFileValidator(maxFileSize int64) *FileValidator {
	return &FileValidator{maxFileSize: maxFileSize}
}

// Validate checks the input file against the allowed extensions
// (lowercase, with leading dot).
func (v *FileValidator) Validate(path string, allowedExts ...string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	allowed := false
	for _, e := range allowedExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("unsupported file type %q (expected %s)", ext, strings.Join(allowedExts, ", "))
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize)
	}
	return nil
}
