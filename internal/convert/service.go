package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docfold/mcp-doc-convert/internal/fonts"
	"github.com/docfold/mcp-doc-convert/internal/pdfio"
)

// Service orchestrates the conversion components: every operation
// validates its input path and file, runs the conversion, and reports
// the produced files.
type Service struct {
	maxFileSize   int64
	outputDir     string
	pathValidator *PathValidator
	fileValidator *FileValidator
	pdfValidator  *pdfio.Validator
	pdfReader     *pdfio.Reader
	renderer      *pdfio.Renderer
	workspace     *Workspace
}

// NewService creates a conversion service. Input paths are scoped to
// configuredDirectory; outputs land in outputDir; fontDirs seed the
// CJK font resolver for PDF rendering.
func NewService(maxFileSize int64, configuredDirectory, outputDir string, fontDirs []string) (*Service, error) {
	pathValidator, err := NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	if outputDir == "" {
		outputDir = configuredDirectory
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}
	workspace, err := NewWorkspace(os.TempDir())
	if err != nil {
		return nil, err
	}

	return &Service{
		maxFileSize:   maxFileSize,
		outputDir:     outputDir,
		pathValidator: pathValidator,
		fileValidator: NewFileValidator(maxFileSize),
		pdfValidator:  pdfio.NewValidator(maxFileSize),
		pdfReader:     pdfio.NewReader(),
		renderer:      pdfio.NewRenderer(fonts.NewResolver(fontDirs...)),
		workspace:     workspace,
	}, nil
}

// OutputDir returns the directory converted files are written to.
func (s *Service) OutputDir() string {
	return s.outputDir
}

// checkInput runs the shared path and file gates for one input.
func (s *Service) checkInput(path string, allowedExts ...string) error {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return fmt.Errorf("security validation failed: %w", err)
	}
	return s.fileValidator.Validate(path, allowedExts...)
}

// outputPath derives an output file path from the input's base name.
// suffix is inserted before the extension when non-empty.
func (s *Service) outputPath(inputPath, suffix, ext string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if suffix != "" {
		base += "_" + suffix
	}
	return filepath.Join(s.outputDir, base+ext)
}

var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv",
	".txt":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".gif":  "image/gif",
}

// describeOutput stats a written file into an OutputFile record.
func describeOutput(path string) OutputFile {
	out := OutputFile{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mimeByExt[strings.ToLower(filepath.Ext(path))],
	}
	if out.MIMEType == "" {
		out.MIMEType = "application/octet-stream"
	}
	if fi, err := os.Stat(path); err == nil {
		out.Size = fi.Size()
	}
	return out
}
