package convert

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/docfold/mcp-doc-convert/internal/pdfio"
)

// ImageToPDF wraps one image file into a single-page PDF, centered and
// scaled to the page box.
func (s *Service) ImageToPDF(req ImageToPDFRequest) (*ImageToPDFResult, error) {
	if err := s.checkInput(req.Path, ".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff", ".tif"); err != nil {
		return nil, err
	}

	f, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("not a decodable image: %w", err)
	}

	// pdfcpu imports png/jpeg/tiff directly; anything else is
	// re-encoded to PNG first.
	srcPath := req.Path
	switch format {
	case "png", "jpeg", "tiff":
	default:
		scratch, cleanup, err := s.workspace.TempDir("image2pdf")
		if err != nil {
			return nil, err
		}
		defer cleanup()
		srcPath = filepath.Join(scratch, "source.png")
		if err := reencodeImage(req.Path, srcPath, "png"); err != nil {
			return nil, err
		}
	}

	outPath := s.outputPath(req.Path, "", ".pdf")
	if err := pdfio.ImportImages([]string{srcPath}, outPath); err != nil {
		return nil, err
	}

	return &ImageToPDFResult{
		Output: describeOutput(outPath),
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}
