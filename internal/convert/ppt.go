package convert

import (
	"fmt"
	"os"

	"github.com/docfold/mcp-doc-convert/internal/pptx"
)

// PPTToPDF renders a slide deck as a PDF with one output page per
// slide, keeping each slide's read order.
func (s *Service) PPTToPDF(req PPTToPDFRequest) (*PPTToPDFResult, error) {
	if err := s.checkInput(req.Path, ".pptx"); err != nil {
		return nil, err
	}

	doc, err := pptx.Read(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read presentation: %w", err)
	}

	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot render PDF: %w", err)
	}
	outPath := s.outputPath(req.Path, "", ".pdf")
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write PDF: %w", err)
	}

	return &PPTToPDFResult{
		Output: describeOutput(outPath),
		Slides: len(doc.Pages),
	}, nil
}
