package convert

import (
	"fmt"
	"os"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/docx"
	"github.com/docfold/mcp-doc-convert/internal/htmldoc"
	"github.com/docfold/mcp-doc-convert/internal/layout"
)

func (s *Service) parseHTMLFile(path string) ([]document.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open HTML file: %w", err)
	}
	defer f.Close()

	blocks, err := htmldoc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse HTML: %w", err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("HTML document has no content")
	}
	return blocks, nil
}

// HTMLToPDF renders an HTML document as PDF.
func (s *Service) HTMLToPDF(req HTMLToPDFRequest) (*HTMLToPDFResult, error) {
	if err := s.checkInput(req.Path, ".html", ".htm"); err != nil {
		return nil, err
	}

	blocks, err := s.parseHTMLFile(req.Path)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{Pages: []document.Page{{
		WidthPt:  595.28,
		HeightPt: 841.89,
		Blocks:   blocks,
	}}}
	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot render PDF: %w", err)
	}
	outPath := s.outputPath(req.Path, "", ".pdf")
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write PDF: %w", err)
	}

	return &HTMLToPDFResult{
		Output: describeOutput(outPath),
		Blocks: len(blocks),
	}, nil
}

// HTMLToWord converts an HTML document to DOCX.
func (s *Service) HTMLToWord(req HTMLToWordRequest) (*HTMLToWordResult, error) {
	if err := s.checkInput(req.Path, ".html", ".htm"); err != nil {
		return nil, err
	}

	blocks, err := s.parseHTMLFile(req.Path)
	if err != nil {
		return nil, err
	}

	w := docx.NewWriter()
	writeBlocks(w, blocks)

	outPath := s.outputPath(req.Path, "", ".docx")
	if err := saveDocx(w, outPath); err != nil {
		return nil, err
	}
	return &HTMLToWordResult{
		Output: describeOutput(outPath),
		Blocks: len(blocks),
	}, nil
}

// writeBlocks streams model blocks into a DOCX writer in order.
func writeBlocks(w *docx.Writer, blocks []document.Block) {
	for _, b := range blocks {
		switch b.Kind {
		case document.KindText:
			w.AddParagraph(*b.Text)
		case document.KindTable:
			widths := b.Table.ColWidths
			if len(widths) != b.Table.Columns() {
				widths = layout.EstimateColumnWidths(b.Table.Cells, 10.5, layout.WidthOptions{})
			}
			w.AddTable(*b.Table, widths)
		case document.KindImage:
			width := float64(b.Image.Width) * 72 / 96
			height := float64(b.Image.Height) * 72 / 96
			if width <= 0 {
				width, height = b.BBox.Width(), b.BBox.Height()
			}
			w.AddImage(*b.Image, width, height)
		}
	}
}
