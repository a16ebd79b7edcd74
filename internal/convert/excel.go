package convert

import (
	"fmt"
	"os"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/layout"
	"github.com/docfold/mcp-doc-convert/internal/pdfio"
	"github.com/docfold/mcp-doc-convert/internal/xlsx"
)

// ExcelToPDF renders each worksheet as a titled table. Orientation and
// table splitting follow the page-fit decision for the widest sheet.
func (s *Service) ExcelToPDF(req ExcelToPDFRequest) (*ExcelToPDFResult, error) {
	if err := s.checkInput(req.Path, ".xlsx"); err != nil {
		return nil, err
	}

	sheets, _, err := xlsx.ReadSheets(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read workbook: %w", err)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no readable worksheets")
	}

	doc := &document.Document{Pages: []document.Page{{
		WidthPt:  595.28,
		HeightPt: 841.89,
	}}}
	page := &doc.Pages[0]
	y := 0.0
	seq := 0
	widest := 0.0
	for _, sheet := range sheets {
		if len(sheet.Rows) == 0 {
			continue
		}
		page.Blocks = append(page.Blocks, document.NewTextBlock(
			document.BBox{X0: 0, Y0: y, X1: 500, Y1: y + 18}, seq,
			document.TextRun{Text: sheet.Name, FontSize: 14, Bold: true, HeadingLevel: 2},
		))
		seq++
		y += 24

		widths := layout.EstimateColumnWidths(sheet.Rows, 10.5, layout.WidthOptions{})
		if w := layout.TotalWidth(widths); w > widest {
			widest = w
		}
		height := float64(len(sheet.Rows)) * 16
		page.Blocks = append(page.Blocks, document.NewTableBlock(
			document.BBox{X0: 0, Y0: y, X1: layout.TotalWidth(widths), Y1: y + height}, seq,
			document.Table{Cells: sheet.Rows, ColWidths: widths, HasHeader: true},
		))
		seq++
		y += height + 12
	}
	if len(page.Blocks) == 0 {
		return nil, fmt.Errorf("workbook has no content")
	}

	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot render PDF: %w", err)
	}
	outPath := s.outputPath(req.Path, "", ".pdf")
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write PDF: %w", err)
	}

	dec := layout.Decide(widest, pdfio.PortraitAvailPt, pdfio.LandscapeAvailPt,
		layout.DefaultScaleTolerance, 10.5)
	return &ExcelToPDFResult{
		Output:   describeOutput(outPath),
		Sheets:   len(sheets),
		Strategy: dec.Strategy.String(),
	}, nil
}
