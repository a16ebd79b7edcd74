package convert

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/docx"
	"github.com/docfold/mcp-doc-convert/internal/layout"
	"github.com/docfold/mcp-doc-convert/internal/pdfio"
)

var headingFontSizes = map[int]float64{1: 18, 2: 16, 3: 14}

// wordModel is the DOCX body lifted into the shared document model, with
// numbering prefixes re-derived and heading levels clamped.
type wordModel struct {
	doc     *document.Document
	outline []OutlineEntry
	tables  int
	images  int
}

func buildWordModel(r *docx.Reader) *wordModel {
	engine := docx.NewEngine(r.Numbering())
	tracker := docx.NewOutlineTracker()

	m := &wordModel{doc: &document.Document{Pages: []document.Page{{
		WidthPt:  595.28,
		HeightPt: 841.89,
	}}}}
	page := &m.doc.Pages[0]
	y := 0.0
	seq := 0

	for _, item := range r.Items() {
		switch {
		case item.Paragraph != nil:
			p := item.Paragraph
			run := paragraphRun(p, engine)
			if p.HeadingLevel > 0 {
				clamped := tracker.Clamp(p.HeadingLevel-1) + 1
				run.HeadingLevel = clamped
				if size, ok := headingFontSizes[clamped]; ok {
					run.FontSize = size
				}
				m.outline = append(m.outline, OutlineEntry{Level: clamped, Text: run.Text})
			}
			if run.Text != "" || run.Prefix != "" {
				height := run.FontSize * 1.5
				if height <= 0 {
					height = 16
				}
				page.Blocks = append(page.Blocks, document.NewTextBlock(
					document.BBox{X0: 0, Y0: y, X1: 500, Y1: y + height}, seq, run))
				seq++
				y += height + 2
			}
			for _, rid := range p.ImageRIDs {
				data, _, ok := r.Image(rid)
				if !ok {
					continue
				}
				img, fmtName, w, h, err := probeImageBytes(data)
				if err != nil {
					continue
				}
				m.images++
				page.Blocks = append(page.Blocks, document.NewImageBlock(
					document.BBox{X0: 0, Y0: y, X1: w, Y1: y + h}, seq,
					document.Image{Data: img, Format: fmtName}))
				seq++
				y += h + 4
			}
		case item.Table != nil:
			m.tables++
			tbl := tableFromWord(item.Table)
			height := float64(len(tbl.Cells)) * 16
			page.Blocks = append(page.Blocks, document.NewTableBlock(
				document.BBox{X0: 0, Y0: y, X1: layout.TotalWidth(tbl.ColWidths), Y1: y + height},
				seq, tbl))
			seq++
			y += height + 8
		}
	}
	return m
}

// paragraphRun flattens a paragraph into one styled run: the first
// styled run wins for size/bold/color, matching how the source
// documents use uniform paragraph styling.
func paragraphRun(p *docx.Paragraph, engine *docx.Engine) document.TextRun {
	run := document.TextRun{
		Text:  p.Text(),
		Align: alignmentFromWord(p.Alignment),
	}
	if p.NumID > 0 {
		run.Prefix = engine.Prefix(p.NumID, p.Level)
	}
	for _, r := range p.Runs {
		if r.Bold {
			run.Bold = true
		}
		if r.FontSize > 0 && run.FontSize == 0 {
			run.FontSize = r.FontSize
		}
		if r.ColorHex != "" && run.Color == (document.RGB{}) {
			run.Color = parseHexColor(r.ColorHex)
		}
	}
	return run
}

func alignmentFromWord(a string) document.Alignment {
	switch a {
	case "center":
		return document.AlignCenter
	case "right":
		return document.AlignRight
	case "both":
		return document.AlignJustify
	default:
		return document.AlignLeft
	}
}

func parseHexColor(hex string) document.RGB {
	if len(hex) != 6 {
		return document.RGB{}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return document.RGB{}
	}
	return document.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// tableFromWord converts a parsed table, scaling declared grid widths
// from twips to points and estimating widths when the grid is missing.
func tableFromWord(t *docx.TableData) document.Table {
	tbl := document.Table{Cells: t.Cells, HasHeader: true}
	if len(t.GridTwips) > 0 {
		tbl.ColWidths = make([]float64, len(t.GridTwips))
		for i, tw := range t.GridTwips {
			tbl.ColWidths[i] = float64(tw) / 20
		}
	} else {
		tbl.ColWidths = layout.EstimateColumnWidths(t.Cells, 10.5, layout.WidthOptions{})
	}
	if len(t.CellFill) > 0 {
		tbl.CellFill = make(map[[2]int]document.RGB, len(t.CellFill))
		for key, hex := range t.CellFill {
			tbl.CellFill[key] = parseHexColor(hex)
		}
	}
	return tbl
}

// WordToPDF renders a DOCX document as PDF, re-deriving numbering
// prefixes and the clamped heading outline.
func (s *Service) WordToPDF(req WordToPDFRequest) (*WordToPDFResult, error) {
	if err := s.checkInput(req.Path, ".docx"); err != nil {
		return nil, err
	}

	r, err := docx.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read document: %w", err)
	}
	defer r.Close()

	m := buildWordModel(r)
	if len(m.doc.Pages[0].Blocks) == 0 {
		return nil, fmt.Errorf("document has no content")
	}

	out, err := s.renderer.Render(m.doc)
	if err != nil {
		return nil, fmt.Errorf("cannot render PDF: %w", err)
	}
	outPath := s.outputPath(req.Path, "", ".pdf")
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write PDF: %w", err)
	}

	widest := 0.0
	for _, b := range m.doc.Pages[0].Blocks {
		if b.Kind == document.KindTable {
			if w := layout.TotalWidth(b.Table.ColWidths); w > widest {
				widest = w
			}
		}
	}
	strategy := layout.FitPortrait
	if widest > 0 {
		strategy = layout.Decide(widest, pdfio.PortraitAvailPt, pdfio.LandscapeAvailPt,
			layout.DefaultScaleTolerance, 10.5).Strategy
	}

	return &WordToPDFResult{
		Output:   describeOutput(outPath),
		Tables:   m.tables,
		Images:   m.images,
		Strategy: strategy.String(),
		Outline:  m.outline,
	}, nil
}

// WordToText extracts the document as plain text: numbering prefixes
// are kept, headings stay on their own line, table rows are tab-joined.
func (s *Service) WordToText(req WordToTextRequest) (*WordToTextResult, error) {
	if err := s.checkInput(req.Path, ".docx"); err != nil {
		return nil, err
	}

	r, err := docx.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read document: %w", err)
	}
	defer r.Close()

	engine := docx.NewEngine(r.Numbering())
	tables := 0
	var sb strings.Builder
	for _, item := range r.Items() {
		switch {
		case item.Paragraph != nil:
			p := item.Paragraph
			text := p.Text()
			if p.NumID > 0 {
				text = engine.Prefix(p.NumID, p.Level) + text
			}
			sb.WriteString(text)
			sb.WriteString("\n")
		case item.Table != nil:
			tables++
			for _, row := range item.Table.Cells {
				sb.WriteString(strings.Join(row, "\t"))
				sb.WriteString("\n")
			}
		}
	}

	outPath := s.outputPath(req.Path, "", ".txt")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		return nil, fmt.Errorf("cannot write text file: %w", err)
	}
	return &WordToTextResult{
		Output: describeOutput(outPath),
		Tables: tables,
	}, nil
}
