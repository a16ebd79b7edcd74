package pdfio

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/fonts"
	"github.com/docfold/mcp-doc-convert/internal/layout"
)

const (
	a4WidthPt  = 595.28
	a4HeightPt = 841.89
	marginMM   = 10.0
	ptPerMM    = 72.0 / 25.4

	bodyFontSize    = 10.5
	maxGridCols     = 12
	headerFillGray  = 242
	tableLineFactor = 1.5
)

func ptToMM(pt float64) float64 { return pt / ptPerMM }

// PortraitAvailPt and LandscapeAvailPt are the usable content widths on
// an A4 page after margins.
var (
	PortraitAvailPt  = a4WidthPt - 2*marginMM*ptPerMM
	LandscapeAvailPt = a4HeightPt - 2*marginMM*ptPerMM
)

// Renderer turns the block document model into a PDF. Page orientation
// is picked once per document from the widest table it contains.
type Renderer struct {
	fontFamily  string
	customFonts []*entity.CustomFont
	measurer    fonts.Measurer
}

// NewRenderer builds a renderer, loading a CJK-capable font through the
// resolver when one is available. Without one the built-in Latin fonts
// are used.
func NewRenderer(resolver *fonts.Resolver) *Renderer {
	r := &Renderer{fontFamily: fontfamily.Arial}
	if resolver == nil {
		return r
	}
	path, alias, ok := resolver.Resolve()
	if !ok {
		return r
	}
	loaded, err := repository.New().
		AddUTF8Font(alias, fontstyle.Normal, path).
		AddUTF8Font(alias, fontstyle.Bold, path).
		AddUTF8Font(alias, fontstyle.Italic, path).
		AddUTF8Font(alias, fontstyle.BoldItalic, path).
		Load()
	if err != nil {
		return r
	}
	r.customFonts = loaded
	r.fontFamily = alias
	return r
}

// Render produces PDF bytes for the document. Multi-page inputs map one
// source page to one output page; single-page inputs flow and break
// automatically.
func (r *Renderer) Render(doc *document.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	dec := r.planOrientation(doc)
	m := r.newEngine(dec.Strategy != layout.FitPortrait)

	if len(doc.Pages) > 1 {
		for _, p := range doc.Pages {
			m.AddPages(page.New().Add(r.pageRows(p, dec)...))
		}
	} else {
		m.AddRows(r.pageRows(doc.Pages[0], dec)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func (r *Renderer) newEngine(landscape bool) core.Maroto {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(marginMM).
		WithRightMargin(marginMM).
		WithTopMargin(marginMM).
		WithBottomMargin(marginMM)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	if len(r.customFonts) > 0 {
		b = b.WithCustomFonts(r.customFonts).
			WithDefaultFont(&props.Font{Family: r.fontFamily})
	}
	return maroto.New(b.Build())
}

// planOrientation runs the page-fit decision against the widest table in
// the document.
func (r *Renderer) planOrientation(doc *document.Document) layout.Decision {
	widest := 0.0
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Kind != document.KindTable {
				continue
			}
			w := layout.TotalWidth(r.tableWidths(*b.Table))
			if w > widest {
				widest = w
			}
		}
	}
	if widest == 0 {
		return layout.Decision{Strategy: layout.FitPortrait, Scale: 1}
	}
	return layout.Decide(widest, PortraitAvailPt, LandscapeAvailPt,
		layout.DefaultScaleTolerance, bodyFontSize)
}

func (r *Renderer) tableWidths(t document.Table) []float64 {
	if len(t.ColWidths) == t.Columns() && t.Columns() > 0 {
		return t.ColWidths
	}
	return layout.EstimateColumnWidths(t.Cells, bodyFontSize, layout.WidthOptions{})
}

func (r *Renderer) pageRows(p document.Page, dec layout.Decision) []core.Row {
	var rows []core.Row
	for _, b := range p.Blocks {
		switch b.Kind {
		case document.KindText:
			rows = append(rows, r.textRow(*b.Text))
		case document.KindTable:
			rows = append(rows, r.tableRows(*b.Table, dec)...)
		case document.KindImage:
			rows = append(rows, r.imageRow(b))
		}
	}
	return rows
}

func (r *Renderer) textRow(run document.TextRun) core.Row {
	size := run.FontSize
	if size <= 0 {
		size = bodyFontSize
	}
	style := fontstyle.Normal
	if run.Bold || run.HeadingLevel > 0 {
		style = fontstyle.Bold
	}
	p := props.Text{
		Size:  size,
		Style: style,
		Align: alignOf(run.Align),
		Top:   1,
	}
	if run.Color != (document.RGB{}) {
		p.Color = &props.Color{Red: int(run.Color.R), Green: int(run.Color.G), Blue: int(run.Color.B)}
	}
	content := run.Prefix + run.Text
	height := ptToMM(size*tableLineFactor) + 2
	if run.HeadingLevel > 0 {
		height += 2
	}
	return row.New(height).Add(col.New(maxGridCols).Add(text.New(content, p)))
}

// tableRows renders one table, splitting it into side-by-side column
// groups when the page-fit decision calls for it.
func (r *Renderer) tableRows(t document.Table, dec layout.Decision) []core.Row {
	if t.Columns() == 0 {
		return nil
	}
	widths := r.tableWidths(t)
	fontSize := bodyFontSize
	if dec.Strategy == layout.ScaleLandscape {
		fontSize = math.Max(fontSize*dec.Scale, layout.MinFontSize)
	}

	avail := LandscapeAvailPt
	if dec.Strategy == layout.FitPortrait {
		avail = PortraitAvailPt
	}

	var parts []layout.Slice
	if dec.Strategy == layout.SplitLandscape {
		parts = layout.SplitColumns(widths, avail)
	} else {
		parts = []layout.Slice{{Start: 0, End: len(widths), Widths: widths}}
	}
	parts = chunkParts(parts, maxGridCols)

	var rows []core.Row
	for pi, part := range parts {
		if len(parts) > 1 {
			label := fmt.Sprintf("Part %d of %d (columns %d-%d)",
				pi+1, len(parts), part.Start+1, part.End)
			rows = append(rows, row.New(6).Add(col.New(maxGridCols).Add(
				text.New(label, props.Text{Size: fontSize - 1, Style: fontstyle.Italic, Top: 1}),
			)))
		}
		units := gridUnits(part.Widths)
		for ri, cells := range t.Cells {
			rows = append(rows, r.tableDataRow(t, part, units, ri, cells, fontSize))
		}
		rows = append(rows, row.New(2))
	}
	return rows
}

func (r *Renderer) tableDataRow(t document.Table, part layout.Slice, units []int, ri int, cells []string, fontSize float64) core.Row {
	height := 6.0
	cols := make([]core.Col, 0, part.End-part.Start)
	for ci := part.Start; ci < part.End; ci++ {
		var cellText string
		if ci < len(cells) {
			cellText = cells[ci]
		}

		colWidthPt := part.Widths[ci-part.Start]
		lines := 1.0
		if colWidthPt > layout.DefaultCellPadding {
			needed := r.measurer.TextWidth(cellText, fontSize)
			lines = math.Max(1, math.Ceil(needed/(colWidthPt-layout.DefaultCellPadding)))
		}
		if h := ptToMM(lines*fontSize*tableLineFactor) + 2; h > height {
			height = h
		}

		header := t.HasHeader && ri == 0
		style := fontstyle.Normal
		if header {
			style = fontstyle.Bold
		}
		cell := &props.Cell{BorderType: border.Full}
		if header {
			cell.BackgroundColor = &props.Color{Red: headerFillGray, Green: headerFillGray, Blue: headerFillGray}
		} else if fill, ok := t.CellFill[[2]int{ri, ci}]; ok {
			cell.BackgroundColor = &props.Color{Red: int(fill.R), Green: int(fill.G), Blue: int(fill.B)}
		}

		cols = append(cols, col.New(units[ci-part.Start]).Add(
			text.New(cellText, props.Text{Size: fontSize, Style: style, Top: 1, Left: 1, Right: 1}),
		).WithStyle(cell))
	}
	return row.New(height).Add(cols...)
}

func (r *Renderer) imageRow(b document.Block) core.Row {
	heightPt := float64(b.Image.Height) * 72 / 96
	if heightPt <= 0 {
		heightPt = b.BBox.Height()
	}
	if heightPt <= 0 {
		heightPt = 170 // roughly 60mm
	}
	img := image.NewFromBytes(b.Image.Data, extFor(b.Image.Format), props.Rect{
		Center:  true,
		Percent: 100,
	})
	return row.New(ptToMM(heightPt) + 2).Add(col.New(maxGridCols).Add(img))
}

func alignOf(a document.Alignment) align.Type {
	switch a {
	case document.AlignCenter:
		return align.Center
	case document.AlignRight:
		return align.Right
	case document.AlignJustify:
		return align.Justify
	default:
		return align.Left
	}
}

func extFor(format string) extension.Type {
	switch format {
	case "jpg", "jpeg":
		return extension.Jpg
	default:
		return extension.Png
	}
}

// chunkParts further splits any column slice wider than the grid allows.
func chunkParts(parts []layout.Slice, maxCols int) []layout.Slice {
	var out []layout.Slice
	for _, p := range parts {
		for start := 0; start < len(p.Widths); start += maxCols {
			end := start + maxCols
			if end > len(p.Widths) {
				end = len(p.Widths)
			}
			out = append(out, layout.Slice{
				Start:  p.Start + start,
				End:    p.Start + end,
				Widths: p.Widths[start:end],
			})
		}
	}
	return out
}

// gridUnits distributes the 12-unit grid across columns proportionally
// to their point widths, each column getting at least one unit. Largest
// remainders win the leftover units.
func gridUnits(widths []float64) []int {
	n := len(widths)
	if n == 0 {
		return nil
	}
	total := layout.TotalWidth(widths)
	if total <= 0 {
		total = float64(n)
		widths = make([]float64, n)
		for i := range widths {
			widths[i] = 1
		}
	}

	units := make([]int, n)
	type rem struct {
		idx  int
		frac float64
	}
	remainders := make([]rem, n)
	used := 0
	for i, w := range widths {
		exact := w / total * float64(maxGridCols)
		units[i] = int(exact)
		if units[i] < 1 {
			units[i] = 1
		}
		remainders[i] = rem{idx: i, frac: exact - math.Floor(exact)}
		used += units[i]
	}

	for used > maxGridCols {
		// Shrink the widest columns first.
		widest := 0
		for i := 1; i < n; i++ {
			if units[i] > units[widest] {
				widest = i
			}
		}
		if units[widest] <= 1 {
			break
		}
		units[widest]--
		used--
	}
	for used < maxGridCols {
		// Hand leftover units to the columns with the largest remainders.
		best := -1
		for j := 0; j < n; j++ {
			if best == -1 || remainders[j].frac > remainders[best].frac {
				best = j
			}
		}
		units[remainders[best].idx]++
		remainders[best].frac = -1
		used++
	}
	return units
}
