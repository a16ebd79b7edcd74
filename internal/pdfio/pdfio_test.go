package pdfio

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/require"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/layout"
)

func chars(y float64, startX float64, s string, fontSize float64) []pdf.Text {
	out := make([]pdf.Text, 0, len(s))
	x := startX
	for _, r := range s {
		w := fontSize * 0.5
		out = append(out, pdf.Text{S: string(r), X: x, Y: y, W: w, FontSize: fontSize})
		x += w
	}
	return out
}

func TestGroupIntoRows_ToleranceAndOrder(t *testing.T) {
	r := NewReader()
	texts := append(chars(700, 72, "top", 10), chars(500, 72, "bottom", 10)...)
	// Shifted slightly in Y but within tolerance of the first row.
	texts = append(texts, chars(701.5, 120, "x", 10)...)

	rows := r.groupIntoRows(texts)
	require.Len(t, rows, 2)
	// Higher PDF Y comes first (top of page).
	require.Len(t, rows[0], 4)
	require.Len(t, rows[1], 6)
}

func TestBuildLine_WordSpacingAndSegments(t *testing.T) {
	r := NewReader()
	row := chars(700, 72, "ab", 10)
	// Word gap: 4pt > 0.3*10.
	row = append(row, chars(700, row[len(row)-1].X+row[len(row)-1].W+4, "cd", 10)...)
	// Column gap: 60pt starts a new segment.
	row = append(row, chars(700, 200, "ef", 10)...)

	ln := r.buildLine(row, 841.89)
	require.Len(t, ln.segments, 2)
	require.Equal(t, "ab cd", ln.segments[0].text)
	require.Equal(t, "ef", ln.segments[1].text)
	require.InDelta(t, 72, ln.bbox.X0, 0.01)
}

func TestDetectBlocks_TableFromAlignedRows(t *testing.T) {
	r := NewReader()
	makeLine := func(y float64, cells ...string) line {
		var ln line
		x := 72.0
		for _, c := range cells {
			ln.segments = append(ln.segments, segment{text: c, x0: x, x1: x + 50, fontSize: 10})
			x += 100
		}
		ln.fontSize = 10
		ln.bbox = document.BBox{X0: 72, Y0: y, X1: x, Y1: y + 12}
		return ln
	}

	lines := []line{
		makeLine(100, "Header only line"),
		makeLine(120, "Name", "Qty"),
		makeLine(140, "Bolt", "12"),
		makeLine(160, "Nut", "40"),
		makeLine(180, "Closing paragraph"),
	}
	// Single-segment first and last lines stay text.
	lines[0].segments = lines[0].segments[:1]
	lines[4].segments = lines[4].segments[:1]

	blocks := r.detectBlocks(lines)
	require.Len(t, blocks, 3)
	require.Equal(t, document.KindText, blocks[0].Kind)
	require.Equal(t, document.KindTable, blocks[1].Kind)
	require.Equal(t, [][]string{{"Name", "Qty"}, {"Bolt", "12"}, {"Nut", "40"}}, blocks[1].Table.Cells)
	require.Equal(t, document.KindText, blocks[2].Kind)
}

func TestGridUnits(t *testing.T) {
	require.Equal(t, []int{6, 6}, gridUnits([]float64{100, 100}))
	require.Equal(t, []int{12}, gridUnits([]float64{80}))

	units := gridUnits([]float64{300, 100, 100})
	sum := 0
	for _, u := range units {
		sum += u
		require.GreaterOrEqual(t, u, 1)
	}
	require.Equal(t, 12, sum)
	require.Greater(t, units[0], units[1])

	// A tiny column still gets one unit.
	units = gridUnits([]float64{1000, 1, 1})
	require.Equal(t, 12, units[0]+units[1]+units[2])
	require.GreaterOrEqual(t, units[1], 1)
}

func TestChunkParts_SplitsWideSlices(t *testing.T) {
	widths := make([]float64, 20)
	for i := range widths {
		widths[i] = 40
	}
	parts := chunkParts([]layout.Slice{{Start: 0, End: 20, Widths: widths}}, 12)
	require.Len(t, parts, 2)
	require.Equal(t, 0, parts[0].Start)
	require.Equal(t, 12, parts[0].End)
	require.Equal(t, 12, parts[1].Start)
	require.Equal(t, 20, parts[1].End)
	require.Len(t, parts[1].Widths, 8)
}

func TestPageFromExtractName(t *testing.T) {
	page, ok := pageFromExtractName("report_3_Im1.png", "report")
	require.True(t, ok)
	require.Equal(t, 3, page)

	_, ok = pageFromExtractName("other_3_Im1.png", "report")
	require.False(t, ok)

	_, ok = pageFromExtractName("report_x_Im1.png", "report")
	require.False(t, ok)
}

func TestRender_ProducesPDFBytes(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{{
		WidthPt:  595.28,
		HeightPt: 841.89,
		Blocks: []document.Block{
			document.NewTextBlock(document.BBox{X0: 72, Y0: 72, X1: 300, Y1: 90}, 0,
				document.TextRun{Text: "Quarterly Report", FontSize: 16, HeadingLevel: 1}),
			document.NewTableBlock(document.BBox{X0: 72, Y0: 120, X1: 400, Y1: 180}, 1,
				document.Table{
					Cells:     [][]string{{"Region", "Total"}, {"North", "1200"}},
					HasHeader: true,
				}),
		},
	}}}

	out, err := NewRenderer(nil).Render(doc)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	require.Equal(t, "%PDF", string(out[:4]))
}

func TestRender_EmptyDocument(t *testing.T) {
	_, err := NewRenderer(nil).Render(&document.Document{})
	require.Error(t, err)
}

func TestPlanOrientation_WideTableGoesLandscape(t *testing.T) {
	wide := make([]string, 14)
	for i := range wide {
		wide[i] = "some wider header text"
	}
	doc := &document.Document{Pages: []document.Page{{
		Blocks: []document.Block{
			document.NewTableBlock(document.BBox{}, 0, document.Table{Cells: [][]string{wide}}),
		},
	}}}

	dec := NewRenderer(nil).planOrientation(doc)
	require.NotEqual(t, layout.FitPortrait, dec.Strategy)
}
