package pdfio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docfold/mcp-doc-convert/internal/document"
)

// Extraction tuning. Row tolerance groups characters whose baselines sit
// within a few points of each other; the gap threshold separates table
// cells from ordinary word spacing.
const (
	defaultRowTolerance     = 3.0
	defaultColumnGap        = 30.0
	defaultWordSpaceFactor  = 0.3
	defaultHeadingRatio     = 1.3
	minTableRows            = 2
	minTableCols            = 2
	headingAlignmentSlackPt = 6.0
)

// Reader extracts positioned text from PDF files and reconstructs a
// block-level document model from it.
type Reader struct {
	RowTolerance    float64
	ColumnGap       float64
	WordSpaceFactor float64
}

func NewReader() *Reader {
	return &Reader{
		RowTolerance:    defaultRowTolerance,
		ColumnGap:       defaultColumnGap,
		WordSpaceFactor: defaultWordSpaceFactor,
	}
}

// line is one reconstructed text row with top-down coordinates.
type line struct {
	segments []segment
	bbox     document.BBox
	fontSize float64
}

// segment is a horizontally contiguous run of characters within a line.
type segment struct {
	text     string
	x0, x1   float64
	fontSize float64
}

// Read parses the PDF at path and returns its pages as ordered blocks.
// Table regions are detected from aligned multi-segment rows; everything
// else becomes one text block per line.
func (r *Reader) Read(path string) (*document.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open PDF: %w", err)
	}
	defer f.Close()

	doc := &document.Document{}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		mb := page.V.Key("MediaBox")
		pageW, pageH := 595.28, 841.89
		if mb.Len() == 4 {
			pageW = mb.Index(2).Float64() - mb.Index(0).Float64()
			pageH = mb.Index(3).Float64() - mb.Index(1).Float64()
		}

		lines := r.extractLines(page, pageH)
		blocks := r.detectBlocks(lines)
		doc.Pages = append(doc.Pages, document.Page{
			WidthPt:  pageW,
			HeightPt: pageH,
			Blocks:   document.MergeReadOrder(blocks, document.DefaultTableOverlapFraction),
		})
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no readable pages in %s", path)
	}
	markHeadings(doc)
	return doc, nil
}

// extractLines groups the page's positioned characters into rows and the
// rows into gap-separated segments. Coordinates are flipped so Y grows
// downward.
func (r *Reader) extractLines(page pdf.Page, pageHeight float64) []line {
	texts := filterTexts(page.Content().Text)
	if len(texts) == 0 {
		return nil
	}

	rows := r.groupIntoRows(texts)
	lines := make([]line, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		lines = append(lines, r.buildLine(row, pageHeight))
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].bbox.Y0 < lines[j].bbox.Y0 })
	return lines
}

func filterTexts(texts []pdf.Text) []pdf.Text {
	filtered := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if s := strings.TrimSpace(t.S); s != "" && s != "\n" {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (r *Reader) groupIntoRows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}
	var buckets []bucket
	for _, t := range texts {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-r.RowTolerance && t.Y <= buckets[i].yMax+r.RowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}
	// PDF Y grows upward, so higher Y renders first.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })
	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.texts
	}
	return rows
}

// buildLine joins a sorted row into segments. Gaps wider than ColumnGap
// start a new segment; gaps wider than WordSpaceFactor*fontSize become a
// single space.
func (r *Reader) buildLine(row []pdf.Text, pageHeight float64) line {
	ln := line{fontSize: row[0].FontSize}
	var sb strings.Builder
	segX0 := row[0].X
	prevEnd := row[0].X
	yTop, yBot := row[0].Y, row[0].Y

	flush := func(x1 float64) {
		if sb.Len() > 0 {
			ln.segments = append(ln.segments, segment{
				text:     sb.String(),
				x0:       segX0,
				x1:       x1,
				fontSize: ln.fontSize,
			})
			sb.Reset()
		}
	}

	for i, t := range row {
		if t.Y > yTop {
			yTop = t.Y
		}
		if t.Y < yBot {
			yBot = t.Y
		}
		if t.FontSize > ln.fontSize {
			ln.fontSize = t.FontSize
		}
		if i > 0 {
			gap := t.X - prevEnd
			if gap > r.ColumnGap {
				flush(prevEnd)
				segX0 = t.X
			} else if gap > r.WordSpaceFactor*maxFloat(t.FontSize, 1) && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flush(prevEnd)

	if len(ln.segments) > 0 {
		first, last := ln.segments[0], ln.segments[len(ln.segments)-1]
		ln.bbox = document.BBox{
			X0: first.x0,
			Y0: pageHeight - yTop - ln.fontSize,
			X1: last.x1,
			Y1: pageHeight - yBot,
		}
	}
	return ln
}

// detectBlocks walks the ordered lines, folding runs of aligned
// multi-segment lines into tables and emitting the rest as text blocks.
func (r *Reader) detectBlocks(lines []line) []document.Block {
	var blocks []document.Block
	seq := 0

	i := 0
	for i < len(lines) {
		run := r.tableRun(lines, i)
		if run > 0 {
			blocks = append(blocks, r.tableBlock(lines[i:i+run], seq))
			seq++
			i += run
			continue
		}
		ln := lines[i]
		text := ln.segments[0].text
		for _, s := range ln.segments[1:] {
			text += "  " + s.text
		}
		blocks = append(blocks, document.NewTextBlock(ln.bbox, seq, document.TextRun{
			Text:     text,
			FontSize: ln.fontSize,
		}))
		seq++
		i++
	}
	return blocks
}

// tableRun returns how many consecutive lines starting at i form a table
// candidate: each line has at least minTableCols segments and the segment
// start positions agree within the column gap threshold.
func (r *Reader) tableRun(lines []line, i int) int {
	if len(lines[i].segments) < minTableCols {
		return 0
	}
	ref := segmentStarts(lines[i])
	run := 1
	for j := i + 1; j < len(lines); j++ {
		if len(lines[j].segments) < minTableCols {
			break
		}
		if !startsAligned(ref, segmentStarts(lines[j])) {
			break
		}
		run++
	}
	if run < minTableRows {
		return 0
	}
	return run
}

func segmentStarts(ln line) []float64 {
	starts := make([]float64, len(ln.segments))
	for i, s := range ln.segments {
		starts[i] = s.x0
	}
	return starts
}

func startsAligned(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if diff := a[i] - b[i]; diff > headingAlignmentSlackPt || diff < -headingAlignmentSlackPt {
			return false
		}
	}
	return true
}

func (r *Reader) tableBlock(run []line, seq int) document.Block {
	bbox := run[0].bbox
	cells := make([][]string, len(run))
	for i, ln := range run {
		row := make([]string, len(ln.segments))
		for j, s := range ln.segments {
			row[j] = s.text
		}
		cells[i] = row
		if ln.bbox.X0 < bbox.X0 {
			bbox.X0 = ln.bbox.X0
		}
		if ln.bbox.X1 > bbox.X1 {
			bbox.X1 = ln.bbox.X1
		}
		if ln.bbox.Y1 > bbox.Y1 {
			bbox.Y1 = ln.bbox.Y1
		}
	}
	return document.NewTableBlock(bbox, seq, document.Table{Cells: cells, HasHeader: true})
}

// markHeadings flags text blocks whose font size stands clearly above the
// dominant body size. The two largest distinct sizes map to heading
// levels 1 and 2.
func markHeadings(doc *document.Document) {
	sizeCount := map[float64]int{}
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			if b.Kind == document.KindText && b.Text.FontSize > 0 {
				sizeCount[b.Text.FontSize]++
			}
		}
	}
	body, bodyCount := 0.0, 0
	for size, n := range sizeCount {
		if n > bodyCount || (n == bodyCount && size < body) {
			body, bodyCount = size, n
		}
	}
	if body == 0 {
		return
	}

	var larger []float64
	for size := range sizeCount {
		if size >= body*defaultHeadingRatio {
			larger = append(larger, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(larger)))
	level := map[float64]int{}
	for i, size := range larger {
		if i >= 2 {
			break
		}
		level[size] = i + 1
	}

	for pi := range doc.Pages {
		for bi := range doc.Pages[pi].Blocks {
			b := &doc.Pages[pi].Blocks[bi]
			if b.Kind != document.KindText {
				continue
			}
			if lvl, ok := level[b.Text.FontSize]; ok {
				b.Text.HeadingLevel = lvl
			}
		}
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
