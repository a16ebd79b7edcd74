// Package document defines the shared in-memory model that every converter
// reads into and renders out of: positioned blocks of text, tables, and
// images grouped into pages. All values live only for the duration of one
// conversion.
package document

import "math"

// BBox is an axis-aligned bounding box in points. Y grows downward, so Y0 is
// the top edge.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Area returns the area of the box, or 0 for degenerate boxes.
func (b BBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Intersect returns the overlapping region of two boxes. The zero BBox is
// returned when they do not overlap.
func (b BBox) Intersect(o BBox) BBox {
	x0 := math.Max(b.X0, o.X0)
	y0 := math.Max(b.Y0, o.Y0)
	x1 := math.Min(b.X1, o.X1)
	y1 := math.Min(b.Y1, o.Y1)
	if x0 >= x1 || y0 >= y1 {
		return BBox{}
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Kind identifies the payload carried by a Block.
type Kind int

const (
	KindText Kind = iota
	KindTable
	KindImage
)

// Alignment mirrors the source document's paragraph alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// RGB is a 24-bit color. The zero value is black.
type RGB struct {
	R, G, B uint8
}

// TextRun is a positioned run of text with resolved style attributes.
type TextRun struct {
	Text         string
	FontSize     float64
	Bold         bool
	Color        RGB
	Align        Alignment
	HeadingLevel int    // 1-based heading level, 0 for body text
	Prefix       string // numbering prefix such as "1. " or "• "
}

// Table is a 2-D grid of cell strings. The first row is treated as the
// header when HasHeader is set. ColWidths carries source-declared widths in
// points when the format provides them; converters recompute widths when it
// is empty.
type Table struct {
	Cells     [][]string
	CellFill  map[[2]int]RGB // sparse per-cell background fill
	ColWidths []float64
	HasHeader bool
}

// Columns returns the widest row length in the grid.
func (t *Table) Columns() int {
	cols := 0
	for _, row := range t.Cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Image is raw encoded image data plus its pixel dimensions.
type Image struct {
	Data   []byte
	Format string // "png", "jpeg", ...
	Width  int
	Height int
}

// Block is one positioned unit of extracted content. Seq records the source
// discovery order and breaks ties in read-order sorting.
type Block struct {
	Kind  Kind
	BBox  BBox
	Seq   int
	Text  *TextRun
	Table *Table
	Image *Image
}

// Page is a fixed-size page holding blocks in read order.
type Page struct {
	WidthPt  float64
	HeightPt float64
	Blocks   []Block
}

// Document is an ordered sequence of pages.
type Document struct {
	Pages []Page
}

// NewTextBlock builds a text block at the given position.
func NewTextBlock(bbox BBox, seq int, run TextRun) Block {
	return Block{Kind: KindText, BBox: bbox, Seq: seq, Text: &run}
}

// NewTableBlock builds a table block at the given position.
func NewTableBlock(bbox BBox, seq int, table Table) Block {
	return Block{Kind: KindTable, BBox: bbox, Seq: seq, Table: &table}
}

// NewImageBlock builds an image block at the given position.
func NewImageBlock(bbox BBox, seq int, img Image) Block {
	return Block{Kind: KindImage, BBox: bbox, Seq: seq, Image: &img}
}
