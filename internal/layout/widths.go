// Package layout computes page geometry for table rendering: per-column
// width estimation, page-fit strategy selection, and column-wise splitting
// of tables too wide for any single page.
package layout

import "github.com/docfold/mcp-doc-convert/internal/fonts"

const (
	// DefaultMinColWidth and DefaultMaxColWidth clamp every estimated
	// column width, in points.
	DefaultMinColWidth = 30.0
	DefaultMaxColWidth = 200.0

	// DefaultCellPadding is added to each measured cell width.
	DefaultCellPadding = 8.0

	// DefaultSampleRows bounds the number of rows measured per table so
	// very tall tables stay cheap.
	DefaultSampleRows = 100
)

// WidthOptions tunes column width estimation. The zero value selects the
// defaults above.
type WidthOptions struct {
	MinColWidth float64
	MaxColWidth float64
	CellPadding float64
	SampleRows  int
}

func (o WidthOptions) withDefaults() WidthOptions {
	if o.MinColWidth <= 0 {
		o.MinColWidth = DefaultMinColWidth
	}
	if o.MaxColWidth <= 0 {
		o.MaxColWidth = DefaultMaxColWidth
	}
	if o.CellPadding <= 0 {
		o.CellPadding = DefaultCellPadding
	}
	if o.SampleRows <= 0 {
		o.SampleRows = DefaultSampleRows
	}
	return o
}

// EstimateColumnWidths returns one width per column, computed as the
// column-wise maximum of sampled cell text widths plus padding, clamped to
// [MinColWidth, MaxColWidth]. Widths hitting the max signal that cell
// content wraps rather than forcing a wider column. An empty table yields an
// empty slice.
func EstimateColumnWidths(cells [][]string, fontSize float64, opts WidthOptions) []float64 {
	opts = opts.withDefaults()

	cols := 0
	for _, row := range cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	var m fonts.Measurer
	widths := make([]float64, cols)

	rows := cells
	if len(rows) > opts.SampleRows {
		rows = rows[:opts.SampleRows]
	}
	for _, row := range rows {
		for c, cell := range row {
			if w := m.TextWidth(cell, fontSize) + opts.CellPadding; w > widths[c] {
				widths[c] = w
			}
		}
	}

	for c := range widths {
		if widths[c] < opts.MinColWidth {
			widths[c] = opts.MinColWidth
		}
		if widths[c] > opts.MaxColWidth {
			widths[c] = opts.MaxColWidth
		}
	}
	return widths
}

// TotalWidth sums a width vector.
func TotalWidth(widths []float64) float64 {
	var total float64
	for _, w := range widths {
		total += w
	}
	return total
}
