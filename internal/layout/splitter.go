package layout

// Slice is one contiguous column range [Start, End) of a split table,
// rendered as its own sub-table with the header row repeated.
type Slice struct {
	Start  int
	End    int
	Widths []float64 // per-column widths, capped where a column exceeded the limit
}

// SplitColumns partitions the column index range [0, len(widths)) into
// contiguous groups whose summed width fits maxWidth, greedily left to
// right. A single column wider than maxWidth is capped to maxWidth so the
// split always makes progress; its content wraps or clips when rendered.
// Zero columns yield no slices and the caller skips the table.
func SplitColumns(widths []float64, maxWidth float64) []Slice {
	if len(widths) == 0 || maxWidth <= 0 {
		return nil
	}

	var slices []Slice
	start := 0
	var acc float64
	var cur []float64

	flush := func(end int) {
		if end > start {
			slices = append(slices, Slice{Start: start, End: end, Widths: cur})
		}
	}

	for i, w := range widths {
		if w > maxWidth {
			w = maxWidth
		}
		if acc+w > maxWidth && len(cur) > 0 {
			flush(i)
			start = i
			acc = 0
			cur = nil
		}
		acc += w
		cur = append(cur, w)
	}
	flush(len(widths))

	return slices
}
