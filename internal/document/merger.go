package document

import "sort"

// DefaultTableOverlapFraction is the share of a text block's own area that
// must fall inside a table region before the block is treated as duplicated
// cell text and dropped.
const DefaultTableOverlapFraction = 0.7

// MergeReadOrder combines independently extracted blocks into one sequence
// suitable for sequential rendering. Text blocks that overlap a table region
// by more than overlapFraction of their own area are dropped so table cell
// text is not rendered twice as prose. The remaining blocks are sorted by
// top coordinate; ties keep discovery order.
//
// The sort is a heuristic: heavily overlapping multi-column layouts can
// still interleave incorrectly.
func MergeReadOrder(blocks []Block, overlapFraction float64) []Block {
	if overlapFraction <= 0 {
		overlapFraction = DefaultTableOverlapFraction
	}

	var tableBoxes []BBox
	for _, b := range blocks {
		if b.Kind == KindTable {
			tableBoxes = append(tableBoxes, b.BBox)
		}
	}

	merged := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind == KindText && coveredByAny(b.BBox, tableBoxes, overlapFraction) {
			continue
		}
		merged = append(merged, b)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].BBox.Y0 != merged[j].BBox.Y0 {
			return merged[i].BBox.Y0 < merged[j].BBox.Y0
		}
		return merged[i].Seq < merged[j].Seq
	})

	return merged
}

// coveredByAny reports whether box overlaps any region by more than the
// given fraction of its own area.
func coveredByAny(box BBox, regions []BBox, fraction float64) bool {
	area := box.Area()
	if area <= 0 {
		return false
	}
	for _, r := range regions {
		if box.Intersect(r).Area()/area > fraction {
			return true
		}
	}
	return false
}
