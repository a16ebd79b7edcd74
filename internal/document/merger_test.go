package document

import "testing"

func TestMergeReadOrder_DropsTextInsideTable(t *testing.T) {
	table := NewTableBlock(BBox{X0: 0, Y0: 100, X1: 300, Y1: 300}, 0, Table{
		Cells: [][]string{{"a", "b"}},
	})
	inside := NewTextBlock(BBox{X0: 10, Y0: 110, X1: 100, Y1: 130}, 1, TextRun{Text: "a"})
	outside := NewTextBlock(BBox{X0: 10, Y0: 400, X1: 100, Y1: 420}, 2, TextRun{Text: "after"})

	merged := MergeReadOrder([]Block{table, inside, outside}, 0.7)

	if len(merged) != 2 {
		t.Fatalf("expected 2 blocks after merge, got %d", len(merged))
	}
	for _, b := range merged {
		if b.Kind == KindText && b.Text.Text == "a" {
			t.Errorf("text fully contained in table region should be dropped")
		}
	}
}

func TestMergeReadOrder_KeepsDisjointText(t *testing.T) {
	table := NewTableBlock(BBox{X0: 0, Y0: 100, X1: 300, Y1: 300}, 0, Table{})
	text := NewTextBlock(BBox{X0: 0, Y0: 0, X1: 100, Y1: 20}, 1, TextRun{Text: "title"})

	merged := MergeReadOrder([]Block{table, text}, 0.7)

	if len(merged) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(merged))
	}
	if merged[0].Kind != KindText {
		t.Errorf("text above table should sort first, got kind %v", merged[0].Kind)
	}
}

func TestMergeReadOrder_PartialOverlapBelowThresholdKept(t *testing.T) {
	table := NewTableBlock(BBox{X0: 0, Y0: 0, X1: 100, Y1: 100}, 0, Table{})
	// Overlap is 50x100 = half of the text block's 100x100 area.
	text := NewTextBlock(BBox{X0: 50, Y0: 0, X1: 150, Y1: 100}, 1, TextRun{Text: "edge"})

	merged := MergeReadOrder([]Block{table, text}, 0.7)

	if len(merged) != 2 {
		t.Fatalf("50%% overlap is below the 70%% threshold; block should be kept")
	}
}

func TestMergeReadOrder_StableOnEqualTop(t *testing.T) {
	a := NewTextBlock(BBox{X0: 0, Y0: 10, X1: 50, Y1: 20}, 0, TextRun{Text: "left"})
	b := NewTextBlock(BBox{X0: 60, Y0: 10, X1: 110, Y1: 20}, 1, TextRun{Text: "right"})

	merged := MergeReadOrder([]Block{a, b}, 0.7)

	if merged[0].Text.Text != "left" || merged[1].Text.Text != "right" {
		t.Errorf("equal top coordinates must keep discovery order")
	}
}

func TestBBoxIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     BBox
		wantArea float64
	}{
		{"disjoint", BBox{0, 0, 10, 10}, BBox{20, 20, 30, 30}, 0},
		{"contained", BBox{0, 0, 10, 10}, BBox{2, 2, 4, 4}, 4},
		{"partial", BBox{0, 0, 10, 10}, BBox{5, 5, 15, 15}, 25},
		{"touching edge", BBox{0, 0, 10, 10}, BBox{10, 0, 20, 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b).Area(); got != tt.wantArea {
				t.Errorf("intersect area = %v, want %v", got, tt.wantArea)
			}
		})
	}
}
