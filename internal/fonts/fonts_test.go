package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMeasurer_TextWidthMonotone(t *testing.T) {
	var m Measurer
	short := m.TextWidth("ab", 10)
	long := m.TextWidth("abcdef", 10)
	if long <= short {
		t.Errorf("longer text must measure wider: %v <= %v", long, short)
	}
}

func TestMeasurer_CJKWiderThanASCII(t *testing.T) {
	var m Measurer
	ascii := m.TextWidth("ab", 12)
	cjk := m.TextWidth("表格", 12)
	if cjk <= ascii {
		t.Errorf("CJK runes should measure wider than the same count of ASCII runes")
	}
	if cjk != 24 {
		t.Errorf("two CJK runes at 12pt should measure a full em each, got %v", cjk)
	}
}

func TestMeasurer_EmptyString(t *testing.T) {
	var m Measurer
	if got := m.TextWidth("", 12); got != 0 {
		t.Errorf("empty string width = %v, want 0", got)
	}
}

func TestResolver_FindsRankedCandidate(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "simhei.ttf")
	if err := os.WriteFile(fontPath, []byte("stub"), 0o600); err != nil {
		t.Fatalf("write stub font: %v", err)
	}

	r := NewResolver(dir).WithCandidates([]Candidate{
		{FileName: "missing.ttf", Alias: "Missing"},
		{FileName: "simhei.ttf", Alias: "SimHei"},
	})

	path, alias, ok := r.Resolve()
	if !ok {
		t.Fatalf("expected resolver to find stub font")
	}
	if path != fontPath || alias != "SimHei" {
		t.Errorf("got (%s, %s), want (%s, SimHei)", path, alias, fontPath)
	}
}

func TestResolver_NoCandidateFound(t *testing.T) {
	r := NewResolver(t.TempDir()).WithCandidates([]Candidate{
		{FileName: "nope.ttf", Alias: "Nope"},
	})
	if _, _, ok := r.Resolve(); ok {
		t.Errorf("resolver should report no candidate found")
	}
}
