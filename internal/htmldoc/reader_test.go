package htmldoc

import (
	"strings"
	"testing"

	"github.com/docfold/mcp-doc-convert/internal/document"
)

func parse(t *testing.T, src string) []document.Block {
	t.Helper()
	blocks, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return blocks
}

func TestParse_HeadingsAndParagraphs(t *testing.T) {
	blocks := parse(t, `<html><body><h1>Title</h1><p>First para.</p><h2>Sub</h2></body></html>`)

	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0].Text.HeadingLevel != 1 || blocks[0].Text.Text != "Title" {
		t.Errorf("h1 block = %+v", blocks[0].Text)
	}
	if blocks[1].Text.HeadingLevel != 0 || blocks[1].Text.Text != "First para." {
		t.Errorf("paragraph block = %+v", blocks[1].Text)
	}
	if blocks[2].Text.HeadingLevel != 2 {
		t.Errorf("h2 level = %d", blocks[2].Text.HeadingLevel)
	}
}

func TestParse_SkipsScriptAndStyle(t *testing.T) {
	blocks := parse(t, `<html><head><style>p{}</style></head><body><script>var x=1;</script><p>kept</p></body></html>`)

	if len(blocks) != 1 || blocks[0].Text.Text != "kept" {
		t.Fatalf("script/style content leaked into output: %+v", blocks)
	}
}

func TestParse_Table(t *testing.T) {
	blocks := parse(t, `<table><tr><th>a</th><th>b</th></tr><tr><td>1</td><td>2</td></tr></table>`)

	if len(blocks) != 1 || blocks[0].Kind != document.KindTable {
		t.Fatalf("expected a single table block, got %+v", blocks)
	}
	tbl := blocks[0].Table
	if !tbl.HasHeader {
		t.Errorf("th row should mark the table as having a header")
	}
	if len(tbl.Cells) != 2 || tbl.Cells[1][1] != "2" {
		t.Errorf("cells = %v", tbl.Cells)
	}
}

func TestParse_Lists(t *testing.T) {
	blocks := parse(t, `<ol><li>one</li><li>two</li></ol><ul><li>dot</li></ul>`)

	if len(blocks) != 3 {
		t.Fatalf("expected 3 list item blocks, got %d", len(blocks))
	}
	if blocks[0].Text.Prefix != "1. " || blocks[1].Text.Prefix != "2. " {
		t.Errorf("ordered prefixes = %q, %q", blocks[0].Text.Prefix, blocks[1].Text.Prefix)
	}
	if blocks[2].Text.Prefix != "• " {
		t.Errorf("unordered prefix = %q", blocks[2].Text.Prefix)
	}
}

func TestParse_DataURIImage(t *testing.T) {
	// 1x1 transparent GIF.
	src := `<img src="data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7" width="1" height="1">`
	blocks := parse(t, src)

	if len(blocks) != 1 || blocks[0].Kind != document.KindImage {
		t.Fatalf("expected image block, got %+v", blocks)
	}
	img := blocks[0].Image
	if img.Format != "gif" || len(img.Data) == 0 {
		t.Errorf("image = format %q, %d bytes", img.Format, len(img.Data))
	}
}

func TestParse_RemoteImageIgnored(t *testing.T) {
	blocks := parse(t, `<img src="https://example.com/x.png"><p>text</p>`)
	for _, b := range blocks {
		if b.Kind == document.KindImage {
			t.Errorf("remote images must be ignored")
		}
	}
}

func TestParse_BlocksOrderedByPosition(t *testing.T) {
	blocks := parse(t, `<p>one</p><p>two</p><p>three</p>`)
	for i := 1; i < len(blocks); i++ {
		if blocks[i].BBox.Y0 <= blocks[i-1].BBox.Y0 {
			t.Errorf("synthesized positions must increase with source order")
		}
	}
}
