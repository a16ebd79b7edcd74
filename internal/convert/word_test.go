package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/docx"
)

func writeWordFixture(t *testing.T, dir string) string {
	t.Helper()
	w := docx.NewWriter()
	w.AddParagraph(document.TextRun{Text: "Overview", HeadingLevel: 1, FontSize: 18})
	w.AddParagraph(document.TextRun{Text: "Plain body paragraph.", FontSize: 11})
	w.AddParagraph(document.TextRun{Text: "Details", HeadingLevel: 3, FontSize: 14})
	w.AddTable(document.Table{
		Cells:     [][]string{{"key", "value"}, {"mode", "fast"}},
		HasHeader: true,
	}, []float64{100, 100})

	path := filepath.Join(dir, "report.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Save(f))
	require.NoError(t, f.Close())
	return path
}

func TestWordToText(t *testing.T) {
	svc, dir := newTestService(t)
	path := writeWordFixture(t, dir)

	res, err := svc.WordToText(WordToTextRequest{Path: path})
	require.NoError(t, err)
	require.Equal(t, 1, res.Tables)

	data, err := os.ReadFile(res.Output.Path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "Overview\n")
	require.Contains(t, text, "Plain body paragraph.\n")
	require.Contains(t, text, "key\tvalue\n")
	require.Contains(t, text, "mode\tfast\n")
}

func TestWordToPDF_OutlineClamped(t *testing.T) {
	svc, dir := newTestService(t)
	path := writeWordFixture(t, dir)

	res, err := svc.WordToPDF(WordToPDFRequest{Path: path})
	require.NoError(t, err)
	require.Equal(t, 1, res.Tables)

	data, err := os.ReadFile(res.Output.Path)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))

	// H1 then H3: the second heading may only nest one level deeper.
	require.Equal(t, []OutlineEntry{
		{Level: 1, Text: "Overview"},
		{Level: 2, Text: "Details"},
	}, res.Outline)
}

func TestWordToText_RejectsNonDocx(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a docx"), 0o644))

	_, err := svc.WordToText(WordToTextRequest{Path: path})
	require.Error(t, err)
}

func TestPathValidator_BlocksEscapes(t *testing.T) {
	dir := t.TempDir()
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	inside := filepath.Join(dir, "ok.csv")
	require.NoError(t, os.WriteFile(inside, []byte("x"), 0o644))
	require.NoError(t, v.ValidatePath(inside))

	outside := filepath.Join(dir, "..", "escape.csv")
	err = v.ValidatePath(outside)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "outside configured directory"))
}
