package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docfold/mcp-doc-convert/internal/docx"
)

const testHTML = `<html><head><title>x</title><script>ignored()</script></head>
<body>
<h1>Report</h1>
<p>Intro paragraph.</p>
<table><tr><th>col</th><th>val</th></tr><tr><td>a</td><td>1</td></tr></table>
</body></html>`

func TestHTMLToPDF(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(testHTML), 0o644))

	res, err := svc.HTMLToPDF(HTMLToPDFRequest{Path: path})
	require.NoError(t, err)
	require.Greater(t, res.Blocks, 2)

	data, err := os.ReadFile(res.Output.Path)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestHTMLToWord(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "page.htm")
	require.NoError(t, os.WriteFile(path, []byte(testHTML), 0o644))

	res, err := svc.HTMLToWord(HTMLToWordRequest{Path: path})
	require.NoError(t, err)

	r, err := docx.Open(res.Output.Path)
	require.NoError(t, err)
	defer r.Close()

	var sawHeading, sawTable bool
	for _, item := range r.Items() {
		switch {
		case item.Paragraph != nil && item.Paragraph.HeadingLevel == 1:
			sawHeading = true
			require.Equal(t, "Report", item.Paragraph.Text())
		case item.Table != nil:
			sawTable = true
			require.Equal(t, [][]string{{"col", "val"}, {"a", "1"}}, item.Table.Cells)
		}
	}
	require.True(t, sawHeading)
	require.True(t, sawTable)
}

func TestHTMLToPDF_NoContent(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "empty.html")
	require.NoError(t, os.WriteFile(path, []byte("<html><body></body></html>"), 0o644))

	_, err := svc.HTMLToPDF(HTMLToPDFRequest{Path: path})
	require.Error(t, err)
}
