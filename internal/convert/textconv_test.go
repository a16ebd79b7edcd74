package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docfold/mcp-doc-convert/internal/docx"
)

func TestTextToPDF_PlainText(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("first line\n\nsecond line\n"), 0o644))

	res, err := svc.TextToPDF(TextToPDFRequest{Path: path})
	require.NoError(t, err)
	require.False(t, res.Markdown)
	require.Equal(t, "application/pdf", res.Output.MIMEType)

	data, err := os.ReadFile(res.Output.Path)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestTextToWord_MarkdownHeadingsAndTable(t *testing.T) {
	svc, dir := newTestService(t)
	md := "# Title\n\nSome paragraph.\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	path := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(path, []byte(md), 0o644))

	res, err := svc.TextToWord(TextToWordRequest{Path: path})
	require.NoError(t, err)
	require.True(t, res.Markdown)

	r, err := docx.Open(res.Output.Path)
	require.NoError(t, err)
	defer r.Close()

	var headings, tables int
	var headingText string
	for _, item := range r.Items() {
		switch {
		case item.Paragraph != nil:
			if item.Paragraph.HeadingLevel > 0 {
				headings++
				headingText = item.Paragraph.Text()
			}
		case item.Table != nil:
			tables++
			require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, item.Table.Cells)
		}
	}
	require.Equal(t, 1, headings)
	require.Equal(t, "Title", headingText)
	require.Equal(t, 1, tables)
}

func TestTextToPDF_EmptyFileRejected(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := svc.TextToPDF(TextToPDFRequest{Path: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file is empty")
}
