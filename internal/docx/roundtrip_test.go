package docx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/stretchr/testify/require"
)

func writeTestDoc(t *testing.T, build func(w *Writer)) string {
	t.Helper()
	w := NewWriter()
	build(w)

	path := filepath.Join(t.TempDir(), "out.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Save(f))
	require.NoError(t, f.Close())
	return path
}

func TestWriterReader_Paragraphs(t *testing.T) {
	path := writeTestDoc(t, func(w *Writer) {
		w.AddParagraph(document.TextRun{Text: "Title", HeadingLevel: 1})
		w.AddParagraph(document.TextRun{Text: "Body text", Align: document.AlignCenter})
		w.AddParagraph(document.TextRun{Text: "escaped <&> chars"})
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	items := r.Items()
	require.Len(t, items, 3)

	require.NotNil(t, items[0].Paragraph)
	require.Equal(t, "Title", items[0].Paragraph.Text())
	require.Equal(t, 1, items[0].Paragraph.HeadingLevel)

	require.Equal(t, "center", items[1].Paragraph.Alignment)
	require.Equal(t, "escaped <&> chars", items[2].Paragraph.Text())
}

func TestWriterReader_Table(t *testing.T) {
	path := writeTestDoc(t, func(w *Writer) {
		w.AddTable(document.Table{
			Cells: [][]string{
				{"name", "count"},
				{"widgets", "4"},
			},
			HasHeader: true,
		}, []float64{100, 60})
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	items := r.Items()
	require.Len(t, items, 1)
	tbl := items[0].Table
	require.NotNil(t, tbl)
	require.Equal(t, [][]string{{"name", "count"}, {"widgets", "4"}}, tbl.Cells)
	require.Equal(t, []int{2000, 1200}, tbl.GridTwips)
}

func TestWriterReader_InterleavedOrder(t *testing.T) {
	path := writeTestDoc(t, func(w *Writer) {
		w.AddParagraph(document.TextRun{Text: "before"})
		w.AddTable(document.Table{Cells: [][]string{{"x"}}}, nil)
		w.AddParagraph(document.TextRun{Text: "after"})
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	items := r.Items()
	require.Len(t, items, 3)
	require.NotNil(t, items[0].Paragraph)
	require.NotNil(t, items[1].Table)
	require.NotNil(t, items[2].Paragraph)
}

func TestWriterReader_EmbeddedImage(t *testing.T) {
	// Not real PNG data; the package round-trips bytes untouched.
	raw := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	path := writeTestDoc(t, func(w *Writer) {
		w.AddImage(document.Image{Data: raw, Format: "png"}, 120, 80)
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	items := r.Items()
	require.Len(t, items, 1)
	para := items[0].Paragraph
	require.NotNil(t, para)
	require.Len(t, para.ImageRIDs, 1)

	data, format, ok := r.Image(para.ImageRIDs[0])
	require.True(t, ok)
	require.Equal(t, raw, data)
	require.Equal(t, "png", format)
}

func TestOpen_RejectsNonDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
}
