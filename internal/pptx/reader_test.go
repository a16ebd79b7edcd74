package pptx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/stretchr/testify/require"
)

const presentationPart = `<?xml version="1.0"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`

const slideOne = `<?xml version="1.0"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
       xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld><p:spTree>
    <p:sp>
      <p:spPr><a:xfrm><a:off x="914400" y="457200"/><a:ext cx="4572000" cy="914400"/></a:xfrm></p:spPr>
      <p:txBody>
        <a:p><a:pPr algn="ctr"/><a:r><a:rPr sz="2400" b="1"><a:solidFill><a:srgbClr val="FF0000"/></a:solidFill></a:rPr><a:t>Slide Title</a:t></a:r></a:p>
      </p:txBody>
    </p:sp>
    <p:graphicFrame>
      <p:xfrm><a:off x="914400" y="2743200"/><a:ext cx="4572000" cy="1828800"/></p:xfrm>
      <a:graphic><a:graphicData>
        <a:tbl>
          <a:tblGrid><a:gridCol w="2286000"/><a:gridCol w="2286000"/></a:tblGrid>
          <a:tr><a:tc><a:txBody><a:p><a:r><a:t>h1</a:t></a:r></a:p></a:txBody></a:tc>
               <a:tc><a:txBody><a:p><a:r><a:t>h2</a:t></a:r></a:p></a:txBody></a:tc></a:tr>
          <a:tr><a:tc><a:txBody><a:p><a:r><a:t>v1</a:t></a:r></a:p></a:txBody></a:tc>
               <a:tc><a:txBody><a:p><a:r><a:t>v2</a:t></a:r></a:p></a:txBody></a:tc></a:tr>
        </a:tbl>
      </a:graphicData></a:graphic>
    </p:graphicFrame>
  </p:spTree></p:cSld>
</p:sld>`

func writeDeck(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestRead_SlideGeometryAndBlocks(t *testing.T) {
	path := writeDeck(t, map[string]string{
		"ppt/presentation.xml":  presentationPart,
		"ppt/slides/slide1.xml": slideOne,
	})

	doc, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	require.InDelta(t, 720, page.WidthPt, 0.01)  // 9144000 EMU = 10in = 720pt
	require.InDelta(t, 540, page.HeightPt, 0.01) // 7.5in
	require.Len(t, page.Blocks, 2)

	// Read order puts the title above the table.
	title := page.Blocks[0]
	require.Equal(t, document.KindText, title.Kind)
	require.Equal(t, "Slide Title", title.Text.Text)
	require.Equal(t, 24.0, title.Text.FontSize)
	require.True(t, title.Text.Bold)
	require.Equal(t, document.AlignCenter, title.Text.Align)
	require.Equal(t, document.RGB{R: 0xFF}, title.Text.Color)
	require.InDelta(t, 72, title.BBox.X0, 0.01)

	tbl := page.Blocks[1]
	require.Equal(t, document.KindTable, tbl.Kind)
	require.Equal(t, [][]string{{"h1", "h2"}, {"v1", "v2"}}, tbl.Table.Cells)
	require.Len(t, tbl.Table.ColWidths, 2)
	require.InDelta(t, 180, tbl.Table.ColWidths[0], 0.01)
}

func TestRead_SlidesInNumericOrder(t *testing.T) {
	textSlide := func(s string) string {
		return `<?xml version="1.0"?><p:sld xmlns:p="x" xmlns:a="y"><p:cSld><p:spTree>
<p:sp><p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="914400" cy="914400"/></a:xfrm></p:spPr>
<p:txBody><a:p><a:r><a:t>` + s + `</a:t></a:r></a:p></p:txBody></p:sp>
</p:spTree></p:cSld></p:sld>`
	}
	path := writeDeck(t, map[string]string{
		"ppt/presentation.xml":   presentationPart,
		"ppt/slides/slide10.xml": textSlide("tenth"),
		"ppt/slides/slide2.xml":  textSlide("second"),
		"ppt/slides/slide1.xml":  textSlide("first"),
	})

	doc, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 3)
	require.Equal(t, "first", doc.Pages[0].Blocks[0].Text.Text)
	require.Equal(t, "second", doc.Pages[1].Blocks[0].Text.Text)
	require.Equal(t, "tenth", doc.Pages[2].Blocks[0].Text.Text)
}

func TestRead_NoSlides(t *testing.T) {
	path := writeDeck(t, map[string]string{
		"ppt/presentation.xml": presentationPart,
	})
	_, err := Read(path)
	require.Error(t, err)
}
