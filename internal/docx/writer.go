package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/docfold/mcp-doc-convert/internal/document"
)

// Writer assembles a minimal OOXML word-processing package: document body,
// base styles, content types, relationships, and embedded media.
type Writer struct {
	body   strings.Builder
	media  []mediaEntry
	relSeq int
}

type mediaEntry struct {
	rid    string
	name   string
	format string
	data   []byte
}

// NewWriter returns an empty document writer.
func NewWriter() *Writer {
	return &Writer{}
}

// escape XML-escapes text content.
func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// AddParagraph appends one paragraph built from a text run. Heading levels
// 1-9 map to the built-in Heading styles; alignment and bold carry through.
func (w *Writer) AddParagraph(run document.TextRun) {
	w.body.WriteString("<w:p><w:pPr>")
	if run.HeadingLevel >= 1 && run.HeadingLevel <= 9 {
		fmt.Fprintf(&w.body, `<w:pStyle w:val="Heading%d"/>`, run.HeadingLevel)
	}
	switch run.Align {
	case document.AlignCenter:
		w.body.WriteString(`<w:jc w:val="center"/>`)
	case document.AlignRight:
		w.body.WriteString(`<w:jc w:val="right"/>`)
	case document.AlignJustify:
		w.body.WriteString(`<w:jc w:val="both"/>`)
	}
	w.body.WriteString("</w:pPr>")

	text := run.Prefix + run.Text
	if text != "" {
		w.body.WriteString("<w:r><w:rPr>")
		if run.Bold || run.HeadingLevel > 0 {
			w.body.WriteString("<w:b/>")
		}
		if run.FontSize > 0 {
			fmt.Fprintf(&w.body, `<w:sz w:val="%d"/>`, int(run.FontSize*2))
		}
		if run.Color != (document.RGB{}) {
			fmt.Fprintf(&w.body, `<w:color w:val="%02X%02X%02X"/>`, run.Color.R, run.Color.G, run.Color.B)
		}
		w.body.WriteString("</w:rPr>")
		fmt.Fprintf(&w.body, `<w:t xml:space="preserve">%s</w:t>`, escape(text))
		w.body.WriteString("</w:r>")
	}
	w.body.WriteString("</w:p>")
}

// AddTable appends a bordered table. colWidths (points) become the table
// grid; rows shorter than the widest are padded with empty cells.
func (w *Writer) AddTable(table document.Table, colWidths []float64) {
	cols := table.Columns()
	if cols == 0 {
		return
	}

	w.body.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:left w:val="single" w:sz="4"/>` +
		`<w:bottom w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr><w:tblGrid>`)
	for c := 0; c < cols; c++ {
		tw := 2000
		if c < len(colWidths) {
			tw = pointsToTwips(colWidths[c])
		}
		fmt.Fprintf(&w.body, `<w:gridCol w:w="%d"/>`, tw)
	}
	w.body.WriteString("</w:tblGrid>")

	for ri, row := range table.Cells {
		w.body.WriteString("<w:tr>")
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			w.body.WriteString("<w:tc><w:tcPr>")
			if fill, ok := table.CellFill[[2]int{ri, c}]; ok {
				fmt.Fprintf(&w.body, `<w:shd w:val="clear" w:fill="%02X%02X%02X"/>`, fill.R, fill.G, fill.B)
			} else if ri == 0 && table.HasHeader {
				w.body.WriteString(`<w:shd w:val="clear" w:fill="F2F2F2"/>`)
			}
			w.body.WriteString("</w:tcPr>")
			for _, line := range strings.Split(cell, "\n") {
				bold := ri == 0 && table.HasHeader
				w.body.WriteString("<w:p><w:r>")
				if bold {
					w.body.WriteString("<w:rPr><w:b/></w:rPr>")
				}
				fmt.Fprintf(&w.body, `<w:t xml:space="preserve">%s</w:t>`, escape(line))
				w.body.WriteString("</w:r></w:p>")
			}
			w.body.WriteString("</w:tc>")
		}
		w.body.WriteString("</w:tr>")
	}
	w.body.WriteString("</w:tbl>")
}

// AddImage embeds image bytes as an inline drawing scaled to the given
// display size in points.
func (w *Writer) AddImage(img document.Image, widthPt, heightPt float64) {
	w.relSeq++
	rid := fmt.Sprintf("rIdImg%d", w.relSeq)
	format := img.Format
	if format == "" {
		format = "png"
	}
	name := fmt.Sprintf("image%d.%s", w.relSeq, format)
	w.media = append(w.media, mediaEntry{rid: rid, name: name, format: format, data: img.Data})

	cx := pointsToEMU(widthPt)
	cy := pointsToEMU(heightPt)
	fmt.Fprintf(&w.body, `<w:p><w:r><w:drawing><wp:inline><wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="%s"/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic>`+
		`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`,
		cx, cy, w.relSeq, name, w.relSeq, name, rid, cx, cy)
}

// Save writes the assembled package to out.
func (w *Writer) Save(out io.Writer) error {
	zw := zip.NewWriter(out)

	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", w.contentTypes()},
		{"_rels/.rels", rootRels},
		{"word/document.xml", w.documentXML()},
		{"word/styles.xml", stylesDoc},
		{"word/_rels/document.xml.rels", w.documentRels()},
	}
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", f.name, err)
		}
		if _, err := fw.Write([]byte(f.content)); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	for _, m := range w.media {
		fw, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return fmt.Errorf("creating media %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.data); err != nil {
			return fmt.Errorf("writing media %s: %w", m.name, err)
		}
	}

	return zw.Close()
}

func pointsToTwips(pt float64) int {
	return int(pt * 20)
}

func pointsToEMU(pt float64) int64 {
	return int64(pt * 12700)
}

func (w *Writer) documentXML() string {
	return xml.Header +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
		`<w:body>` + w.body.String() +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1134" w:bottom="1440" w:left="1134"/></w:sectPr>` +
		`</w:body></w:document>`
}

func (w *Writer) contentTypes() string {
	var exts strings.Builder
	seen := map[string]bool{}
	for _, m := range w.media {
		if seen[m.format] {
			continue
		}
		seen[m.format] = true
		mime := "image/" + m.format
		fmt.Fprintf(&exts, `<Default Extension="%s" ContentType="%s"/>`, m.format, mime)
	}
	return xml.Header +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		exts.String() +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
		`</Types>`
}

func (w *Writer) documentRels() string {
	var rels strings.Builder
	rels.WriteString(xml.Header +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for _, m := range w.media {
		fmt.Fprintf(&rels,
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			m.rid, m.name)
	}
	rels.WriteString(`</Relationships>`)
	return rels.String()
}

const rootRels = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// stylesDoc declares Normal plus Heading 1-3 with descending sizes, enough
// for round-tripping through readers that resolve heading levels by style
// name.
const stylesDoc = xml.Header +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:styleId="Normal" w:default="1"><w:name w:val="Normal"/>` +
	`<w:rPr><w:sz w:val="21"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/>` +
	`<w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/>` +
	`<w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/>` +
	`<w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>` +
	`</w:styles>`
