// Package docx reads and writes Office Open XML word-processing documents
// directly through archive/zip and encoding/xml, and re-derives list
// numbering the way a renderer would display it.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// Run is a styled span of paragraph text.
type Run struct {
	Text     string
	Bold     bool
	FontSize float64 // points, 0 when unspecified
	ColorHex string  // RRGGBB, empty when unspecified
}

// Paragraph is one parsed body paragraph with resolved attributes.
type Paragraph struct {
	Runs         []Run
	Alignment    string // "", "left", "center", "right", "both"
	HeadingLevel int    // 1-9, 0 for body text
	NumID        int
	Level        int
	ImageRIDs    []string // inline drawing relationship ids
}

// Text concatenates the paragraph's run text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// TableData is one parsed body table.
type TableData struct {
	Cells     [][]string
	CellFill  map[[2]int]string // sparse RRGGBB fill by (row, col)
	GridTwips []int             // declared column widths in twips
}

// BodyItem preserves document order: exactly one field is set.
type BodyItem struct {
	Paragraph *Paragraph
	Table     *TableData
}

// Reader provides access to parsed DOCX content.
type Reader struct {
	zr         *zip.ReadCloser
	items      []BodyItem
	numbering  map[int]NumberingDefinition
	media      map[string][]byte // relationship id -> image bytes
	mediaTypes map[string]string // relationship id -> format ("png", "jpeg", ...)
	styles     map[string]string // style id -> lowercase style name
}

// Open opens and parses a DOCX file.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zr:         zr,
		numbering:  make(map[int]NumberingDefinition),
		media:      make(map[string][]byte),
		mediaTypes: make(map[string]string),
		styles:     make(map[string]string),
	}

	if r.file("word/document.xml") == nil {
		zr.Close()
		return nil, fmt.Errorf("not a DOCX file: missing word/document.xml")
	}

	// Styles, numbering, and relationships are optional; the document body
	// is not.
	r.parseStyles()
	r.parseNumbering()
	r.parseMedia()
	if err := r.parseBody(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing document body: %w", err)
	}

	return r, nil
}

// Close releases the underlying archive.
func (r *Reader) Close() error {
	if r.zr != nil {
		err := r.zr.Close()
		r.zr = nil
		return err
	}
	return nil
}

// Items returns body paragraphs and tables in document order.
func (r *Reader) Items() []BodyItem {
	return r.items
}

// Numbering returns the document's numbering definitions keyed by numId.
func (r *Reader) Numbering() map[int]NumberingDefinition {
	return r.numbering
}

// Image returns the media bytes and format for an inline drawing
// relationship id.
func (r *Reader) Image(rid string) (data []byte, format string, ok bool) {
	data, ok = r.media[rid]
	return data, r.mediaTypes[rid], ok
}

func (r *Reader) file(name string) *zip.File {
	for _, f := range r.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (r *Reader) content(name string) ([]byte, error) {
	f := r.file(name)
	if f == nil {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// --- styles.xml ---

type stylesXML struct {
	Styles []struct {
		StyleID string `xml:"styleId,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func (r *Reader) parseStyles() {
	data, err := r.content("word/styles.xml")
	if err != nil {
		return
	}
	var parsed stylesXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return
	}
	for _, s := range parsed.Styles {
		r.styles[s.StyleID] = strings.ToLower(s.Name.Val)
	}
}

// headingLevel maps a style id to its heading level, 0 for non-headings.
// "Title" styles count as level 1, matching how converters promote document
// titles.
func (r *Reader) headingLevel(styleID string) int {
	name := r.styles[styleID]
	if name == "" {
		name = strings.ToLower(styleID)
	}
	if name == "title" {
		return 1
	}
	rest, found := strings.CutPrefix(name, "heading ")
	if !found {
		rest, found = strings.CutPrefix(name, "heading")
	}
	if !found {
		return 0
	}
	if lvl, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && lvl >= 1 && lvl <= 9 {
		return lvl
	}
	return 0
}

// --- numbering.xml ---

type numberingXML struct {
	AbstractNums []struct {
		AbstractNumID string `xml:"abstractNumId,attr"`
		Levels        []struct {
			ILvl   string `xml:"ilvl,attr"`
			NumFmt struct {
				Val string `xml:"val,attr"`
			} `xml:"numFmt"`
			LvlText struct {
				Val string `xml:"val,attr"`
			} `xml:"lvlText"`
			Start struct {
				Val string `xml:"val,attr"`
			} `xml:"start"`
		} `xml:"lvl"`
	} `xml:"abstractNum"`
	Nums []struct {
		NumID         string `xml:"numId,attr"`
		AbstractNumID struct {
			Val string `xml:"val,attr"`
		} `xml:"abstractNumId"`
	} `xml:"num"`
}

func (r *Reader) parseNumbering() {
	data, err := r.content("word/numbering.xml")
	if err != nil {
		return
	}
	var parsed numberingXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return
	}

	abstract := make(map[string]NumberingDefinition)
	for _, an := range parsed.AbstractNums {
		def := NumberingDefinition{Levels: make(map[int]LevelDef)}
		for _, lvl := range an.Levels {
			ilvl, err := strconv.Atoi(lvl.ILvl)
			if err != nil {
				continue
			}
			start := 1
			if s, err := strconv.Atoi(lvl.Start.Val); err == nil && s > 0 {
				start = s
			}
			format := NumberFormat(lvl.NumFmt.Val)
			if format == "" {
				format = FormatDecimal
			}
			if strings.Contains(strings.ToLower(string(format)), "chinese") {
				format = FormatCJK
			}
			def.Levels[ilvl] = LevelDef{
				Format:    format,
				LevelText: lvl.LvlText.Val,
				Start:     start,
			}
		}
		abstract[an.AbstractNumID] = def
	}
	for _, num := range parsed.Nums {
		id, err := strconv.Atoi(num.NumID)
		if err != nil {
			continue
		}
		if def, ok := abstract[num.AbstractNumID.Val]; ok {
			r.numbering[id] = def
		}
	}
}

// --- relationships and media ---

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func (r *Reader) parseMedia() {
	data, err := r.content("word/_rels/document.xml.rels")
	if err != nil {
		return
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return
	}
	for _, rel := range rels.Relationships {
		if !strings.Contains(rel.Type, "/image") {
			continue
		}
		target := rel.Target
		if !strings.HasPrefix(target, "word/") {
			target = path.Join("word", target)
		}
		blob, err := r.content(target)
		if err != nil {
			continue
		}
		r.media[rel.ID] = blob
		format := strings.TrimPrefix(strings.ToLower(path.Ext(target)), ".")
		if format == "jpg" {
			format = "jpeg"
		}
		r.mediaTypes[rel.ID] = format
	}
}

// --- document.xml body ---

type paragraphXML struct {
	Props struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
		Justification struct {
			Val string `xml:"val,attr"`
		} `xml:"jc"`
		NumPr struct {
			ILvl struct {
				Val string `xml:"val,attr"`
			} `xml:"ilvl"`
			NumID struct {
				Val string `xml:"val,attr"`
			} `xml:"numId"`
		} `xml:"numPr"`
	} `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Props struct {
		Bold *struct {
			Val string `xml:"val,attr"`
		} `xml:"b"`
		Size struct {
			Val string `xml:"val,attr"` // half-points
		} `xml:"sz"`
		Color struct {
			Val string `xml:"val,attr"`
		} `xml:"color"`
	} `xml:"rPr"`
	Texts    []string `xml:"t"`
	Drawings []struct {
		Inline []blipXML `xml:"inline>graphic>graphicData>pic>blipFill>blip"`
		Anchor []blipXML `xml:"anchor>graphic>graphicData>pic>blipFill>blip"`
	} `xml:"drawing"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"`
}

type tableXML struct {
	Grid struct {
		Cols []struct {
			W string `xml:"w,attr"`
		} `xml:"gridCol"`
	} `xml:"tblGrid"`
	Rows []struct {
		Cells []struct {
			Props struct {
				GridSpan struct {
					Val string `xml:"val,attr"`
				} `xml:"gridSpan"`
				Shade struct {
					Fill string `xml:"fill,attr"`
				} `xml:"shd"`
			} `xml:"tcPr"`
			Paragraphs []paragraphXML `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

// parseBody walks the document body token by token so paragraphs and tables
// keep their source order.
func (r *Reader) parseBody() error {
	data, err := r.content("word/document.xml")
	if err != nil {
		return err
	}

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	depth := 0
	inBody := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case t.Name.Local == "body":
				inBody = true
			case inBody && depth == 3 && t.Name.Local == "p":
				var p paragraphXML
				if err := decoder.DecodeElement(&p, &t); err != nil {
					return err
				}
				depth--
				r.items = append(r.items, BodyItem{Paragraph: r.buildParagraph(&p)})
			case inBody && depth == 3 && t.Name.Local == "tbl":
				var tbl tableXML
				if err := decoder.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				depth--
				r.items = append(r.items, BodyItem{Table: buildTable(&tbl)})
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "body" {
				inBody = false
			}
		}
	}
	return nil
}

func (r *Reader) buildParagraph(p *paragraphXML) *Paragraph {
	para := &Paragraph{
		Alignment:    p.Props.Justification.Val,
		HeadingLevel: r.headingLevel(p.Props.Style.Val),
	}
	if id, err := strconv.Atoi(p.Props.NumPr.NumID.Val); err == nil {
		para.NumID = id
	}
	if lvl, err := strconv.Atoi(p.Props.NumPr.ILvl.Val); err == nil {
		para.Level = lvl
	}

	for _, run := range p.Runs {
		for _, d := range run.Drawings {
			for _, blip := range append(d.Inline, d.Anchor...) {
				if blip.Embed != "" {
					para.ImageRIDs = append(para.ImageRIDs, blip.Embed)
				}
			}
		}
		text := strings.Join(run.Texts, "")
		if text == "" {
			continue
		}
		pr := Run{Text: text}
		if run.Props.Bold != nil && run.Props.Bold.Val != "false" && run.Props.Bold.Val != "0" {
			pr.Bold = true
		}
		if half, err := strconv.Atoi(run.Props.Size.Val); err == nil {
			pr.FontSize = float64(half) / 2
		}
		if c := run.Props.Color.Val; c != "" && c != "auto" {
			pr.ColorHex = c
		}
		para.Runs = append(para.Runs, pr)
	}
	return para
}

// buildTable flattens a parsed table, expanding gridSpan into padding cells
// so every row has the full column count.
func buildTable(t *tableXML) *TableData {
	td := &TableData{CellFill: make(map[[2]int]string)}
	for _, col := range t.Grid.Cols {
		if w, err := strconv.Atoi(col.W); err == nil {
			td.GridTwips = append(td.GridTwips, w)
		} else {
			td.GridTwips = append(td.GridTwips, 0)
		}
	}

	for ri, row := range t.Rows {
		var cells []string
		for _, cell := range row.Cells {
			var texts []string
			for _, p := range cell.Paragraphs {
				var sb strings.Builder
				for _, run := range p.Runs {
					sb.WriteString(strings.Join(run.Texts, ""))
				}
				if sb.Len() > 0 {
					texts = append(texts, sb.String())
				}
			}
			if fill := cell.Props.Shade.Fill; fill != "" && fill != "auto" {
				td.CellFill[[2]int{ri, len(cells)}] = fill
			}
			cells = append(cells, strings.Join(texts, "\n"))

			// A merged cell occupies extra grid columns.
			if span, err := strconv.Atoi(cell.Props.GridSpan.Val); err == nil && span > 1 {
				for i := 1; i < span; i++ {
					cells = append(cells, "")
				}
			}
		}
		td.Cells = append(td.Cells, cells)
	}
	return td
}
