// Package pptx reads PowerPoint presentations through archive/zip and
// encoding/xml, flattening each slide into positioned blocks of the shared
// document model. Geometry arrives in EMU and is converted to points.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/docfold/mcp-doc-convert/internal/document"
)

// emuPerPoint converts EMU to points: 914400 EMU per inch, 72 points per
// inch.
const emuPerPoint = 12700

func emuToPt(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Read parses a PPTX file into one document page per slide, blocks in shape
// order with slide-relative bounding boxes. Shapes that fail to parse are
// skipped so one bad shape does not lose the deck.
func Read(filename string) (*document.Document, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	r := &reader{zr: &zr.Reader}

	slideW, slideH, err := r.slideSize()
	if err != nil {
		return nil, err
	}

	names := r.slideNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("presentation has no slides")
	}

	doc := &document.Document{}
	for _, name := range names {
		page, err := r.readSlide(name, slideW, slideH)
		if err != nil {
			// Skip unreadable slides, keep the rest.
			continue
		}
		doc.Pages = append(doc.Pages, *page)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no readable slides in presentation")
	}
	return doc, nil
}

type reader struct {
	zr *zip.Reader
}

func (r *reader) content(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// slideNames lists slide part names in numeric order.
func (r *reader) slideNames() []string {
	type numbered struct {
		name string
		n    int
	}
	var slides []numbered
	for _, f := range r.zr.File {
		if m := slidePattern.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slides = append(slides, numbered{name: f.Name, n: n})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	names := make([]string, len(slides))
	for i, s := range slides {
		names[i] = s.name
	}
	return names
}

// --- presentation.xml ---

type presentationXML struct {
	SlideSize struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

func (r *reader) slideSize() (w, h float64, err error) {
	data, err := r.content("ppt/presentation.xml")
	if err != nil {
		return 0, 0, fmt.Errorf("reading presentation.xml: %w", err)
	}
	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		return 0, 0, fmt.Errorf("parsing presentation.xml: %w", err)
	}
	if pres.SlideSize.CX <= 0 || pres.SlideSize.CY <= 0 {
		// 16:9 default deck size.
		return 960, 540, nil
	}
	return emuToPt(pres.SlideSize.CX), emuToPt(pres.SlideSize.CY), nil
}

// --- slide XML ---

type xfrmXML struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

func (x xfrmXML) bbox() document.BBox {
	return document.BBox{
		X0: emuToPt(x.Off.X),
		Y0: emuToPt(x.Off.Y),
		X1: emuToPt(x.Off.X + x.Ext.CX),
		Y1: emuToPt(x.Off.Y + x.Ext.CY),
	}
}

type slideXML struct {
	CSld struct {
		SpTree spTreeXML `xml:"spTree"`
	} `xml:"cSld"`
}

type spTreeXML struct {
	Shapes        []shapeXML        `xml:"sp"`
	Pictures      []pictureXML      `xml:"pic"`
	GraphicFrames []graphicFrameXML `xml:"graphicFrame"`
	Groups        []spTreeXML       `xml:"grpSp"`
}

type shapeXML struct {
	SpPr struct {
		Xfrm xfrmXML `xml:"xfrm"`
	} `xml:"spPr"`
	TxBody *struct {
		Paragraphs []slideParagraphXML `xml:"p"`
	} `xml:"txBody"`
}

type slideParagraphXML struct {
	PPr struct {
		Align string `xml:"algn,attr"`
	} `xml:"pPr"`
	Runs []struct {
		RPr struct {
			Size int    `xml:"sz,attr"` // hundredths of a point
			Bold string `xml:"b,attr"`
			Fill struct {
				Color struct {
					Val string `xml:"val,attr"`
				} `xml:"srgbClr"`
			} `xml:"solidFill"`
		} `xml:"rPr"`
		Text string `xml:"t"`
	} `xml:"r"`
}

type pictureXML struct {
	BlipFill struct {
		Blip struct {
			Embed string `xml:"embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
	SpPr struct {
		Xfrm xfrmXML `xml:"xfrm"`
	} `xml:"spPr"`
}

type graphicFrameXML struct {
	Xfrm xfrmXML `xml:"xfrm"`
	Tbl  *struct {
		Grid struct {
			Cols []struct {
				W int64 `xml:"w,attr"`
			} `xml:"gridCol"`
		} `xml:"tblGrid"`
		Rows []struct {
			Cells []struct {
				TxBody struct {
					Paragraphs []slideParagraphXML `xml:"p"`
				} `xml:"txBody"`
			} `xml:"tc"`
		} `xml:"tr"`
	} `xml:"graphic>graphicData>tbl"`
}

func (r *reader) readSlide(name string, slideW, slideH float64) (*document.Page, error) {
	data, err := r.content(name)
	if err != nil {
		return nil, err
	}
	var slide slideXML
	if err := xml.Unmarshal(data, &slide); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	media := r.slideMedia(name)

	page := &document.Page{WidthPt: slideW, HeightPt: slideH}
	seq := 0
	r.collectBlocks(&slide.CSld.SpTree, media, page, &seq)

	page.Blocks = document.MergeReadOrder(page.Blocks, document.DefaultTableOverlapFraction)
	return page, nil
}

// collectBlocks flattens a shape tree (including nested groups) into page
// blocks.
func (r *reader) collectBlocks(tree *spTreeXML, media map[string]mediaRef, page *document.Page, seq *int) {
	for _, sp := range tree.Shapes {
		if sp.TxBody == nil {
			continue
		}
		bbox := sp.SpPr.Xfrm.bbox()
		for _, para := range sp.TxBody.Paragraphs {
			run := paragraphRun(para)
			if run.Text == "" {
				continue
			}
			page.Blocks = append(page.Blocks, document.NewTextBlock(bbox, *seq, run))
			*seq++
		}
	}

	for _, frame := range tree.GraphicFrames {
		if frame.Tbl == nil {
			continue
		}
		var widths []float64
		for _, col := range frame.Tbl.Grid.Cols {
			widths = append(widths, emuToPt(col.W))
		}
		var cells [][]string
		for _, row := range frame.Tbl.Rows {
			var cellRow []string
			for _, cell := range row.Cells {
				var parts []string
				for _, para := range cell.TxBody.Paragraphs {
					if run := paragraphRun(para); run.Text != "" {
						parts = append(parts, run.Text)
					}
				}
				cellRow = append(cellRow, strings.Join(parts, "\n"))
			}
			cells = append(cells, cellRow)
		}
		if len(cells) == 0 {
			continue
		}
		page.Blocks = append(page.Blocks, document.NewTableBlock(frame.Xfrm.bbox(), *seq, document.Table{
			Cells:     cells,
			ColWidths: widths,
			HasHeader: true,
		}))
		*seq++
	}

	for _, pic := range tree.Pictures {
		ref, ok := media[pic.BlipFill.Blip.Embed]
		if !ok {
			continue
		}
		data, err := r.content(ref.target)
		if err != nil {
			continue
		}
		page.Blocks = append(page.Blocks, document.NewImageBlock(pic.SpPr.Xfrm.bbox(), *seq, document.Image{
			Data:   data,
			Format: ref.format,
		}))
		*seq++
	}

	for i := range tree.Groups {
		r.collectBlocks(&tree.Groups[i], media, page, seq)
	}
}

func paragraphRun(para slideParagraphXML) document.TextRun {
	var sb strings.Builder
	run := document.TextRun{FontSize: 10}
	for i, pr := range para.Runs {
		sb.WriteString(pr.Text)
		if i == 0 {
			if pr.RPr.Size > 0 {
				run.FontSize = float64(pr.RPr.Size) / 100
			}
			if pr.RPr.Bold == "1" || pr.RPr.Bold == "true" {
				run.Bold = true
			}
			if hex := pr.RPr.Fill.Color.Val; len(hex) == 6 {
				run.Color = parseHexColor(hex)
			}
		}
	}
	switch para.PPr.Align {
	case "ctr":
		run.Align = document.AlignCenter
	case "r":
		run.Align = document.AlignRight
	case "just":
		run.Align = document.AlignJustify
	}
	run.Text = strings.TrimSpace(sb.String())
	return run
}

func parseHexColor(hex string) document.RGB {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return document.RGB{}
	}
	return document.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

type mediaRef struct {
	target string
	format string
}

// slideMedia maps a slide's relationship ids to media entries.
func (r *reader) slideMedia(slideName string) map[string]mediaRef {
	relName := path.Join("ppt/slides/_rels", path.Base(slideName)+".rels")
	data, err := r.content(relName)
	if err != nil {
		return nil
	}
	var rels struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Type   string `xml:"Type,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}

	media := make(map[string]mediaRef)
	for _, rel := range rels.Relationships {
		if !strings.Contains(rel.Type, "/image") {
			continue
		}
		target := rel.Target
		if strings.HasPrefix(target, "../") {
			target = path.Join("ppt", strings.TrimPrefix(target, "../"))
		}
		format := strings.TrimPrefix(strings.ToLower(path.Ext(target)), ".")
		if format == "jpg" {
			format = "jpeg"
		}
		media[rel.ID] = mediaRef{target: target, format: format}
	}
	return media
}
