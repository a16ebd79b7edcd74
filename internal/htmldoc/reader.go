// Package htmldoc parses HTML into the shared document model. Only
// structural content is kept: headings, paragraphs, list items, tables, and
// base64 data-URI images. Scripts, styles, and remote resources are ignored.
package htmldoc

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/docfold/mcp-doc-convert/internal/document"
)

const (
	bodyFontSize = 10.5
	lineHeight   = 16.0
)

// headingSizes maps h1-h6 to font sizes in points.
var headingSizes = map[int]float64{1: 18, 2: 16, 3: 14, 4: 12.5, 5: 11.5, 6: 10.5}

// Parse reads HTML and returns blocks in source order. Block positions are
// synthesized from that order so the read-order merger and renderers can
// treat HTML like any positioned source.
func Parse(r io.Reader) ([]document.Block, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	p := &parser{}
	p.walk(root)
	p.flushParagraph()
	return p.blocks, nil
}

type parser struct {
	blocks    []document.Block
	paragraph strings.Builder
	y         float64
	seq       int
	listDepth int
	orderedN  []int // counter per ordered-list nesting level
}

func (p *parser) emit(kind document.Kind, height float64, build func(bbox document.BBox, seq int) document.Block) {
	bbox := document.BBox{X0: 0, Y0: p.y, X1: 500, Y1: p.y + height}
	p.blocks = append(p.blocks, build(bbox, p.seq))
	p.y += height
	p.seq++
}

func (p *parser) emitText(run document.TextRun) {
	if strings.TrimSpace(run.Text) == "" {
		return
	}
	p.emit(document.KindText, lineHeight, func(bbox document.BBox, seq int) document.Block {
		return document.NewTextBlock(bbox, seq, run)
	})
}

func (p *parser) flushParagraph() {
	text := collapseSpace(p.paragraph.String())
	p.paragraph.Reset()
	if text == "" {
		return
	}
	p.emitText(document.TextRun{Text: text, FontSize: bodyFontSize})
}

func (p *parser) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		p.paragraph.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head", "noscript", "iframe":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			p.flushParagraph()
			level, _ := strconv.Atoi(n.Data[1:])
			p.emitText(document.TextRun{
				Text:         collapseSpace(textContent(n)),
				FontSize:     headingSizes[level],
				Bold:         true,
				HeadingLevel: level,
			})
			return
		case "p", "div", "section", "article", "blockquote":
			p.flushParagraph()
			defer p.flushParagraph()
		case "br":
			p.flushParagraph()
			return
		case "ul", "ol":
			p.flushParagraph()
			p.listDepth++
			if n.Data == "ol" {
				p.orderedN = append(p.orderedN, 0)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				p.walk(c)
			}
			if n.Data == "ol" {
				p.orderedN = p.orderedN[:len(p.orderedN)-1]
			}
			p.listDepth--
			return
		case "li":
			p.flushParagraph()
			prefix := "• "
			if len(p.orderedN) > 0 {
				p.orderedN[len(p.orderedN)-1]++
				prefix = fmt.Sprintf("%d. ", p.orderedN[len(p.orderedN)-1])
			}
			p.emitText(document.TextRun{
				Text:     collapseSpace(textContent(n)),
				FontSize: bodyFontSize,
				Prefix:   strings.Repeat("  ", p.listDepth-1) + prefix,
			})
			return
		case "table":
			p.flushParagraph()
			p.emitTable(n)
			return
		case "img":
			p.flushParagraph()
			p.emitImage(n)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) emitTable(n *html.Node) {
	var cells [][]string
	hasHeader := false

	var visitRows func(*html.Node)
	visitRows = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "tr" {
				var row []string
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
						row = append(row, collapseSpace(textContent(cell)))
						if cell.Data == "th" && len(cells) == 0 {
							hasHeader = true
						}
					}
				}
				cells = append(cells, row)
			} else if c.Type == html.ElementNode {
				visitRows(c)
			}
		}
	}
	visitRows(n)

	if len(cells) == 0 {
		return
	}
	height := float64(len(cells)) * lineHeight
	p.emit(document.KindTable, height, func(bbox document.BBox, seq int) document.Block {
		return document.NewTableBlock(bbox, seq, document.Table{Cells: cells, HasHeader: hasHeader})
	})
}

// emitImage keeps only inline data URIs; fetching remote images is out of
// scope for a conversion tool.
func (p *parser) emitImage(n *html.Node) {
	src := attr(n, "src")
	if !strings.HasPrefix(src, "data:image/") {
		return
	}
	rest := strings.TrimPrefix(src, "data:image/")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return
	}
	format := rest[:semi]
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return
	}

	w, _ := strconv.Atoi(attr(n, "width"))
	h, _ := strconv.Atoi(attr(n, "height"))
	height := float64(h)
	if height <= 0 {
		height = 100
	}
	p.emit(document.KindImage, height, func(bbox document.BBox, seq int) document.Block {
		return document.NewImageBlock(bbox, seq, document.Image{
			Data: data, Format: format, Width: w, Height: h,
		})
	})
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
