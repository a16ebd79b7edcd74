package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/docx"
	"github.com/docfold/mcp-doc-convert/internal/htmldoc"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// textBlocks turns a .txt or .md file into model blocks. Markdown goes
// through goldmark into the HTML front-end; plain text becomes one
// paragraph per non-empty line.
func textBlocks(path string) ([]document.Block, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("cannot read text file: %w", err)
	}
	text, _ := decodeWithFallback(raw)

	if strings.ToLower(filepath.Ext(path)) == ".md" {
		var html bytes.Buffer
		if err := markdown.Convert([]byte(text), &html); err != nil {
			return nil, true, fmt.Errorf("cannot convert markdown: %w", err)
		}
		blocks, err := htmldoc.Parse(&html)
		if err != nil {
			return nil, true, fmt.Errorf("cannot parse rendered markdown: %w", err)
		}
		return blocks, true, nil
	}

	var blocks []document.Block
	y := 0.0
	seq := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			y += 8
			continue
		}
		blocks = append(blocks, document.NewTextBlock(
			document.BBox{X0: 0, Y0: y, X1: 500, Y1: y + 14}, seq,
			document.TextRun{Text: line, FontSize: 10.5},
		))
		seq++
		y += 16
	}
	if len(blocks) == 0 {
		return nil, false, fmt.Errorf("text file has no content")
	}
	return blocks, false, nil
}

// TextToPDF renders a plain-text or Markdown file as PDF.
func (s *Service) TextToPDF(req TextToPDFRequest) (*TextToPDFResult, error) {
	if err := s.checkInput(req.Path, ".txt", ".md"); err != nil {
		return nil, err
	}

	blocks, isMarkdown, err := textBlocks(req.Path)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{Pages: []document.Page{{
		WidthPt:  595.28,
		HeightPt: 841.89,
		Blocks:   blocks,
	}}}
	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot render PDF: %w", err)
	}
	outPath := s.outputPath(req.Path, "", ".pdf")
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write PDF: %w", err)
	}

	return &TextToPDFResult{
		Output:   describeOutput(outPath),
		Markdown: isMarkdown,
	}, nil
}

// TextToWord converts a plain-text or Markdown file to DOCX.
func (s *Service) TextToWord(req TextToWordRequest) (*TextToWordResult, error) {
	if err := s.checkInput(req.Path, ".txt", ".md"); err != nil {
		return nil, err
	}

	blocks, isMarkdown, err := textBlocks(req.Path)
	if err != nil {
		return nil, err
	}

	w := docx.NewWriter()
	writeBlocks(w, blocks)

	outPath := s.outputPath(req.Path, "", ".docx")
	if err := saveDocx(w, outPath); err != nil {
		return nil, err
	}
	return &TextToWordResult{
		Output:   describeOutput(outPath),
		Markdown: isMarkdown,
	}, nil
}
