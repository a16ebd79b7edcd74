package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "image/gif" // register decoders for extracted page images

	"github.com/docfold/mcp-doc-convert/internal/document"
	"github.com/docfold/mcp-doc-convert/internal/docx"
	"github.com/docfold/mcp-doc-convert/internal/layout"
	"github.com/docfold/mcp-doc-convert/internal/pdfio"
)

var imageOutputFormats = map[string]string{
	"png":  ".png",
	"jpeg": ".jpeg",
	"jpg":  ".jpg",
	"bmp":  ".bmp",
	"tiff": ".tiff",
}

// PDFToImage extracts each page's embedded images and re-encodes them
// to the requested format, one output file per extracted image.
func (s *Service) PDFToImage(req PDFToImageRequest) (*PDFToImageResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.pdfValidator.ValidateFile(req.Path); err != nil {
		return nil, err
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "png"
	}
	ext, ok := imageOutputFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q (expected png, jpeg, bmp, tiff)", req.Format)
	}

	pages, err := s.pdfValidator.PageCount(req.Path)
	if err != nil {
		return nil, err
	}

	scratch, cleanup, err := s.workspace.TempDir("pdf2image")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	extracted, err := pdfio.ExtractImages(req.Path, scratch)
	if err != nil {
		return nil, err
	}
	if len(extracted) == 0 {
		return nil, fmt.Errorf("no extractable images in %s", req.Path)
	}

	result := &PDFToImageResult{Pages: pages}
	perPage := map[int]int{}
	for _, img := range extracted {
		perPage[img.Page]++
		name := fmt.Sprintf("page%d", img.Page)
		if perPage[img.Page] > 1 {
			name = fmt.Sprintf("page%d_%d", img.Page, perPage[img.Page])
		}
		outPath := s.outputPath(req.Path, name, ext)
		if err := reencodeImage(img.Path, outPath, format); err != nil {
			// Per-image failures skip that image, keeping the rest.
			continue
		}
		result.Outputs = append(result.Outputs, describeOutput(outPath))
	}
	if len(result.Outputs) == 0 {
		return nil, fmt.Errorf("no image could be converted to %s", format)
	}
	return result, nil
}

func reencodeImage(srcPath, dstPath, format string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("cannot decode %s: %w", srcPath, err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	switch format {
	case "png":
		err = png.Encode(dst, img)
	case "jpeg", "jpg":
		err = jpeg.Encode(dst, img, &jpeg.Options{Quality: 90})
	case "bmp":
		err = bmp.Encode(dst, img)
	case "tiff":
		err = tiff.Encode(dst, img, nil)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	return err
}

// PDFToText extracts positioned text page by page, separated with
// "--- Page N ---" markers. Table-aware mode renders detected tables as
// tab-joined rows instead of flowing their cells into lines.
func (s *Service) PDFToText(req PDFToTextRequest) (*PDFToTextResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.pdfValidator.ValidateFile(req.Path); err != nil {
		return nil, err
	}

	doc, err := s.pdfReader.Read(req.Path)
	if err != nil {
		return nil, err
	}

	tables := 0
	var sb strings.Builder
	for i, page := range doc.Pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n", i+1)
		for _, b := range page.Blocks {
			switch b.Kind {
			case document.KindText:
				sb.WriteString(b.Text.Text)
				sb.WriteString("\n")
			case document.KindTable:
				tables++
				for _, row := range b.Table.Cells {
					if req.TableAware {
						sb.WriteString(strings.Join(row, "\t"))
					} else {
						sb.WriteString(strings.Join(row, "  "))
					}
					sb.WriteString("\n")
				}
			}
		}
	}

	outPath := s.outputPath(req.Path, "", ".txt")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		return nil, fmt.Errorf("cannot write text file: %w", err)
	}
	return &PDFToTextResult{
		Output: describeOutput(outPath),
		Pages:  len(doc.Pages),
		Tables: tables,
	}, nil
}

// PDFToWord reconstructs the PDF's text, tables, and embedded images as
// a DOCX document in read order.
func (s *Service) PDFToWord(req PDFToWordRequest) (*PDFToWordResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.pdfValidator.ValidateFile(req.Path); err != nil {
		return nil, err
	}

	doc, err := s.pdfReader.Read(req.Path)
	if err != nil {
		return nil, err
	}

	pageImages, imgCleanup := s.extractPageImages(req.Path)
	defer imgCleanup()

	w := docx.NewWriter()
	tables, images := 0, 0
	for pi, page := range doc.Pages {
		for _, b := range page.Blocks {
			switch b.Kind {
			case document.KindText:
				w.AddParagraph(*b.Text)
			case document.KindTable:
				tables++
				widths := b.Table.ColWidths
				if len(widths) != b.Table.Columns() {
					widths = layout.EstimateColumnWidths(b.Table.Cells, 10.5, layout.WidthOptions{})
				}
				w.AddTable(*b.Table, widths)
			}
		}
		for _, data := range pageImages[pi+1] {
			img, format, width, height, err := probeImageBytes(data)
			if err != nil {
				continue
			}
			images++
			w.AddImage(document.Image{Data: img, Format: format}, width, height)
		}
	}

	outPath := s.outputPath(req.Path, "", ".docx")
	if err := saveDocx(w, outPath); err != nil {
		return nil, err
	}
	return &PDFToWordResult{
		Output: describeOutput(outPath),
		Pages:  len(doc.Pages),
		Tables: tables,
		Images: images,
	}, nil
}

// extractPageImages pulls the PDF's embedded images grouped by page
// number. Extraction failures degrade to a text-only document.
func (s *Service) extractPageImages(path string) (map[int][][]byte, func()) {
	noop := func() {}
	scratch, cleanup, err := s.workspace.TempDir("pdf2word")
	if err != nil {
		return nil, noop
	}
	extracted, err := pdfio.ExtractImages(path, scratch)
	if err != nil {
		cleanup()
		return nil, noop
	}
	byPage := map[int][][]byte{}
	for _, img := range extracted {
		data, err := os.ReadFile(img.Path)
		if err != nil {
			continue
		}
		byPage[img.Page] = append(byPage[img.Page], data)
	}
	return byPage, cleanup
}

// probeImageBytes normalizes an image for DOCX embedding: decode, scale
// the probed pixel size to a width that fits the content area, and keep
// png/jpeg data as-is.
func probeImageBytes(data []byte) (out []byte, format string, widthPt, heightPt float64, err error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, err
	}
	widthPt = float64(cfg.Width) * 72 / 96
	heightPt = float64(cfg.Height) * 72 / 96
	if maxW := pdfio.PortraitAvailPt; widthPt > maxW {
		heightPt = heightPt * maxW / widthPt
		widthPt = maxW
	}
	if name == "png" || name == "jpeg" {
		return data, name, widthPt, heightPt, nil
	}
	// Other formats are rewrapped as PNG so Word can always display them.
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", 0, 0, err
	}
	return buf.Bytes(), "png", widthPt, heightPt, nil
}

func saveDocx(w *docx.Writer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create DOCX file: %w", err)
	}
	if err := w.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write DOCX file: %w", err)
	}
	return f.Close()
}
