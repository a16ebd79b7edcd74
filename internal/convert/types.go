package convert

// OutputFile describes one produced file with its MIME type, so callers
// can stream it back tagged correctly.
type OutputFile struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// OutlineEntry is one heading in the re-derived document outline.
type OutlineEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Request Types

// CSVToExcelRequest converts a CSV file into a single-sheet workbook
type CSVToExcelRequest struct {
	Path      string `json:"path"`
	SheetName string `json:"sheet_name,omitempty"`
}

// ExcelToCSVRequest converts each worksheet of a workbook into a CSV file
type ExcelToCSVRequest struct {
	Path string `json:"path"`
}

// ExcelToPDFRequest renders a workbook's sheets as PDF tables
type ExcelToPDFRequest struct {
	Path string `json:"path"`
}

// PDFToImageRequest extracts page images from a PDF
type PDFToImageRequest struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"` // png, jpeg, bmp, tiff; default png
}

// PDFToTextRequest extracts plain text from a PDF
type PDFToTextRequest struct {
	Path       string `json:"path"`
	TableAware bool   `json:"table_aware,omitempty"`
}

// PDFToWordRequest reconstructs a PDF's layout as a DOCX document
type PDFToWordRequest struct {
	Path string `json:"path"`
}

// PPTToPDFRequest renders a slide deck as a PDF, one page per slide
type PPTToPDFRequest struct {
	Path string `json:"path"`
}

// HTMLToPDFRequest renders an HTML document as PDF
type HTMLToPDFRequest struct {
	Path string `json:"path"`
}

// HTMLToWordRequest converts an HTML document to DOCX
type HTMLToWordRequest struct {
	Path string `json:"path"`
}

// ImageToPDFRequest wraps an image file into a single-page PDF
type ImageToPDFRequest struct {
	Path string `json:"path"`
}

// TextToPDFRequest renders a plain-text or Markdown file as PDF
type TextToPDFRequest struct {
	Path string `json:"path"`
}

// TextToWordRequest converts a plain-text or Markdown file to DOCX
type TextToWordRequest struct {
	Path string `json:"path"`
}

// WordToPDFRequest renders a DOCX document as PDF
type WordToPDFRequest struct {
	Path string `json:"path"`
}

// WordToTextRequest extracts plain text from a DOCX document
type WordToTextRequest struct {
	Path string `json:"path"`
}

// Response Types

// CSVToExcelResult reports the written workbook and the encoding the
// source was decoded with.
type CSVToExcelResult struct {
	Output       OutputFile `json:"output"`
	UsedEncoding string     `json:"used_encoding"`
	Rows         int        `json:"rows"`
	Columns      int        `json:"columns"`
}

// ExcelToCSVResult reports one CSV per readable worksheet; worksheets
// that failed to read are listed and skipped.
type ExcelToCSVResult struct {
	Outputs      []OutputFile `json:"outputs"`
	FailedSheets []string     `json:"failed_sheets,omitempty"`
}

// ExcelToPDFResult reports the rendered PDF and the page-fit strategy
// that was applied to the widest sheet.
type ExcelToPDFResult struct {
	Output   OutputFile `json:"output"`
	Sheets   int        `json:"sheets"`
	Strategy string     `json:"strategy"`
}

// PDFToImageResult reports one image per page that carried extractable
// image content.
type PDFToImageResult struct {
	Outputs []OutputFile `json:"outputs"`
	Pages   int          `json:"pages"`
}

// PDFToTextResult reports the extracted text file.
type PDFToTextResult struct {
	Output OutputFile `json:"output"`
	Pages  int        `json:"pages"`
	Tables int        `json:"tables"`
}

// PDFToWordResult reports the reconstructed DOCX.
type PDFToWordResult struct {
	Output OutputFile `json:"output"`
	Pages  int        `json:"pages"`
	Tables int        `json:"tables"`
	Images int        `json:"images"`
}

// PPTToPDFResult reports the rendered PDF.
type PPTToPDFResult struct {
	Output OutputFile `json:"output"`
	Slides int        `json:"slides"`
}

// HTMLToPDFResult reports the rendered PDF.
type HTMLToPDFResult struct {
	Output OutputFile `json:"output"`
	Blocks int        `json:"blocks"`
}

// HTMLToWordResult reports the converted DOCX.
type HTMLToWordResult struct {
	Output OutputFile `json:"output"`
	Blocks int        `json:"blocks"`
}

// ImageToPDFResult reports the wrapped PDF and the probed source
// dimensions.
type ImageToPDFResult struct {
	Output OutputFile `json:"output"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Format string     `json:"format"`
}

// TextToPDFResult reports the rendered PDF.
type TextToPDFResult struct {
	Output   OutputFile `json:"output"`
	Markdown bool       `json:"markdown"`
}

// TextToWordResult reports the converted DOCX.
type TextToWordResult struct {
	Output   OutputFile `json:"output"`
	Markdown bool       `json:"markdown"`
}

// WordToPDFResult reports the rendered PDF plus the re-derived heading
// outline with clamped levels.
type WordToPDFResult struct {
	Output   OutputFile     `json:"output"`
	Tables   int            `json:"tables"`
	Images   int            `json:"images"`
	Strategy string         `json:"strategy"`
	Outline  []OutlineEntry `json:"outline,omitempty"`
}

// WordToTextResult reports the extracted text file.
type WordToTextResult struct {
	Output OutputFile `json:"output"`
	Tables int        `json:"tables"`
}
