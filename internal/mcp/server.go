package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docfold/mcp-doc-convert/internal/config"
	"github.com/docfold/mcp-doc-convert/internal/convert"
	"github.com/docfold/mcp-doc-convert/internal/descriptions"
)

// maxEmbedSize caps how large an output file may be before it is only
// referenced by path instead of embedded as a base64 resource.
const maxEmbedSize = 4 * 1024 * 1024

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	converter *convert.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, converter *convert.Service) (*Server, error) {
	if converter == nil {
		return nil, fmt.Errorf("converter cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		converter: converter,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// toolEntry pairs a tool name with its one-line summary for server info.
type toolEntry struct {
	name    string
	summary string
}

var toolCatalog = []toolEntry{
	{"csv_to_excel", "Convert a CSV file into an Excel workbook with sized columns"},
	{"excel_to_csv", "Convert each worksheet of an Excel workbook into its own CSV file"},
	{"excel_to_pdf", "Render an Excel workbook as a PDF with automatic table layout"},
	{"pdf_to_image", "Extract page images from a PDF and re-encode them to a chosen format"},
	{"pdf_to_text", "Extract plain text from a PDF with reconstructed reading order"},
	{"pdf_to_word", "Reconstruct a PDF as an editable Word document"},
	{"ppt_to_pdf", "Render a PowerPoint deck as a PDF, one page per slide"},
	{"html_to_pdf", "Render an HTML document as a paginated PDF"},
	{"html_to_word", "Convert an HTML document into a Word document"},
	{"image_to_pdf", "Wrap an image file into a single-page PDF"},
	{"text_to_pdf", "Render a plain-text or Markdown file as a PDF"},
	{"text_to_word", "Convert a plain-text or Markdown file into a Word document"},
	{"word_to_pdf", "Render a Word document as a PDF with re-derived numbering and outline"},
	{"word_to_text", "Extract plain text from a Word document"},
	{"convert_server_info", "Get real-time server status, available conversion tools, and limits"},
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register CSV to Excel tool
	csvToExcelTool := mcp.NewTool(
		"csv_to_excel",
		mcp.WithDescription(descriptions.CSVToExcelDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the CSV file"),
		),
		mcp.WithString("sheet_name",
			mcp.Description("Worksheet name for the output workbook (default Sheet1)"),
		),
	)
	s.mcpServer.AddTool(csvToExcelTool, s.handleCSVToExcel)

	// Register Excel to CSV tool
	excelToCSVTool := mcp.NewTool(
		"excel_to_csv",
		mcp.WithDescription(descriptions.ExcelToCSVDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the Excel workbook"),
		),
	)
	s.mcpServer.AddTool(excelToCSVTool, s.handleExcelToCSV)

	// Register Excel to PDF tool
	excelToPDFTool := mcp.NewTool(
		"excel_to_pdf",
		mcp.WithDescription(descriptions.ExcelToPDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the Excel workbook"),
		),
	)
	s.mcpServer.AddTool(excelToPDFTool, s.handleExcelToPDF)

	// Register PDF to image tool
	pdfToImageTool := mcp.NewTool(
		"pdf_to_image",
		mcp.WithDescription(descriptions.PDFToImageDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("format",
			mcp.Description("Output image format: png, jpeg, bmp or tiff (default png)"),
		),
	)
	s.mcpServer.AddTool(pdfToImageTool, s.handlePDFToImage)

	// Register PDF to text tool
	pdfToTextTool := mcp.NewTool(
		"pdf_to_text",
		mcp.WithDescription(descriptions.PDFToTextDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithBoolean("table_aware",
			mcp.Description("Join detected table cells with tabs instead of spaces"),
		),
	)
	s.mcpServer.AddTool(pdfToTextTool, s.handlePDFToText)

	// Register PDF to Word tool
	pdfToWordTool := mcp.NewTool(
		"pdf_to_word",
		mcp.WithDescription(descriptions.PDFToWordDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfToWordTool, s.handlePDFToWord)

	// Register PPT to PDF tool
	pptToPDFTool := mcp.NewTool(
		"ppt_to_pdf",
		mcp.WithDescription(descriptions.PPTToPDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PowerPoint file"),
		),
	)
	s.mcpServer.AddTool(pptToPDFTool, s.handlePPTToPDF)

	// Register HTML to PDF tool
	htmlToPDFTool := mcp.NewTool(
		"html_to_pdf",
		mcp.WithDescription(descriptions.HTMLToPDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the HTML file"),
		),
	)
	s.mcpServer.AddTool(htmlToPDFTool, s.handleHTMLToPDF)

	// Register HTML to Word tool
	htmlToWordTool := mcp.NewTool(
		"html_to_word",
		mcp.WithDescription(descriptions.HTMLToWordDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the HTML file"),
		),
	)
	s.mcpServer.AddTool(htmlToWordTool, s.handleHTMLToWord)

	// Register image to PDF tool
	imageToPDFTool := mcp.NewTool(
		"image_to_pdf",
		mcp.WithDescription(descriptions.ImageToPDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the image file"),
		),
	)
	s.mcpServer.AddTool(imageToPDFTool, s.handleImageToPDF)

	// Register text to PDF tool
	textToPDFTool := mcp.NewTool(
		"text_to_pdf",
		mcp.WithDescription(descriptions.TextToPDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the text or Markdown file"),
		),
	)
	s.mcpServer.AddTool(textToPDFTool, s.handleTextToPDF)

	// Register text to Word tool
	textToWordTool := mcp.NewTool(
		"text_to_word",
		mcp.WithDescription(descriptions.TextToWordDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the text or Markdown file"),
		),
	)
	s.mcpServer.AddTool(textToWordTool, s.handleTextToWord)

	// Register Word to PDF tool
	wordToPDFTool := mcp.NewTool(
		"word_to_pdf",
		mcp.WithDescription(descriptions.WordToPDFDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the Word document"),
		),
	)
	s.mcpServer.AddTool(wordToPDFTool, s.handleWordToPDF)

	// Register Word to text tool
	wordToTextTool := mcp.NewTool(
		"word_to_text",
		mcp.WithDescription(descriptions.WordToTextDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the Word document"),
		),
	)
	s.mcpServer.AddTool(wordToTextTool, s.handleWordToText)

	// Register server info tool
	serverInfoTool := mcp.NewTool(
		"convert_server_info",
		mcp.WithDescription(descriptions.ServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Tool handlers

func (s *Server) handleCSVToExcel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	sheetName := ""
	if v, ok := args["sheet_name"].(string); ok {
		sheetName = v
	}

	req := convert.CSVToExcelRequest{Path: path, SheetName: sheetName}
	result, err := s.converter.CSVToExcel(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to Excel workbook\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Rows: %d, Columns: %d\n", result.Rows, result.Columns)
	responseText += fmt.Sprintf("Source encoding: %s", result.UsedEncoding)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleExcelToCSV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.ExcelToCSVRequest{Path: path}
	result, err := s.converter.ExcelToCSV(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to %d CSV file(s)\n", path, len(result.Outputs))
	for i, out := range result.Outputs {
		responseText += fmt.Sprintf("%d. %s (%d bytes)\n", i+1, out.Path, out.Size)
	}
	if len(result.FailedSheets) > 0 {
		responseText += fmt.Sprintf("Skipped unreadable sheet(s): %s\n", strings.Join(result.FailedSheets, ", "))
	}

	return s.toolResultWithFiles(responseText, result.Outputs...), nil
}

func (s *Server) handleExcelToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.ExcelToPDFRequest{Path: path}
	result, err := s.converter.ExcelToPDF(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to PDF\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Sheets: %d, Layout strategy: %s", result.Sheets, result.Strategy)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handlePDFToImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	format := ""
	if v, ok := args["format"].(string); ok {
		format = v
	}

	req := convert.PDFToImageRequest{Path: path, Format: format}
	result, err := s.converter.PDFToImage(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted %d image(s) from %s (%d pages)\n", len(result.Outputs), path, result.Pages)
	for i, out := range result.Outputs {
		responseText += fmt.Sprintf("%d. %s (%d bytes)\n", i+1, out.Path, out.Size)
	}

	return s.toolResultWithFiles(responseText, result.Outputs...), nil
}

func (s *Server) handlePDFToText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	tableAware := false
	if v, ok := args["table_aware"].(bool); ok {
		tableAware = v
	}

	req := convert.PDFToTextRequest{Path: path, TableAware: tableAware}
	result, err := s.converter.PDFToText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted text from %s\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Pages: %d, Tables detected: %d", result.Pages, result.Tables)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handlePDFToWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.PDFToWordRequest{Path: path}
	result, err := s.converter.PDFToWord(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Reconstructed %s as Word document\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Pages: %d, Tables: %d, Images: %d", result.Pages, result.Tables, result.Images)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handlePPTToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.PPTToPDFRequest{Path: path}
	result, err := s.converter.PPTToPDF(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to PDF\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Slides: %d", result.Slides)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleHTMLToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.HTMLToPDFRequest{Path: path}
	result, err := s.converter.HTMLToPDF(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to PDF\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Content blocks: %d", result.Blocks)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleHTMLToWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.HTMLToWordRequest{Path: path}
	result, err := s.converter.HTMLToWord(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to Word document\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Content blocks: %d", result.Blocks)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleImageToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.ImageToPDFRequest{Path: path}
	result, err := s.converter.ImageToPDF(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Wrapped %s into a single-page PDF\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Source: %dx%d pixels, Format: %s", result.Width, result.Height, result.Format)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleTextToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.TextToPDFRequest{Path: path}
	result, err := s.converter.TextToPDF(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to PDF\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	if result.Markdown {
		responseText += "Source was rendered as Markdown"
	} else {
		responseText += "Source was rendered as plain text"
	}

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleTextToWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.TextToWordRequest{Path: path}
	result, err := s.converter.TextToWord(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Converted %s to Word document\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	if result.Markdown {
		responseText += "Source was rendered as Markdown"
	} else {
		responseText += "Source was rendered as plain text"
	}

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleWordToPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.WordToPDFRequest{Path: path}
	result, err := s.converter.WordToPDF(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatWordToPDFResult(path, result)
	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleWordToText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := convert.WordToTextRequest{Path: path}
	result, err := s.converter.WordToText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted text from %s\n", path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	responseText += fmt.Sprintf("Tables: %d", result.Tables)

	return s.toolResultWithFiles(responseText, result.Output), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Formatting methods

func (s *Server) formatWordToPDFResult(path string, result *convert.WordToPDFResult) string {
	text := fmt.Sprintf("Converted %s to PDF\n", path)
	text += fmt.Sprintf("Output: %s (%d bytes)\n", result.Output.Path, result.Output.Size)
	text += fmt.Sprintf("Tables: %d, Images: %d, Layout strategy: %s\n", result.Tables, result.Images, result.Strategy)

	if len(result.Outline) > 0 {
		text += "\nOutline:\n"
		for _, entry := range result.Outline {
			text += fmt.Sprintf("%s%s\n", strings.Repeat("  ", entry.Level-1), entry.Text)
		}
	}

	return text
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📁 Input Directory: %s\n", s.config.InputDirectory)
	text += fmt.Sprintf("📁 Output Directory: %s\n", s.converter.OutputDir())
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))

	text += "\n🛠️  Available Tools:\n"
	for _, tool := range toolCatalog {
		text += fmt.Sprintf("• %s\n", tool.name)
		text += fmt.Sprintf("  %s\n", tool.summary)
	}

	text += "\nAll conversion tools take a required 'path' argument pointing at the source file. "
	text += "Outputs are written next to the configured output directory and small files are "
	text += "also embedded in the tool result as base64 resources."

	return text
}

// toolResultWithFiles builds a result carrying the response text plus the
// produced files as embedded blob resources. Files over maxEmbedSize, or
// files that can no longer be read, are listed in the text only.
func (s *Server) toolResultWithFiles(text string, files ...convert.OutputFile) *mcp.CallToolResult {
	content := []mcp.Content{
		mcp.TextContent{Type: "text", Text: text},
	}

	for _, f := range files {
		if f.Size > maxEmbedSize {
			continue
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			continue
		}
		content = append(content, mcp.EmbeddedResource{
			Type: "resource",
			Resource: mcp.BlobResourceContents{
				URI:      "file://" + f.Path,
				MIMEType: f.MIMEType,
				Blob:     base64.StdEncoding.EncodeToString(data),
			},
		})
	}

	return &mcp.CallToolResult{Content: content}
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	} else {
		return s.runStdioMode(ctx)
	}
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting document conversion MCP server in stdio mode")
		log.Printf("Input directory: %s", s.config.InputDirectory)
		log.Printf("Output directory: %s", s.converter.OutputDir())
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
