package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docfold/mcp-doc-convert/internal/config"
	"github.com/docfold/mcp-doc-convert/internal/convert"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	tempDir := t.TempDir()
	cfg := &config.Config{
		Mode:           "stdio",
		Host:           "127.0.0.1",
		Port:           8080,
		InputDirectory: tempDir,
		Version:        "1.0.0",
		ServerName:     "test-server",
		LogLevel:       "info",
		MaxFileSize:    50 * 1024 * 1024,
	}

	converter, err := convert.NewService(cfg.MaxFileSize, tempDir, tempDir, nil)
	if err != nil {
		t.Fatalf("failed to create conversion service: %v", err)
	}

	srv, err := NewServer(cfg, converter)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv, tempDir
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestNewServer(t *testing.T) {
	tempDir := t.TempDir()
	maxFileSize := int64(1024 * 1024)

	converter, err := convert.NewService(maxFileSize, tempDir, tempDir, nil)
	if err != nil {
		t.Fatalf("failed to create conversion service: %v", err)
	}

	tests := []struct {
		name   string
		config *config.Config
	}{
		{
			name: "valid stdio mode config",
			config: &config.Config{
				Mode:           "stdio",
				Host:           "127.0.0.1",
				Port:           8080,
				InputDirectory: tempDir,
				Version:        "1.0.0",
				ServerName:     "test-server",
				LogLevel:       "info",
				MaxFileSize:    maxFileSize,
			},
		},
		{
			name: "valid server mode config",
			config: &config.Config{
				Mode:           "server",
				Host:           "127.0.0.1",
				Port:           8080,
				InputDirectory: tempDir,
				Version:        "1.0.0",
				ServerName:     "test-server",
				LogLevel:       "info",
				MaxFileSize:    maxFileSize,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.config, converter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if srv == nil {
				t.Fatal("server should not be nil")
			}
			if srv.config != tt.config {
				t.Error("server should keep the provided config")
			}
			if srv.mcpServer == nil {
				t.Error("underlying MCP server should be initialized")
			}
		})
	}
}

func TestNewServer_NilConverter(t *testing.T) {
	cfg := &config.Config{
		Mode:       "stdio",
		ServerName: "test-server",
		Version:    "1.0.0",
	}

	if _, err := NewServer(cfg, nil); err == nil {
		t.Error("expected error for nil converter")
	}
}

func TestServer_HandleCSVToExcel(t *testing.T) {
	srv, tempDir := newTestServer(t)

	csvFile := filepath.Join(tempDir, "items.csv")
	if err := os.WriteFile(csvFile, []byte("sku,name\n1,bolt\n2,nut\n"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := srv.handleCSVToExcel(context.Background(), callRequest(map[string]interface{}{
		"path": csvFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractTextFromResult(result))
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "Rows: 3, Columns: 2") {
		t.Errorf("unexpected response text: %s", resultText)
	}

	blob := extractBlobFromResult(result)
	if blob == nil {
		t.Fatal("expected an embedded output resource")
	}
	if blob.MIMEType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected MIME type: %s", blob.MIMEType)
	}
	if blob.Blob == "" {
		t.Error("embedded resource should carry base64 content")
	}
}

func TestServer_HandleTextToPDF(t *testing.T) {
	srv, tempDir := newTestServer(t)

	txtFile := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(txtFile, []byte("first line\nsecond line\n"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := srv.handleTextToPDF(context.Background(), callRequest(map[string]interface{}{
		"path": txtFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractTextFromResult(result))
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "plain text") {
		t.Errorf("unexpected response text: %s", resultText)
	}

	blob := extractBlobFromResult(result)
	if blob == nil {
		t.Fatal("expected an embedded output resource")
	}
	if blob.MIMEType != "application/pdf" {
		t.Errorf("unexpected MIME type: %s", blob.MIMEType)
	}
}

func TestServer_HandleConversionFailure(t *testing.T) {
	srv, tempDir := newTestServer(t)

	// Wrong extension for the tool
	txtFile := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(txtFile, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result, err := srv.handleExcelToCSV(context.Background(), callRequest(map[string]interface{}{
		"path": txtFile,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Errorf("expected tool error, got: %s", extractTextFromResult(result))
	}
}

func TestServer_MissingPathArgument(t *testing.T) {
	srv, _ := newTestServer(t)

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"csv_to_excel": srv.handleCSVToExcel,
		"excel_to_csv": srv.handleExcelToCSV,
		"pdf_to_text":  srv.handlePDFToText,
		"word_to_pdf":  srv.handleWordToPDF,
		"html_to_pdf":  srv.handleHTMLToPDF,
		"image_to_pdf": srv.handleImageToPDF,
	}

	emptyRequest := callRequest(map[string]interface{}{})
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := handler(context.Background(), emptyRequest)
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if !result.IsError {
				t.Error("expected tool error for missing path argument")
			}
		})
	}
}

func TestServer_HandleServerInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleServerInfo(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "test-server") {
		t.Errorf("server info should name the server, got: %s", resultText)
	}
	for _, tool := range toolCatalog {
		if !strings.Contains(resultText, tool.name) {
			t.Errorf("server info should list tool %s", tool.name)
		}
	}
}

func TestServer_ToolResultWithFiles_SkipsUnreadable(t *testing.T) {
	srv, _ := newTestServer(t)

	result := srv.toolResultWithFiles("done", convert.OutputFile{
		Path:     "/nonexistent/output.pdf",
		Name:     "output.pdf",
		MIMEType: "application/pdf",
		Size:     10,
	})

	if len(result.Content) != 1 {
		t.Errorf("unreadable file should not be embedded, got %d content items", len(result.Content))
	}
	if extractTextFromResult(result) != "done" {
		t.Error("response text should be preserved")
	}
}

func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}

func extractBlobFromResult(result *mcp.CallToolResult) *mcp.BlobResourceContents {
	if result == nil {
		return nil
	}

	for _, content := range result.Content {
		embedded, ok := content.(mcp.EmbeddedResource)
		if !ok {
			continue
		}
		if blob, ok := embedded.Resource.(mcp.BlobResourceContents); ok {
			return &blob
		}
	}

	return nil
}
