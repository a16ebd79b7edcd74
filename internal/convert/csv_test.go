package convert

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewService(50*1024*1024, dir, dir, nil)
	require.NoError(t, err)
	return svc, dir
}

func TestDecodeWithFallback(t *testing.T) {
	text, enc := decodeWithFallback([]byte("plain,ascii\n1,2\n"))
	require.Equal(t, "utf-8", enc)
	require.Equal(t, "plain,ascii\n1,2\n", text)

	// UTF-8 BOM is stripped.
	text, enc = decodeWithFallback(append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b")...))
	require.Equal(t, "utf-8", enc)
	require.Equal(t, "a,b", text)

	// GBK bytes for 中文.
	text, enc = decodeWithFallback([]byte{0xD6, 0xD0, 0xCE, 0xC4})
	require.Equal(t, "gbk", enc)
	require.Equal(t, "中文", text)
}

func TestCSVToExcelAndBack(t *testing.T) {
	svc, dir := newTestService(t)

	rows := [][]string{
		{"name", "qty", "note"},
		{"bolt", "12", "M6, zinc"},
		{"nut", "40", "含中文"},
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	require.NoError(t, w.WriteAll(rows))
	inPath := filepath.Join(dir, "parts.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(sb.String()), 0o644))

	res, err := svc.CSVToExcel(CSVToExcelRequest{Path: inPath})
	require.NoError(t, err)
	require.Equal(t, "utf-8", res.UsedEncoding)
	require.Equal(t, 3, res.Rows)
	require.Equal(t, 3, res.Columns)
	require.FileExists(t, res.Output.Path)

	back, err := svc.ExcelToCSV(ExcelToCSVRequest{Path: res.Output.Path})
	require.NoError(t, err)
	require.Len(t, back.Outputs, 1)

	data, err := os.ReadFile(back.Outputs[0].Path)
	require.NoError(t, err)
	got, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Equal(t, rows, got)
}

func TestCSVToExcel_RejectsWrongExtension(t *testing.T) {
	svc, dir := newTestService(t)
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	_, err := svc.CSVToExcel(CSVToExcelRequest{Path: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported file type")
}

func TestCSVToExcel_RejectsOversized(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(10, dir, dir, nil)
	require.NoError(t, err)

	path := filepath.Join(dir, "big.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c,d,e,f,g,h\n"), 0o644))

	_, err = svc.CSVToExcel(CSVToExcelRequest{Path: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file too large")
}

func TestExcelToCSV_MissingFile(t *testing.T) {
	svc, dir := newTestService(t)
	_, err := svc.ExcelToCSV(ExcelToCSVRequest{Path: filepath.Join(dir, "nope.xlsx")})
	require.Error(t, err)
}
