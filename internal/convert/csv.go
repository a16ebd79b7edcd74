package convert

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/docfold/mcp-doc-convert/internal/layout"
	"github.com/docfold/mcp-doc-convert/internal/xlsx"
)

const defaultSheetName = "Sheet1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fallbackEncodings are tried in order when the input is not valid
// UTF-8. GB2312 text decodes under GBK (a superset); GB18030 catches the
// stragglers; Latin-1 accepts any byte sequence as a last resort.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"gbk", simplifiedchinese.GBK},
	{"gb18030", simplifiedchinese.GB18030},
	{"latin-1", charmap.ISO8859_1},
}

// decodeWithFallback decodes raw CSV bytes, reporting which encoding
// succeeded.
func decodeWithFallback(data []byte) (string, string) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	for _, fe := range fallbackEncodings {
		decoded, err := fe.enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		if !bytes.ContainsRune(decoded, utf8.RuneError) {
			return string(decoded), fe.name
		}
	}
	// Unreachable in practice: Latin-1 maps every byte.
	return string(data), "utf-8"
}

// CSVToExcel converts one CSV file into a single-sheet workbook.
func (s *Service) CSVToExcel(req CSVToExcelRequest) (*CSVToExcelResult, error) {
	if err := s.checkInput(req.Path, ".csv"); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV file: %w", err)
	}
	text, usedEncoding := decodeWithFallback(raw)

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file has no rows")
	}

	columns := 0
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}

	sheetName := req.SheetName
	if sheetName == "" {
		sheetName = defaultSheetName
	}

	outPath := s.outputPath(req.Path, "", ".xlsx")
	colWidths := layout.EstimateColumnWidths(rows, 11, layout.WidthOptions{})
	if err := xlsx.WriteSheet(outPath, sheetName, rows, colWidths); err != nil {
		return nil, fmt.Errorf("cannot write workbook: %w", err)
	}

	return &CSVToExcelResult{
		Output:       describeOutput(outPath),
		UsedEncoding: usedEncoding,
		Rows:         len(rows),
		Columns:      columns,
	}, nil
}

// ExcelToCSV writes one UTF-8 CSV per readable worksheet. Worksheets
// that fail to read are reported and skipped.
func (s *Service) ExcelToCSV(req ExcelToCSVRequest) (*ExcelToCSVResult, error) {
	if err := s.checkInput(req.Path, ".xlsx"); err != nil {
		return nil, err
	}

	sheets, failed, err := xlsx.ReadSheets(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read workbook: %w", err)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no readable worksheets")
	}

	result := &ExcelToCSVResult{FailedSheets: failed}
	for _, sheet := range sheets {
		outPath := s.outputPath(req.Path, sanitizePrefix(sheet.Name), ".csv")
		if err := writeCSVFile(outPath, sheet.Rows); err != nil {
			result.FailedSheets = append(result.FailedSheets, sheet.Name)
			continue
		}
		result.Outputs = append(result.Outputs, describeOutput(outPath))
	}
	if len(result.Outputs) == 0 {
		return nil, fmt.Errorf("no worksheet could be written")
	}
	return result, nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
