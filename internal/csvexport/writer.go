package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tradeflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Format selects the export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ParseFormat maps a request value to a Format. Empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidExportFormat, s)
	}
}

// Columns is the header row, in export column order.
var Columns = []string{
	"PO_NUMBER",
	"PO_DATE",
	"CUSTOMER_NAME",
	"CO_CODE",
	"END_USER_CUSTOMER_NAME",
	"END_USER_CUSTOMER_NUMBER",
	"WORK_SCOPE",
	"CERT_NUM",
	"TSN",
	"CSN",
	"ITEM",
	"PRODUCT_CODE",
	"QTY_ORDERED",
	"ENGINE_MODEL",
	"ENGINE_NUMBER",
	"SERIAL_NUMBER",
	"IMPORT_DOC_NUM",
	"IMPORT_DATE",
	"IMPORT_LINE",
	"IMPORT_PRICE",
}

// Writer wraps csv.Writer for exporting reconciliation records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.CsvRecord) error {
	for i := range records {
		if err := w.csv.Write(RecordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, the header and every record to out.
func WriteCSV(out io.Writer, records []domain.CsvRecord) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRecords(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

const sheetName = "Export"

// WriteXLSX writes the header and every record as a single-sheet workbook.
func WriteXLSX(out io.Writer, records []domain.CsvRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("csvexport.WriteXLSX: %w", err)
	}
	if err := sw.SetRow("A1", toCells(Columns)); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX: %w", err)
	}
	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("csvexport.WriteXLSX: %w", err)
		}
		if err := sw.SetRow(cell, toCells(RecordToRow(&records[i]))); err != nil {
			return fmt.Errorf("csvexport.WriteXLSX: %w", err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("csvexport.WriteXLSX: %w", err)
	}
	return nil
}

// Write dispatches to the encoder for format.
func Write(out io.Writer, format Format, records []domain.CsvRecord) error {
	if format == FormatXLSX {
		return WriteXLSX(out, records)
	}
	return WriteCSV(out, records)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// RecordToRow flattens a record in Columns order. Absent values become empty cells.
func RecordToRow(r *domain.CsvRecord) []string {
	return []string{
		deref(r.PONumber),
		deref(r.PODate),
		deref(r.CustomerName),
		deref(r.COCode),
		deref(r.EndUserCustomerName),
		deref(r.EndUserCustomerNumber),
		deref(r.WorkScope),
		deref(r.CertNum),
		deref(r.TSN),
		deref(r.CSN),
		deref(r.Item),
		deref(r.ProductCode),
		deref(r.QtyOrdered),
		deref(r.EngineModel),
		deref(r.EngineNumber),
		deref(r.SerialNumber),
		deref(r.ImportDocNum),
		deref(r.ImportDate),
		deref(r.ImportLine),
		deref(r.ImportPrice),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_prefix}_{YYYY-MM-DD}.{csv|xlsx}
func BuildFilename(prefix string, format Format, now time.Time) string {
	sanitized := SanitizeFilename(prefix)
	if sanitized == "" {
		sanitized = "export"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}
