package materialio

import (
	"encoding/csv"
	"io"
	"strconv"

	"proinvoice/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility on
// Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// csvColumns defines the CSV header row.
var csvColumns = []string{"Item", "Price"}

// CSVWriter wraps csv.Writer for exporting material catalogs.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(csvColumns)
}

// WriteEntries converts catalog entries to CSV rows and writes them.
func (w *CSVWriter) WriteEntries(items []domain.MaterialEntry) error {
	for _, item := range items {
		row := []string{item.Name, strconv.FormatFloat(item.UnitPrice, 'f', 2, 64)}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
