package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"playstore-dashboard/models"
)

// CSVWriter writes a tidy table as CSV with a header row.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{file: f, writer: csv.NewWriter(f)}, nil
}

// Write emits the result's header and rows.
func (c *CSVWriter) Write(res *models.Result) error {
	return WriteCSV(c.writer, res)
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// WriteCSV writes res to w and flushes it.
func WriteCSV(w *csv.Writer, res *models.Result) error {
	header, rows := res.Records()
	if header == nil {
		return nil
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	return nil
}

// NewStreamCSVWriter writes CSV to an arbitrary stream, such as stdout.
func NewStreamCSVWriter(w io.Writer) ResultWriter {
	return &streamCSV{writer: csv.NewWriter(w)}
}

type streamCSV struct {
	writer *csv.Writer
}

func (s *streamCSV) Write(res *models.Result) error { return WriteCSV(s.writer, res) }

func (s *streamCSV) Close() error {
	s.writer.Flush()
	return s.writer.Error()
}
