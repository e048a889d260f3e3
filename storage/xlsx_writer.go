package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"playstore-dashboard/models"
)

// XLSXWriter stores each written result on its own sheet, named after the task.
// The workbook is saved on Close.
type XLSXWriter struct {
	path   string
	file   *excelize.File
	sheets int
}

// NewXLSXWriter prepares a workbook that will be saved to path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path, file: excelize.NewFile()}, nil
}

// Write appends the result as a new sheet. Numeric columns are stored as numbers.
func (x *XLSXWriter) Write(res *models.Result) error {
	header, rows := res.Records()
	if header == nil {
		return nil
	}

	name := sheetName(res.Task)
	if x.sheets == 0 {
		if err := x.file.SetSheetName(x.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("xlsx: rename sheet: %w", err)
		}
	} else if _, err := x.file.NewSheet(name); err != nil {
		return fmt.Errorf("xlsx: new sheet: %w", err)
	}
	x.sheets++

	if err := x.file.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := x.file.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i+1, err)
		}
	}
	return nil
}

// Close saves the workbook.
func (x *XLSXWriter) Close() error {
	if err := x.file.SaveAs(x.path); err != nil {
		_ = x.file.Close()
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return x.file.Close()
}

func cellValue(v string) interface{} {
	if n, err := strconv.ParseUint(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}

// sheetName trims to the 31 characters a sheet name may hold.
func sheetName(task string) string {
	if task == "" {
		task = "Sheet1"
	}
	if len(task) > 31 {
		task = task[:31]
	}
	return task
}
