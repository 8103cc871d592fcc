// Package spreadsheet adapts workbook and CSV files to the pipeline's table
// model. It is a thin shell over excelize and encoding/csv; everything
// schema-aware lives in the domain packages.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/gradefold/gradefold/internal/domain/table"
)

// ReadRaw loads the first sheet of a workbook without header interpretation:
// every sheet row becomes a body row. Used for assignment exports, whose real
// header sits below a free-form preamble.
func ReadRaw(path string) (*table.Table, error) {
	rows, err := sheetRows(path)
	if err != nil {
		return nil, err
	}
	t := &table.Table{}
	for _, r := range rows {
		t.Rows = append(t.Rows, toRow(r))
	}
	return t, nil
}

// ReadWithHeader loads the first sheet treating the first row as the header.
// Used for the course-total workbook.
func ReadWithHeader(path string) (*table.Table, error) {
	rows, err := sheetRows(path)
	if err != nil {
		return nil, err
	}
	t := &table.Table{}
	if len(rows) == 0 {
		return t, nil
	}
	t.Headers = rows[0]
	for _, r := range rows[1:] {
		t.Rows = append(t.Rows, toRow(r))
	}
	return t, nil
}

// ReadCSV loads a CSV file treating the first record as the header. Records
// may be ragged.
func ReadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}

	t := &table.Table{}
	if len(records) == 0 {
		return t, nil
	}
	t.Headers = records[0]
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, toRow(rec))
	}
	return t, nil
}

func sheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = table.FromString(c)
	}
	return row
}
