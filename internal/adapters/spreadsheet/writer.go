package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gradefold/gradefold/internal/domain/consolidate"
)

const (
	defaultSheetName = "Consolidated"
	bannerSubtitle   = "Assignment Grade Breakdown Per Criteria"

	bannerRow    = 1
	groupRow     = 2
	headerRow    = 3
	dataStartRow = 4

	nameColMinWidth = 14
	nameColMaxWidth = 40
	dataColMinWidth = 8
	dataColMaxWidth = 30
	widthPadding    = 2

	minHeaderRowHeight = 60.0
	groupRowHeight     = 24.0

	a4PaperSize = 9
)

// WriterOption applies a configuration option to a write run.
type WriterOption func(*writer)

// WithSheetName overrides the output sheet name.
func WithSheetName(name string) WriterOption {
	return func(w *writer) {
		if name != "" {
			w.sheet = name
		}
	}
}

type writer struct {
	sheet string
}

// Write renders the consolidated layout to an xlsx workbook at path: banner
// and group rows merged over their spans, rotated headers, zebra-striped data
// rows, thick separators on section boundaries, frozen name columns, and a
// single-page landscape print setup.
func Write(c *consolidate.Consolidated, path string, opts ...WriterOption) error {
	w := &writer{sheet: defaultSheetName}
	for _, opt := range opts {
		opt(w)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := w.writeValues(f, c); err != nil {
		return err
	}
	if err := w.applyStyles(f, c); err != nil {
		return err
	}
	if err := w.applyDimensions(f, c); err != nil {
		return err
	}
	if err := w.applyPageSetup(f, c); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func (w *writer) writeValues(f *excelize.File, c *consolidate.Consolidated) error {
	totalCols := len(c.Headers)

	// Banner spans the whole sheet width.
	if err := w.mergeSpan(f, bannerRow, 1, totalCols); err != nil {
		return err
	}
	if err := w.setCell(f, bannerRow, 1, c.CourseName+"\n"+bannerSubtitle); err != nil {
		return err
	}

	// Group row: one merged label per section.
	for _, sec := range c.Sections {
		if err := w.mergeSpan(f, groupRow, sec.Start+1, sec.End+1); err != nil {
			return err
		}
		if err := w.setCell(f, groupRow, sec.Start+1, sec.Label); err != nil {
			return err
		}
	}

	for i, h := range c.Headers {
		if err := w.setCell(f, headerRow, i+1, h); err != nil {
			return err
		}
	}

	for r, row := range c.Rows {
		for col, cell := range row {
			if cell.IsMissing() {
				continue
			}
			if err := w.setCell(f, dataStartRow+r, col+1, cell.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *writer) applyStyles(f *excelize.File, c *consolidate.Consolidated) error {
	styles := newStyleCache(f)
	boundaries := make(map[int]bool, len(c.Sections))
	for _, sec := range c.Sections {
		boundaries[sec.End+1] = true
	}
	totalCols := len(c.Headers)
	lastRow := dataStartRow + len(c.Rows) - 1

	for row := bannerRow; row <= lastRow; row++ {
		for col := 1; col <= totalCols; col++ {
			kind := kindData
			stripe := false
			switch {
			case row == bannerRow:
				kind = kindTitle
			case row == groupRow:
				kind = kindGroup
			case row == headerRow:
				kind = kindHeader
			case col <= 2:
				kind = kindName
				stripe = (row-dataStartRow)%2 == 1
			default:
				stripe = (row-dataStartRow)%2 == 1
			}
			id, err := styles.id(kind, stripe, boundaries[col])
			if err != nil {
				return fmt.Errorf("build style: %w", err)
			}
			ref, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(w.sheet, ref, ref, id); err != nil {
				return fmt.Errorf("style cell %s: %w", ref, err)
			}
		}
	}
	return nil
}

func (w *writer) applyDimensions(f *excelize.File, c *consolidate.Consolidated) error {
	longestHeader := 0
	for col, header := range c.Headers {
		maxLen := len(header)
		for _, row := range c.Rows {
			if col < len(row) {
				if l := len(row[col].String()); l > maxLen {
					maxLen = l
				}
			}
		}
		if l := len(header); l > longestHeader {
			longestHeader = l
		}

		minW, maxW := dataColMinWidth, dataColMaxWidth
		if col < 2 {
			minW, maxW = nameColMinWidth, nameColMaxWidth
		}
		width := maxLen + widthPadding
		if width < minW {
			width = minW
		}
		if width > maxW {
			width = maxW
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(w.sheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	// Rotated header labels need vertical room proportional to their length.
	headerHeight := float64(longestHeader) * 2
	if headerHeight < minHeaderRowHeight {
		headerHeight = minHeaderRowHeight
	}
	if err := f.SetRowHeight(w.sheet, headerRow, headerHeight); err != nil {
		return fmt.Errorf("set header row height: %w", err)
	}
	if err := f.SetRowHeight(w.sheet, groupRow, groupRowHeight); err != nil {
		return fmt.Errorf("set group row height: %w", err)
	}
	return nil
}

func (w *writer) applyPageSetup(f *excelize.File, c *consolidate.Consolidated) error {
	if err := f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      headerRow,
		TopLeftCell: "C4",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("freeze panes: %w", err)
	}

	orientation := "landscape"
	size := a4PaperSize
	one := 1
	if err := f.SetPageLayout(w.sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		Size:        &size,
		FitToHeight: &one,
		FitToWidth:  &one,
	}); err != nil {
		return fmt.Errorf("page layout: %w", err)
	}

	fitToPage := true
	if err := f.SetSheetProps(w.sheet, &excelize.SheetPropsOptions{FitToPage: &fitToPage}); err != nil {
		return fmt.Errorf("sheet props: %w", err)
	}

	centered := true
	if err := f.SetPageMargins(w.sheet, &excelize.PageLayoutMarginsOptions{Horizontally: &centered}); err != nil {
		return fmt.Errorf("page margins: %w", err)
	}
	return nil
}

func (w *writer) mergeSpan(f *excelize.File, row, startCol, endCol int) error {
	if startCol > endCol {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(startCol, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(endCol, row)
	if err != nil {
		return err
	}
	if err := f.MergeCell(w.sheet, start, end); err != nil {
		return fmt.Errorf("merge %s:%s: %w", start, end, err)
	}
	return nil
}

func (w *writer) setCell(f *excelize.File, row, col int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(w.sheet, ref, value); err != nil {
		return fmt.Errorf("set cell %s: %w", ref, err)
	}
	return nil
}
