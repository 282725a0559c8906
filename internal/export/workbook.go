package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ErrDuplicateSheetName is returned when two sheets in one workbook
// sanitize to the same name. Collisions are surfaced, not deduped.
var ErrDuplicateSheetName = errors.New("duplicate sheet name in export")

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

type Workbook struct {
	File *excelize.File
	used map[string]bool
}

func NewWorkbook() *Workbook {
	return &Workbook{File: excelize.NewFile(), used: map[string]bool{}}
}

func (w *Workbook) addSheet(name string) error {
	if w.used[name] {
		return fmt.Errorf("%w: %q", ErrDuplicateSheetName, name)
	}
	if len(w.used) == 0 {
		// reuse the default Sheet1 for the first sheet
		if err := w.File.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		if _, err := w.File.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet: %w", err)
		}
	}
	w.used[name] = true
	return nil
}

// AddRowSheet writes a header-plus-rows table: bold header, autofilter
// on row 1, heuristic column widths.
func (w *Workbook) AddRowSheet(s SheetSpec) error {
	if err := w.addSheet(s.Title); err != nil {
		return err
	}
	name := s.Title

	bold, _ := w.File.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for col, h := range s.Header {
		cell := cellRef(col+1, 1)
		if err := w.File.SetCellStr(name, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(s.Header)) + "1"
	_ = w.File.SetCellStyle(name, "A1", end, bold)
	_ = w.File.AutoFilter(name, "A1:"+end, nil)

	for r, row := range s.Rows {
		for c, val := range row {
			cell := cellRef(c+1, r+2)
			if err := w.File.SetCellStr(name, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// width by header and the first rows
	for c := 1; c <= len(s.Header); c++ {
		widest := len(s.Header[c-1])
		for r := 0; r < min(50, len(s.Rows)); r++ {
			if c <= len(s.Rows[r]) {
				if l := len(s.Rows[r][c-1]); l > widest {
					widest = l
				}
			}
		}
		width := float64(widest) * 0.9
		if width < 12 {
			width = 12
		}
		if width > 40 {
			width = 40
		}
		_ = w.File.SetColWidth(name, colName(c), colName(c), width)
	}
	return nil
}

// AddGridSheet writes raw cells with no styling, for the block-layout
// exports that mix titles, labels and tables on one sheet.
func (w *Workbook) AddGridSheet(name string, grid [][]string) error {
	if err := w.addSheet(name); err != nil {
		return err
	}
	for r, row := range grid {
		for c, val := range row {
			cell := cellRef(c+1, r+1)
			if err := w.File.SetCellStr(name, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// SaveTo writes the workbook into dir and returns the full path.
func (w *Workbook) SaveTo(dir, filename string) (string, error) {
	path := filepath.Join(dir, filename)
	return path, w.File.SaveAs(path)
}

// helpers

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}
