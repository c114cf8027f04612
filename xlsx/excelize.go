package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

func readExcelize(r io.ReaderAt, size int64, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, &InputDecodeError{Backend: BackendExcelize, Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheets found", ErrEmptyWorksheet)
	}
	name := sheets[0]
	if sheetName != "" {
		if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
			return nil, fmt.Errorf("%w: sheet %q not found", ErrEmptyWorksheet, sheetName)
		}
		name = sheetName
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &InputDecodeError{Backend: BackendExcelize, Err: fmt.Errorf("read sheet %q: %w", name, err)}
	}
	merges, err := f.GetMergeCells(name, true)
	if err != nil {
		return nil, &InputDecodeError{Backend: BackendExcelize, Err: fmt.Errorf("read merges of %q: %w", name, err)}
	}

	sheet := NewSheet(name)
	maxCol, maxRow := 0, len(rows)
	for _, row := range rows {
		maxCol = max(maxCol, len(row))
	}
	for _, mc := range merges {
		ref := mc.GetStartAxis() + ":" + mc.GetEndAxis()
		sheet.Merge(ref)
		if mr, err := ParseMergeRange(ref); err == nil {
			maxCol = max(maxCol, mr.To.Col)
			maxRow = max(maxRow, mr.To.Row)
		}
	}

	styles := make(map[int]CellStyle)
	styleFor := func(id int) CellStyle {
		st, ok := styles[id]
		if !ok {
			st = excelizeCellStyle(f, id)
			styles[id] = st
		}
		return st
	}
	sheet.SetDefaultStyle(styleFor(0))

	for r := 1; r <= maxRow; r++ {
		if ht, err := f.GetRowHeight(name, r); err == nil {
			sheet.SetRowHeight(r, ht)
		}
		for c := 1; c <= maxCol; c++ {
			var value string
			if r <= len(rows) && c <= len(rows[r-1]) {
				value = rows[r-1][c-1]
			}
			cellName, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, fmt.Errorf("cell name for (%d, %d): %w", c, r, err)
			}
			id, err := f.GetCellStyle(name, cellName)
			if err != nil {
				id = 0
			}
			sheet.Set(r, c, value, styleFor(id))
		}
	}
	return sheet, nil
}

// excelizeCellStyle converts an excelize style index into a CellStyle.
// excelize reports colours as "RRGGBB" with an opaque alpha stripped.
func excelizeCellStyle(f *excelize.File, id int) CellStyle {
	var st CellStyle
	s, err := f.GetStyle(id)
	if err != nil || s == nil {
		return st
	}

	if s.Fill.Type == "pattern" && s.Fill.Pattern != 0 && len(s.Fill.Color) > 0 {
		st.Fill = RGB(strings.TrimPrefix(s.Fill.Color[0], "#"))
	}

	for _, b := range s.Border {
		side := BorderSide{Color: RGB(strings.TrimPrefix(b.Color, "#"))}
		if b.Style > 0 && b.Style < len(borderStyleNames) {
			side.Style = BorderStyle(b.Style)
		}
		switch b.Type {
		case "top":
			st.Top = side
		case "bottom":
			st.Bottom = side
		case "left":
			st.Left = side
		case "right":
			st.Right = side
		}
	}

	if fnt := s.Font; fnt != nil {
		st.Font = Font{
			Bold:      fnt.Bold,
			Italic:    fnt.Italic,
			Strike:    fnt.Strike,
			Underline: fnt.Underline != "" && fnt.Underline != "none",
			Size:      fnt.Size,
			Color:     RGB(strings.TrimPrefix(fnt.Color, "#")),
			Name:      fnt.Family,
		}
	}

	if a := s.Alignment; a != nil {
		st.Horizontal = ParseHorizontalAlign(a.Horizontal)
		st.Vertical = ParseVerticalAlign(a.Vertical)
	}
	return st
}
