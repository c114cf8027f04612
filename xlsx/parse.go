package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
	"github.com/xuri/excelize/v2"
)

// Backend selects the library used to decode the spreadsheet container.
type Backend string

const (
	BackendUnioffice Backend = "unioffice"
	BackendExcelize  Backend = "excelize"
)

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendUnioffice

// ParseBackend validates a backend name. The empty string selects
// DefaultBackend.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "":
		return DefaultBackend, nil
	case BackendUnioffice, BackendExcelize:
		return Backend(name), nil
	}
	return "", fmt.Errorf("unknown backend %q (must be %s or %s)", name, BackendUnioffice, BackendExcelize)
}

// Open decodes one worksheet from an XLSX container into a Sheet snapshot.
// sheetName selects the sheet; empty means the first one.
func Open(r io.ReaderAt, size int64, backend Backend, sheetName string) (*Sheet, error) {
	switch backend {
	case BackendExcelize:
		return readExcelize(r, size, sheetName)
	case BackendUnioffice, "":
		return readUnioffice(r, size, sheetName)
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

func readUnioffice(r io.ReaderAt, size int64, sheetName string) (*Sheet, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, &InputDecodeError{Backend: BackendUnioffice, Err: err}
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheets found", ErrEmptyWorksheet)
	}
	src := sheets[0]
	if sheetName != "" {
		found := false
		for _, s := range sheets {
			if s.Name() == sheetName {
				src, found = s, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: sheet %q not found", ErrEmptyWorksheet, sheetName)
		}
	}

	sheet := NewSheet(src.Name())
	strs := &sharedStrings{r: r, size: size, sheet: src.Name(), table: wb.SharedStrings.X()}
	defer strs.close()

	scheme := themeScheme(wb)
	styles := make(map[uint32]CellStyle)
	styleFor := func(id uint32) CellStyle {
		st, ok := styles[id]
		if !ok {
			st = cellStyle(wb, scheme, id)
			styles[id] = st
		}
		return st
	}
	sheet.SetDefaultStyle(styleFor(0))

	ws := src.X()
	if ws.SheetFormatPr != nil && ws.SheetFormatPr.DefaultRowHeightAttr > 0 {
		sheet.SetDefaultRowHeight(ws.SheetFormatPr.DefaultRowHeightAttr)
	}

	for _, row := range src.Rows() {
		rowNum := int(row.RowNumber())
		if row.X().HtAttr != nil {
			sheet.SetRowHeight(rowNum, *row.X().HtAttr)
		}
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			col := int(reference.ColumnToIndex(colName)) + 1
			var styleID uint32
			if cell.X().SAttr != nil {
				styleID = *cell.X().SAttr
			}
			value := cell.GetFormattedValue()
			if cell.X().TAttr == sml.ST_CellTypeS && value == "" {
				ref := colName + strconv.Itoa(rowNum)
				if value, err = strs.lookup(cell.X(), ref); err != nil {
					return nil, &InputDecodeError{Backend: BackendUnioffice, Err: err}
				}
			}
			sheet.Set(rowNum, col, value, styleFor(styleID))
		}
	}

	if ws.MergeCells != nil {
		for _, mc := range ws.MergeCells.MergeCell {
			sheet.Merge(mc.RefAttr)
		}
	}
	return sheet, nil
}

// sharedStrings resolves t="s" cells. unioffice leaves its table empty for
// workbooks whose sharedStrings part it does not load (excelize output among
// them); those cells are then read through excelize, opened on first use.
type sharedStrings struct {
	r     io.ReaderAt
	size  int64
	sheet string
	table *sml.Sst
	file  *excelize.File
}

func (s *sharedStrings) lookup(c *sml.CT_Cell, ref string) (string, error) {
	if s.table != nil && c.V != nil {
		if idx, err := strconv.Atoi(*c.V); err == nil && idx >= 0 && idx < len(s.table.Si) {
			if si := s.table.Si[idx]; si != nil && si.T != nil {
				return *si.T, nil
			}
		}
	}
	if s.file == nil {
		f, err := excelize.OpenReader(io.NewSectionReader(s.r, 0, s.size))
		if err != nil {
			return "", fmt.Errorf("read shared strings: %w", err)
		}
		s.file = f
	}
	return s.file.GetCellValue(s.sheet, ref, excelize.Options{RawCellValue: true})
}

func (s *sharedStrings) close() {
	if s.file != nil {
		_ = s.file.Close()
	}
}
