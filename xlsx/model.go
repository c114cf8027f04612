package xlsx

import "fmt"

// Worksheet is the read-only view of a single sheet that the renderer walks.
// Rows and columns are 1-based.
type Worksheet interface {
	// Dimension returns the bounding rectangle of the populated or styled
	// cells. ok is false when the sheet has no determinable dimension.
	Dimension() (maxCol, maxRow int, ok bool)
	// RowHeight returns the height of a row in points.
	RowHeight(row int) float64
	// Style returns the visual attributes of a cell.
	Style(row, col int) CellStyle
	// Value returns the cell value as text, empty when absent.
	Value(row, col int) string
	// MergedRanges returns the merge ranges as address strings ("A1:B2") in
	// document order.
	MergedRanges() []string
}

// Color is a spreadsheet colour in AARRGGBB form. An empty ARGB means the
// colour has no RGB channel defined.
type Color struct {
	ARGB string
}

// RGB builds a Color from an "RRGGBB" or "AARRGGBB" hex string. Six digit
// values are treated as opaque. Anything else yields nil.
func RGB(hex string) *Color {
	switch len(hex) {
	case 6:
		return &Color{ARGB: "FF" + hex}
	case 8:
		return &Color{ARGB: hex}
	}
	return nil
}

func (c *Color) defined() bool {
	return c != nil && c.ARGB != ""
}

// BorderStyle is the line kind of one border side. Weight is implied by the
// kind (the medium variants are drawn heavier).
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantDashDot
)

// borderStyleNames follows the OOXML ST_BorderStyle vocabulary, indexed by
// BorderStyle.
var borderStyleNames = []string{
	"none",
	"thin",
	"medium",
	"dashed",
	"dotted",
	"thick",
	"double",
	"hair",
	"mediumDashed",
	"dashDot",
	"mediumDashDot",
	"dashDotDot",
	"mediumDashDotDot",
	"slantDashDot",
}

func (s BorderStyle) String() string {
	if s < 0 || int(s) >= len(borderStyleNames) {
		return fmt.Sprintf("BorderStyle(%d)", int(s))
	}
	return borderStyleNames[s]
}

// ParseBorderStyle maps an OOXML border style name to a BorderStyle.
// Unknown names map to BorderNone.
func ParseBorderStyle(name string) BorderStyle {
	for i, n := range borderStyleNames {
		if n == name {
			return BorderStyle(i)
		}
	}
	return BorderNone
}

// BorderSide is one edge of a cell border.
type BorderSide struct {
	Color *Color
	Style BorderStyle
}

// Font holds the font attributes of a cell.
type Font struct {
	Bold      bool
	Italic    bool
	Strike    bool
	Underline bool
	Size      float64 // points
	Color     *Color
	Name      string
}

// HorizontalAlign is the horizontal alignment of a cell.
type HorizontalAlign int

const (
	HAlignGeneral HorizontalAlign = iota
	HAlignLeft
	HAlignCenter
	HAlignCenterContinuous
	HAlignRight
	HAlignFill
	HAlignJustify
	HAlignDistributed
)

// ParseHorizontalAlign maps an OOXML horizontal alignment name.
func ParseHorizontalAlign(name string) HorizontalAlign {
	switch name {
	case "left":
		return HAlignLeft
	case "center":
		return HAlignCenter
	case "centerContinuous":
		return HAlignCenterContinuous
	case "right":
		return HAlignRight
	case "fill":
		return HAlignFill
	case "justify":
		return HAlignJustify
	case "distributed":
		return HAlignDistributed
	}
	return HAlignGeneral
}

// VerticalAlign is the vertical alignment of a cell.
type VerticalAlign int

const (
	VAlignUnset VerticalAlign = iota
	VAlignTop
	VAlignCenter
	VAlignBottom
	VAlignJustify
	VAlignDistributed
)

// ParseVerticalAlign maps an OOXML vertical alignment name.
func ParseVerticalAlign(name string) VerticalAlign {
	switch name {
	case "top":
		return VAlignTop
	case "center":
		return VAlignCenter
	case "bottom":
		return VAlignBottom
	case "justify":
		return VAlignJustify
	case "distributed":
		return VAlignDistributed
	}
	return VAlignUnset
}

// CellStyle captures the visual attributes of one cell.
type CellStyle struct {
	Fill       *Color // nil renders as transparent
	Top        BorderSide
	Bottom     BorderSide
	Left       BorderSide
	Right      BorderSide
	Font       Font
	Horizontal HorizontalAlign
	Vertical   VerticalAlign
}

func (s CellStyle) String() string {
	return fmt.Sprintf("Fill: %s, Borders: %s/%s/%s/%s, Font: %q %.2fpt, HAlign: %d, VAlign: %d",
		ColorToCSS(s.Fill), s.Top.Style, s.Bottom.Style, s.Left.Style, s.Right.Style,
		s.Font.Name, s.Font.Size, s.Horizontal, s.Vertical)
}

// Coord is a 1-based cell coordinate.
type Coord struct {
	Col int
	Row int
}

// RenderedCell is one emitted <td>.
type RenderedCell struct {
	ColSpan int
	RowSpan int
	Style   string
	Content string
}

func (c RenderedCell) String() string {
	return fmt.Sprintf("ColSpan: %d, RowSpan: %d, Style: %s, Content: %s", c.ColSpan, c.RowSpan, c.Style, c.Content)
}

type cellData struct {
	value string
	style CellStyle
}

// Sheet is an immutable-after-load snapshot of a worksheet. Providers fill it
// through Set, SetRowHeight and Merge, and the renderer only reads it.
type Sheet struct {
	name          string
	cells         map[Coord]cellData
	heights       map[int]float64
	merges        []string
	defaultStyle  CellStyle
	defaultHeight float64
}

// DefaultRowHeight is the height Excel uses for rows without an explicit one.
const DefaultRowHeight = 15.0

// NewSheet returns an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{
		name:          name,
		cells:         make(map[Coord]cellData),
		heights:       make(map[int]float64),
		defaultHeight: DefaultRowHeight,
	}
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Set stores a cell value and style. Setting a cell, even with an empty value,
// extends the sheet dimension to include it.
func (s *Sheet) Set(row, col int, value string, style CellStyle) {
	s.cells[Coord{Col: col, Row: row}] = cellData{value: value, style: style}
}

// SetRowHeight sets the height of a row in points.
func (s *Sheet) SetRowHeight(row int, height float64) {
	s.heights[row] = height
}

// SetDefaultRowHeight sets the height used for rows without an explicit one.
func (s *Sheet) SetDefaultRowHeight(height float64) {
	s.defaultHeight = height
}

// SetDefaultStyle sets the style reported for cells that were never Set.
func (s *Sheet) SetDefaultStyle(style CellStyle) {
	s.defaultStyle = style
}

// Merge records a merge range such as "A1:B2".
func (s *Sheet) Merge(ref string) {
	s.merges = append(s.merges, ref)
}

// Dimension implements Worksheet. Merge ranges count towards the dimension.
func (s *Sheet) Dimension() (maxCol, maxRow int, ok bool) {
	for c := range s.cells {
		maxCol = max(maxCol, c.Col)
		maxRow = max(maxRow, c.Row)
	}
	for _, ref := range s.merges {
		if mr, err := ParseMergeRange(ref); err == nil {
			maxCol = max(maxCol, mr.To.Col)
			maxRow = max(maxRow, mr.To.Row)
		}
	}
	return maxCol, maxRow, maxCol > 0 && maxRow > 0
}

// RowHeight implements Worksheet.
func (s *Sheet) RowHeight(row int) float64 {
	if h, ok := s.heights[row]; ok {
		return h
	}
	return s.defaultHeight
}

// Style implements Worksheet.
func (s *Sheet) Style(row, col int) CellStyle {
	if c, ok := s.cells[Coord{Col: col, Row: row}]; ok {
		return c.style
	}
	return s.defaultStyle
}

// Value implements Worksheet.
func (s *Sheet) Value(row, col int) string {
	return s.cells[Coord{Col: col, Row: row}].value
}

// MergedRanges implements Worksheet.
func (s *Sheet) MergedRanges() []string {
	out := make([]string, len(s.merges))
	copy(out, s.merges)
	return out
}

