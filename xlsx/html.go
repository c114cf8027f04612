package xlsx

import (
	"fmt"
	"html"
	"strings"
)

// TableStyle is the inline style of the emitted <table>.
const TableStyle = "width:100%; table-layout:fixed; border-collapse:collapse"

// DebugBorder is appended to every cell style in debug mode.
const DebugBorder = "border: 1px solid black"

// RenderOptions configures Render.
type RenderOptions struct {
	// Debug draws a visible border around every cell.
	Debug bool
	// InclusiveSpans counts both ends of a merge range when computing
	// colspan and rowspan (A1:B1 gives colspan="2"). When false a span is
	// end minus start, clamped to at least 1.
	InclusiveSpans bool
}

// Render converts a worksheet into a raw, unnormalised HTML <table> fragment.
// The output is a pure function of the worksheet content and opts.
func Render(ws Worksheet, opts RenderOptions) (string, error) {
	maxCol, maxRow, ok := ws.Dimension()
	if !ok || maxCol < 1 || maxRow < 1 {
		return "", ErrEmptyWorksheet
	}

	merges, _ := NewMergeIndex(ws.MergedRanges(), opts.InclusiveSpans)

	var extra []string
	if opts.Debug {
		extra = append(extra, DebugBorder)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`<table style="%s">`, TableStyle))
	for row := 1; row <= maxRow; row++ {
		builder.WriteString(fmt.Sprintf(`<tr style="height: %spt">`, FormatNumber(ws.RowHeight(row))))
		for col := 1; col <= maxCol; col++ {
			cell, emit := renderCell(ws, merges, Coord{Col: col, Row: row}, extra)
			if !emit {
				continue
			}
			builder.WriteString(fmt.Sprintf(`<td rowspan="%d" colspan="%d" style="%s">`,
				cell.RowSpan, cell.ColSpan, html.EscapeString(cell.Style)))
			builder.WriteString(html.EscapeString(cell.Content))
			builder.WriteString("</td>")
		}
		builder.WriteString("</tr>")
	}
	builder.WriteString("</table>")
	return builder.String(), nil
}

// renderCell resolves one cell. Cells covered by a merge range they do not
// anchor are not emitted.
func renderCell(ws Worksheet, merges *MergeIndex, at Coord, extra []string) (RenderedCell, bool) {
	anchor, colspan, rowspan := merges.Span(at)
	if !anchor && merges.Covered(at) {
		return RenderedCell{}, false
	}
	return RenderedCell{
		ColSpan: colspan,
		RowSpan: rowspan,
		Style:   ResolveStyle(ws.Style(at.Row, at.Col), extra...),
		Content: ws.Value(at.Row, at.Col),
	}, true
}
