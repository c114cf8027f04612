package xlsx

import (
	"fmt"

	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// MergeRange is a merged block of cells. From is the top-left (anchor) cell
// and To the bottom-right one.
type MergeRange struct {
	From Coord
	To   Coord
}

// ParseMergeRange parses an address such as "A1:C3". Reversed references
// ("C3:A1") are normalised so that From <= To.
func ParseMergeRange(ref string) (MergeRange, error) {
	from, to, err := reference.ParseRangeReference(ref)
	if err != nil {
		return MergeRange{}, fmt.Errorf("parse merge range %q: %w", ref, err)
	}
	mr := MergeRange{
		From: Coord{Col: int(from.ColumnIdx) + 1, Row: int(from.RowIdx)},
		To:   Coord{Col: int(to.ColumnIdx) + 1, Row: int(to.RowIdx)},
	}
	if mr.From.Col > mr.To.Col {
		mr.From.Col, mr.To.Col = mr.To.Col, mr.From.Col
	}
	if mr.From.Row > mr.To.Row {
		mr.From.Row, mr.To.Row = mr.To.Row, mr.From.Row
	}
	if mr.From.Row < 1 {
		return MergeRange{}, fmt.Errorf("parse merge range %q: row out of range", ref)
	}
	return mr, nil
}

// Contains reports whether c lies inside the range.
func (m MergeRange) Contains(c Coord) bool {
	return c.Col >= m.From.Col && c.Col <= m.To.Col &&
		c.Row >= m.From.Row && c.Row <= m.To.Row
}

// spans returns the colspan and rowspan of the range. By default a span is
// the difference between the end and start index, raised to 1 when zero;
// inclusive counts both ends.
func (m MergeRange) spans(inclusive bool) (colspan, rowspan int) {
	colspan = m.To.Col - m.From.Col
	rowspan = m.To.Row - m.From.Row
	if inclusive {
		return colspan + 1, rowspan + 1
	}
	return max(colspan, 1), max(rowspan, 1)
}

// SpanFor scans ranges for one anchored at the given cell. The first match
// wins. Cells that anchor no range get (false, 1, 1).
func SpanFor(ranges []MergeRange, at Coord) (anchor bool, colspan, rowspan int) {
	for _, mr := range ranges {
		if mr.From == at {
			colspan, rowspan = mr.spans(false)
			return true, colspan, rowspan
		}
	}
	return false, 1, 1
}

// MergeIndex answers merge queries for one worksheet with a map keyed by
// anchor coordinate. Span returns what SpanFor would for the same ranges.
type MergeIndex struct {
	ranges    []MergeRange
	anchors   map[Coord]MergeRange
	inclusive bool
}

// NewMergeIndex parses refs and indexes them by anchor. Unparseable
// references are returned in skipped and otherwise ignored.
func NewMergeIndex(refs []string, inclusive bool) (idx *MergeIndex, skipped []string) {
	idx = &MergeIndex{
		anchors:   make(map[Coord]MergeRange, len(refs)),
		inclusive: inclusive,
	}
	for _, ref := range refs {
		mr, err := ParseMergeRange(ref)
		if err != nil {
			skipped = append(skipped, ref)
			continue
		}
		idx.ranges = append(idx.ranges, mr)
		if _, dup := idx.anchors[mr.From]; !dup {
			idx.anchors[mr.From] = mr
		}
	}
	return idx, skipped
}

// Len returns the number of indexed ranges.
func (x *MergeIndex) Len() int { return len(x.ranges) }

// Span reports whether at anchors a range and the spans to emit for it.
func (x *MergeIndex) Span(at Coord) (anchor bool, colspan, rowspan int) {
	mr, ok := x.anchors[at]
	if !ok {
		return false, 1, 1
	}
	colspan, rowspan = mr.spans(x.inclusive)
	return true, colspan, rowspan
}

// Covered reports whether at lies inside any range, anchor included.
func (x *MergeIndex) Covered(at Coord) bool {
	if _, ok := x.anchors[at]; ok {
		return true
	}
	for _, mr := range x.ranges {
		if mr.Contains(at) {
			return true
		}
	}
	return false
}
