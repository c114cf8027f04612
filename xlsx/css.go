package xlsx

import (
	"fmt"
	"strings"
	"unicode"
)

// FallbackFont is appended to every font-family declaration.
const FallbackFont = "Arial"

// ResolveStyle converts a CellStyle to an inline CSS declaration string.
//
// Declarations are emitted in a fixed order: background, borders (top,
// bottom, left, right), font, horizontal then vertical alignment. Each extra
// string is appended afterwards, terminated with ';' if it is not already.
func ResolveStyle(s CellStyle, extra ...string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("background-color: %s;", ColorToCSS(s.Fill)))

	writeBorder(&b, "top", s.Top)
	writeBorder(&b, "bottom", s.Bottom)
	writeBorder(&b, "left", s.Left)
	writeBorder(&b, "right", s.Right)

	writeFont(&b, s.Font)

	switch s.Horizontal {
	case HAlignCenter:
		b.WriteString("text-align: center;")
	case HAlignRight:
		b.WriteString("text-align: right;")
	case HAlignJustify:
		b.WriteString("text-align: justify;")
	default:
		b.WriteString("text-align: initial;")
	}

	switch s.Vertical {
	case VAlignTop:
		b.WriteString("vertical-align: top;")
	case VAlignCenter:
		b.WriteString("vertical-align: middle;")
	case VAlignBottom:
		b.WriteString("vertical-align: bottom;")
	default:
		b.WriteString("vertical-align: initial;")
	}

	for _, e := range extra {
		b.WriteString(e)
		if !strings.HasSuffix(e, ";") {
			b.WriteByte(';')
		}
	}
	return b.String()
}

// writeBorder emits one border side. A side whose colour has no RGB channel
// is not drawn, whatever its line style.
func writeBorder(b *strings.Builder, side string, bs BorderSide) {
	if !bs.Color.defined() {
		return
	}
	b.WriteString(fmt.Sprintf("border-%s: %s %s %s;", side, borderWidth(bs.Style), borderLine(bs.Style), ColorToCSS(bs.Color)))
}

func borderWidth(s BorderStyle) string {
	switch s {
	case BorderMedium, BorderMediumDashed, BorderMediumDashDot, BorderMediumDashDotDot:
		return "2px"
	}
	return "1px"
}

func borderLine(s BorderStyle) string {
	switch s {
	case BorderDashed, BorderMediumDashed:
		return "dashed"
	case BorderDotted:
		return "dotted"
	case BorderDouble:
		return "double"
	case BorderNone:
		return "none"
	case BorderDashDot, BorderMediumDashDot:
		return "dotted dashed"
	case BorderDashDotDot, BorderMediumDashDotDot:
		return "dotted dashed dotted"
	}
	return "solid"
}

func writeFont(b *strings.Builder, f Font) {
	if f.Bold {
		b.WriteString("font-weight: bold;")
	}

	var decoration []string
	if f.Strike {
		decoration = append(decoration, "line-through")
	}
	if f.Underline {
		decoration = append(decoration, "underline")
	}
	if len(decoration) > 0 {
		b.WriteString(fmt.Sprintf("text-decoration: %s;", strings.Join(decoration, " ")))
	}

	if f.Italic {
		b.WriteString("font-style: italic;")
	}

	b.WriteString(fmt.Sprintf("font-size: %spt;", FormatNumber(f.Size)))

	if f.Color.defined() {
		b.WriteString(fmt.Sprintf("color: %s;", ColorToCSS(f.Color)))
	}

	b.WriteString(fmt.Sprintf("font-family: %s;", fontFamily(f.Name)))
}

func fontFamily(name string) string {
	if name == "" {
		return FallbackFont
	}
	family := name
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		family = `"` + name + `"`
	}
	if name != FallbackFont {
		family += ", " + FallbackFont
	}
	return family
}
