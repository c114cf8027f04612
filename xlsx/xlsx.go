package xlsx

import (
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/xuri/excelize/v2"
)

// Style lookups against the raw unioffice style sheet. Cells reference a
// cellXfs entry by index, which in turn points at font, fill and border
// tables.

type xfProps struct {
	xf     *sml.CT_Xf
	font   *sml.CT_Font
	fill   *sml.CT_Fill
	border *sml.CT_Border
}

func lookupXf(ss spreadsheet.StyleSheet, styleID uint32) (xfProps, bool) {
	x := ss.X()
	if x == nil || x.CellXfs == nil || int(styleID) >= len(x.CellXfs.Xf) {
		return xfProps{}, false
	}
	p := xfProps{xf: x.CellXfs.Xf[styleID]}
	if id := p.xf.FontIdAttr; id != nil && x.Fonts != nil && int(*id) < len(x.Fonts.Font) {
		p.font = x.Fonts.Font[*id]
	}
	if id := p.xf.FillIdAttr; id != nil && x.Fills != nil && int(*id) < len(x.Fills.Fill) {
		p.fill = x.Fills.Fill[*id]
	}
	if id := p.xf.BorderIdAttr; id != nil && x.Borders != nil && int(*id) < len(x.Borders.Border) {
		p.border = x.Borders.Border[*id]
	}
	return p, true
}

// cellStyle converts the style sheet entry styleID into a CellStyle. scheme
// may be nil when the workbook carries no theme.
func cellStyle(wb *spreadsheet.Workbook, scheme *dml.CT_ColorScheme, styleID uint32) CellStyle {
	var st CellStyle
	p, ok := lookupXf(wb.StyleSheet, styleID)
	if !ok {
		return st
	}

	if p.fill != nil && p.fill.PatternFill != nil {
		st.Fill = resolveColor(scheme, p.fill.PatternFill.FgColor)
	}

	if p.border != nil {
		st.Top = borderSide(scheme, p.border.Top)
		st.Bottom = borderSide(scheme, p.border.Bottom)
		st.Left = borderSide(scheme, p.border.Left)
		st.Right = borderSide(scheme, p.border.Right)
	}

	if f := p.font; f != nil {
		st.Font.Bold = boolProp(f.B)
		st.Font.Italic = boolProp(f.I)
		st.Font.Strike = boolProp(f.Strike)
		if len(f.U) > 0 {
			st.Font.Underline = f.U[0].ValAttr.String() != "none"
		}
		if len(f.Sz) > 0 {
			st.Font.Size = f.Sz[0].ValAttr
		}
		if len(f.Name) > 0 {
			st.Font.Name = f.Name[0].ValAttr
		}
		// Font colours are taken from rgb only; theme text colours are the
		// document default and stay undefined.
		if len(f.Color) > 0 && f.Color[0].RgbAttr != nil {
			st.Font.Color = RGB(*f.Color[0].RgbAttr)
		}
	}

	if a := p.xf.Alignment; a != nil {
		st.Horizontal = ParseHorizontalAlign(a.HorizontalAttr.String())
		st.Vertical = ParseVerticalAlign(a.VerticalAttr.String())
	}
	return st
}

func borderSide(scheme *dml.CT_ColorScheme, pr *sml.CT_BorderPr) BorderSide {
	if pr == nil {
		return BorderSide{}
	}
	return BorderSide{
		Style: ParseBorderStyle(pr.StyleAttr.String()),
		Color: resolveColor(scheme, pr.Color),
	}
}

// boolProp reads an OOXML boolean property: present without a value means
// true.
func boolProp(props []*sml.CT_BooleanProperty) bool {
	if len(props) == 0 {
		return false
	}
	if v := props[0].ValAttr; v != nil {
		return *v
	}
	return true
}

// resolveColor turns a style colour into a Color. An explicit rgb wins;
// otherwise a theme index is looked up in scheme and its tint applied.
func resolveColor(scheme *dml.CT_ColorScheme, c *sml.CT_Color) *Color {
	if c == nil {
		return nil
	}
	if c.RgbAttr != nil && *c.RgbAttr != "" {
		return RGB(*c.RgbAttr)
	}
	if c.ThemeAttr == nil {
		return nil
	}
	base, ok := schemeColor(scheme, *c.ThemeAttr)
	if !ok || len(base) != 6 {
		return nil
	}
	var tint float64
	if c.TintAttr != nil {
		tint = *c.TintAttr
	}
	return RGB(excelize.ThemeColor(base, tint))
}

func themeScheme(wb *spreadsheet.Workbook) *dml.CT_ColorScheme {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil {
		return nil
	}
	return themes[0].ThemeElements.ClrScheme
}

// schemeColor returns the "RRGGBB" value of theme slot idx. Styles number
// the slots lt1, dk1, lt2, dk2, accent1..6, hlink, folHlink, which swaps the
// light and dark pairs relative to their order in the scheme.
func schemeColor(scheme *dml.CT_ColorScheme, idx uint32) (string, bool) {
	if scheme == nil {
		return "", false
	}
	slots := []*dml.CT_Color{
		scheme.Lt1, scheme.Dk1, scheme.Lt2, scheme.Dk2,
		scheme.Accent1, scheme.Accent2, scheme.Accent3,
		scheme.Accent4, scheme.Accent5, scheme.Accent6,
		scheme.Hlink, scheme.FolHlink,
	}
	if int(idx) >= len(slots) || slots[idx] == nil {
		return "", false
	}
	switch clr := slots[idx]; {
	case clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "":
		return clr.SrgbClr.ValAttr, true
	case clr.SysClr != nil && clr.SysClr.LastClrAttr != nil:
		return *clr.SysClr.LastClrAttr, true
	}
	return "", false
}
