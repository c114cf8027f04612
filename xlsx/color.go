package xlsx

import (
	"fmt"
	"strconv"
)

// ColorToCSS converts an AARRGGBB colour to a "#RRGGBB" CSS colour. The alpha
// channel is dropped. A nil colour, or one without an RGB channel, is
// "transparent".
//
// The ARGB string must hold exactly eight hex digits; a channel that does not
// parse reads as 00.
func ColorToCSS(c *Color) string {
	if !c.defined() {
		return "transparent"
	}
	r := channel(c.ARGB, 2)
	g := channel(c.ARGB, 4)
	b := channel(c.ARGB, 6)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func channel(argb string, off int) uint8 {
	if len(argb) < off+2 {
		return 0
	}
	v, err := strconv.ParseUint(argb[off:off+2], 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}
