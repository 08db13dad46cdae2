package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an opaque RGB color. String renders it as an uppercase #RRGGBB literal.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = Color{}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA satisfies color.Color so a Color can be handed to drawing libraries directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}.RGBA()
}

// ParseColor accepts #RGB, #RRGGBB and the SVG 1.1 color keywords.
func ParseColor(s string) (Color, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if !strings.HasPrefix(v, "#") {
		named, ok := colornames.Map[strings.ToLower(v)]
		if !ok {
			return Color{}, fmt.Errorf("unknown color keyword %q", v)
		}
		return Color{R: named.R, G: named.G, B: named.B}, nil
	}

	hex := v[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("color %q must have 3 or 6 hex digits", v)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q is not hexadecimal", v)
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}
