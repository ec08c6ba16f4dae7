// Package palette maps ratings to colours and carries the display theme.
package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts c for use with go-colorful.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex parses #rrggbb (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid colour %q: want 6 hex digits", s)
	}
	col, err := colorful.Hex("#" + s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	// Sscanf stops at the first non-hex rune, so partial reads are rejected here.
	if col.Hex() != "#"+strings.ToLower(s) {
		return RGB{}, fmt.Errorf("invalid colour %q: want 6 hex digits", s)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Fixed colours.
var (
	Unrated   = RGB{0x88, 0x88, 0x88}
	DarkText  = RGB{0x00, 0x00, 0x00}
	LightText = RGB{0xff, 0xff, 0xff}
)

// gradient stops, one rating unit apart.
var (
	red    = RGB{0xff, 0x00, 0x00}
	orange = RGB{0xff, 0x80, 0x00}
	yellow = RGB{0xff, 0xff, 0x00}
	olive  = RGB{0x80, 0x80, 0x00}
	green  = RGB{0x00, 0xff, 0x00}
)

// RatingColor maps a rating to the calendar gradient:
//
//	v <= 0     #888888
//	(0, 2]     #FF0000 -> #FF8000  (progress v-1, clamped)
//	(2, 3]     #FF8000 -> #FFFF00
//	(3, 4]     #FFFF00 -> #808000
//	(4, 5]     #808000 -> #00FF00  (clamped above 5)
//
// Channels are interpolated independently and truncated.
func RatingColor(v float64) RGB {
	switch {
	case v <= 0 || math.IsNaN(v):
		return Unrated
	case v <= 2:
		return lerp(red, orange, v-1)
	case v <= 3:
		return lerp(orange, yellow, v-2)
	case v <= 4:
		return lerp(yellow, olive, v-3)
	default:
		return lerp(olive, green, v-4)
	}
}

// TextColor picks the foreground for text drawn over RatingColor(v).
// The yellow midrange and the unrated grey get dark text.
func TextColor(v float64) RGB {
	if v == 0 || (v >= 2.0 && v < 4.0) {
		return DarkText
	}
	return LightText
}

func lerp(from, to RGB, p float64) RGB {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return RGB{
		R: channel(from.R, to.R, p),
		G: channel(from.G, to.G, p),
		B: channel(from.B, to.B, p),
	}
}

func channel(from, to uint8, p float64) uint8 {
	return uint8(int(float64(from) + p*(float64(to)-float64(from))))
}
