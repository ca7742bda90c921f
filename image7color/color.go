package image7color

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a UC8159 colour code. The numeric value is written to the panel
// as-is.
type Color uint8

const (
	Black Color = iota
	White
	Green
	Blue
	Red
	Yellow
	Orange
	// Clean leaves the particles in their uninked state. It is never picked
	// by quantization but is valid for fills and borders.
	Clean
)

// NumColors is the number of colour codes, Clean included.
const NumColors = 8

var names = [NumColors]string{"black", "white", "green", "blue", "red", "yellow", "orange", "clean"}

var significant = []Color{Black, White, Green, Blue, Red, Yellow, Orange}

// Significant returns the colours quantization can choose from, in
// palette-index order.
func Significant() []Color {
	s := make([]Color, len(significant))
	copy(s, significant)
	return s
}

// Valid reports whether c is one of the eight colour codes.
func (c Color) Valid() bool {
	return c < NumColors
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return names[c]
}

// RGBA returns the preview colour of c from DefaultTable.
func (c Color) RGBA() (r, g, b, a uint32) {
	if !c.Valid() {
		return 0, 0, 0, 0xFFFF
	}
	return DefaultTable[c].Preview.RGBA()
}

// ParseColor returns the colour with the given name, ignoring case.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("image7color: unknown color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("image7color: invalid color %d", uint8(c))
	}
	return []byte(names[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// toColor converts any color.Color to the nearest significant Color.
func toColor(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return defaultPalette.ClosestColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colors to Color using the default palette.
var Model = color.ModelFunc(toColor)
