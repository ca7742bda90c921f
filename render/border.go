package render

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/flavioheleno/uc8159/image7color"
)

// DominantColor returns the palette colour nearest to the dominant colour
// of m, found by median cut down to a single colour. Empty images yield
// White.
func DominantColor(m image.Image, p *image7color.Palette) image7color.Color {
	if m == nil || m.Bounds().Empty() {
		return image7color.White
	}
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, 1), m)
	if len(pal) == 0 {
		return image7color.White
	}
	r, g, b, _ := pal[0].RGBA()
	return p.ClosestColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
