// Package dither reduces RGB images to the UC8159 palette.
//
// Dither implements Floyd–Steinberg error diffusion. It runs strictly in
// row-major order: every pixel depends on the residuals of the pixels before
// it, so the output is bit-identical between runs.
package dither

import (
	"image"
	"image/color"

	"github.com/flavioheleno/uc8159/image7color"
)

// ColorMap reduces colours to a small indexed set.
type ColorMap interface {
	// IndexOf returns the index in Palette of the colour c maps to.
	IndexOf(c color.RGBA) int
	// MapColor returns the palette colour c maps to.
	MapColor(c color.RGBA) color.RGBA
	// Palette returns the colours MapColor can return, by index.
	Palette() color.Palette
}

// Quantizer is the ColorMap of an image7color.Palette. MapColor returns the
// preview RGB of the chosen colour rather than its classification anchor.
type Quantizer struct {
	p *image7color.Palette
}

// NewQuantizer returns a Quantizer over p.
func NewQuantizer(p *image7color.Palette) *Quantizer {
	return &Quantizer{p: p}
}

// IndexOf implements ColorMap.
func (q *Quantizer) IndexOf(c color.RGBA) int {
	return q.p.Index(c.R, c.G, c.B)
}

// MapColor implements ColorMap.
func (q *Quantizer) MapColor(c color.RGBA) color.RGBA {
	return q.p.Preview(q.Color(c))
}

// Color returns the image7color.Color c maps to.
func (q *Quantizer) Color(c color.RGBA) image7color.Color {
	return q.p.ClosestColor(c.R, c.G, c.B)
}

// Palette implements ColorMap.
func (q *Quantizer) Palette() color.Palette {
	s := q.p.Significant()
	pal := make(color.Palette, len(s))
	for i, c := range s {
		pal[i] = q.p.Preview(c)
	}
	return pal
}

// Colors converts palette indices produced with q back to colours.
func (q *Quantizer) Colors() []image7color.Color {
	return q.p.Significant()
}

// neighbour is one error diffusion target relative to the current pixel.
type neighbour struct {
	dx, dy int
	weight int
}

// errorDivisor is the sum of all neighbour weights.
const errorDivisor = 16

var floydSteinberg = []neighbour{
	{1, 0, 7},
	{-1, 1, 3},
	{0, 1, 5},
	{1, 1, 1},
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// diffuse adds weight/16 of err to the pixel at i, clamping each channel.
func diffuse(pix []uint8, i int, err [3]int, weight int) {
	for c := 0; c < 3; c++ {
		pix[i+c] = clamp(int(pix[i+c]) + err[c]*weight/errorDivisor)
	}
}

// rgbaPalette converts the palette of cm once so a pixel costs a single
// IndexOf search.
func rgbaPalette(cm ColorMap) (color.Palette, []color.RGBA) {
	pal := cm.Palette()
	rgba := make([]color.RGBA, len(pal))
	for i, c := range pal {
		rgba[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return pal, rgba
}

// Dither reduces m in place to colours of cm.Palette(), spreading the
// quantization error of each pixel over its unprocessed neighbours. Error
// falling outside the image is dropped. It returns the palette index chosen
// for every pixel.
func Dither(m *image.RGBA, cm ColorMap) *image.Paletted {
	b := m.Bounds()
	pal, rgba := rgbaPalette(cm)
	out := image.NewPaletted(b, pal)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := m.PixOffset(x, y)
			old := color.RGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: m.Pix[i+3]}

			idx := cm.IndexOf(old)
			mapped := rgba[idx]
			out.SetColorIndex(x, y, uint8(idx))

			m.Pix[i+0] = mapped.R
			m.Pix[i+1] = mapped.G
			m.Pix[i+2] = mapped.B

			err := [3]int{
				int(old.R) - int(mapped.R),
				int(old.G) - int(mapped.G),
				int(old.B) - int(mapped.B),
			}
			spread(m, x, y, err)
		}
	}

	return out
}

// spread distributes err of the pixel at (x, y) to its neighbours inside
// the bounds of m.
func spread(m *image.RGBA, x, y int, err [3]int) {
	b := m.Bounds()
	for _, n := range floydSteinberg {
		nx, ny := x+n.dx, y+n.dy
		if !(image.Point{X: nx, Y: ny}.In(b)) {
			continue
		}
		diffuse(m.Pix, m.PixOffset(nx, ny), err, n.weight)
	}
}

// Map reduces every pixel of m to its nearest colour without diffusing
// any error.
func Map(m *image.RGBA, cm ColorMap) *image.Paletted {
	b := m.Bounds()
	pal, rgba := rgbaPalette(cm)
	out := image.NewPaletted(b, pal)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.RGBAAt(x, y)
			idx := cm.IndexOf(c)
			out.SetColorIndex(x, y, uint8(idx))
			mapped := rgba[idx]
			mapped.A = c.A
			m.SetRGBA(x, y, mapped)
		}
	}

	return out
}
