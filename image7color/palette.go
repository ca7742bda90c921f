package image7color

import (
	"image/color"
	"math"
)

// DefaultWeight is the saturation weight used when none is configured.
const DefaultWeight = 1.0

// hueWeight scales the hue term against value and saturation.
const hueWeight = 4.0

// hsv is a colour in hue (degrees), saturation and value ([0, 1]).
type hsv struct {
	h, s, v float64
}

func toHSV(r, g, b uint8) hsv {
	hi := math.Max(float64(r), math.Max(float64(g), float64(b)))
	lo := math.Min(float64(r), math.Min(float64(g), float64(b)))
	d := hi - lo

	var c hsv
	c.v = hi / 255
	if hi > 0 {
		c.s = d / hi
	}
	if d == 0 {
		return c
	}

	switch hi {
	case float64(r):
		c.h = 60 * math.Mod((float64(g)-float64(b))/d, 6)
	case float64(g):
		c.h = 60 * ((float64(b)-float64(r))/d + 2)
	default:
		c.h = 60 * ((float64(r)-float64(g))/d + 4)
	}
	if c.h < 0 {
		c.h += 360
	}
	return c
}

// distance is symmetric in a and b. Hue only counts in proportion to the
// saturation of both colours so greys are told apart by value alone.
func distance(a, b hsv, weight float64) float64 {
	dv := a.v - b.v
	ds := a.s - b.s
	dh := math.Abs(a.h - b.h)
	if dh > 180 {
		dh = 360 - dh
	}
	dh /= 180
	return dv*dv + weight*ds*ds + hueWeight*math.Sqrt(a.s*b.s)*dh*dh
}

// Palette finds the nearest significant colour of an RGB value. It is
// immutable once built.
type Palette struct {
	weight  float64
	table   Table
	anchors [NumColors - 1]hsv
}

var defaultPalette = NewPalette(DefaultWeight)

// NewPalette returns a palette over DefaultTable. weight scales the
// saturation difference term of the distance.
func NewPalette(weight float64) *Palette {
	return NewPaletteFromTable(weight, DefaultTable)
}

// NewPaletteFromTable returns a palette over t.
func NewPaletteFromTable(weight float64, t Table) *Palette {
	p := &Palette{weight: weight, table: t}
	for i, c := range significant {
		a := t[c].Classify
		p.anchors[i] = toHSV(a.R, a.G, a.B)
	}
	return p
}

// Weight returns the saturation weight.
func (p *Palette) Weight() float64 {
	return p.weight
}

// Significant returns the colours ClosestColor chooses from, in
// palette-index order.
func (p *Palette) Significant() []Color {
	return Significant()
}

// Preview returns the preview RGB of c.
func (p *Palette) Preview(c Color) color.RGBA {
	if !c.Valid() {
		return color.RGBA{A: 0xFF}
	}
	return p.table[c].Preview
}

// Classify returns the classification anchor of c.
func (p *Palette) Classify(c Color) color.RGBA {
	if !c.Valid() {
		return color.RGBA{A: 0xFF}
	}
	return p.table[c].Classify
}

// Distance returns the perceptual distance between a and b. Alpha is
// ignored.
func (p *Palette) Distance(a, b color.RGBA) float64 {
	return distance(toHSV(a.R, a.G, a.B), toHSV(b.R, b.G, b.B), p.weight)
}

// Index returns the palette index of the significant colour closest to
// (r, g, b). Ties go to the lowest index.
func (p *Palette) Index(r, g, b uint8) int {
	c := toHSV(r, g, b)
	best, bestDist := 0, math.Inf(1)
	for i, a := range p.anchors {
		if d := distance(c, a, p.weight); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ClosestColor returns the significant colour closest to (r, g, b). It never
// returns Clean.
func (p *Palette) ClosestColor(r, g, b uint8) Color {
	return significant[p.Index(r, g, b)]
}

// Convert implements color.Model.
func (p *Palette) Convert(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return p.ClosestColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
