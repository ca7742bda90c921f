package image7color

import (
	"image"
	"image/color"
)

// Image is a UC8159 frame buffer: one 4-bit colour code per pixel, two
// pixels per byte. High nibble = left pixel, low nibble = right pixel.
type Image struct {
	Pix    []byte          // Pixel data (2 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new Image with the specified bounds. An odd width
// leaves the low nibble of the last byte of each row unused.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	stride := (w + 1) / 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the colour of the pixel at (x, y).
func (p *Image) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the Color of the pixel at (x, y).
func (p *Image) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	offset, shift := p.pixOffset(x, y)
	return Color((p.Pix[offset] >> shift) & 0x0F)
}

// Set sets the pixel at (x, y) to the colour nearest to c.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, Model.Convert(c).(Color))
}

// SetPixel sets the Color of the pixel at (x, y). Coordinates outside the
// bounds are ignored.
func (p *Image) SetPixel(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x0F << shift)) | ((byte(c) & 0x0F) << shift)
}

// Fill sets every pixel to c.
func (p *Image) Fill(c Color) {
	v := byte(c)&0x0F<<4 | byte(c)&0x0F
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// Width returns the width in pixels.
func (p *Image) Width() int {
	return p.Rect.Dx()
}

// Height returns the height in pixels.
func (p *Image) Height() int {
	return p.Rect.Dy()
}

// Preview renders the image with each colour's preview RGB from t.
func (p *Image) Preview(t Table) *image.RGBA {
	m := image.NewRGBA(p.Rect)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			c := p.ColorAt(x, y)
			if c.Valid() {
				m.SetRGBA(x, y, t[c].Preview)
			}
		}
	}
	return m
}

// pixOffset returns the byte offset and bit shift for the pixel at (x, y).
// Even x uses the high nibble, odd x the low nibble.
func (p *Image) pixOffset(x, y int) (offset int, shift uint) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/2
	shift = uint(4 * (1 - (dx & 1)))
	return
}
