package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/flavioheleno/uc8159/image7color"
)

// Canvas is a device pixel buffer. Coordinates outside the canvas are the
// canvas' concern.
type Canvas interface {
	Fill(c image7color.Color)
	SetPixel(x, y int, c image7color.Color)
	Width() int
	Height() int
}

// BorderSetter is implemented by canvases with a configurable border.
type BorderSetter interface {
	SetBorder(c image7color.Color)
}

// Overflow selects what happens to pixels of an image larger than the
// canvas.
type Overflow int

const (
	// OverflowForward passes every pixel to the canvas, including those
	// beyond its bounds.
	OverflowForward Overflow = iota
	// OverflowClip drops pixels beyond the canvas bounds.
	OverflowClip
)

func (o Overflow) String() string {
	switch o {
	case OverflowForward:
		return "forward"
	case OverflowClip:
		return "clip"
	}
	return fmt.Sprintf("Overflow(%d)", int(o))
}

// ParseOverflow parses "forward" or "clip".
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward":
		return OverflowForward, nil
	case "clip":
		return OverflowClip, nil
	}
	return 0, fmt.Errorf("render: unknown overflow policy %q", s)
}

// Padding returns the offset that centres an imgW×imgH image on a
// canvasW×canvasH canvas. Each component is clamped to zero.
func Padding(canvasW, canvasH, imgW, imgH int) image.Point {
	p := image.Point{X: (canvasW - imgW) / 2, Y: (canvasH - imgH) / 2}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// Composite writes the colours chosen at dither time to cv, offset by pad.
// colors maps palette indices of m to device colours. It returns the number
// of SetPixel calls made.
func Composite(cv Canvas, m *image.Paletted, colors []image7color.Color, pad image.Point, o Overflow) int {
	return composite(cv, m.Bounds(), pad, o, func(x, y int) image7color.Color {
		i := int(m.ColorIndexAt(x, y))
		if i >= len(colors) {
			return image7color.Clean
		}
		return colors[i]
	})
}

// CompositeRGB writes m to cv, looking every pixel up in p again.
func CompositeRGB(cv Canvas, m *image.RGBA, p *image7color.Palette, pad image.Point, o Overflow) int {
	return composite(cv, m.Bounds(), pad, o, func(x, y int) image7color.Color {
		c := m.RGBAAt(x, y)
		return p.ClosestColor(c.R, c.G, c.B)
	})
}

func composite(cv Canvas, b image.Rectangle, pad image.Point, o Overflow, at func(x, y int) image7color.Color) int {
	w, h := cv.Width(), cv.Height()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cx, cy := pad.X+x-b.Min.X, pad.Y+y-b.Min.Y
			if o == OverflowClip && (cx >= w || cy >= h) {
				continue
			}
			cv.SetPixel(cx, cy, at(x, y))
			n++
		}
	}
	return n
}
