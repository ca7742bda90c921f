// Package render turns decoded images into UC8159 frames.
//
// A render fits the source to the canvas, dithers it against the palette,
// centres it and writes every pixel through the Canvas interface. Showing
// the frame is left to the caller.
package render

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flavioheleno/uc8159/dither"
	"github.com/flavioheleno/uc8159/image7color"
)

// Options configures a Renderer.
type Options struct {
	// Weight is the palette saturation weight.
	Weight float64
	// Background fills the canvas before the image is written.
	Background image7color.Color
	// Border is applied to canvases implementing BorderSetter.
	Border image7color.Color
	// AutoBorder replaces Border with the colour nearest to the dominant
	// colour of the source.
	AutoBorder bool
	Scale      Scale
	Overflow   Overflow
	// NoDither maps every pixel to its nearest colour without error
	// diffusion.
	NoDither bool
}

// DefaultOptions mirrors the stock Inky setup: white background and border.
func DefaultOptions() Options {
	return Options{
		Weight:     image7color.DefaultWeight,
		Background: image7color.White,
		Border:     image7color.White,
	}
}

// Result describes a completed render.
type Result struct {
	Canvas image.Point // Canvas width and height
	Size   image.Point // Fitted image width and height
	Pad    image.Point
	Writes int
	Border image7color.Color
}

// Renderer runs the render pipeline. A Renderer holds no per-render state
// but must not be used on the same canvas concurrently.
type Renderer struct {
	opts    Options
	palette *image7color.Palette
	quant   *dither.Quantizer
	log     *logrus.Entry
}

// New returns a Renderer. log may be nil.
func New(opts Options, log *logrus.Entry) *Renderer {
	if log == nil {
		log = logrus.WithField("component", "render")
	}
	p := image7color.NewPalette(opts.Weight)
	return &Renderer{
		opts:    opts,
		palette: p,
		quant:   dither.NewQuantizer(p),
		log:     log,
	}
}

// Palette returns the palette the renderer quantizes with.
func (r *Renderer) Palette() *image7color.Palette {
	return r.palette
}

// Render draws src onto cv. An empty source or canvas leaves the canvas
// filled with the background colour.
func (r *Renderer) Render(cv Canvas, src image.Image) Result {
	start := time.Now()
	res := Result{Canvas: image.Point{X: cv.Width(), Y: cv.Height()}, Border: r.opts.Border}

	cv.Fill(r.opts.Background)

	if bs, ok := cv.(BorderSetter); ok {
		if r.opts.AutoBorder {
			res.Border = DominantColor(src, r.palette)
		}
		bs.SetBorder(res.Border)
	}

	if res.Canvas.X <= 0 || res.Canvas.Y <= 0 {
		r.log.WithField("canvas", res.Canvas).Warn("empty canvas")
		return res
	}

	var sb image.Rectangle
	if src != nil {
		sb = src.Bounds()
	}
	w, h := TargetSize(r.opts.Scale, sb.Dx(), sb.Dy(), res.Canvas.X, res.Canvas.Y)
	m := Fit(src, w, h)
	res.Size = m.Bounds().Size()
	if m.Bounds().Empty() {
		r.log.WithField("canvas", res.Canvas).Warn("nothing to render")
		return res
	}
	r.log.WithFields(logrus.Fields{
		"source": sb.Size(),
		"fitted": res.Size,
	}).Debug("fitted image")

	var idx *image.Paletted
	if r.opts.NoDither {
		idx = dither.Map(m, r.quant)
	} else {
		idx = dither.Dither(m, r.quant)
	}

	res.Pad = Padding(res.Canvas.X, res.Canvas.Y, res.Size.X, res.Size.Y)
	res.Writes = Composite(cv, idx, r.quant.Colors(), res.Pad, r.opts.Overflow)

	r.log.WithFields(logrus.Fields{
		"pad":      res.Pad,
		"writes":   res.Writes,
		"border":   res.Border,
		"duration": time.Since(start),
	}).Info("rendered image")

	return res
}
