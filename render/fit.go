package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Fit scales src to exactly w×h with nearest-neighbour sampling. Each axis
// is scaled independently, so the aspect ratio is not preserved. An empty
// source or a non-positive target yields an empty image.
func Fit(src image.Image, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 || src == nil || src.Bounds().Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Scale selects how a source is sized before fitting.
type Scale int

const (
	// ScaleStretch scales both axes to the canvas.
	ScaleStretch Scale = iota
	// ScaleContain scales uniformly to the largest size within the canvas.
	ScaleContain
	// ScaleNone keeps the source size.
	ScaleNone
)

func (s Scale) String() string {
	switch s {
	case ScaleStretch:
		return "stretch"
	case ScaleContain:
		return "contain"
	case ScaleNone:
		return "none"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// ParseScale parses "stretch", "contain" or "none".
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stretch":
		return ScaleStretch, nil
	case "contain":
		return ScaleContain, nil
	case "none":
		return ScaleNone, nil
	}
	return 0, fmt.Errorf("render: unknown scale mode %q", s)
}

// TargetSize returns the size a srcW×srcH source is fitted to on a w×h
// canvas.
func TargetSize(s Scale, srcW, srcH, w, h int) (int, int) {
	switch s {
	case ScaleNone:
		return srcW, srcH
	case ScaleContain:
		if srcW <= 0 || srcH <= 0 || w <= 0 || h <= 0 {
			return 0, 0
		}
		ratio := math.Min(float64(w)/float64(srcW), float64(h)/float64(srcH))
		nw := int(math.Round(float64(srcW) * ratio))
		nh := int(math.Round(float64(srcH) * ratio))
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		return nw, nh
	}
	return w, h
}
