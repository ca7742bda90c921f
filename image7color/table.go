package image7color

import "image/color"

// Entry holds the two RGB anchors of a colour.
type Entry struct {
	// Classify is the anchor the distance metric compares against.
	Classify color.RGBA
	// Preview approximates how the ink looks on the panel. Error diffusion
	// measures residuals against it.
	Preview color.RGBA
}

// Table maps every Color to its anchors.
type Table [NumColors]Entry

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// DefaultTable is tuned so that every preview colour classifies as its own
// colour for saturation weights between 0.25 and 4.
var DefaultTable = Table{
	Black:  {Classify: rgb(0, 0, 0), Preview: rgb(57, 48, 57)},
	White:  {Classify: rgb(255, 255, 255), Preview: rgb(255, 255, 255)},
	Green:  {Classify: rgb(43, 142, 79), Preview: rgb(58, 91, 70)},
	Blue:   {Classify: rgb(49, 44, 145), Preview: rgb(61, 59, 94)},
	Red:    {Classify: rgb(207, 62, 67), Preview: rgb(156, 72, 75)},
	Yellow: {Classify: rgb(255, 232, 77), Preview: rgb(208, 190, 71)},
	Orange: {Classify: rgb(228, 119, 68), Preview: rgb(177, 106, 73)},
	Clean:  {Classify: rgb(255, 255, 255), Preview: rgb(255, 255, 255)},
}
