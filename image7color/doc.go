// Package image7color provides the colour set, palette and packed image
// format used by seven-colour UC8159 e-paper panels.
//
// The UC8159 stores one 4-bit colour code per pixel, two pixels per byte.
// High nibble represents the left (even x) pixel, low nibble the right one.
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0      1     2     3
//	Colors: Black  Red   White Clean
//	Codes:  0      4     1     7
//	Bytes:  0x04         0x17
//
// This package provides:
//
// - Color: the eight colour codes understood by the controller
// - Table: the two RGB anchors per colour, one used for classification and
// one used to preview how the ink actually looks
// - Palette: nearest-colour lookup with a saturation-weighted HSV distance
// - Image: an image.Image implementation holding the packed frame buffer
//
// Example usage:
//
//	p := image7color.NewPalette(image7color.DefaultWeight)
//	img := image7color.NewImage(image.Rect(0, 0, 600, 448))
//	img.Fill(image7color.White)
//	img.SetPixel(10, 20, p.ClosestColor(200, 30, 40))
package image7color
