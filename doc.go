// Package uc8159 controls a UC8159 seven-colour e-paper display via SPI.
//
// The UC8159 is the controller behind 600×448 and 640×400 ACeP panels such
// as the Pimoroni Inky Impression. Each pixel holds one of seven inks plus a
// "clean" state. The driver implements the display.Drawer interface from
// periph.io.
//
// # Display Characteristics
//
// - Seven colours: black, white, green, blue, red, yellow, orange
// - A "clean" pseudo-colour leaving the pixel uninked
// - 4-bit colour codes, two pixels per byte
// - Configurable border colour
// - Full refresh only, taking around 30 seconds
// - The image is retained without power
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	MOSI        → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO (any available pin)
//	RST         → GPIO (optional)
//	BUSY        → GPIO (optional, low while busy)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//		_ "image/png"
//		"os"
//
//		"github.com/flavioheleno/uc8159"
//		"github.com/flavioheleno/uc8159/render"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		spiBus, _ := spireg.Open("")
//		dev, _ := uc8159.NewSPI(spiBus, gpioreg.ByName("GPIO22"), &uc8159.Opts{
//			W:    600,
//			H:    448,
//			RST:  gpioreg.ByName("GPIO27"),
//			Busy: gpioreg.ByName("GPIO17"),
//		})
//		defer dev.Halt()
//
//		f, _ := os.Open("photo.png")
//		img, _, _ := image.Decode(f)
//
//		// Fit, dither and centre the image in the frame buffer
//		render.New(render.DefaultOptions(), nil).Render(dev, img)
//
//		// Push the frame buffer to the panel
//		dev.Show()
//	}
//
// # Drawing
//
// Fill and SetPixel write to the in-memory frame buffer. Draw converts any
// image to the nearest colours without dithering; use the render package for
// photographs. Nothing reaches the panel until Show is called.
//
// # Datasheet
//
// https://github.com/pimoroni/inky/blob/master/library/inky/inky_uc8159.py
// documents the command set used by this driver.
package uc8159
