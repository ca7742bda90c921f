// Package uc8159 controls a UC8159 seven-colour e-paper display via SPI.
//
// The driver keeps a full frame buffer in memory; nothing is sent to the
// panel until Show is called.
//
// See the examples for how to use this package.
package uc8159

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/uc8159/image7color"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Command bytes.
const (
	cmdPSR  = 0x00 // Panel setting
	cmdPWR  = 0x01 // Power setting
	cmdPOF  = 0x02 // Power off
	cmdPFS  = 0x03 // Power off sequence
	cmdPON  = 0x04 // Power on
	cmdDTM1 = 0x10 // Display start transmission 1
	cmdDRF  = 0x12 // Display refresh
	cmdPLL  = 0x30 // PLL control
	cmdTSE  = 0x41 // Temperature sensor enable
	cmdCDI  = 0x50 // VCOM and data interval
	cmdTCON = 0x60 // TCON setting
	cmdTRES = 0x61 // Resolution setting
	cmdDAM  = 0x65 // SPI flash control
	cmdPWS  = 0xE3 // Power saving
)

// maxChunk is the largest data transfer sent in one SPI transaction.
const maxChunk = 4096

var (
	// ErrHalted is returned by operations on a halted device.
	ErrHalted = errors.New("uc8159: halted")
	// ErrBusyTimeout is returned when the panel stays busy for too long.
	ErrBusyTimeout = errors.New("uc8159: timed out waiting for busy")
)

// Opts is the configuration for the UC8159 display.
type Opts struct {
	// Display dimensions in pixels: 600x448 (default) or 640x400.
	W int
	H int

	// Border is the colour of the area around the active pixels.
	Border image7color.Color

	// Optional hardware reset pin
	RST gpio.PinOut
	// Optional busy pin, low while the controller is busy. Without it
	// the driver sleeps for the worst-case duration of each stage.
	Busy gpio.PinIn
}

// resolutions maps supported panel sizes to their PSR resolution bits.
var resolutions = map[image.Point]byte{
	{X: 600, Y: 448}: 0b11,
	{X: 640, Y: 400}: 0b10,
}

// Dev is the device handle for the UC8159 display.
type Dev struct {
	// Communication
	c    conn.Conn   // SPI connection
	dc   gpio.PinOut // Data/Command pin
	rst  gpio.PinOut // Reset pin (optional)
	busy gpio.PinIn  // Busy pin (optional)

	rect       image.Rectangle
	resolution byte
	border     image7color.Color

	// Frame buffer, one colour code per nibble
	frame *image7color.Image

	// Timeouts of the busy stages of Show
	powerTimeout   time.Duration
	refreshTimeout time.Duration

	// State
	setup  bool
	halted bool
}

var _ display.Drawer = &Dev{}

// NewSPI creates a new UC8159 device connected via SPI.
//
// The SPI port is configured for 3MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers. The dc (Data/Command) GPIO pin must be provided.
//
// opts can be nil to use defaults (600x448 display, white border).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 600, H: 448, Border: image7color.White}
	}
	if dc == nil {
		return nil, errors.New("uc8159: dc pin is required")
	}
	res, ok := resolutions[image.Point{X: opts.W, Y: opts.H}]
	if !ok {
		return nil, fmt.Errorf("uc8159: unsupported resolution %dx%d", opts.W, opts.H)
	}
	if !opts.Border.Valid() {
		return nil, fmt.Errorf("uc8159: invalid border color %d", uint8(opts.Border))
	}

	c, err := p.Connect(3*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("uc8159: %w", err)
	}

	return newDev(c, dc, res, opts), nil
}

func newDev(c conn.Conn, dc gpio.PinOut, res byte, opts *Opts) *Dev {
	rect := image.Rect(0, 0, opts.W, opts.H)
	return &Dev{
		c:              c,
		dc:             dc,
		rst:            opts.RST,
		busy:           opts.Busy,
		rect:           rect,
		resolution:     res,
		border:         opts.Border,
		frame:          image7color.NewImage(rect),
		powerTimeout:   200 * time.Millisecond,
		refreshTimeout: 40 * time.Second,
	}
}

// reset pulses the reset pin and waits for the controller to come up.
func (d *Dev) reset() error {
	if d.rst == nil {
		return nil
	}
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("uc8159: failed to pull RST low: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("uc8159: failed to pull RST high: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	return d.waitBusy("reset", time.Second)
}

// init resets the controller and sends the panel configuration.
func (d *Dev) init() error {
	if err := d.reset(); err != nil {
		return err
	}

	w, h := d.rect.Dx(), d.rect.Dy()
	steps := []struct {
		cmd  byte
		data []byte
	}{
		{cmdTRES, []byte{byte(w >> 8), byte(w), byte(h >> 8), byte(h)}},
		{cmdPSR, []byte{d.resolution<<6 | 0b101111, 0x08}},
		{cmdPWR, []byte{0x06<<3 | 0x01<<2 | 0x01<<1 | 0x01, 0x00, 0x23, 0x23}},
		{cmdPLL, []byte{0x3C}},
		{cmdTSE, []byte{0x00}},
		{cmdCDI, []byte{d.cdi()}},
		{cmdTCON, []byte{0x22}},
		{cmdDAM, []byte{0x00}},
		{cmdPWS, []byte{0xAA}},
		{cmdPFS, []byte{0x00}},
	}
	for _, s := range steps {
		if err := d.send(s.cmd, s.data); err != nil {
			return err
		}
	}

	d.setup = true
	return nil
}

// cdi returns the VCOM and data interval byte carrying the border colour.
func (d *Dev) cdi() byte {
	return byte(d.border)<<5 | 0x17
}

// send sends a command byte followed by optional data.
func (d *Dev) send(cmd byte, data []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("uc8159: command 0x%02X: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	return d.sendData(data)
}

// sendData sends data bytes in chunks of at most maxChunk bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := len(data)
		if n > maxChunk {
			n = maxChunk
		}
		if err := d.c.Tx(data[:n], nil); err != nil {
			return fmt.Errorf("uc8159: data: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// waitBusy blocks until the busy pin goes high or timeout elapses. Without
// a busy pin it sleeps for timeout.
func (d *Dev) waitBusy(stage string, timeout time.Duration) error {
	if d.busy == nil {
		time.Sleep(timeout)
		return nil
	}
	deadline := time.Now().Add(timeout)
	for d.busy.Read() == gpio.Low {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrBusyTimeout, stage)
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// Width returns the display width in pixels.
func (d *Dev) Width() int {
	return d.rect.Dx()
}

// Height returns the display height in pixels.
func (d *Dev) Height() int {
	return d.rect.Dy()
}

// Fill sets every pixel of the frame buffer to c.
func (d *Dev) Fill(c image7color.Color) {
	d.frame.Fill(c)
}

// SetPixel sets one pixel of the frame buffer. Coordinates outside the
// display are ignored.
func (d *Dev) SetPixel(x, y int, c image7color.Color) {
	d.frame.SetPixel(x, y, c)
}

// SetBorder sets the border colour used by the next Show.
func (d *Dev) SetBorder(c image7color.Color) {
	if !c.Valid() || c == d.border {
		return
	}
	d.border = c
	// The border is part of the setup sequence.
	d.setup = false
}

// Border returns the border colour.
func (d *Dev) Border() image7color.Color {
	return d.border
}

// Frame returns the frame buffer.
func (d *Dev) Frame() *image7color.Image {
	return d.frame
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image7color.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws src into the frame buffer, converting each pixel to its
// nearest colour without dithering. The panel is not refreshed; call Show.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	// draw.Draw clips to the frame and realigns sp
	if dst.Intersect(d.rect).Empty() {
		return nil
	}

	draw.Draw(d.frame, dst, src, sp, draw.Src)
	return nil
}

// Show sends the frame buffer to the panel and refreshes it. A refresh
// takes around 30 seconds.
func (d *Dev) Show() error {
	if d.halted {
		return ErrHalted
	}
	if !d.setup {
		if err := d.init(); err != nil {
			return err
		}
	}

	if err := d.send(cmdDTM1, d.frame.Pix); err != nil {
		return err
	}

	if err := d.send(cmdPON, nil); err != nil {
		return err
	}
	if err := d.waitBusy("power on", d.powerTimeout); err != nil {
		return err
	}

	if err := d.send(cmdDRF, nil); err != nil {
		return err
	}
	if err := d.waitBusy("refresh", d.refreshTimeout); err != nil {
		return err
	}

	if err := d.send(cmdPOF, nil); err != nil {
		return err
	}
	return d.waitBusy("power off", d.powerTimeout)
}

// Halt powers off the panel. The image stays visible; e-paper needs no
// power to retain it. After calling Halt the device will not accept
// further operations.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.send(cmdPOF, nil)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("uc8159.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
