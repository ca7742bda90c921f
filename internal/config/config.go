// Package config loads the settings of the uc8159 command.
//
// Settings come from defaults, then an optional YAML file, then UC8159_*
// environment variables (a .env file in the working directory is loaded
// first when present).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/flavioheleno/uc8159/image7color"
	"github.com/flavioheleno/uc8159/render"
)

// EnvPrefix prefixes every environment variable read by Apply.
const EnvPrefix = "UC8159_"

// Display holds the hardware settings.
type Display struct {
	Width  int               `yaml:"width"`
	Height int               `yaml:"height"`
	SPI    string            `yaml:"spi"`
	DC     string            `yaml:"dc"`
	RST    string            `yaml:"rst"`
	Busy   string            `yaml:"busy"`
	Border image7color.Color `yaml:"border"`
}

// Render holds the pipeline settings.
type Render struct {
	Saturation float64           `yaml:"saturation"`
	Background image7color.Color `yaml:"background"`
	AutoBorder bool              `yaml:"auto_border"`
	Scale      string            `yaml:"scale"`
	Overflow   string            `yaml:"overflow"`
	NoDither   bool              `yaml:"no_dither"`
}

// Config is the complete configuration.
type Config struct {
	Display Display `yaml:"display"`
	Render  Render  `yaml:"render"`
}

// Default returns the configuration of a Pimoroni Inky Impression 5.7" on
// a Raspberry Pi.
func Default() Config {
	return Config{
		Display: Display{
			Width:  600,
			Height: 448,
			DC:     "GPIO22",
			RST:    "GPIO27",
			Busy:   "GPIO17",
			Border: image7color.White,
		},
		Render: Render{
			Saturation: image7color.DefaultWeight,
			Background: image7color.White,
			Scale:      render.ScaleStretch.String(),
			Overflow:   render.OverflowForward.String(),
		},
	}
}

// Decode reads YAML from r on top of c. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load returns the defaults overlaid with the file at path, if path is not
// empty, and the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("config: %w", err)
		}
		if err := c.Decode(bytes.NewReader(b)); err != nil {
			return c, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("config: .env: %w", err)
	}
	if err := c.Apply(os.LookupEnv); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Apply overrides c with UC8159_* variables found through lookup.
func (c *Config) Apply(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
		return nil
	}
	boolean := func(name string, dst *bool) error {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
		return nil
	}
	colour := func(name string, dst *image7color.Color) error {
		if v, ok := lookup(EnvPrefix + name); ok {
			col, err := image7color.ParseColor(v)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
			*dst = col
		}
		return nil
	}

	str("SPI", &c.Display.SPI)
	str("DC", &c.Display.DC)
	str("RST", &c.Display.RST)
	str("BUSY", &c.Display.Busy)
	str("SCALE", &c.Render.Scale)
	str("OVERFLOW", &c.Render.Overflow)

	if v, ok := lookup(EnvPrefix + "SATURATION"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: %sSATURATION: %w", EnvPrefix, err)
		}
		c.Render.Saturation = f
	}

	for _, err := range []error{
		integer("WIDTH", &c.Display.Width),
		integer("HEIGHT", &c.Display.Height),
		colour("BORDER", &c.Display.Border),
		colour("BACKGROUND", &c.Render.Background),
		boolean("AUTO_BORDER", &c.Render.AutoBorder),
		boolean("NO_DITHER", &c.Render.NoDither),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate checks c for values the renderer or the driver would reject.
func (c Config) Validate() error {
	switch {
	case c.Display.Width == 600 && c.Display.Height == 448:
	case c.Display.Width == 640 && c.Display.Height == 400:
	default:
		return fmt.Errorf("config: unsupported resolution %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.DC == "" {
		return errors.New("config: display.dc is required")
	}
	if !c.Display.Border.Valid() || !c.Render.Background.Valid() {
		return errors.New("config: invalid color")
	}
	if !(c.Render.Saturation >= 0) || math.IsInf(c.Render.Saturation, 1) {
		return fmt.Errorf("config: saturation must be a finite non-negative number, got %v", c.Render.Saturation)
	}
	if _, err := render.ParseScale(c.Render.Scale); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := render.ParseOverflow(c.Render.Overflow); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Options converts the render settings. c must be valid.
func (c Config) Options() render.Options {
	scale, _ := render.ParseScale(c.Render.Scale)
	overflow, _ := render.ParseOverflow(c.Render.Overflow)
	return render.Options{
		Weight:     c.Render.Saturation,
		Background: c.Render.Background,
		Border:     c.Display.Border,
		AutoBorder: c.Render.AutoBorder,
		Scale:      scale,
		Overflow:   overflow,
		NoDither:   c.Render.NoDither,
	}
}
