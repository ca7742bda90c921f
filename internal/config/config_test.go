package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/uc8159/image7color"
	"github.com/flavioheleno/uc8159/render"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	opts := c.Options()
	assert.Equal(t, image7color.DefaultWeight, opts.Weight)
	assert.Equal(t, image7color.White, opts.Background)
	assert.Equal(t, image7color.White, opts.Border)
	assert.Equal(t, render.ScaleStretch, opts.Scale)
	assert.Equal(t, render.OverflowForward, opts.Overflow)
}

func TestDecode(t *testing.T) {
	c := Default()
	err := c.Decode(strings.NewReader(`
display:
  width: 640
  height: 400
  border: orange
render:
  saturation: 0.5
  background: clean
  overflow: clip
  scale: contain
  auto_border: true
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 640, c.Display.Width)
	assert.Equal(t, image7color.Orange, c.Display.Border)
	assert.Equal(t, "GPIO22", c.Display.DC, "unset keys keep their defaults")

	opts := c.Options()
	assert.Equal(t, 0.5, opts.Weight)
	assert.Equal(t, image7color.Clean, opts.Background)
	assert.Equal(t, render.OverflowClip, opts.Overflow)
	assert.Equal(t, render.ScaleContain, opts.Scale)
	assert.True(t, opts.AutoBorder)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "display:\n  colour: red\n"},
		{"unknown color", "display:\n  border: purple\n"},
		{"not yaml", "display: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			assert.Error(t, c.Decode(strings.NewReader(tt.yaml)))
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	c := Default()
	require.NoError(t, c.Decode(strings.NewReader("")))
	assert.Equal(t, Default(), c)
}

func TestApply(t *testing.T) {
	c := Default()
	err := c.Apply(env(map[string]string{
		"UC8159_WIDTH":       "640",
		"UC8159_HEIGHT":      "400",
		"UC8159_DC":          "GPIO25",
		"UC8159_SATURATION":  "2.5",
		"UC8159_BORDER":      "Black",
		"UC8159_NO_DITHER":   "true",
		"UC8159_OVERFLOW":    "clip",
		"UNRELATED_VARIABLE": "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, 640, c.Display.Width)
	assert.Equal(t, 400, c.Display.Height)
	assert.Equal(t, "GPIO25", c.Display.DC)
	assert.Equal(t, 2.5, c.Render.Saturation)
	assert.Equal(t, image7color.Black, c.Display.Border)
	assert.True(t, c.Render.NoDither)
	assert.Equal(t, "clip", c.Render.Overflow)
	require.NoError(t, c.Validate())
}

func TestApplyRejects(t *testing.T) {
	for _, kv := range [][2]string{
		{"UC8159_WIDTH", "wide"},
		{"UC8159_SATURATION", "lots"},
		{"UC8159_BACKGROUND", "teal"},
		{"UC8159_AUTO_BORDER", "maybe"},
	} {
		c := Default()
		assert.Error(t, c.Apply(env(map[string]string{kv[0]: kv[1]})), kv[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"resolution", func(c *Config) { c.Display.Width = 800 }},
		{"missing dc", func(c *Config) { c.Display.DC = "" }},
		{"negative saturation", func(c *Config) { c.Render.Saturation = -1 }},
		{"nan saturation", func(c *Config) { c.Render.Saturation = math.NaN() }},
		{"infinite saturation", func(c *Config) { c.Render.Saturation = math.Inf(1) }},
		{"scale", func(c *Config) { c.Render.Scale = "zoom" }},
		{"overflow", func(c *Config) { c.Render.Overflow = "crop" }},
		{"color", func(c *Config) { c.Render.Background = 12 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uc8159.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  saturation: 3\n"), 0o644))

	t.Setenv("UC8159_BUSY", "GPIO5")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, c.Render.Saturation)
	assert.Equal(t, "GPIO5", c.Display.Busy)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
