package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/flavioheleno/uc8159"
	"github.com/flavioheleno/uc8159/image7color"
	"github.com/flavioheleno/uc8159/internal/config"
	"github.com/flavioheleno/uc8159/render"
)

var log = logrus.WithField("component", "cli")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(logrus.Fields{
		"file":   path,
		"format": format,
		"size":   m.Bounds().Size(),
	}).Debug("decoded image")
	return m, nil
}

// loadConfig applies the global flags on top of the configuration file and
// the environment.
func loadConfig(c *cli.Context) (config.Config, error) {
	if c.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("saturation") {
		cfg.Render.Saturation = c.Float64("saturation")
	}
	if c.IsSet("overflow") {
		cfg.Render.Overflow = c.String("overflow")
	}
	if c.IsSet("scale") {
		cfg.Render.Scale = c.String("scale")
	}
	if c.IsSet("no-dither") {
		cfg.Render.NoDither = c.Bool("no-dither")
	}
	return cfg, cfg.Validate()
}

func pin(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("GPIO pin %s not found", name)
	}
	return p, nil
}

func show(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	src, err := decode(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if _, err := host.Init(); err != nil {
		return cli.NewExitError(fmt.Errorf("failed to initialize periph.io: %w", err), 1)
	}
	bus, err := spireg.Open(cfg.Display.SPI)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to open SPI bus: %w", err), 1)
	}
	defer bus.Close()

	dc, err := pin(cfg.Display.DC)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	rst, err := pin(cfg.Display.RST)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	busy, err := pin(cfg.Display.Busy)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	opts := &uc8159.Opts{
		W:      cfg.Display.Width,
		H:      cfg.Display.Height,
		Border: cfg.Display.Border,
	}
	if rst != nil {
		opts.RST = rst
	}
	if busy != nil {
		if err := busy.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return cli.NewExitError(err, 1)
		}
		opts.Busy = busy
	}

	dev, err := uc8159.NewSPI(bus, dc, opts)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer dev.Halt()

	r := render.New(cfg.Options(), logrus.WithField("component", "render"))
	r.Render(dev, src)

	log.WithField("device", dev).Info("refreshing display")
	if err := dev.Show(); err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Info("done")
	return nil
}

func preview(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	w, h := cfg.Display.Width, cfg.Display.Height
	if c.IsSet("width") {
		w = c.Int("width")
	}
	if c.IsSet("height") {
		h = c.Int("height")
	}

	src, err := decode(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	cv := image7color.NewImage(image.Rect(0, 0, w, h))
	r := render.New(cfg.Options(), logrus.WithField("component", "render"))
	r.Render(cv, src)

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	if err := png.Encode(out, cv.Preview(image7color.DefaultTable)); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func palette(c *cli.Context) error {
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCOLOR\tCLASSIFY\tPREVIEW")
	for i, e := range image7color.DefaultTable {
		fmt.Fprintf(tw, "%d\t%s\t#%02x%02x%02x\t#%02x%02x%02x\n",
			i, image7color.Color(i),
			e.Classify.R, e.Classify.G, e.Classify.B,
			e.Preview.R, e.Preview.G, e.Preview.B)
	}
	return tw.Flush()
}

func main() {
	app := cli.NewApp()

	app.Name = "uc8159"
	app.Usage = "Render images on UC8159 seven-colour e-paper displays"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"UC8159_CONFIG"},
			Usage:   "path to YAML configuration",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.Float64Flag{
			Name:  "saturation",
			Value: image7color.DefaultWeight,
			Usage: "saturation weight of the colour distance",
		},
		&cli.StringFlag{
			Name:  "scale",
			Value: "stretch",
			Usage: "how to size the image: stretch, contain or none",
		},
		&cli.StringFlag{
			Name:  "overflow",
			Value: "forward",
			Usage: "pixels beyond the display: forward or clip",
		},
		&cli.BoolFlag{
			Name:  "no-dither",
			Usage: "map pixels to the nearest colour without dithering",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "show",
			Usage:     "Render an image and refresh the display",
			ArgsUsage: "FILE",
			Action:    show,
		},
		{
			Name:      "preview",
			Usage:     "Render an image to a PNG using the ink preview colours",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "width", Usage: "canvas width (default: display width)"},
				&cli.IntFlag{Name: "height", Usage: "canvas height (default: display height)"},
			},
			Action: preview,
		},
		{
			Name:   "palette",
			Usage:  "Print the colour table",
			Action: palette,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
