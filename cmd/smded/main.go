package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/urfave/cli/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/yuriks/smded"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadRegistry(c *cli.Context) (*smded.Registry, error) {
	dir := c.String("project")
	if err := smded.ValidateProjectDir(dir); err != nil {
		return nil, err
	}
	return smded.Load(dir, newLogger(c)).Result()
}

func areaTileset(c *cli.Context, reg *smded.Registry) (*smded.Tileset, error) {
	index, err := strconv.ParseUint(c.Args().First(), 16, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid tileset id %q", c.Args().First())
	}
	ts := reg.ByIndex(smded.KindArea, int(index))
	if ts == nil {
		return nil, fmt.Errorf("no SCE tileset with id %02X", index)
	}
	return ts, nil
}

func writePNG(path string, img image.Image, scale int) error {
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func main() {
	app := cli.NewApp()

	app.Name = "smded"
	app.Usage = "SMART project tileset rendering utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			EnvVars: []string{"SMDED_PROJECT"},
			Value:   ".",
			Usage:   "path to SMART project directory",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "tilesets",
			Usage: "List the tilesets in the project",
			Action: func(c *cli.Context) error {
				reg, err := loadRegistry(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				for _, ts := range reg.All() {
					fmt.Printf("%s %s\n", ts.Kind(), ts.Title())
				}
				return nil
			},
		},
		{
			Name:      "render",
			Usage:     "Render a tileset's 8x8 tile sheet to a PNG",
			ArgsUsage: "TILESET OUTPUT",
			Flags: []cli.Flag{
				&cli.UintFlag{Name: "palette", Usage: "palette line to color with"},
				&cli.IntFlag{Name: "scale", Value: 1, Usage: "integer upscaling factor"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				reg, err := loadRegistry(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				area, err := areaTileset(c, reg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				gfxLayout, _ := smded.DetectLayouts(area, reg.DefaultCommon())
				r := smded.NewRenderer(newLogger(c))
				img := r.RenderGfx(gfxLayout, uint8(c.Uint("palette")))

				if err := writePNG(c.Args().Get(1), img, c.Int("scale")); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "blocks",
			Usage:     "Render a tileset's 16x16 block sheet to a PNG",
			ArgsUsage: "TILESET OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "scale", Value: 1, Usage: "integer upscaling factor"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				reg, err := loadRegistry(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				area, err := areaTileset(c, reg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				gfxLayout, ttbLayout := smded.DetectLayouts(area, reg.DefaultCommon())
				r := smded.NewRenderer(newLogger(c))
				img := r.RenderTiletable(gfxLayout, ttbLayout)

				if err := writePNG(c.Args().Get(1), img, c.Int("scale")); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "thumb",
			Usage:     "Render a 16-color quantized thumbnail of the block sheet",
			ArgsUsage: "TILESET OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				reg, err := loadRegistry(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				area, err := areaTileset(c, reg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				gfxLayout, ttbLayout := smded.DetectLayouts(area, reg.DefaultCommon())
				r := smded.NewRenderer(newLogger(c))
				img := r.RenderTiletable(gfxLayout, ttbLayout)
				if img.Bounds().Empty() {
					return cli.Exit(errors.New("tileset renders to an empty image"), 1)
				}

				q := quantize.MedianCutQuantizer{}
				pm := image.NewPaletted(img.Bounds(), q.Quantize(make(color.Palette, 0, 16), img))
				draw.Draw(pm, pm.Bounds(), img, img.Bounds().Min, draw.Src)

				if err := writePNG(c.Args().Get(1), pm, 1); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
