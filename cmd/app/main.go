package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	cfg "github.com/framesheet/go-framesheet/pkg/config"
	"github.com/framesheet/go-framesheet/pkg/core"
	"github.com/framesheet/go-framesheet/pkg/logger"
	"github.com/framesheet/go-framesheet/pkg/render"
	"github.com/framesheet/go-framesheet/pkg/sheet"
)

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "framesheet"
	app.Usage = "Render animation frames and build contact sheets"
	app.UsageText = "framesheet [command] [options]"
	app.HideHelp = true
	app.HideVersion = true
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Aliases:   []string{"r"},
			Usage:     "Re-render a scene to png frames",
			ArgsUsage: "<scene-file> <scene-name>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "quality",
					Value: cfg.DefaultQuality,
					Usage: "renderer quality tier: low, medium or high",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: cfg.DefaultFPS,
					Usage: "frames per second to render at",
				},
				cli.IntFlag{
					Name:  "max-frames",
					Usage: "stop after this many animations",
				},
				cli.BoolFlag{
					Name:  "contact-sheet",
					Usage: "build a contact sheet after rendering",
				},
				cli.IntFlag{
					Name:  "max-tiles",
					Value: cfg.DefaultMaxTiles,
					Usage: "tile budget for the contact sheet",
				},
			},
			Action: func(c *cli.Context) error {
				sceneFile, sceneName, err := getScene(c)
				if err != nil {
					return err
				}
				return newCore().Render(core.RenderOptions{
					Options: render.Options{
						SceneFile: sceneFile,
						SceneName: sceneName,
						Quality:   c.String("quality"),
						FPS:       c.Int("fps"),
						MaxFrames: c.Int("max-frames"),
					},
					ContactSheet: c.Bool("contact-sheet"),
					MaxTiles:     c.Int("max-tiles"),
				})
			},
		},
		{
			Name:      "sheet",
			Aliases:   []string{"s"},
			Usage:     "Build a contact sheet from a frames dir",
			ArgsUsage: "<frames-dir>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output",
					Usage: "output png path (default: inside the frames dir)",
				},
				cli.StringFlag{
					Name:  "scene-name",
					Usage: "scene name, used for the default output filename",
				},
				cli.IntFlag{
					Name:  "max-tiles",
					Value: cfg.DefaultMaxTiles,
					Usage: "tile budget",
				},
				cli.IntFlag{
					Name:  "fps",
					Usage: "frame rate, enables timing labels",
				},
				cli.StringFlag{
					Name:  "grid-color",
					Value: cfg.DefaultGridColor,
					Usage: "gridline color as hex",
				},
				cli.IntFlag{
					Name:  "max-width",
					Value: cfg.DefaultCellWidth,
					Usage: "max width per tile, px",
				},
				cli.BoolFlag{
					Name:  "no-labels",
					Usage: "skip frame labels",
				},
				cli.BoolFlag{
					Name:  "no-gridlines",
					Usage: "skip gridlines",
				},
				cli.BoolFlag{
					Name:  "montage",
					Usage: "force the ImageMagick fallback",
				},
			},
			Action: func(c *cli.Context) error {
				dir := c.Args().Get(0)
				if dir == "" {
					return fmt.Errorf("Frames dir is required")
				}
				conf := sheet.DefaultConfig(dir)
				conf.Output = c.String("output")
				conf.SceneName = c.String("scene-name")
				conf.MaxTiles = c.Int("max-tiles")
				conf.FPS = c.Int("fps")
				conf.GridColor = c.String("grid-color")
				conf.CellWidth = c.Int("max-width")
				conf.Labels = !c.Bool("no-labels")
				conf.GridLines = !c.Bool("no-gridlines")
				conf.Montage = c.Bool("montage")
				return newCore().Sheet(conf)
			},
		},
	}
}

func getScene(c *cli.Context) (string, string, error) {
	file := c.Args().Get(0)
	name := c.Args().Get(1)
	if file == "" || name == "" {
		return "", "", fmt.Errorf("Scene file and scene name are required")
	}
	return file, name, nil
}

func newCore() *core.Core {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	return core.NewCore(ctx)
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
