package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"gitgub.com/cam-per/sheetpack/internal/batch"
	"gitgub.com/cam-per/sheetpack/internal/config"
)

func main() {
	cmd := &cli.Command{
		Name:  "sheetpack",
		Usage: "extract sprite frames from images and re-pack them into gridded spritesheets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.json", Usage: "path to JSON config file"},
			&cli.StringFlag{Name: "input-folder", Aliases: []string{"i"}, Usage: "folder with input images"},
			&cli.StringFlag{Name: "output-folder", Aliases: []string{"o"}, Usage: "target folder for new spritesheets"},
			&cli.FloatFlag{Name: "scale", Usage: "scaling factor for individual frames"},
			&cli.IntFlag{Name: "padding", Usage: "pixel spacing between frames in the new sheet"},
			&cli.IntFlag{Name: "columns", Usage: "number of columns in the new sheet"},
			&cli.IntFlag{Name: "rows", Usage: "number of rows in the new sheet"},
			&cli.BoolFlag{Name: "sort", Usage: "sort frames by position in the source image"},
			&cli.IntFlag{Name: "frame-repeat", Usage: "number of times to repeat each frame"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "max images processed in parallel"},
			&cli.BoolFlag{Name: "atlas", Usage: "write a JSON cell index next to each sheet"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	path := cmd.String("config")
	fileLayer, err := config.LoadFile(path)
	switch {
	case err == nil:
		if err := cfg.Apply(fileLayer); err != nil {
			return err
		}
	case errors.Is(err, os.ErrNotExist):
		// The implicit config.json is optional; a path given on the
		// command line is not.
		if cmd.IsSet("config") {
			return err
		}
	default:
		return err
	}

	if err := cfg.Apply(flagLayer(cmd)); err != nil {
		return err
	}

	log.Printf("input: %s -> output: %s", cfg.InputFolder, cfg.OutputFolder)
	proc := &batch.Processor{Config: cfg}
	return proc.Run(ctx)
}

// flagLayer lifts set command-line flags into an override layer. Unset
// flags stay nil so file and default values survive.
func flagLayer(cmd *cli.Command) config.Overrides {
	var o config.Overrides
	if cmd.IsSet("input-folder") {
		v := cmd.String("input-folder")
		o.InputFolder = &v
	}
	if cmd.IsSet("output-folder") {
		v := cmd.String("output-folder")
		o.OutputFolder = &v
	}
	if cmd.IsSet("scale") {
		v := cmd.Float("scale")
		o.ScaleFactor = &v
	}
	if cmd.IsSet("padding") {
		v := int(cmd.Int("padding"))
		o.TargetPadding = &v
	}
	if cmd.IsSet("columns") {
		v := int(cmd.Int("columns"))
		o.OutputColumns = &v
	}
	if cmd.IsSet("rows") {
		v := int(cmd.Int("rows"))
		o.OutputRows = &v
	}
	if cmd.IsSet("sort") {
		v := cmd.Bool("sort")
		o.SortByPosition = &v
	}
	if cmd.IsSet("frame-repeat") {
		v := int(cmd.Int("frame-repeat"))
		o.FrameRepeat = &v
	}
	if cmd.IsSet("jobs") {
		v := int(cmd.Int("jobs"))
		o.Jobs = &v
	}
	if cmd.IsSet("atlas") {
		v := cmd.Bool("atlas")
		o.AtlasIndex = &v
	}
	return o
}
