// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"time"

	photomosaic "github.com/Agit1/Photo-Mosaic"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Can't create mosaic")
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mosaic"
	app.Usage = "Create photo mosaics from a target image and a set of tile images"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"MOSAIC_VERBOSE"},
			Usage:   "increase verbosity",
		},
		&cli.IntFlag{
			Name:    "routines",
			EnvVars: []string{"MOSAIC_ROUTINES"},
			Value:   photomosaic.DefaultNumRoutines(),
			Usage:   "number of go routines",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "create",
			Usage:     "Create a mosaic and the blended images",
			ArgsUsage: "TARGET",
			Flags:     createFlags(),
			Action:    createAction,
		},
		{
			Name:      "index",
			Usage:     "Print the dominant color of each tile",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "recursive",
					Usage: "scan the directory recursively",
				},
			},
			Action: indexAction,
		},
	}
	return app
}

func createFlags() []cli.Flag {
	defaults := photomosaic.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "tiles",
			EnvVars: []string{"MOSAIC_TILES"},
			Value:   ".",
			Usage:   "directory containing the tile images",
		},
		&cli.StringFlag{
			Name:  "pattern",
			Value: defaults.TilePattern,
			Usage: "file name pattern of tile i, used together with --count",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of tiles named by --pattern, 0 uses all images in --tiles",
		},
		&cli.BoolFlag{
			Name:  "recursive",
			Usage: "scan the tile directory recursively",
		},
		&cli.StringFlag{
			Name:  "cell",
			Value: fmt.Sprintf("%dx%d", defaults.CellWidth, defaults.CellHeight),
			Usage: "size of the sampled cells (WIDTHxHEIGHT)",
		},
		&cli.StringFlag{
			Name:  "out-cell",
			Value: fmt.Sprintf("%dx%d", defaults.OutCellWidth, defaults.OutCellHeight),
			Usage: "size of a tile in the mosaic (WIDTHxHEIGHT)",
		},
		&cli.StringFlag{
			Name:  "trim",
			Value: defaults.Trim.String(),
			Usage: "how to fit the target to the grid: crop or resize",
		},
		&cli.StringFlag{
			Name:  "resize",
			Value: "area",
			Usage: "interpolation: area, nearest, bilinear, bicubic, mitchell, lanczos2 or lanczos3",
		},
		&cli.StringFlag{
			Name:  "matcher",
			Value: defaults.Matcher.String(),
			Usage: "tile lookup: linear or sorted",
		},
		&cli.StringSliceFlag{
			Name:  "blend",
			Usage: "weights ALPHA:BETA of dominant color image and mosaic, up to five times",
		},
		&cli.StringFlag{
			Name:    "out",
			EnvVars: []string{"MOSAIC_OUT"},
			Value:   defaults.OutputDir,
			Usage:   "output directory",
		},
		&cli.StringFlag{
			Name:  "ext",
			Value: defaults.Ext,
			Usage: "file type of the written images: .jpg or .png",
		},
		&cli.IntFlag{
			Name:  "quality",
			Value: defaults.JPGQuality,
			Usage: "jpeg quality between 1 and 100",
		},
		&cli.IntFlag{
			Name:  "cache",
			Value: defaults.CacheSize,
			Usage: "number of resized tiles kept in memory",
		},
		&cli.BoolFlag{
			Name:  "grid",
			Value: defaults.Grid,
			Usage: "write the grid image",
		},
		&cli.StringFlag{
			Name:  "grid-color",
			Value: defaults.GridColor.Hex(),
			Usage: "color of the grid lines",
		},
	}
}

func configFromContext(c *cli.Context) (photomosaic.Config, error) {
	cfg := photomosaic.DefaultConfig()
	cfg.TargetPath = c.Args().First()
	cfg.TileDir = c.String("tiles")
	cfg.TilePattern = c.String("pattern")
	cfg.NumTiles = c.Int("count")
	cfg.Recursive = c.Bool("recursive")
	cfg.NumRoutines = c.Int("routines")
	cfg.OutputDir = c.String("out")
	cfg.Ext = c.String("ext")
	cfg.JPGQuality = c.Int("quality")
	cfg.CacheSize = c.Int("cache")
	cfg.Grid = c.Bool("grid")

	var err error
	if cfg.CellWidth, cfg.CellHeight, err = photomosaic.ParseDimensions(c.String("cell")); err != nil {
		return cfg, err
	}
	if cfg.OutCellWidth, cfg.OutCellHeight, err = photomosaic.ParseDimensions(c.String("out-cell")); err != nil {
		return cfg, err
	}
	if cfg.Trim, err = photomosaic.ParseTrimMode(c.String("trim")); err != nil {
		return cfg, err
	}
	if cfg.Resizer, err = photomosaic.ParseResizer(c.String("resize")); err != nil {
		return cfg, err
	}
	if cfg.Matcher, err = photomosaic.ParseMatcherKind(c.String("matcher")); err != nil {
		return cfg, err
	}
	if cfg.GridColor, err = photomosaic.ParseHexColor(c.String("grid-color")); err != nil {
		return cfg, err
	}
	if blends := c.StringSlice("blend"); len(blends) > 0 {
		cfg.BlendPairs = make([]photomosaic.BlendPair, 0, len(blends))
		for _, s := range blends {
			pair, pairErr := photomosaic.ParseBlendPair(s)
			if pairErr != nil {
				return cfg, pairErr
			}
			cfg.BlendPairs = append(cfg.BlendPairs, pair)
		}
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, cfg.ValidateOutput()
}

func createAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}
	cfg, cfgErr := configFromContext(c)
	if cfgErr != nil {
		return cli.Exit(cfgErr, 1)
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	start := time.Now()
	rows := 0
	progress := func(numRows int) photomosaic.ProgressFunc {
		rows = numRows
		return photomosaic.LoggerProgressFunc("Mosaic rows", numRows, 1)
	}
	paths, runErr := photomosaic.RunFiles(ctx, cfg, progress)
	if runErr != nil {
		return cli.Exit(runErr, 1)
	}
	for _, path := range paths {
		fmt.Fprintln(c.App.Writer, path)
	}
	log.WithFields(log.Fields{
		"rows":     rows,
		"duration": time.Since(start),
	}).Info("Done!")
	return nil
}

func indexAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}
	dir, dirErr := photomosaic.ExpandPath(c.Args().First())
	if dirErr != nil {
		return cli.Exit(dirErr, 1)
	}
	storage, storageErr := photomosaic.GenFSTileStorage(dir, c.Bool("recursive"), photomosaic.JPGAndPNG)
	if storageErr != nil {
		return cli.Exit(storageErr, 1)
	}
	numTiles := storage.NumTiles()
	progress := photomosaic.LoggerProgressFunc("Loading tiles", numTiles, max(1, numTiles/10))
	lib, libErr := photomosaic.BuildTileLibrary(context.Background(), storage, c.Int("routines"), progress)
	if libErr != nil {
		return cli.Exit(libErr, 1)
	}
	for _, rec := range lib.Records() {
		fmt.Fprintf(c.App.Writer, "%d\t%s\t%s\n", rec.ID, rec.Color.Hex(), storage.Paths[rec.ID-1])
	}
	return nil
}
