// Package main drives footprint computation, warping and mosaicking for a batch of aerial images.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wgdzlh/orthowarp"
	"github.com/wgdzlh/orthowarp/config"
	"github.com/wgdzlh/orthowarp/footprint"
	"github.com/wgdzlh/orthowarp/log"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagConfig = "config"
	flagGround = "ground"
)

type app struct {
	cfg      *config.Config
	toolbox  *orthowarp.GdalToolbox
	table    *footprint.OrientationTable
	computer *footprint.Computer
}

func newApp(c *cli.Context) (a *app, err error) {
	a = &app{}
	if a.cfg, err = config.Load(c.String(flagConfig)); err != nil {
		return
	}
	if err = log.SetLevel(a.cfg.Log.Level); err != nil {
		return
	}
	if c.IsSet(flagGround) {
		a.cfg.Ground.Elevation = c.Float64(flagGround)
	}
	f, err := os.Open(a.cfg.Paths.EOP)
	if err != nil {
		err = errors.Wrap(err, "open EOP table")
		return
	}
	defer f.Close()
	if a.table, err = footprint.LoadOrientationCSV(f, a.cfg.Paths.EOPEncoding); err != nil {
		return
	}
	camera, err := footprint.NewCamera(a.cfg.Sensor)
	if err != nil {
		return
	}
	a.toolbox = orthowarp.NewGdalToolbox(orthowarp.ToolboxConf{
		ImageDir:      a.cfg.Paths.Image,
		OrthoDir:      a.cfg.Paths.Ortho,
		TmpDir:        a.cfg.Paths.Tmp,
		GeoSrid:       a.cfg.CRS.Geographic,
		ProjectedSrid: a.cfg.CRS.Projected,
		Resample:      a.cfg.Warp.Resample,
	})
	a.computer = footprint.NewComputer(camera, a.toolbox,
		footprint.WithLookup(a.table),
		footprint.WithDimensions(a.toolbox),
		footprint.WithGroundElevation(a.cfg.Ground.Elevation),
	)
	return
}

func (a *app) close() {
	if a.toolbox != nil {
		a.toolbox.Destroy()
	}
	_ = log.Sync()
}

// 命令行未指定影像时处理EOP表中全部影像
func (a *app) names(c *cli.Context) []string {
	if c.NArg() > 0 {
		return c.Args().Slice()
	}
	return a.table.Keys()
}

func (a *app) footprints(c *cli.Context) ([]footprint.Footprint, error) {
	return a.computer.ComputeAll(c.Context, a.names(c), a.cfg.Batch.Workers)
}

func withApp(run func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := newApp(c)
		if err != nil {
			return err
		}
		defer a.close()
		return run(c, a)
	}
}

func footprintAction(c *cli.Context, a *app) error {
	fps, err := a.footprints(c)
	if err != nil {
		return err
	}
	w := c.App.Writer
	for _, fp := range fps {
		fmt.Fprintf(w, "%s\tcenter %.6f %.6f\n", fp.Title, fp.Center.Lon, fp.Center.Lat)
		for i, corner := range fp.Corners {
			fmt.Fprintf(w, "  %d\t%6.1f %6.1f\t%.6f %.6f\t%.3f %.3f\n", i,
				corner.Pixel.X, corner.Pixel.Y, corner.Ground.Lon, corner.Ground.Lat, corner.Ground.X, corner.Ground.Y)
		}
	}
	if shp := a.cfg.Paths.Shapefile; shp != "" {
		if err = a.writeShapefile(shp, fps); err != nil {
			return err
		}
	}
	wkt, area, err := a.toolbox.FootprintsCoverage(fps)
	if err != nil {
		return err
	}
	span, err := a.toolbox.GetWktSpan(wkt, a.cfg.CRS.Projected)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "coverage %.1f m2, extent %.3f %.3f %.3f %.3f\n", area, span[0], span[2], span[1], span[3])
	return nil
}

// 写出shp后回读校验坐标系
func (a *app) writeShapefile(shp string, fps []footprint.Footprint) error {
	if err := os.MkdirAll(filepath.Dir(shp), os.ModePerm); err != nil {
		return err
	}
	if err := a.toolbox.WriteFootprintShapefile(shp, fps...); err != nil {
		return err
	}
	srid, err := a.toolbox.GetSridOfShapefile(shp)
	if err != nil {
		return errors.Wrap(err, "read back "+shp)
	}
	if srid != a.cfg.CRS.Geographic {
		return errors.Errorf("%s written in epsg:%d, want epsg:%d", shp, srid, a.cfg.CRS.Geographic)
	}
	return nil
}

func plotAction(c *cli.Context, a *app) error {
	fps, err := a.footprints(c)
	if err != nil {
		return err
	}
	for i := 1; i < len(fps); i++ {
		ratio, err := a.toolbox.FootprintOverlap(fps[i-1], fps[i])
		if err != nil {
			return err
		}
		log.Info("overlap with previous image", zap.String("image", fps[i].Name), zap.Float64("ratio", ratio))
	}
	return footprint.PlotFootprints(fps, a.cfg.Paths.Plot)
}

func warpAction(c *cli.Context, a *app) (err error) {
	_, err = a.warp(c)
	return
}

func (a *app) warp(c *cli.Context) (warped []string, err error) {
	fps, err := a.footprints(c)
	if err != nil {
		return
	}
	for _, dir := range []string{a.cfg.Paths.Ortho, a.cfg.Paths.Tmp} {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return
		}
	}
	return footprint.WarpAll(c.Context, a.toolbox, fps, a.cfg.Batch.Workers)
}

func mosaicAction(c *cli.Context, a *app) error {
	warped, err := a.warp(c)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(a.cfg.Paths.Mosaic), os.ModePerm); err != nil {
		return err
	}
	log.Info("mosaicking ...", zap.Int("cnt", len(warped)))
	return a.toolbox.Mosaic(warped, a.cfg.Paths.Mosaic)
}

func newCliApp() *cli.App {
	return &cli.App{
		Name:  "orthowarp",
		Usage: "project aerial image footprints onto flat ground and orthorectify them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "config file (yaml), defaults to ./orthowarp.yaml",
			},
			&cli.Float64Flag{
				Name:  flagGround,
				Usage: "ground elevation in meters, overrides config",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "footprint",
				Usage:     "print footprints and write them to a shapefile",
				ArgsUsage: "[image...]",
				Action:    withApp(footprintAction),
			},
			{
				Name:      "plot",
				Usage:     "plot footprints and camera centers",
				ArgsUsage: "[image...]",
				Action:    withApp(plotAction),
			},
			{
				Name:      "warp",
				Usage:     "orthorectify images using footprint corners as ground control points",
				ArgsUsage: "[image...]",
				Action:    withApp(warpAction),
			},
			{
				Name:      "mosaic",
				Usage:     "warp images and merge them into one GeoTIFF",
				ArgsUsage: "[image...]",
				Action:    withApp(mosaicAction),
			},
		},
	}
}

func main() {
	if err := newCliApp().RunContext(context.Background(), os.Args); err != nil {
		log.Error("orthowarp failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
