package footprint

import (
	"strconv"

	"github.com/wgdzlh/orthowarp/log"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const plotSize = 8 * vg.Inch

var cornerLabels = []string{"0", "1", "2", "3"}

// 绘制覆盖范围：角点闭合折线+序号，相机位置方块+标题；按文件后缀输出png/svg/pdf
func PlotFootprints(fps []Footprint, file string) (err error) {
	p := plot.New()
	p.Title.Text = "footprints"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	p.Add(plotter.NewGrid())
	for i, fp := range fps {
		ring := make(plotter.XYs, 0, len(fp.Corners)+1)
		for _, c := range fp.Corners {
			ring = append(ring, plotter.XY{X: c.Ground.Lon, Y: c.Ground.Lat})
		}
		ring = append(ring, ring[0])
		line, points, e := plotter.NewLinePoints(ring)
		if e != nil {
			return e
		}
		color := plotutil.Color(i)
		line.LineStyle.Color = color
		points.GlyphStyle.Shape = draw.TriangleGlyph{}
		points.GlyphStyle.Color = color

		center := plotter.XYs{{X: fp.Center.Lon, Y: fp.Center.Lat}}
		marker, e := plotter.NewScatter(center)
		if e != nil {
			return e
		}
		marker.GlyphStyle.Shape = draw.BoxGlyph{}
		marker.GlyphStyle.Color = color

		corners, e := plotter.NewLabels(plotter.XYLabels{XYs: ring[:len(fp.Corners)], Labels: cornerLabels})
		if e != nil {
			return e
		}
		title := fp.Title
		if title == "" {
			title = strconv.Itoa(i)
		}
		titles, e := plotter.NewLabels(plotter.XYLabels{XYs: center, Labels: []string{title}})
		if e != nil {
			return e
		}
		p.Add(line, points, marker, corners, titles)
	}
	if err = p.Save(plotSize, plotSize, file); err != nil {
		log.Error("Footprint:save plot failed", zap.String("file", file), zap.Error(err))
		return
	}
	log.Info("Footprint:footprints plotted", zap.String("file", file), zap.Int("cnt", len(fps)))
	return
}
