package orthowarp

import (
	"github.com/wgdzlh/orthowarp/footprint"
	"github.com/wgdzlh/orthowarp/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 覆盖范围的投影坐标多边形
func FootprintWkt(fp footprint.Footprint) string {
	xs := make([]float64, len(fp.Corners))
	ys := make([]float64, len(fp.Corners))
	for i, c := range fp.Corners {
		xs[i], ys[i] = c.Ground.X, c.Ground.Y
	}
	return RingToWkt(xs, ys)
}

func (g *GdalToolbox) parseFootprint(fp footprint.Footprint) (geo gdal.Geometry, err error) {
	ref, err := g.getSridRef(g.conf.ProjectedSrid)
	if err != nil {
		return
	}
	return g.parseWKT(FootprintWkt(fp), ref)
}

// 覆盖范围面积（平方米）
func (g *GdalToolbox) FootprintArea(fp footprint.Footprint) (area float64, err error) {
	geo, err := g.parseFootprint(fp)
	if err != nil {
		return
	}
	area = geo.Area()
	geo.Destroy()
	return
}

// 两覆盖范围的重叠度：交集面积/a的面积
func (g *GdalToolbox) FootprintOverlap(a, b footprint.Footprint) (ratio float64, err error) {
	geoA, err := g.parseFootprint(a)
	if err != nil {
		return
	}
	defer geoA.Destroy()
	geoB, err := g.parseFootprint(b)
	if err != nil {
		return
	}
	defer geoB.Destroy()
	areaA := geoA.Area()
	if areaA <= 0 {
		err = ErrEmptyFootprint
		return
	}
	interGeo := geoA.Intersection(geoB)
	ratio = interGeo.Area() / areaA
	interGeo.Destroy()
	return
}

// 合并多个覆盖范围，返回合并后的投影坐标WKT及面积
func (g *GdalToolbox) FootprintsCoverage(fps []footprint.Footprint) (wkt string, area float64, err error) {
	var (
		geo      gdal.Geometry
		unionGeo = gdal.Create(gdal.GT_Polygon)
		gc       = []destroyable{unionGeo}
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for _, fp := range fps {
		if geo, err = g.parseFootprint(fp); err != nil {
			return
		}
		gc = append(gc, geo)
		unionGeo = unionGeo.Union(geo)
		gc = append(gc, unionGeo)
	}
	area = unionGeo.Area()
	if wkt, err = unionGeo.ToWKT(); err != nil {
		return
	}
	log.Info(g.logTag+"got footprints coverage", zap.Int("cnt", len(fps)), zap.Float64("area", area))
	return
}
