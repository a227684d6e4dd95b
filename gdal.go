package orthowarp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/wgdzlh/orthowarp/footprint"
	"github.com/wgdzlh/orthowarp/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

type GdalToolbox struct {
	refMap   map[int]gdal.SpatialReference
	transMap map[[2]int]*coordTrans
	rLock    sync.Mutex
	conf     ToolboxConf
	logTag   string
}

// OGR坐标转换对象非线程安全，需加锁使用
type coordTrans struct {
	ct   gdal.CoordinateTransform
	lock sync.Mutex
}

// 由GDAL库C语言创建的内存对象，需要手动调用Destroy回收
type destroyable interface {
	Destroy()
}

// 初始化GDAL工具箱
func NewGdalToolbox(conf ToolboxConf) *GdalToolbox {
	if conf.GeoSrid == 0 {
		conf.GeoSrid = UNIVERSAL_SRID
	}
	if conf.ProjectedSrid == 0 {
		conf.ProjectedSrid = PROJECTED_SRID
	}
	if conf.Resample == "" {
		conf.Resample = DEFAULT_RESAMPLE
	}
	return &GdalToolbox{
		refMap:   map[int]gdal.SpatialReference{},
		transMap: map[[2]int]*coordTrans{},
		conf:     conf,
		logTag:   "GdalToolbox:",
	}
}

// 释放缓存的坐标系与转换对象
func (g *GdalToolbox) Destroy() {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	for k, t := range g.transMap {
		t.ct.Destroy()
		delete(g.transMap, k)
	}
	for k, ref := range g.refMap {
		ref.Destroy()
		delete(g.refMap, k)
	}
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *GdalToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	return g.getSridRefLocked(srid)
}

func (g *GdalToolbox) getSridRefLocked(srid int) (ref gdal.SpatialReference, err error) {
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil { // 设定坐标系ID
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 数据轴次序固定为(经度,纬度)/(东,北)，而不是与CRS相关的次序
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

// 获取srid到tSrid的坐标转换（缓存复用）
func (g *GdalToolbox) getTransform(srid, tSrid int) (t *coordTrans, err error) {
	key := [2]int{srid, tSrid}
	g.rLock.Lock()
	defer g.rLock.Unlock()
	if t = g.transMap[key]; t != nil {
		return
	}
	ref, err := g.getSridRefLocked(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRefLocked(tSrid)
	if err != nil {
		return
	}
	t = &coordTrans{ct: gdal.CreateCoordinateTransform(ref, tRef)}
	g.transMap[key] = t
	return
}

// 转换单点坐标
func (g *GdalToolbox) TransformPoint(x, y float64, srid, tSrid int) (tx, ty float64, err error) {
	if srid == tSrid {
		return x, y, nil
	}
	t, err := g.getTransform(srid, tSrid)
	if err != nil {
		err = &footprint.ProjectionError{X: x, Y: y, SrcSrid: srid, DstSrid: tSrid, Err: err}
		return
	}
	xs, ys, zs := []float64{x}, []float64{y}, []float64{0}
	t.lock.Lock()
	ok := t.ct.Transform(1, xs, ys, zs)
	t.lock.Unlock()
	tx, ty = xs[0], ys[0]
	if !ok || math.IsNaN(tx) || math.IsNaN(ty) || math.IsInf(tx, 0) || math.IsInf(ty, 0) {
		log.Error(g.logTag+"point transform failed", zap.Float64("x", x), zap.Float64("y", y), zap.Int("srid", srid), zap.Int("tSrid", tSrid))
		err = &footprint.ProjectionError{X: x, Y: y, SrcSrid: srid, DstSrid: tSrid, Err: ErrTransformFailed}
		tx, ty = 0, 0
	}
	return
}

// 经纬度 -> 投影坐标
func (g *GdalToolbox) ToProjected(lon, lat float64) (x, y float64, err error) {
	return g.TransformPoint(lon, lat, g.conf.GeoSrid, g.conf.ProjectedSrid)
}

// 投影坐标 -> 经纬度
func (g *GdalToolbox) ToGeodetic(x, y float64) (lon, lat float64, err error) {
	return g.TransformPoint(x, y, g.conf.ProjectedSrid, g.conf.GeoSrid)
}

func (g *GdalToolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	wkt, _ := sp.ToWKT()
	log.Debug(g.logTag+"spatial ref attrs", zap.String("attr", wkt))
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		err = ErrVoidSrid
		return
	}
	srid, err = strconv.Atoi(rawId)
	return
}

// 获取shp首个图层的srid，用于校验输出结果
func (g *GdalToolbox) GetSridOfShapefile(shp string) (srid int, err error) {
	ds, ok := gdal.OGRDriverByName(SHP_DRIVER_NAME).Open(shp, 0)
	if !ok {
		log.Error(g.logTag+"open shp failed", zap.String("shp", shp))
		err = ErrGdalDriverOpen
		return
	}
	defer ds.Destroy()
	if ds.LayerCount() == 0 {
		err = ErrVoidSrid
		return
	}
	return g.getSrid(ds.LayerByIndex(0).SpatialReference())
}

func (g *GdalToolbox) parseWKT(wkt string, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse wkt failed", zap.Error(err))
		err = ErrInvalidWKT
	}
	return
}

// 转换WKT坐标系，复用缓存的坐标转换
func (g *GdalToolbox) TransformWkt(wkt string, srid, tSrid int) (ret string, err error) {
	if tSrid == srid {
		return wkt, nil
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	t, err := g.getTransform(srid, tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	t.lock.Lock()
	err = geo.Transform(t.ct)
	t.lock.Unlock()
	if err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Int("srid", srid), zap.Int("tSrid", tSrid), zap.Error(err))
		err = ErrTransformFailed
		return
	}
	return geo.ToWKT()
}

// 获取WKT范围[minX,maxX,minY,maxY]
func (g *GdalToolbox) GetWktSpan(wkt string, srid int) (span [4]float64, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	envelop := geo.Envelope()
	span[0] = envelop.MinX()
	span[1] = envelop.MaxX()
	span[2] = envelop.MinY()
	span[3] = envelop.MaxY()
	return
}

// 闭合环转为POLYGON WKT
func RingToWkt(xs, ys []float64) string {
	var sb strings.Builder
	sb.WriteString("POLYGON((")
	for i := range xs {
		fmt.Fprintf(&sb, "%.10f %.10f, ", xs[i], ys[i])
	}
	fmt.Fprintf(&sb, "%.10f %.10f))", xs[0], ys[0])
	return sb.String()
}
