package footprint

import (
	"fmt"
	"strings"
)

// 外方位元素：相机经纬度、高程（米）及姿态角（度，yaw-pitch-roll）
type ExteriorOrientation struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Alt   float64 `json:"alt"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// 传感器几何参数，Width/Height/Focal单位一致（mm）
type SensorGeometry struct {
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	PixelWidth  int     `mapstructure:"pixel_width"`
	PixelHeight int     `mapstructure:"pixel_height"`
	Focal       float64 `mapstructure:"focal"`
}

func (s SensorGeometry) Validate() error {
	var errs []string
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Sprintf("sensor size must be positive, got %gx%g", s.Width, s.Height))
	}
	if s.PixelWidth <= 1 || s.PixelHeight <= 1 {
		errs = append(errs, fmt.Sprintf("pixel size must be greater than 1, got %dx%d", s.PixelWidth, s.PixelHeight))
	}
	if s.Focal <= 0 {
		errs = append(errs, fmt.Sprintf("focal length must be positive, got %g", s.Focal))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid sensor geometry: %s", strings.Join(errs, "; "))
	}
	return nil
}

// 像素坐标，原点在左上角，x向右，y向下
type PixelCoordinate struct {
	X float64
	Y float64
}

// 地面点：经纬度及投影坐标
type GroundPoint struct {
	Lon float64
	Lat float64
	X   float64 // easting
	Y   float64 // northing
}

type Corner struct {
	Pixel  PixelCoordinate
	Ground GroundPoint
}

// 像控点：像素(列,行) <-> 投影坐标
type GroundControlPoint struct {
	Pixel float64
	Line  float64
	X     float64
	Y     float64
}

// 影像地面覆盖范围，角点顺序：左上、右上、右下、左下
type Footprint struct {
	Name    string
	Title   string
	Corners [4]Corner
	Center  GroundPoint // 相机星下点
}

func (f Footprint) GroundControlPoints() []GroundControlPoint {
	gcps := make([]GroundControlPoint, len(f.Corners))
	for i, c := range f.Corners {
		gcps[i] = GroundControlPoint{
			Pixel: c.Pixel.X,
			Line:  c.Pixel.Y,
			X:     c.Ground.X,
			Y:     c.Ground.Y,
		}
	}
	return gcps
}

// 生成gdal_translate的-gcp参数
func (f Footprint) GCPOptions() (opts []string) {
	opts = make([]string, 0, 5*len(f.Corners))
	for _, p := range f.GroundControlPoints() {
		opts = append(opts, "-gcp")
		opts = append(opts, strings.Fields(fmt.Sprintf(GCP_FORMAT, p.Pixel, p.Line, p.X, p.Y))...)
	}
	return
}

// 角点投影坐标的均值
func (f Footprint) Centroid() (x, y float64) {
	for _, c := range f.Corners {
		x += c.Ground.X
		y += c.Ground.Y
	}
	n := float64(len(f.Corners))
	return x / n, y / n
}

// 外方位元素查询
type OrientationLookup interface {
	Orientation(key string) (ExteriorOrientation, error)
}

// 影像尺寸查询
type DimensionProvider interface {
	ImageSize(name string) (width, height, bands int, err error)
}

// 经纬度与投影坐标互转
type Projector interface {
	ToProjected(lon, lat float64) (x, y float64, err error)
	ToGeodetic(x, y float64) (lon, lat float64, err error)
}

// 像控点消费方（如gdal纠正），返回输出文件路径
type GCPConsumer interface {
	Warp(name string, fp Footprint) (out string, err error)
}
