package footprint

import (
	"path/filepath"
	"strings"

	"github.com/wgdzlh/orthowarp/log"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// 影像覆盖范围计算器，各字段初始化后只读，可并发使用
type Computer struct {
	camera *Camera
	proj   Projector
	lookup OrientationLookup
	dims   DimensionProvider
	ground float64
	logTag string
}

type Option func(*Computer)

func WithLookup(l OrientationLookup) Option {
	return func(c *Computer) { c.lookup = l }
}

func WithDimensions(d DimensionProvider) Option {
	return func(c *Computer) { c.dims = d }
}

func WithGroundElevation(ground float64) Option {
	return func(c *Computer) { c.ground = ground }
}

func NewComputer(camera *Camera, proj Projector, opts ...Option) *Computer {
	c := &Computer{
		camera: camera,
		proj:   proj,
		ground: GROUND,
		logTag: "Footprint:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Computer) GroundElevation() float64 {
	return c.ground
}

// 四个角点像素坐标，顺序：左上、右上、右下、左下
func CornerPixels(width, height int) [4]PixelCoordinate {
	w, h := float64(width-1), float64(height-1)
	return [4]PixelCoordinate{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

// 计算单张影像的地面覆盖范围，任一角点失败即返回错误
func (c *Computer) ComputeFootprint(name string, eo ExteriorOrientation, width, height int, ground float64) (fp Footprint, err error) {
	if width < 1 || height < 1 {
		log.Error(c.logTag+"invalid image size", zap.String("name", name), zap.Int("width", width), zap.Int("height", height))
		err = errors.Wrapf(ErrInvalidImageSize, "%s is %dx%d", name, width, height)
		return
	}
	if s := c.camera.Sensor(); s.PixelWidth != width || s.PixelHeight != height {
		log.Warn(c.logTag+"image size differs from sensor", zap.String("name", name),
			zap.Int("width", width), zap.Int("height", height),
			zap.Int("sensorWidth", s.PixelWidth), zap.Int("sensorHeight", s.PixelHeight))
	}
	rot := BuildRotation(eo.Yaw, eo.Pitch, eo.Roll)
	if !rot.IsRotation(rotationTol) {
		log.Error(c.logTag+"invalid attitude", zap.String("name", name), zap.Any("eop", eo))
		err = errors.Wrapf(ErrInvalidAttitude, "yaw %v pitch %v roll %v", eo.Yaw, eo.Pitch, eo.Roll)
		return
	}
	for i, px := range CornerPixels(width, height) {
		world := BodyToWorld(c.camera.PixelToBody(px.X, px.Y), rot)
		var gp GroundPoint
		if gp, err = IntersectGround(c.proj, world, eo.Lon, eo.Lat, eo.Alt, ground); err != nil {
			var dre *DegenerateRayError
			if errors.As(err, &dre) {
				dre.Corner = i
			}
			log.Error(c.logTag+"corner projection failed", zap.String("name", name), zap.Int("corner", i), zap.Error(err))
			return
		}
		fp.Corners[i] = Corner{Pixel: px, Ground: gp}
	}
	fp.Center.Lon, fp.Center.Lat = eo.Lon, eo.Lat
	if fp.Center.X, fp.Center.Y, err = c.proj.ToProjected(eo.Lon, eo.Lat); err != nil {
		return
	}
	fp.Name = name
	fp.Title = Title(name)
	return
}

// 按影像名查询外方位元素与尺寸后计算覆盖范围
func (c *Computer) FootprintOf(name string) (fp Footprint, err error) {
	if c.lookup == nil || c.dims == nil {
		err = ErrMissingCollaborator
		return
	}
	eo, err := c.lookup.Orientation(name)
	if err != nil {
		return
	}
	width, height, _, err := c.dims.ImageSize(name)
	if err != nil {
		return
	}
	log.Debug(c.logTag+"compute footprint", zap.String("name", name), zap.Any("eop", eo), zap.Int("width", width), zap.Int("height", height))
	return c.ComputeFootprint(name, eo, width, height, c.ground)
}

// 影像标题：文件名首个"."之前部分按"_"切分后取第二段，如dji_0649.jpg -> 0649
func Title(name string) string {
	title, _, _ := strings.Cut(filepath.Base(name), ".")
	if parts := strings.Split(title, "_"); len(parts) > 1 {
		title = parts[1]
	}
	return title
}
