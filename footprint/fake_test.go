package footprint

import (
	"errors"
	"fmt"
)

// 线性投影，仅用于测试
type linearProjector struct{}

const (
	linearFalseEasting = 500000.0
	linearMeterPerDeg  = 100000.0
)

func (linearProjector) ToProjected(lon, lat float64) (x, y float64, err error) {
	return linearFalseEasting + lon*linearMeterPerDeg, lat * linearMeterPerDeg, nil
}

func (linearProjector) ToGeodetic(x, y float64) (lon, lat float64, err error) {
	return (x - linearFalseEasting) / linearMeterPerDeg, y / linearMeterPerDeg, nil
}

var errEngine = errors.New("engine rejected coordinate")

type failingProjector struct{}

func (failingProjector) ToProjected(lon, lat float64) (x, y float64, err error) {
	err = &ProjectionError{X: lon, Y: lat, SrcSrid: EPSG_GEOGRAPHIC, DstSrid: EPSG_UTM_10N, Err: errEngine}
	return
}

func (failingProjector) ToGeodetic(x, y float64) (lon, lat float64, err error) {
	err = &ProjectionError{X: x, Y: y, SrcSrid: EPSG_UTM_10N, DstSrid: EPSG_GEOGRAPHIC, Err: errEngine}
	return
}

type fixedDims struct {
	width, height int
	missing       map[string]bool
}

func (d fixedDims) ImageSize(name string) (width, height, bands int, err error) {
	if d.missing[name] {
		err = fmt.Errorf("NOT exist: %s", name)
		return
	}
	return d.width, d.height, 3, nil
}

var dji0649 = ExteriorOrientation{
	Lon:   -123.114136,
	Lat:   38.426609,
	Alt:   91.304548,
	Yaw:   190.422786,
	Pitch: -0.656365,
	Roll:  1.312138,
}

func newTestCamera() *Camera {
	c, err := NewCamera(DefaultSensor())
	if err != nil {
		panic(err)
	}
	return c
}
