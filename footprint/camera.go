package footprint

import (
	"math"

	"github.com/golang/geo/r3"
)

// 像方坐标转换，body系：x向右，y向上，z指向观察者
type Camera struct {
	sensor  SensorGeometry
	scale   float64 // 像素 -> 微米
	centerX float64
	centerY float64
}

func NewCamera(sensor SensorGeometry) (*Camera, error) {
	if err := sensor.Validate(); err != nil {
		return nil, err
	}
	pw, ph := float64(sensor.PixelWidth), float64(sensor.PixelHeight)
	return &Camera{
		sensor: sensor,
		// 标称画幅宽高比与像素宽高比不符，故按对角线取统一比例
		scale:   math.Sqrt(sensor.Width*sensor.Width+sensor.Height*sensor.Height) * MM_TO_MICRO / math.Sqrt(pw*pw+ph*ph),
		centerX: (pw - 1) / 2,
		centerY: (ph - 1) / 2,
	}, nil
}

func (c *Camera) Sensor() SensorGeometry {
	return c.sensor
}

func (c *Camera) Scale() float64 {
	return c.scale
}

func (c *Camera) PixelToBody(x, y float64) r3.Vector {
	return r3.Vector{
		X: (x - c.centerX) * c.scale,
		Y: -(y - c.centerY) * c.scale,
		Z: -c.sensor.Focal * MM_TO_MICRO,
	}
}
