package footprint

const (
	EPSG_GEOGRAPHIC = 4326
	EPSG_UTM_10N    = 32610 // Goat Rock Beach

	// 35mm画幅（36mm*24mm）
	SENSOR_WIDTH  = 36.0
	SENSOR_HEIGHT = 24.0
	IMG_WIDTH     = 4000
	IMG_HEIGHT    = 3000
	FOCAL         = 20.0 // mm
	GROUND        = 0.0  // SRTM地面高程

	MM_TO_MICRO = 1000

	GCP_FORMAT = "%.1f %.1f %.10f %.10f"
)

// 默认相机参数
func DefaultSensor() SensorGeometry {
	return SensorGeometry{
		Width:       SENSOR_WIDTH,
		Height:      SENSOR_HEIGHT,
		PixelWidth:  IMG_WIDTH,
		PixelHeight: IMG_HEIGHT,
		Focal:       FOCAL,
	}
}
