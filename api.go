package orthowarp

import "github.com/wgdzlh/orthowarp/footprint"

// GdalToolbox初始化参数，零值字段取默认
type ToolboxConf struct {
	ImageDir      string // 原始影像目录
	OrthoDir      string // 纠正结果目录
	TmpDir        string // 中间文件目录
	GeoSrid       int    // 地理坐标系
	ProjectedSrid int    // 投影坐标系（UTM）
	Resample      string // gdalwarp重采样方法
}

var (
	_ footprint.Projector         = (*GdalToolbox)(nil)
	_ footprint.DimensionProvider = (*GdalToolbox)(nil)
	_ footprint.GCPConsumer       = (*GdalToolbox)(nil)
)
