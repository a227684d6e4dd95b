package config

import (
	"fmt"
	"strings"

	"github.com/wgdzlh/orthowarp/footprint"

	"github.com/spf13/viper"
)

const EnvPrefix = "ORTHOWARP"

type Config struct {
	Paths  PathsConfig              `mapstructure:"paths"`
	CRS    CRSConfig                `mapstructure:"crs"`
	Sensor footprint.SensorGeometry `mapstructure:"sensor"`
	Ground GroundConfig             `mapstructure:"ground"`
	Batch  BatchConfig              `mapstructure:"batch"`
	Warp   WarpConfig               `mapstructure:"warp"`
	Log    LogConfig                `mapstructure:"log"`
}

type PathsConfig struct {
	Image       string `mapstructure:"image"`
	Ortho       string `mapstructure:"ortho"`
	Mosaic      string `mapstructure:"mosaic"`
	Tmp         string `mapstructure:"tmp"`
	EOP         string `mapstructure:"eop"`
	EOPEncoding string `mapstructure:"eop_encoding"`
	Plot        string `mapstructure:"plot"`
	Shapefile   string `mapstructure:"shapefile"`
}

type CRSConfig struct {
	Geographic int `mapstructure:"geographic"`
	Projected  int `mapstructure:"projected"`
}

type GroundConfig struct {
	Elevation float64 `mapstructure:"elevation"`
}

type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

type WarpConfig struct {
	Resample string `mapstructure:"resample"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.image", "./image/")
	v.SetDefault("paths.ortho", "./ortho/")
	v.SetDefault("paths.mosaic", "./mosaic/dji-mosaic.tif")
	v.SetDefault("paths.tmp", "./ortho/")
	v.SetDefault("paths.eop", "./eop.csv")
	v.SetDefault("paths.eop_encoding", "UTF-8")
	v.SetDefault("paths.plot", "./footprints.png")
	v.SetDefault("paths.shapefile", "./footprints.shp")
	v.SetDefault("crs.geographic", footprint.EPSG_GEOGRAPHIC)
	v.SetDefault("crs.projected", footprint.EPSG_UTM_10N)
	v.SetDefault("sensor.width", footprint.SENSOR_WIDTH)
	v.SetDefault("sensor.height", footprint.SENSOR_HEIGHT)
	v.SetDefault("sensor.pixel_width", footprint.IMG_WIDTH)
	v.SetDefault("sensor.pixel_height", footprint.IMG_HEIGHT)
	v.SetDefault("sensor.focal", footprint.FOCAL)
	v.SetDefault("ground.elevation", footprint.GROUND)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("warp.resample", "bilinear")
	v.SetDefault("log.level", "info")
}

// 读取配置：默认值 < 配置文件（可选）< 环境变量（ORTHOWARP_GROUND_ELEVATION -> ground.elevation）
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("orthowarp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // OK if missing
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if err := c.Sensor.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.CRS.Geographic <= 0 || c.CRS.Projected <= 0 {
		errs = append(errs, "crs.geographic and crs.projected are required")
	} else if c.CRS.Geographic == c.CRS.Projected {
		errs = append(errs, fmt.Sprintf("crs.geographic and crs.projected must differ, got %d", c.CRS.Projected))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Sprintf("batch.workers must be positive, got %d", c.Batch.Workers))
	}
	if c.Paths.Image == "" {
		errs = append(errs, "paths.image is required")
	}
	if c.Paths.EOP == "" {
		errs = append(errs, "paths.eop is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
