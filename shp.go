package orthowarp

import (
	"github.com/wgdzlh/orthowarp/footprint"
	"github.com/wgdzlh/orthowarp/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

func (g *GdalToolbox) getShpDriver(shp string, srid int) (ds gdal.DataSource, ref gdal.SpatialReference, layer gdal.Layer, err error) {
	log.Info(g.logTag+"output shp files", zap.String("shp", shp), zap.Int("srid", srid))
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Create(shp, nil)
	if !ok {
		err = ErrGdalDriverCreate
		return
	}
	if ref, err = g.getSridRef(srid); err != nil {
		ds.Destroy()
		return
	}
	layer = ds.CreateLayer("", ref, gdal.GT_Polygon, []string{ENCODING_OPTION})
	return
}

func (g *GdalToolbox) initFootprintLayer(layer gdal.Layer) (err error) {
	name := gdal.CreateFieldDefinition(SHP_FIELD_NAME, gdal.FT_String)
	name.SetWidth(128)
	title := gdal.CreateFieldDefinition(SHP_FIELD_TITLE, gdal.FT_String)
	title.SetWidth(64)
	camLon := gdal.CreateFieldDefinition(SHP_FIELD_CAM_LON, gdal.FT_Real)
	camLat := gdal.CreateFieldDefinition(SHP_FIELD_CAM_LAT, gdal.FT_Real)
	for _, fd := range []gdal.FieldDefinition{name, title, camLon, camLat} {
		if err = layer.CreateField(fd, false); err != nil {
			return
		}
	}
	return
}

// 将覆盖范围写入shp（投影坐标转为经纬度坐标系），属性含影像名、标题及相机位置
func (g *GdalToolbox) WriteFootprintShapefile(shp string, fps ...footprint.Footprint) (err error) {
	ds, ref, layer, err := g.getShpDriver(shp, g.conf.GeoSrid)
	if err != nil {
		return
	}
	defer ds.Destroy() // 生成shp文件 + 释放资源
	if err = g.initFootprintLayer(layer); err != nil {
		return
	}
	var (
		def     = layer.Definition()
		feature gdal.Feature
		geo     gdal.Geometry
		geoWkt  string
		cnt     int
		e       error
		gc      = make([]destroyable, 0, len(fps))
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	nameIdx := def.FieldIndex(SHP_FIELD_NAME)
	titleIdx := def.FieldIndex(SHP_FIELD_TITLE)
	lonIdx := def.FieldIndex(SHP_FIELD_CAM_LON)
	latIdx := def.FieldIndex(SHP_FIELD_CAM_LAT)
	for i, fp := range fps {
		feature = def.Create()
		gc = append(gc, feature)
		if e = feature.SetFID(int64(i)); e != nil {
			log.Error(g.logTag+"err in set feature fid", zap.Error(e))
			continue
		}
		feature.SetFieldString(nameIdx, fp.Name)
		feature.SetFieldString(titleIdx, fp.Title)
		feature.SetFieldFloat64(lonIdx, fp.Center.Lon)
		feature.SetFieldFloat64(latIdx, fp.Center.Lat)
		if geoWkt, e = g.TransformWkt(FootprintWkt(fp), g.conf.ProjectedSrid, g.conf.GeoSrid); e != nil {
			continue
		}
		if geo, e = g.parseWKT(geoWkt, ref); e != nil {
			continue
		}
		if e = feature.SetGeometryDirectly(geo); e != nil {
			log.Error(g.logTag+"err in set geom of feature", zap.Error(e))
			continue
		}
		if e = layer.Create(feature); e != nil {
			log.Error(g.logTag+"err in create feature of layer", zap.Error(e))
			continue
		}
		cnt++
	}
	log.Info(g.logTag+"footprint shp files created", zap.String("shp", shp), zap.Int("total", len(fps)), zap.Int("valid", cnt))
	return
}
