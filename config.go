package orthowarp

const (
	FILE_EXT_SHP    = ".shp"
	FILE_EXT_TIF    = ".tif"
	SHAPE_ENCODING  = "UTF-8"
	SHP_DRIVER_NAME = "ESRI Shapefile"
	ENCODING_OPTION = "ENCODING=" + SHAPE_ENCODING
	UNIVERSAL_SRID  = 4326
	PROJECTED_SRID  = 32610

	SHP_FIELD_TITLE   = "title"
	SHP_FIELD_NAME    = "name"
	SHP_FIELD_CAM_LON = "cam_lon"
	SHP_FIELD_CAM_LAT = "cam_lat"

	DEFAULT_RESAMPLE = "bilinear"
	MOSAIC_NODATA    = "0"

	TMP_TRANSLATED = "%s-translate-%s.tif"
	WARPED_SUFFIX  = "-warp.tif"
	TMP_MOSAIC_VRT = "_tmp.vrt"
)
