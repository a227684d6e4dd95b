package orthowarp

import "errors"

var (
	ErrGdalDriverCreate = errors.New("gdal driver create err")
	ErrGdalDriverOpen   = errors.New("gdal driver open err")
	ErrVoidSrid         = errors.New("gdal shp with void srid")
	ErrTransformFailed  = errors.New("gdal coordinate transform failed")
	ErrInvalidWKT       = errors.New("invalid WKT")
	ErrInvalidTif       = errors.New("invalid tif")
	ErrImageNotExist    = errors.New("image not exist")
	ErrEmptyMosaic      = errors.New("nothing to mosaic")
	ErrEmptyFootprint   = errors.New("footprint has zero area")
)
