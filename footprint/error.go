package footprint

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

type OrientationNotFoundError struct {
	Key string
}

func (e *OrientationNotFoundError) Error() string {
	return "EOP not exist: " + e.Key
}

type ProjectionError struct {
	X       float64
	Y       float64
	SrcSrid int
	DstSrid int
	Err     error
}

func (e *ProjectionError) Error() string {
	msg := fmt.Sprintf("project (%.10f, %.10f) from epsg:%d to epsg:%d failed", e.X, e.Y, e.SrcSrid, e.DstSrid)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}

// 射线与地面平行，无交点；Corner为角点序号，单独求交时为-1
type DegenerateRayError struct {
	Corner int
	Vector r3.Vector
}

func (e *DegenerateRayError) Error() string {
	if e.Corner < 0 {
		return fmt.Sprintf("ray %v is parallel to ground plane", e.Vector)
	}
	return fmt.Sprintf("ray of corner %d %v is parallel to ground plane", e.Corner, e.Vector)
}

var (
	ErrMissingCollaborator = errors.New("orientation lookup or dimension provider not set")
	ErrInvalidEOPRecord    = errors.New("invalid EOP record")
	ErrInvalidAttitude     = errors.New("attitude angles do not form a rotation")
	ErrInvalidImageSize    = errors.New("image size must be positive")
)
