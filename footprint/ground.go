package footprint

import (
	"github.com/golang/geo/r3"
)

func BodyToWorld(body r3.Vector, rot Matrix3) r3.Vector {
	return rot.MulVec(body)
}

// 求世界系射线与地面（高程ground）的交点
func IntersectGround(proj Projector, world r3.Vector, camLon, camLat, camAlt, ground float64) (gp GroundPoint, err error) {
	if world.Z == 0 {
		err = &DegenerateRayError{Corner: -1, Vector: world}
		return
	}
	scale := (ground - camAlt) / world.Z
	camX, camY, err := proj.ToProjected(camLon, camLat)
	if err != nil {
		return
	}
	gp.X = camX + world.X*scale
	gp.Y = camY + world.Y*scale
	gp.Lon, gp.Lat, err = proj.ToGeodetic(gp.X, gp.Y)
	return
}
