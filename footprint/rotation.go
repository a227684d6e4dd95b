package footprint

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

const (
	degToRad    = math.Pi / 180
	rotationTol = 1e-9
)

type Matrix3 [3][3]float64

func (m Matrix3) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// 转为gonum矩阵
func (m Matrix3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// 是否为旋转矩阵：R^T*R = I 且 det(R) = 1，姿态角非有限值时不成立
func (m Matrix3) IsRotation(tol float64) bool {
	r := m.Dense()
	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	if !mat.EqualApprox(&rtr, mat.NewDiagDense(3, []float64{1, 1, 1}), tol) {
		return false
	}
	return math.Abs(mat.Det(r)-1) <= tol
}

// 由姿态角（度）构建旋转矩阵，world = R * body
// 与姿态传感器标定坐标系一致，不可改动
func BuildRotation(yaw, pitch, roll float64) Matrix3 {
	sr, cr := math.Sincos(roll * degToRad)
	sp, cp := math.Sincos(pitch * degToRad)
	sy, cy := math.Sincos(yaw * degToRad)
	return Matrix3{
		{cy * cp, sy * cp, -sp},
		{-sy*cr + cy*sp*sr, cy*cr + sy*sp*sr, cp * sr},
		{sy*sr + cy*sp*cr, -cy*sr + sy*sp*cr, cp * cr},
	}
}
