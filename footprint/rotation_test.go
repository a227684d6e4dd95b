package footprint

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildRotation(t *testing.T) {
	expected := Matrix3{
		{-0.983435068777505, -0.180898417576039, 0.011455479783407},
		{0.181120842120780, -0.983194253117103, 0.022897624046204},
		{0.007120817933535, 0.024593152623988, 0.999672181665555},
	}
	rot := BuildRotation(190.422786, -0.656365, 1.312138)
	for i := range expected {
		assert.InDeltaSlice(t, expected[i][:], rot[i][:], 1e-8, "row %d", i)
	}
}

func TestBuildRotationZero(t *testing.T) {
	assert.Equal(t, Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, BuildRotation(0, 0, 0))
}

func TestBuildRotationOrthogonal(t *testing.T) {
	rnd := rand.New(rand.NewSource(649))
	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	for i := 0; i < 200; i++ {
		yaw := rnd.Float64()*720 - 360
		pitch := rnd.Float64()*180 - 90
		roll := rnd.Float64()*360 - 180
		r := BuildRotation(yaw, pitch, roll).Dense()

		var rtr mat.Dense
		rtr.Mul(r.T(), r)
		require.True(t, mat.EqualApprox(&rtr, eye, 1e-12), "R^T*R != I for (%v, %v, %v)", yaw, pitch, roll)
		assert.InDelta(t, 1, mat.Det(r), 1e-12)
	}
}

func TestMatrix3MulVec(t *testing.T) {
	rot := BuildRotation(33, -12, 7)
	v := r3.Vector{X: 1, Y: -2, Z: 3}
	var want mat.VecDense
	want.MulVec(rot.Dense(), mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	got := rot.MulVec(v)
	assert.InDeltaSlice(t, want.RawVector().Data, []float64{got.X, got.Y, got.Z}, 1e-12)

	// 正交矩阵保持长度
	assert.InDelta(t, v.Norm(), got.Norm(), 1e-12)
}

func TestIsRotation(t *testing.T) {
	assert.True(t, BuildRotation(33, -12, 7).IsRotation(rotationTol))
	assert.True(t, BuildRotation(0, 0, 0).IsRotation(rotationTol))

	// 镜像：正交但det为-1
	assert.False(t, Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}}.IsRotation(rotationTol))
	// 缩放
	assert.False(t, Matrix3{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}.IsRotation(rotationTol))
	assert.False(t, BuildRotation(math.NaN(), 0, 0).IsRotation(rotationTol))
	assert.False(t, BuildRotation(0, math.Inf(1), 0).IsRotation(rotationTol))
}
