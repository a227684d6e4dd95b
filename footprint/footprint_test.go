package footprint

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCornerPixels(t *testing.T) {
	assert.Equal(t, [4]PixelCoordinate{{0, 0}, {3999, 0}, {3999, 2999}, {0, 2999}}, CornerPixels(4000, 3000))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "0649", Title("dji_0649.jpg"))
	assert.Equal(t, "0649", Title("/data/image/dji_0649.jpg"))
	assert.Equal(t, "IMG", Title("IMG.tif"))
	assert.Equal(t, "a", Title("x_a_b.jpg"))
	assert.Equal(t, "0649", Title("dji_0649.v2.tif"))
}

func TestComputeFootprint(t *testing.T) {
	c := NewComputer(newTestCamera(), linearProjector{})
	fp, err := c.ComputeFootprint("dji_0649.jpg", dji0649, 4000, 3000, 30)
	require.NoError(t, err)

	assert.Equal(t, "dji_0649.jpg", fp.Name)
	assert.Equal(t, "0649", fp.Title)
	assert.Equal(t, dji0649.Lon, fp.Center.Lon)
	assert.Equal(t, dji0649.Lat, fp.Center.Lat)
	camX, camY, _ := linearProjector{}.ToProjected(dji0649.Lon, dji0649.Lat)
	assert.Equal(t, camX, fp.Center.X)
	assert.Equal(t, camY, fp.Center.Y)

	// 逐角点与分步计算一致
	rot := BuildRotation(dji0649.Yaw, dji0649.Pitch, dji0649.Roll)
	for i, px := range CornerPixels(4000, 3000) {
		want, err := IntersectGround(linearProjector{}, BodyToWorld(newTestCamera().PixelToBody(px.X, px.Y), rot),
			dji0649.Lon, dji0649.Lat, dji0649.Alt, 30)
		require.NoError(t, err)
		assert.Equal(t, px, fp.Corners[i].Pixel)
		assert.Equal(t, want, fp.Corners[i].Ground)
	}

	// yaw约190度，影像上方朝南
	assert.Less(t, fp.Corners[0].Ground.Y, fp.Center.Y)
	assert.Less(t, fp.Corners[1].Ground.Y, fp.Center.Y)
	assert.Greater(t, fp.Corners[2].Ground.Y, fp.Center.Y)
}

func TestComputeFootprintNadirCentroid(t *testing.T) {
	c := NewComputer(newTestCamera(), linearProjector{})
	for _, yaw := range []float64{0, 45, 90, 190.422786, 301.431548} {
		eo := dji0649
		eo.Yaw, eo.Pitch, eo.Roll = yaw, 0, 0
		fp, err := c.ComputeFootprint("dji_0649.jpg", eo, 4000, 3000, GROUND)
		require.NoError(t, err)
		x, y := fp.Centroid()
		assert.InDelta(t, fp.Center.X, x, 1e-6, "yaw %v", yaw)
		assert.InDelta(t, fp.Center.Y, y, 1e-6, "yaw %v", yaw)
	}
}

func TestComputeFootprintWinding(t *testing.T) {
	c := NewComputer(newTestCamera(), linearProjector{})
	eo := dji0649
	eo.Yaw, eo.Pitch, eo.Roll = 0, 0, 0
	fp, err := c.ComputeFootprint("n.jpg", eo, 4000, 3000, GROUND)
	require.NoError(t, err)

	// 正北朝上时：左上在西北，顺时针
	tl, tr, br, bl := fp.Corners[0].Ground, fp.Corners[1].Ground, fp.Corners[2].Ground, fp.Corners[3].Ground
	assert.Less(t, tl.X, tr.X)
	assert.InDelta(t, tl.Y, tr.Y, 1e-6)
	assert.Greater(t, tr.Y, br.Y)
	assert.Greater(t, br.X, bl.X)
	assert.InDelta(t, tl.X, bl.X, 1e-6)
}

func TestComputeFootprintPropagatesErrors(t *testing.T) {
	c := NewComputer(newTestCamera(), failingProjector{})
	_, err := c.ComputeFootprint("dji_0649.jpg", dji0649, 4000, 3000, 30)
	var pe *ProjectionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, dji0649.Lon, pe.X)
	assert.ErrorIs(t, err, errEngine)
}

func TestComputeFootprintInvalidSize(t *testing.T) {
	c := NewComputer(newTestCamera(), linearProjector{})
	for _, size := range [][2]int{{0, 3000}, {4000, 0}, {-1, -1}} {
		fp, err := c.ComputeFootprint("dji_0649.jpg", dji0649, size[0], size[1], 30)
		assert.ErrorIs(t, err, ErrInvalidImageSize, "size %v", size)
		assert.Equal(t, Footprint{}, fp)
	}

	// 单像素影像四角重合
	fp, err := c.ComputeFootprint("dji_0649.jpg", dji0649, 1, 1, 30)
	require.NoError(t, err)
	for _, corner := range fp.Corners {
		assert.Equal(t, PixelCoordinate{0, 0}, corner.Pixel)
	}
}

func TestComputeFootprintInvalidAttitude(t *testing.T) {
	c := NewComputer(newTestCamera(), linearProjector{})
	eo := dji0649
	eo.Yaw = math.NaN()
	_, err := c.ComputeFootprint("dji_0649.jpg", eo, 4000, 3000, 30)
	assert.ErrorIs(t, err, ErrInvalidAttitude)
}

func TestComputeFootprintDegenerateCorner(t *testing.T) {
	// 焦距为0时光轴水平，零姿态下各角点射线均与地面平行
	cam := *newTestCamera()
	cam.sensor.Focal = 0
	c := NewComputer(&cam, linearProjector{})
	eo := dji0649
	eo.Yaw, eo.Pitch, eo.Roll = 0, 0, 0
	_, err := c.ComputeFootprint("dji_0649.jpg", eo, 4000, 3000, 30)
	var dre *DegenerateRayError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, 0, dre.Corner)
	assert.Equal(t, 0.0, dre.Vector.Z)
	assert.Contains(t, err.Error(), "corner 0")
}

func TestFootprintOf(t *testing.T) {
	table := NewOrientationTable()
	table.Set("dji_0649.jpg", dji0649)
	c := NewComputer(newTestCamera(), linearProjector{},
		WithLookup(table),
		WithDimensions(fixedDims{width: 4000, height: 3000, missing: map[string]bool{"gone.jpg": true}}),
		WithGroundElevation(30),
	)
	assert.Equal(t, 30.0, c.GroundElevation())

	fp, err := c.FootprintOf("dji_0649.jpg")
	require.NoError(t, err)
	direct, err := c.ComputeFootprint("dji_0649.jpg", dji0649, 4000, 3000, 30)
	require.NoError(t, err)
	assert.Equal(t, direct, fp)

	_, err = c.FootprintOf("dji_0649-1.jpg")
	var nf *OrientationNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "dji_0649-1.jpg", nf.Key)

	table.Set("gone.jpg", dji0649)
	_, err = c.FootprintOf("gone.jpg")
	assert.ErrorContains(t, err, "NOT exist")

	_, err = NewComputer(newTestCamera(), linearProjector{}).FootprintOf("dji_0649.jpg")
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestGroundControlPoints(t *testing.T) {
	fp := Footprint{}
	for i, px := range CornerPixels(4000, 3000) {
		fp.Corners[i] = Corner{Pixel: px, Ground: GroundPoint{X: 490000.5 + float64(i), Y: 4253156.125}}
	}
	gcps := fp.GroundControlPoints()
	require.Len(t, gcps, 4)
	assert.Equal(t, GroundControlPoint{Pixel: 3999, Line: 2999, X: 490002.5, Y: 4253156.125}, gcps[2])

	opts := fp.GCPOptions()
	require.Len(t, opts, 20)
	assert.Equal(t, []string{"-gcp", "3999.0", "0.0", "490001.5000000000", "4253156.1250000000"}, opts[5:10])
}
