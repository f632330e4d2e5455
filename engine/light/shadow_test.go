package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeCorners(h float32) [][3]float32 {
	corners := make([][3]float32, 0, 8)
	for _, x := range []float32{-h, h} {
		for _, y := range []float32{-h, h} {
			for _, z := range []float32{-h, h} {
				corners = append(corners, [3]float32{x, y, z})
			}
		}
	}
	return corners
}

func TestFitBoundsMatchTransformedCorners(t *testing.T) {
	corners := cubeCorners(10)
	f := ComputeLightSpaceMatrix(corners, [3]float32{0, 30, 0})

	assert.InDelta(t, 0, f.Direction[0], 1e-6)
	assert.InDelta(t, -1, f.Direction[1], 1e-6)
	assert.InDelta(t, 0, f.Direction[2], 1e-6)

	xMin, xMax := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	yMin, yMax := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	for _, c := range corners {
		p := common.TransformPoint(f.View[:], c)
		xMin, xMax = min(xMin, p[0]), max(xMax, p[0])
		yMin, yMax = min(yMin, p[1]), max(yMax, p[1])
	}

	assert.Equal(t, xMin, f.Bounds.Left)
	assert.Equal(t, xMax, f.Bounds.Right)
	assert.Equal(t, yMin, f.Bounds.Bottom)
	assert.Equal(t, yMax, f.Bounds.Top)
	assert.InDelta(t, -10, f.Bounds.Left, 1e-4)
	assert.InDelta(t, 10, f.Bounds.Right, 1e-4)
	assert.InDelta(t, -10, f.Bounds.Bottom, 1e-4)
	assert.InDelta(t, 10, f.Bounds.Top, 1e-4)
}

func TestFitDepthRange(t *testing.T) {
	f := ComputeLightSpaceMatrix(cubeCorners(10), [3]float32{0, 20, 0})

	assert.Equal(t, DefaultShadowNear, f.Bounds.Near)
	assert.InDelta(t, math.Sqrt(3*20*20), f.Bounds.Far, 1e-4)
}

func TestLightSpaceIsProjectionTimesView(t *testing.T) {
	f := ComputeLightSpaceMatrix(cubeCorners(10), [3]float32{10, 25, 8})

	var expected [16]float32
	common.Mul4(expected[:], f.Projection[:], f.View[:])
	assert.Equal(t, expected, f.LightSpace)
}

func TestFittedCornersSpanClipXY(t *testing.T) {
	corners := cubeCorners(10)
	f := ComputeLightSpaceMatrix(corners, [3]float32{6, 18, -4})

	for _, c := range corners {
		clip := common.MulVec4(f.LightSpace[:], [4]float32{c[0], c[1], c[2], 1})
		assert.InDelta(t, 1, clip[3], 1e-6)
		assert.GreaterOrEqual(t, clip[0], float32(-1-1e-4))
		assert.LessOrEqual(t, clip[0], float32(1+1e-4))
		assert.GreaterOrEqual(t, clip[1], float32(-1-1e-4))
		assert.LessOrEqual(t, clip[1], float32(1+1e-4))
	}
}

func TestFitCoplanarCornersIsNotAnError(t *testing.T) {
	corners := [][3]float32{{-5, 0, -5}, {5, 0, -5}, {-5, 0, 5}, {5, 0, 5}}
	f := ComputeLightSpaceMatrix(corners, [3]float32{0, 8, 3})

	for _, v := range f.LightSpace {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
	assert.LessOrEqual(t, f.Bounds.Left, f.Bounds.Right)
	assert.LessOrEqual(t, f.Bounds.Bottom, f.Bounds.Top)
}

func TestFitNoCorners(t *testing.T) {
	f := ComputeLightSpaceMatrix(nil, [3]float32{0, 10, 0})

	var identity [16]float32
	common.Identity(identity[:])
	assert.Equal(t, identity, f.LightSpace)
}

func TestLightDirectionFollowsTarget(t *testing.T) {
	l := NewLight(WithPosition([3]float32{0, 10, 0}), WithTarget([3]float32{0, 0, 0}))
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
	assert.True(t, l.CastsShadows())

	l.SetTarget([3]float32{10, 10, 0})
	assert.Equal(t, [3]float32{1, 0, 0}, l.Direction())
}

func TestGPUShadowDataMarshal(t *testing.T) {
	data := NewGPUShadowData(2048)
	require.Equal(t, 16, data.Size())

	buf := data.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, float32(1.0/2048), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, DefaultShadowBias, math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, DefaultShadowMinBias, math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])))
}
