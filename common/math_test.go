package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestTranslateScaleTransformsPoint(t *testing.T) {
	var m [16]float32
	TranslateScale(m[:], [3]float32{1, 2, 3}, [3]float32{2, 2, 2})

	p := TransformPoint(m[:], [3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{3, 4, 5}, p)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	eye := [3]float32{3, 4, 5}
	LookAt(view[:], eye, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})

	p := TransformPoint(view[:], eye)
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)

	// the target sits straight ahead, down -Z
	c := TransformPoint(view[:], [3]float32{0, 0, 0})
	assert.InDelta(t, 0, c[0], 1e-5)
	assert.InDelta(t, 0, c[1], 1e-5)
	assert.InDelta(t, -Length3(eye), c[2], 1e-4)
}

func TestOrthoMapsBoxToClipVolume(t *testing.T) {
	var proj [16]float32
	Ortho(proj[:], -4, 2, -1, 3, 0.5, 10.5)

	lo := TransformPoint(proj[:], [3]float32{-4, -1, -0.5})
	hi := TransformPoint(proj[:], [3]float32{2, 3, -10.5})

	assert.InDelta(t, -1, lo[0], 1e-6)
	assert.InDelta(t, -1, lo[1], 1e-6)
	assert.InDelta(t, 0, lo[2], 1e-6)
	assert.InDelta(t, 1, hi[0], 1e-6)
	assert.InDelta(t, 1, hi[1], 1e-6)
	assert.InDelta(t, 1, hi[2], 1e-6)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], Radians(45), 4.0/3.0, 0.1, 100)

	near := MulVec4(proj[:], [4]float32{0, 0, -0.1, 1})
	far := MulVec4(proj[:], [4]float32{0, 0, -100, 1})

	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestNormalize3ZeroVector(t *testing.T) {
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
	assert.InDelta(t, 1, Length3(Normalize3([3]float32{3, -4, 12})), 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(-3, 1, 45))
	assert.Equal(t, float32(45), Clamp(90, 1, 45))
	assert.Equal(t, float32(10), Clamp(10, 1, 45))
}

func TestImportedTextureDecode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	tex := &ImportedTexture{Name: "strip", Data: buf.Bytes()}
	staging, err := tex.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(2), staging.Width)
	assert.Equal(t, uint32(1), staging.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, staging.Pixels)
	require.NotNil(t, tex.Staging)
	assert.Equal(t, staging.Width, tex.Staging.Width)
}

func TestImportedTextureDecodeWithoutSource(t *testing.T) {
	_, err := (&ImportedTexture{Name: "empty"}).Decode()
	assert.Error(t, err)
}
