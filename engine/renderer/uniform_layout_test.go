package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLitFrameLayoutOffsets(t *testing.T) {
	u := LitFrameLayout()

	cases := map[string]int{
		UniformProjection:       0,
		UniformView:             64,
		UniformLightSpaceMatrix: 128,
		UniformViewPos:          192,
		UniformLightPos:         208,
		UniformLightColor:       224,
	}
	for name, want := range cases {
		got, ok := u.Offset(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	assert.Equal(t, 240, u.Size())
}

func TestObjectLayoutPacksScalarAfterVec3(t *testing.T) {
	u := ObjectLayout("object")

	off, ok := u.Offset(UniformUseTexture)
	require.True(t, ok)
	assert.Equal(t, 76, off)
	assert.Equal(t, 80, u.Size())
}

func TestUniformLayoutEncodesLittleEndian(t *testing.T) {
	u := ObjectLayout("object")
	var model [16]float32
	for i := range model {
		model[i] = float32(i) + 0.5
	}

	require.True(t, u.SetMat4(UniformModel, model))
	require.True(t, u.SetVec3(UniformObjectColor, [3]float32{0.8, 0, 0}))
	require.True(t, u.SetBool(UniformUseTexture, true))

	b := u.Bytes()
	for i := range model {
		assert.Equal(t, model[i], math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	assert.Equal(t, float32(0.8), math.Float32frombits(binary.LittleEndian.Uint32(b[64:])))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(b[76:]))

	require.True(t, u.SetBool(UniformUseTexture, false))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(u.Bytes()[76:]))
}

func TestUniformLayoutRejectsUnknownAndMismatchedNames(t *testing.T) {
	u := DepthFrameLayout()

	assert.False(t, u.SetVec3("lightDirection", [3]float32{0, -1, 0}))
	assert.False(t, u.SetVec3(UniformLightSpaceMatrix, [3]float32{1, 2, 3}))
	assert.False(t, u.TakeDirty())

	u.WarnUnknown("lightDirection")
	u.WarnUnknown("lightDirection")
	assert.Len(t, u.warned, 1)
}

func TestUniformLayoutDirtyFlag(t *testing.T) {
	u := UnlitFrameLayout()
	assert.False(t, u.TakeDirty())

	u.SetMat4(UniformView, [16]float32{1})
	assert.True(t, u.TakeDirty())
	assert.False(t, u.TakeDirty())
}

func TestUniformLayoutScalarKinds(t *testing.T) {
	u := NewUniformLayout("scalars",
		UniformField{Name: "a", Kind: UniformFloat},
		UniformField{Name: "b", Kind: UniformInt},
		UniformField{Name: "c", Kind: UniformVec3},
	)

	off, _ := u.Offset("b")
	assert.Equal(t, 4, off)
	off, _ = u.Offset("c")
	assert.Equal(t, 16, off)
	assert.Equal(t, 32, u.Size())

	require.True(t, u.SetInt("b", -2))
	require.True(t, u.SetFloat("a", 1.5))
	assert.Equal(t, int32(-2), int32(binary.LittleEndian.Uint32(u.Bytes()[4:])))
	assert.Equal(t, []string{"a", "b", "c"}, u.Fields())
}
