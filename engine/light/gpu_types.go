package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUShadowDataSource is the WGSL definition of the ShadowData struct.
// Matches GPUShadowData layout exactly (16 bytes).
const GPUShadowDataSource = `struct ShadowData {
    texel_size: vec2<f32>,
    bias: f32,
    min_bias: f32,
};
`

// GPUShadowData is the GPU-aligned representation of the shadow sampling parameters.
// The lit shader uses it for the 3x3 comparison filter and the slope-scaled bias.
//
// Layout:
//
//	vec2<f32> texel_size (8 bytes, offset 0)
//	f32       bias       (4 bytes, offset 8)
//	f32       min_bias   (4 bytes, offset 12)
type GPUShadowData struct {
	TexelSize [2]float32 // 1.0 / shadow map resolution
	Bias      float32    // bias at grazing angles
	MinBias   float32    // bias when the surface faces the light
}

// NewGPUShadowData builds the shadow sampling parameters for a square shadow map
// with the default bias values.
//
// Parameters:
//   - resolution: shadow map width and height in texels
//
// Returns:
//   - GPUShadowData: the populated parameters
func NewGPUShadowData(resolution int) GPUShadowData {
	texel := float32(1)
	if resolution > 0 {
		texel = 1 / float32(resolution)
	}
	return GPUShadowData{
		TexelSize: [2]float32{texel, texel},
		Bias:      DefaultShadowBias,
		MinBias:   DefaultShadowMinBias,
	}
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(s.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(s.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(s.MinBias))
	return buf
}
