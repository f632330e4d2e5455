// package common contains the plain types and helpers shared across the viewer: column-major matrix math,
// staging structs for GPU uploads, logging and startup errors.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is tightly packed RGBA8, 4 bytes per pixel, row-major from the top-left texel.
	Pixels []byte
	Width  uint32
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero fields fall back to linear filtering and repeat addressing.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	// Compare is set for comparison samplers (shadow lookups).
	Compare       wgpu.CompareFunction
	MaxAnisotropy uint16
}

// ImportedMaterial represents the material properties read from a model file.
type ImportedMaterial struct {
	Name string

	// DiffuseColor is the Kd colour, used when no diffuse texture is present.
	DiffuseColor [3]float32

	// DiffuseTexture is the map_Kd texture, or nil.
	DiffuseTexture *ImportedTexture
}

// ImportedTexture represents a texture referenced by a model file or the scene configuration.
// Either Path (on disk) or Data (raw encoded bytes) is set.
type ImportedTexture struct {
	Name string
	Path string
	Data []byte

	// Staging is populated by Decode.
	Staging *TextureStagingData
}

// Decode decodes the texture into RGBA8 staging data and stores it on the texture.
// Supports PNG, JPEG, BMP, TIFF and WebP.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the source is missing or cannot be decoded
func (t *ImportedTexture) Decode() (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode embedded image %q: %w", t.Name, err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return TextureStagingData{}, fmt.Errorf("texture %q has neither data nor path", t.Name)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	staging := TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
	t.Staging = &staging
	return staging, nil
}
