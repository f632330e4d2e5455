package renderer

import "github.com/Carmen-Shannon/oxy-shadow/common"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// PassBackend is the GPU side of the two-pass frame. Every target, viewport and texture
// unit is passed explicitly; the backend keeps no ambient binding state between passes.
type PassBackend interface {
	// BeginDepthPass binds the shadow target, sets the viewport to the target resolution
	// and clears depth only. No colour attachment is bound.
	//
	// Parameters:
	//   - target: the off-screen depth target to render into
	//
	// Returns:
	//   - error: an error if the pass could not be started
	BeginDepthPass(target ShadowTarget) error

	// EndDepthPass finishes and submits the depth pass.
	//
	// Returns:
	//   - error: an error recorded while encoding the pass
	EndDepthPass() error

	// BeginLitPass acquires the main target, sets the viewport to the window size and clears
	// colour and depth.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginLitPass() error

	// BindShadowMap binds the target's depth texture for sampling on the given unit.
	//
	// Parameters:
	//   - target: the shadow target written by the preceding depth pass
	//   - unit: the texture unit the lit program samples the shadow map from
	BindShadowMap(target ShadowTarget, unit TextureUnit)

	// EndLitPass finishes and submits the lit pass.
	//
	// Returns:
	//   - error: an error recorded while encoding the pass
	EndLitPass() error

	// Present shows the frame finished by EndLitPass.
	Present()

	// Viewport returns the main target size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Viewport() (int, int)
}

// MeshUploader creates GPU resources for immutable mesh and texture payloads.
type MeshUploader interface {
	// UploadMesh creates vertex and index buffers for a mesh.
	//
	// Parameters:
	//   - label: debug label for the buffers
	//   - vertices: packed 32-byte vertices
	//   - indices: triangle indices
	//
	// Returns:
	//   - MeshHandle: the uploaded mesh
	//   - error: an error if buffer creation fails
	UploadMesh(label string, vertices []byte, indices []uint32) (MeshHandle, error)

	// UploadTexture creates a sampled RGBA texture for the diffuse unit.
	//
	// Parameters:
	//   - label: debug label for the texture
	//   - staging: decoded RGBA8 pixels
	//
	// Returns:
	//   - TextureHandle: the uploaded texture
	//   - error: an error if texture creation fails
	UploadTexture(label string, staging common.TextureStagingData) (TextureHandle, error)
}
