package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// maxTextureUnit keeps every texture group below the device's MaxBindGroups of 8.
const maxTextureUnit TextureUnit = 5

// Surface is the window side of the renderer: a platform surface and its size in pixels.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend  *wgpuRendererBackendImpl
	frames   FrameRenderer
	target   *wgpuShadowTarget
	programs []*wgpuProgram
	meshes   *MeshCache

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	shadowResolution     int
	clearColor           [3]float32
	diffuseUnit          TextureUnit
	shadowUnit           TextureUnit
}

// Renderer defines the interface for the shadow-mapped WebGPU renderer.
//
// It owns the device, the three programs (depth, lit, unlit), the shadow target and the
// uploaded built-in shapes, and renders one two-pass frame per RenderShadowedFrame call.
// All methods must be called from the thread that created the window.
type Renderer interface {
	MeshUploader

	// Resize reconfigures the surface and the main target attachments.
	// A zero size (minimised window) suspends rendering until the next non-zero resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the attachments could not be recreated
	Resize(width, height int) error

	// Mesh returns the shared GPU mesh of a built-in shape.
	//
	// Parameters:
	//   - kind: the shape
	//
	// Returns:
	//   - MeshHandle: the shared handle; do not Release it
	//   - error: an error if the shape is unknown or the upload failed
	Mesh(kind geometry.ShapeKind) (MeshHandle, error)

	// RenderShadowedFrame renders the depth pass, then the lit pass, then presents.
	// Nothing is rendered while the surface has a zero size.
	//
	// Parameters:
	//   - cam: the camera providing view, projection and eye position
	//   - lightSpace: the light-space matrix shared by both passes
	//   - light: light position and colour
	//   - drawables: everything to draw this frame
	//
	// Returns:
	//   - error: the first error of the frame
	RenderShadowedFrame(cam CameraView, lightSpace [16]float32, light LightParams, drawables []Drawable) error

	// Viewport returns the main target size in pixels.
	Viewport() (int, int)

	// ShadowResolution returns the shadow map width and height in texels.
	ShadowResolution() int

	// Release frees every GPU resource. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the WebGPU device on the window surface, compiles the depth, lit and
// unlit programs, and allocates the shadow target. Every failure here is a startup
// configuration error.
//
// Parameters:
//   - surface: the window surface
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the renderer
//   - error: ErrWindowCreate, ErrShaderCompile, ErrShadowTarget or ErrTextureUnitClash
func NewRenderer(surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:               &sync.Mutex{},
		presentMode:      PresentModeVSync,
		sampleCount:      MSAA4x,
		shadowResolution: light.DefaultShadowMapResolution,
		clearColor:       [3]float32{0.05, 0.05, 0.05},
		diffuseUnit:      DiffuseUnit,
		shadowUnit:       ShadowUnit,
	}
	for _, opt := range options {
		opt(r)
	}

	if r.diffuseUnit == r.shadowUnit {
		return nil, fmt.Errorf("renderer: %w: unit %d", common.ErrTextureUnitClash, r.shadowUnit)
	}
	if r.diffuseUnit > maxTextureUnit || r.shadowUnit > maxTextureUnit {
		return nil, fmt.Errorf("renderer: texture units %d and %d must not exceed %d", r.diffuseUnit, r.shadowUnit, maxTextureUnit)
	}
	if surface == nil {
		return nil, fmt.Errorf("renderer: %w: no surface", common.ErrWindowCreate)
	}

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount, r.clearColor)
	if err != nil {
		return nil, err
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(surface.Width(), surface.Height()); err != nil {
		r.Release()
		return nil, fmt.Errorf("%w: configure surface: %w", common.ErrWindowCreate, err)
	}

	if err := r.initPrograms(); err != nil {
		r.Release()
		return nil, err
	}

	r.meshes = NewMeshCache(geometry.NewCache(), r.backend)
	common.LogInfo("renderer ready",
		"width", surface.Width(),
		"height", surface.Height(),
		"msaa", uint32(r.sampleCount),
		"shadowMap", r.shadowResolution,
	)
	return r, nil
}

func (r *renderer) initPrograms() error {
	depthSrc, err := shaderSource("depth.wgsl", r.diffuseUnit, r.shadowUnit)
	if err != nil {
		return err
	}
	litSrc, err := shaderSource("lit.wgsl", r.diffuseUnit, r.shadowUnit)
	if err != nil {
		return err
	}
	unlitSrc, err := shaderSource("unlit.wgsl", r.diffuseUnit, r.shadowUnit)
	if err != nil {
		return err
	}

	depth, err := r.backend.RegisterProgram(pipeline.NewPipeline("depth", pipeline.PassDepth,
		pipeline.WithSource(depthSrc),
		pipeline.WithDepthBias(2, 1.5),
		pipeline.WithCullMode(wgpu.CullModeFront), // casters are closed meshes
	), DepthFrameLayout(), r.diffuseUnit, r.shadowUnit)
	if err != nil {
		return err
	}
	r.programs = append(r.programs, depth)

	lit, err := r.backend.RegisterProgram(pipeline.NewPipeline("lit", pipeline.PassLit,
		pipeline.WithSource(litSrc),
	), LitFrameLayout(), r.diffuseUnit, r.shadowUnit)
	if err != nil {
		return err
	}
	r.programs = append(r.programs, lit)

	unlit, err := r.backend.RegisterProgram(pipeline.NewPipeline("unlit", pipeline.PassUnlit,
		pipeline.WithSource(unlitSrc),
	), UnlitFrameLayout(), r.diffuseUnit, r.shadowUnit)
	if err != nil {
		return err
	}
	r.programs = append(r.programs, unlit)

	r.target, err = r.backend.CreateShadowTarget(r.shadowResolution)
	if err != nil {
		return err
	}

	r.frames, err = NewFrameRenderer(r.backend,
		WithDepthProgram(depth),
		WithLitProgram(lit),
		WithUnlitProgram(unlit),
		WithShadowTarget(r.target),
		WithTextureUnits(r.diffuseUnit, r.shadowUnit),
	)
	return err
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Mesh(kind geometry.ShapeKind) (MeshHandle, error) {
	return r.meshes.Get(kind)
}

func (r *renderer) UploadMesh(label string, vertices []byte, indices []uint32) (MeshHandle, error) {
	return r.backend.UploadMesh(label, vertices, indices)
}

func (r *renderer) UploadTexture(label string, staging common.TextureStagingData) (TextureHandle, error) {
	return r.backend.UploadTexture(label, staging)
}

func (r *renderer) RenderShadowedFrame(cam CameraView, lightSpace [16]float32, light LightParams, drawables []Drawable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, h := r.backend.Viewport(); w <= 0 || h <= 0 {
		return nil
	}
	return r.frames.RenderShadowedFrame(cam, lightSpace, light, drawables)
}

func (r *renderer) Viewport() (int, int) {
	return r.backend.Viewport()
}

func (r *renderer) ShadowResolution() int {
	return r.shadowResolution
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.meshes != nil {
		r.meshes.Purge()
	}
	if r.target != nil {
		r.target.Release()
		r.target = nil
	}
	for _, p := range r.programs {
		p.release()
	}
	r.programs = nil
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
