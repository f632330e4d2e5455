package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
)

// Uniform names shared by the frame renderer, the drawables and the WGSL programs.
const (
	UniformProjection       = "projection"
	UniformView             = "view"
	UniformLightSpaceMatrix = "lightSpaceMatrix"
	UniformViewPos          = "viewPos"
	UniformLightPos         = "lightPos"
	UniformLightColor       = "lightColor"
	UniformModel            = "model"
	UniformObjectColor      = "objectColor"
	UniformUseTexture       = "useTexture"
)

// TextureUnit is an explicit texture slot a program samples from.
type TextureUnit uint32

const (
	// DiffuseUnit carries a drawable's diffuse texture (or the white fallback).
	DiffuseUnit TextureUnit = 0

	// ShadowUnit carries the shadow map during the lit pass.
	ShadowUnit TextureUnit = 1
)

// Shading selects which program draws a Drawable in the lit pass.
type Shading int

const (
	// ShadingLit is Blinn-Phong lighting with shadow lookups.
	ShadingLit Shading = iota

	// ShadingUnlit draws the flat object colour (used for the light marker).
	ShadingUnlit
)

// ShaderHandle is the "set named uniform" capability of a compiled program.
// Unknown names are ignored.
type ShaderHandle interface {
	// Use makes this program current for the following uniform sets and draws.
	Use()

	SetMat4(name string, value [16]float32)
	SetVec3(name string, value [3]float32)
	SetFloat(name string, value float32)
	SetInt(name string, value int32)
	SetBool(name string, value bool)
}

// MeshHandle is an uploaded vertex/index buffer pair.
type MeshHandle interface {
	IndexCount() uint32
	Release()
}

// TextureHandle is an uploaded sampled texture.
type TextureHandle interface {
	Release()
}

// Batch is one indexed draw: a mesh and the texture bound to the diffuse unit.
// A nil Texture samples the white fallback texture.
type Batch struct {
	Mesh    MeshHandle
	Texture TextureHandle
}

// Program is a ShaderHandle that can also issue indexed draws with the object uniforms
// set so far.
type Program interface {
	ShaderHandle

	// DrawIndexed records one draw of the batch.
	//
	// Parameters:
	//   - batch: the mesh and texture to draw
	//
	// Returns:
	//   - error: an error if the draw could not be recorded
	DrawIndexed(batch Batch) error
}

// Drawable is anything the frame renderer can draw. It sets its own object uniforms
// (model matrix, colour) on the program and issues its batches.
type Drawable interface {
	// Draw sets the object uniforms and issues every batch on p.
	//
	// Parameters:
	//   - p: the current program
	//
	// Returns:
	//   - error: an error if a draw could not be recorded
	Draw(p Program) error

	// CastsShadow reports whether the drawable is drawn in the depth pass.
	CastsShadow() bool

	// Shading selects the program used in the lit pass.
	Shading() Shading
}

// ShadowTarget is the off-screen depth-only render target of the depth pass.
type ShadowTarget interface {
	// Resolution returns the depth texture size in texels.
	Resolution() (int, int)

	// Complete reports whether every GPU resource of the target exists.
	Complete() bool

	// Release frees the GPU resources of the target.
	Release()
}

// CameraView is the part of the camera the lit pass reads.
type CameraView interface {
	ViewMatrix() [16]float32
	ProjectionMatrix() [16]float32
	Position() [3]float32
}

// LightParams are the per-frame light uniforms of the lit pass.
type LightParams struct {
	Position [3]float32
	Color    [3]float32
}

type frameRendererImpl struct {
	mu *sync.Mutex

	backend PassBackend
	target  ShadowTarget

	depthProgram Program
	litProgram   Program
	unlitProgram Program

	diffuseUnit TextureUnit
	shadowUnit  TextureUnit

	// reused per frame to split the drawables without allocating
	litDrawables   []Drawable
	unlitDrawables []Drawable
}

// FrameRenderer orchestrates the two passes of a shadowed frame: a depth-only pass from
// the light into the shadow target, then the lit pass on the main target sampling it.
type FrameRenderer interface {
	// RenderShadowedFrame renders and presents one frame.
	//
	// DEPTH: bind the shadow target, set lightSpaceMatrix on the depth program and draw
	// every shadow caster. LIT: bind the main target, set the camera and light uniforms
	// and the same lightSpaceMatrix on the lit program, bind the shadow map to the shadow
	// unit and draw the lit drawables, then draw the unlit drawables with the unlit program.
	//
	// Parameters:
	//   - cam: the camera providing view, projection and eye position
	//   - lightSpace: the light-space matrix, uploaded unchanged to both passes
	//   - light: light position and colour for the lit pass
	//   - drawables: everything to draw this frame
	//
	// Returns:
	//   - error: the first backend or draw error of the frame
	RenderShadowedFrame(cam CameraView, lightSpace [16]float32, light LightParams, drawables []Drawable) error

	// ShadowTarget returns the depth target written by the depth pass.
	ShadowTarget() ShadowTarget

	// TextureUnits returns the diffuse and shadow texture units.
	TextureUnits() (diffuse, shadow TextureUnit)
}

var _ FrameRenderer = &frameRendererImpl{}

// NewFrameRenderer creates a FrameRenderer over a pass backend.
// The depth, lit and unlit programs and a complete shadow target are required;
// a missing one is a startup configuration error.
//
// Parameters:
//   - backend: the GPU pass backend
//   - options: functional options supplying programs, target and texture units
//
// Returns:
//   - FrameRenderer: the configured frame renderer
//   - error: ErrMissingProgram, ErrShadowTarget or ErrTextureUnitClash
func NewFrameRenderer(backend PassBackend, options ...FrameRendererBuilderOption) (FrameRenderer, error) {
	f := &frameRendererImpl{
		mu:          &sync.Mutex{},
		backend:     backend,
		diffuseUnit: DiffuseUnit,
		shadowUnit:  ShadowUnit,
	}
	for _, opt := range options {
		opt(f)
	}

	if f.backend == nil {
		return nil, fmt.Errorf("frame renderer: %w: no pass backend", common.ErrMissingProgram)
	}
	switch {
	case f.depthProgram == nil:
		return nil, fmt.Errorf("frame renderer: %w: depth", common.ErrMissingProgram)
	case f.litProgram == nil:
		return nil, fmt.Errorf("frame renderer: %w: lit", common.ErrMissingProgram)
	case f.unlitProgram == nil:
		return nil, fmt.Errorf("frame renderer: %w: unlit", common.ErrMissingProgram)
	}
	if f.target == nil || !f.target.Complete() {
		return nil, fmt.Errorf("frame renderer: %w", common.ErrShadowTarget)
	}
	if f.diffuseUnit == f.shadowUnit {
		return nil, fmt.Errorf("frame renderer: %w: unit %d", common.ErrTextureUnitClash, f.shadowUnit)
	}
	return f, nil
}

func (f *frameRendererImpl) ShadowTarget() ShadowTarget {
	return f.target
}

func (f *frameRendererImpl) TextureUnits() (TextureUnit, TextureUnit) {
	return f.diffuseUnit, f.shadowUnit
}

func (f *frameRendererImpl) RenderShadowedFrame(cam CameraView, lightSpace [16]float32, light LightParams, drawables []Drawable) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.depthPass(lightSpace, drawables); err != nil {
		return err
	}
	if err := f.litPass(cam, lightSpace, light, drawables); err != nil {
		return err
	}
	f.backend.Present()
	return nil
}

func (f *frameRendererImpl) depthPass(lightSpace [16]float32, drawables []Drawable) error {
	if err := f.backend.BeginDepthPass(f.target); err != nil {
		return fmt.Errorf("depth pass: %w", err)
	}

	f.depthProgram.Use()
	f.depthProgram.SetMat4(UniformLightSpaceMatrix, lightSpace)

	var drawErr error
	for _, d := range drawables {
		if !d.CastsShadow() {
			continue
		}
		if drawErr = d.Draw(f.depthProgram); drawErr != nil {
			break
		}
	}

	// the pass is always closed so the encoder is released even when a draw failed
	endErr := f.backend.EndDepthPass()
	if drawErr != nil {
		return fmt.Errorf("depth pass draw: %w", drawErr)
	}
	if endErr != nil {
		return fmt.Errorf("depth pass: %w", endErr)
	}
	return nil
}

func (f *frameRendererImpl) litPass(cam CameraView, lightSpace [16]float32, light LightParams, drawables []Drawable) error {
	f.litDrawables = f.litDrawables[:0]
	f.unlitDrawables = f.unlitDrawables[:0]
	for _, d := range drawables {
		if d.Shading() == ShadingUnlit {
			f.unlitDrawables = append(f.unlitDrawables, d)
		} else {
			f.litDrawables = append(f.litDrawables, d)
		}
	}

	if err := f.backend.BeginLitPass(); err != nil {
		return fmt.Errorf("lit pass: %w", err)
	}

	projection := cam.ProjectionMatrix()
	view := cam.ViewMatrix()

	f.litProgram.Use()
	f.litProgram.SetMat4(UniformProjection, projection)
	f.litProgram.SetMat4(UniformView, view)
	f.litProgram.SetVec3(UniformViewPos, cam.Position())
	f.litProgram.SetVec3(UniformLightPos, light.Position)
	f.litProgram.SetVec3(UniformLightColor, light.Color)
	f.litProgram.SetMat4(UniformLightSpaceMatrix, lightSpace)
	f.backend.BindShadowMap(f.target, f.shadowUnit)

	drawErr := drawAll(f.litProgram, f.litDrawables)
	if drawErr == nil && len(f.unlitDrawables) > 0 {
		f.unlitProgram.Use()
		f.unlitProgram.SetMat4(UniformProjection, projection)
		f.unlitProgram.SetMat4(UniformView, view)
		drawErr = drawAll(f.unlitProgram, f.unlitDrawables)
	}

	endErr := f.backend.EndLitPass()
	if drawErr != nil {
		return fmt.Errorf("lit pass draw: %w", drawErr)
	}
	if endErr != nil {
		return fmt.Errorf("lit pass: %w", endErr)
	}
	return nil
}

func drawAll(p Program, drawables []Drawable) error {
	for _, d := range drawables {
		if err := d.Draw(p); err != nil {
			return err
		}
	}
	return nil
}
