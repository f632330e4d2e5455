package renderer

// FrameRendererBuilderOption is a functional option applied to a frame renderer during
// construction via NewFrameRenderer.
type FrameRendererBuilderOption func(*frameRendererImpl)

// WithDepthProgram sets the depth-only program of the DEPTH pass.
//
// Parameters:
//   - p: the depth program
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the program to a frame renderer
func WithDepthProgram(p Program) FrameRendererBuilderOption {
	return func(f *frameRendererImpl) {
		f.depthProgram = p
	}
}

// WithLitProgram sets the shadow-sampling program of the LIT pass.
//
// Parameters:
//   - p: the lit program
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the program to a frame renderer
func WithLitProgram(p Program) FrameRendererBuilderOption {
	return func(f *frameRendererImpl) {
		f.litProgram = p
	}
}

// WithUnlitProgram sets the flat-colour program used for unlit drawables in the LIT pass.
//
// Parameters:
//   - p: the unlit program
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the program to a frame renderer
func WithUnlitProgram(p Program) FrameRendererBuilderOption {
	return func(f *frameRendererImpl) {
		f.unlitProgram = p
	}
}

// WithShadowTarget sets the off-screen depth target.
//
// Parameters:
//   - target: a complete shadow target
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the target to a frame renderer
func WithShadowTarget(target ShadowTarget) FrameRendererBuilderOption {
	return func(f *frameRendererImpl) {
		f.target = target
	}
}

// WithTextureUnits overrides the diffuse and shadow texture units. They must differ.
//
// Parameters:
//   - diffuse: the unit diffuse textures are bound to
//   - shadow: the unit the shadow map is bound to
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the units to a frame renderer
func WithTextureUnits(diffuse, shadow TextureUnit) FrameRendererBuilderOption {
	return func(f *frameRendererImpl) {
		f.diffuseUnit = diffuse
		f.shadowUnit = shadow
	}
}
