package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count of the main target.
// When not specified, the default is MSAA4x. The shadow map is never multisampled.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.sampleCount = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithShadowMapResolution sets the width and height in texels of the shadow map.
//
// Parameters:
//   - resolution: the shadow map size
//
// Returns:
//   - RendererBuilderOption: a function that applies the resolution option to a renderer
func WithShadowMapResolution(resolution int) RendererBuilderOption {
	return func(r *renderer) {
		r.shadowResolution = resolution
	}
}

// WithClearColor sets the RGB colour the main target is cleared to.
//
// Parameters:
//   - color: clear colour components in 0..1
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear colour option to a renderer
func WithClearColor(color [3]float32) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithRendererTextureUnits sets the texture units of the diffuse texture and the shadow map.
// They must differ.
//
// Parameters:
//   - diffuse: the diffuse texture unit
//   - shadow: the shadow map texture unit
//
// Returns:
//   - RendererBuilderOption: a function that applies the texture units to a renderer
func WithRendererTextureUnits(diffuse, shadow TextureUnit) RendererBuilderOption {
	return func(r *renderer) {
		r.diffuseUnit = diffuse
		r.shadowUnit = shadow
	}
}
