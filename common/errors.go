package common

import "errors"

// Startup configuration errors. These are fatal: they are reported once and the
// process terminates, nothing in the frame loop retries them.
var (
	ErrWindowCreate      = errors.New("window or surface creation failed")
	ErrShaderCompile     = errors.New("shader module or pipeline creation failed")
	ErrShadowTarget      = errors.New("shadow map target is incomplete")
	ErrMissingProgram    = errors.New("shader program is not bound")
	ErrTextureUnitClash  = errors.New("shadow map and diffuse texture share a texture unit")
	ErrFrameInProgress   = errors.New("previous frame surface not yet presented")
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)
