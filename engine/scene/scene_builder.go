package scene

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/config"
	"github.com/Carmen-Shannon/oxy-shadow/engine/loader"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithConfig sets the configuration the scene is built from. Defaults to config.Default().
//
// Parameters:
//   - cfg: the viewer configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(cfg *config.Config) SceneBuilderOption {
	return func(s *scene) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLoader sets the model loader used for configured OBJ models.
// Defaults to an OBJ loader uploading through the scene's renderer.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLoader(l loader.Loader) SceneBuilderOption {
	return func(s *scene) {
		s.ldr = l
	}
}
