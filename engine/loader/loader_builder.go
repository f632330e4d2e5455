package loader

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithUploader is an option builder that sets the GPU uploader used by Load.
//
// Parameters:
//   - u: the mesh and texture uploader, usually the Renderer
//
// Returns:
//   - LoaderBuilderOption: a function that applies the uploader option to a loader
func WithUploader(u renderer.MeshUploader) LoaderBuilderOption {
	return func(l *loader) {
		l.uploader = u
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithDecodeWorkers sets the maximum number of goroutines decoding textures in parallel.
//
// Parameters:
//   - n: the worker count, values below 1 are treated as 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithDecodeWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.decodeWorkers = max(n, 1)
	}
}
