package model

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithParts is an option builder that appends draw parts built from shared handles.
//
// Parameters:
//   - parts: the parts to append
//
// Returns:
//   - ModelBuilderOption: a function that applies the parts option to a model
func WithParts(parts ...Part) ModelBuilderOption {
	return func(m *model) {
		m.parts = append(m.parts, parts...)
	}
}

// WithBounds is an option builder that sets the model-space extents of the Model.
//
// Parameters:
//   - lo: minimum corner
//   - hi: maximum corner
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounds option to a model
func WithBounds(lo, hi [3]float32) ModelBuilderOption {
	return func(m *model) {
		m.boundsMin = lo
		m.boundsMax = hi
	}
}

// WithImportedMaterials is an option builder that sets the raw imported materials of the Model.
//
// Parameters:
//   - materials: the imported materials to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the imported materials option to a model
func WithImportedMaterials(materials []common.ImportedMaterial) ModelBuilderOption {
	return func(m *model) {
		m.importedMaterials = materials
	}
}
