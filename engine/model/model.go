package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/google/uuid"
)

// DefaultColor is the diffuse colour of parts without a material.
var DefaultColor = [3]float32{0.8, 0.8, 0.8}

// Part is one indexed draw of a model together with its material colour.
type Part struct {
	Name  string
	Batch renderer.Batch

	// Color multiplies the owning object's colour. Unused when Batch.Texture is set.
	Color [3]float32
}

// model is the implementation of the Model interface.
type model struct {
	name              string
	label             string
	parts             []Part
	importedMaterials []common.ImportedMaterial
	boundsMin         [3]float32
	boundsMax         [3]float32

	// GPU handles uploaded for this model and released with it
	owned []interface{ Release() }
}

// Model defines the interface for a GPU-ready mesh container.
// A Model is either built around shared handles (the built-in shapes) or produced by
// UploadModel from an imported file, in which case it owns its buffers and textures.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Label returns the unique debug label of the model's GPU resources.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Parts retrieves the draw batches of the model.
	//
	// Returns:
	//   - []Part: the parts in draw order
	Parts() []Part

	// ImportedMaterials retrieves the raw material properties imported from the model file.
	//
	// Returns:
	//   - []common.ImportedMaterial: the imported materials
	ImportedMaterials() []common.ImportedMaterial

	// Bounds returns the model-space axis-aligned extents.
	//
	// Returns:
	//   - [3]float32: minimum corner
	//   - [3]float32: maximum corner
	Bounds() (min, max [3]float32)

	// Release frees the GPU resources the model owns. Shared handles are left alone.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// Handles passed through WithParts are not owned by the model.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.label == "" {
		m.label = newLabel(m.name)
	}
	return m
}

func newLabel(name string) string {
	return fmt.Sprintf("%s-%s", name, uuid.NewString())
}

// UploadModel uploads every mesh and diffuse texture of an imported model.
// Textures must already be decoded (ImportedTexture.Staging set); undecoded ones are skipped
// and the part falls back to its material colour. On error everything uploaded so far is released.
//
// Parameters:
//   - imported: the imported model
//   - uploader: the GPU uploader
//
// Returns:
//   - Model: the model owning the uploaded handles
//   - error: an error if the model is empty or an upload fails
func UploadModel(imported *ImportedModel, uploader renderer.MeshUploader) (Model, error) {
	if imported == nil || len(imported.Meshes) == 0 {
		return nil, fmt.Errorf("model has no meshes")
	}

	m := &model{
		name:              imported.Name,
		label:             newLabel(imported.Name),
		importedMaterials: imported.Materials,
	}

	textures := make(map[int]renderer.TextureHandle)
	for i, mat := range imported.Materials {
		if mat.DiffuseTexture == nil || mat.DiffuseTexture.Staging == nil {
			continue
		}
		tex, err := uploader.UploadTexture(m.label+"/"+mat.Name, *mat.DiffuseTexture.Staging)
		if err != nil {
			m.Release()
			return nil, fmt.Errorf("model %s material %s: %w", imported.Name, mat.Name, err)
		}
		textures[i] = tex
		m.owned = append(m.owned, tex)
	}

	for _, mesh := range imported.Meshes {
		if len(mesh.Indices) == 0 || len(mesh.Vertices) == 0 {
			continue
		}
		handle, err := uploader.UploadMesh(m.label+"/"+mesh.Name, geometry.MarshalVertices(mesh.Vertices), mesh.Indices)
		if err != nil {
			m.Release()
			return nil, fmt.Errorf("model %s mesh %s: %w", imported.Name, mesh.Name, err)
		}
		m.owned = append(m.owned, handle)

		part := Part{
			Name:  mesh.Name,
			Batch: renderer.Batch{Mesh: handle},
			Color: DefaultColor,
		}
		if mesh.MaterialIndex >= 0 && mesh.MaterialIndex < len(imported.Materials) {
			part.Color = imported.Materials[mesh.MaterialIndex].DiffuseColor
			part.Batch.Texture = textures[mesh.MaterialIndex]
		}
		m.expandBounds(len(m.parts) == 0, mesh.BoundingMin, mesh.BoundingMax)
		m.parts = append(m.parts, part)
	}

	if len(m.parts) == 0 {
		m.Release()
		return nil, fmt.Errorf("model %s has no non-empty meshes", imported.Name)
	}
	common.LogDebug("model uploaded", "label", m.label, "parts", len(m.parts), "textures", len(textures))
	return m, nil
}

func (m *model) expandBounds(first bool, lo, hi [3]float32) {
	if first {
		m.boundsMin, m.boundsMax = lo, hi
		return
	}
	for i := range 3 {
		m.boundsMin[i] = min(m.boundsMin[i], lo[i])
		m.boundsMax[i] = max(m.boundsMax[i], hi[i])
	}
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Label() string {
	return m.label
}

func (m *model) Parts() []Part {
	return m.parts
}

func (m *model) ImportedMaterials() []common.ImportedMaterial {
	return m.importedMaterials
}

func (m *model) Bounds() ([3]float32, [3]float32) {
	return m.boundsMin, m.boundsMax
}

func (m *model) Release() {
	for _, h := range m.owned {
		h.Release()
	}
	m.owned = nil
}
