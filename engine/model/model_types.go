package model

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
)

// ImportedModel represents a 3D model loaded from an external format.
// This is the universal format loader backends produce; UploadModel turns it into GPU batches.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains all mesh data, one entry per material group.
	Meshes []ImportedMesh

	// Materials are referenced by ImportedMesh.MaterialIndex.
	Materials []common.ImportedMaterial
}

// ImportedMesh represents a single mesh within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the de-indexed mesh vertices.
	Vertices []geometry.GPUVertex

	// Indices are the triangle indices, counter-clockwise.
	Indices []uint32

	// MaterialIndex references ImportedModel.Materials, -1 for none.
	MaterialIndex int

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// ComputeBounds sets BoundingMin and BoundingMax from the vertex positions.
func (m *ImportedMesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.BoundingMin, m.BoundingMax = [3]float32{}, [3]float32{}
		return
	}
	m.BoundingMin, m.BoundingMax = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			m.BoundingMin[i] = min(m.BoundingMin[i], v.Position[i])
			m.BoundingMax[i] = max(m.BoundingMax[i], v.Position[i])
		}
	}
}
