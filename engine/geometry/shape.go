package geometry

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/chewxy/math32"
)

// ShapeKind identifies one of the built-in procedural meshes.
type ShapeKind int

const (
	// ShapeCube is a unit cube centered on the origin (extent -0.5..0.5).
	ShapeCube ShapeKind = iota

	// ShapeQuad is a 2x2 quad in the XY plane facing +Z.
	ShapeQuad

	// ShapeFloor is a unit plane in the XZ plane facing +Y with tiled UVs.
	ShapeFloor

	// ShapeSphere is a UV sphere of radius 1.
	ShapeSphere
)

const (
	sphereStacks  = 32
	sphereSectors = 48

	// floorUVRepeat is how many times a texture tiles across the floor.
	floorUVRepeat = 25
)

var shapeNames = map[ShapeKind]string{
	ShapeCube:   "cube",
	ShapeQuad:   "quad",
	ShapeFloor:  "floor",
	ShapeSphere: "sphere",
}

func (k ShapeKind) String() string {
	if name, ok := shapeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ParseShapeKind resolves a shape name ("cube", "quad", "floor", "sphere").
//
// Parameters:
//   - name: the case-insensitive shape name
//
// Returns:
//   - ShapeKind: the resolved kind
//   - error: ErrUnknownShape if the name is not recognized
func ParseShapeKind(name string) (ShapeKind, error) {
	for kind, n := range shapeNames {
		if strings.EqualFold(n, name) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// MeshData is an immutable indexed triangle mesh with counter-clockwise front faces.
type MeshData struct {
	Kind     ShapeKind
	Vertices []GPUVertex
	Indices  []uint32

	// BoundsMin and BoundsMax are the model-space axis-aligned extents.
	BoundsMin [3]float32
	BoundsMax [3]float32
}

// VertexBytes returns the vertices packed for upload.
func (m *MeshData) VertexBytes() []byte {
	return MarshalVertices(m.Vertices)
}

// IndexCount returns the number of indices.
func (m *MeshData) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

func newMeshData(kind ShapeKind, vertices []GPUVertex, indices []uint32) *MeshData {
	m := &MeshData{Kind: kind, Vertices: vertices, Indices: indices}
	if len(vertices) == 0 {
		return m
	}
	m.BoundsMin, m.BoundsMax = vertices[0].Position, vertices[0].Position
	for _, v := range vertices[1:] {
		for i := range 3 {
			m.BoundsMin[i] = min(m.BoundsMin[i], v.Position[i])
			m.BoundsMax[i] = max(m.BoundsMax[i], v.Position[i])
		}
	}
	return m
}

// face is one side of a box: u x v must equal normal for CCW winding seen from outside.
type face struct {
	normal, u, v [3]float32
}

var cubeFaces = []face{
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// appendFace appends a quad centered at center with half extents hu, hv along the face axes.
func appendFace(vertices []GPUVertex, indices []uint32, f face, center [3]float32, hu, hv, uvRepeat float32) ([]GPUVertex, []uint32) {
	base := uint32(len(vertices))
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, c := range corners {
		p := common.Add3(center, common.Add3(common.Scale3(f.u, c[0]*hu), common.Scale3(f.v, c[1]*hv)))
		vertices = append(vertices, GPUVertex{
			Position: p,
			Normal:   f.normal,
			TexCoord: [2]float32{(c[0] + 1) * 0.5 * uvRepeat, (1 - c[1]) * 0.5 * uvRepeat},
		})
	}
	indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	return vertices, indices
}

func buildCube() *MeshData {
	const h = 0.5
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		vertices, indices = appendFace(vertices, indices, f, common.Scale3(f.normal, h), h, h, 1)
	}
	return newMeshData(ShapeCube, vertices, indices)
}

func buildQuad() *MeshData {
	vertices, indices := appendFace(nil, nil, cubeFaces[4], [3]float32{}, 1, 1, 1)
	return newMeshData(ShapeQuad, vertices, indices)
}

func buildFloor() *MeshData {
	vertices, indices := appendFace(nil, nil, cubeFaces[2], [3]float32{}, 0.5, 0.5, floorUVRepeat)
	return newMeshData(ShapeFloor, vertices, indices)
}

func buildSphere() *MeshData {
	vertices := make([]GPUVertex, 0, (sphereStacks+1)*(sphereSectors+1))
	for i := 0; i <= sphereStacks; i++ {
		phi := math32.Pi/2 - float32(i)*math32.Pi/sphereStacks
		cp, sp := math32.Cos(phi), math32.Sin(phi)
		for j := 0; j <= sphereSectors; j++ {
			theta := float32(j) * 2 * math32.Pi / sphereSectors
			n := [3]float32{cp * math32.Cos(theta), sp, -cp * math32.Sin(theta)}
			vertices = append(vertices, GPUVertex{
				Position: n,
				Normal:   n,
				TexCoord: [2]float32{float32(j) / sphereSectors, float32(i) / sphereStacks},
			})
		}
	}

	indices := make([]uint32, 0, sphereStacks*sphereSectors*6)
	for i := 0; i < sphereStacks; i++ {
		k1 := uint32(i * (sphereSectors + 1))
		k2 := k1 + sphereSectors + 1
		for j := 0; j < sphereSectors; j, k1, k2 = j+1, k1+1, k2+1 {
			if i != 0 {
				indices = append(indices, k1, k2, k1+1)
			}
			if i != sphereStacks-1 {
				indices = append(indices, k1+1, k2, k2+1)
			}
		}
	}
	return newMeshData(ShapeSphere, vertices, indices)
}
