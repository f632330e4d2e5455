package geometry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownShape is returned for a ShapeKind or name with no builder.
var ErrUnknownShape = errors.New("unknown shape kind")

var builders = map[ShapeKind]func() *MeshData{
	ShapeCube:   buildCube,
	ShapeQuad:   buildQuad,
	ShapeFloor:  buildFloor,
	ShapeSphere: buildSphere,
}

// Cache builds each procedural mesh the first time it is requested and hands out the
// same immutable MeshData afterwards. The depth and lit passes share these meshes.
type Cache struct {
	mu     sync.Mutex
	meshes map[ShapeKind]*MeshData
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{meshes: make(map[ShapeKind]*MeshData)}
}

// Get returns the mesh for kind, building it on first use.
// The returned MeshData must not be modified.
//
// Parameters:
//   - kind: the shape to fetch
//
// Returns:
//   - *MeshData: the shared mesh
//   - error: ErrUnknownShape if kind has no builder
func (c *Cache) Get(kind ShapeKind) (*MeshData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.meshes[kind]; ok {
		return m, nil
	}
	build, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, kind)
	}
	m := build()
	c.meshes[kind] = m
	return m, nil
}

// Len returns how many meshes have been built so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}
