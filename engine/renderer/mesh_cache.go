package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	lru "github.com/hashicorp/golang-lru/v2"
)

// meshCacheSize is larger than the number of built-in shapes, so handles are only
// released by Purge.
const meshCacheSize = 16

// MeshCache uploads each built-in shape once and hands out the shared handle.
// Callers must not Release the handles; Purge releases all of them.
type MeshCache struct {
	mu       *sync.Mutex
	shapes   *geometry.Cache
	uploader MeshUploader
	meshes   *lru.Cache[geometry.ShapeKind, MeshHandle]
}

func releaseMeshOnEviction(_ geometry.ShapeKind, mesh MeshHandle) {
	mesh.Release()
}

// NewMeshCache creates a MeshCache that builds shapes with the given geometry cache and
// uploads them with the uploader.
//
// Parameters:
//   - shapes: the CPU-side shape cache
//   - uploader: the GPU uploader
//
// Returns:
//   - *MeshCache: the cache
func NewMeshCache(shapes *geometry.Cache, uploader MeshUploader) *MeshCache {
	meshes, _ := lru.NewWithEvict[geometry.ShapeKind, MeshHandle](meshCacheSize, releaseMeshOnEviction)
	return &MeshCache{
		mu:       &sync.Mutex{},
		shapes:   shapes,
		uploader: uploader,
		meshes:   meshes,
	}
}

// Get returns the uploaded mesh of a shape, building and uploading it on first use.
//
// Parameters:
//   - kind: the shape
//
// Returns:
//   - MeshHandle: the shared handle
//   - error: geometry.ErrUnknownShape or an upload error
func (c *MeshCache) Get(kind geometry.ShapeKind) (MeshHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mesh, ok := c.meshes.Get(kind); ok {
		return mesh, nil
	}

	data, err := c.shapes.Get(kind)
	if err != nil {
		return nil, err
	}
	mesh, err := c.uploader.UploadMesh(kind.String(), data.VertexBytes(), data.Indices)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", kind, err)
	}
	c.meshes.Add(kind, mesh)
	return mesh, nil
}

// Len returns the number of uploaded shapes.
func (c *MeshCache) Len() int {
	return c.meshes.Len()
}

// Purge releases every uploaded mesh.
func (c *MeshCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes.Purge()
}
