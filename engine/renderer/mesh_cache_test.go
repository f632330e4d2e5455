package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct {
	label    string
	count    uint32
	released int
}

func (m *fakeMesh) IndexCount() uint32 { return m.count }
func (m *fakeMesh) Release()           { m.released++ }

type fakeUploader struct {
	uploads []*fakeMesh
	err     error
}

func (u *fakeUploader) UploadMesh(label string, vertices []byte, indices []uint32) (MeshHandle, error) {
	if u.err != nil {
		return nil, u.err
	}
	m := &fakeMesh{label: label, count: uint32(len(indices))}
	u.uploads = append(u.uploads, m)
	return m, nil
}

func (u *fakeUploader) UploadTexture(string, common.TextureStagingData) (TextureHandle, error) {
	return nil, errors.New("not supported")
}

func TestMeshCacheUploadsOnce(t *testing.T) {
	up := &fakeUploader{}
	c := NewMeshCache(geometry.NewCache(), up)

	first, err := c.Get(geometry.ShapeSphere)
	require.NoError(t, err)
	second, err := c.Get(geometry.ShapeSphere)
	require.NoError(t, err)

	assert.Same(t, first, second)
	require.Len(t, up.uploads, 1)
	assert.Equal(t, "sphere", up.uploads[0].label)
	assert.Equal(t, uint32(36), mustMesh(t, c, geometry.ShapeCube).IndexCount())
	assert.Equal(t, 2, c.Len())
}

func TestMeshCachePurgeReleases(t *testing.T) {
	up := &fakeUploader{}
	c := NewMeshCache(geometry.NewCache(), up)
	mustMesh(t, c, geometry.ShapeFloor)
	mustMesh(t, c, geometry.ShapeQuad)

	c.Purge()

	assert.Equal(t, 0, c.Len())
	for _, m := range up.uploads {
		assert.Equal(t, 1, m.released, m.label)
	}
}

func TestMeshCacheErrors(t *testing.T) {
	c := NewMeshCache(geometry.NewCache(), &fakeUploader{})
	_, err := c.Get(geometry.ShapeKind(99))
	assert.ErrorIs(t, err, geometry.ErrUnknownShape)

	failing := NewMeshCache(geometry.NewCache(), &fakeUploader{err: errors.New("device lost")})
	_, err = failing.Get(geometry.ShapeCube)
	assert.ErrorContains(t, err, "device lost")
	assert.Equal(t, 0, failing.Len())
}

func mustMesh(t *testing.T, c *MeshCache, kind geometry.ShapeKind) MeshHandle {
	t.Helper()
	m, err := c.Get(kind)
	require.NoError(t, err)
	return m
}
