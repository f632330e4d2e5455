package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuMesh is a MeshHandle backed by a vertex and an index buffer.
type wgpuMesh struct {
	label        string
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

var _ MeshHandle = &wgpuMesh{}

func (m *wgpuMesh) IndexCount() uint32 {
	return m.indexCount
}

func (m *wgpuMesh) Release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
	m.indexCount = 0
}

// wgpuTexture is a TextureHandle: an RGBA texture, its sampler and the bind group that
// exposes both on a diffuse texture unit.
type wgpuTexture struct {
	label     string
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
}

var _ TextureHandle = &wgpuTexture{}

func (t *wgpuTexture) Release() {
	if t.bindGroup != nil {
		t.bindGroup.Release()
		t.bindGroup = nil
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
