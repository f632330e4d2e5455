package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuShadowTarget is the Depth32Float render target of the depth pass together with the
// comparison sampler and the bind group the lit pass samples it through.
type wgpuShadowTarget struct {
	width, height int

	texture    *wgpu.Texture
	view       *wgpu.TextureView
	sampler    *wgpu.Sampler
	dataBuffer *wgpu.Buffer
	bindGroup  *wgpu.BindGroup
}

var _ ShadowTarget = &wgpuShadowTarget{}

func (s *wgpuShadowTarget) Resolution() (int, int) {
	return s.width, s.height
}

func (s *wgpuShadowTarget) Complete() bool {
	return s.texture != nil && s.view != nil && s.sampler != nil && s.dataBuffer != nil && s.bindGroup != nil
}

func (s *wgpuShadowTarget) Release() {
	if s.bindGroup != nil {
		s.bindGroup.Release()
		s.bindGroup = nil
	}
	if s.dataBuffer != nil {
		s.dataBuffer.Release()
		s.dataBuffer = nil
	}
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
	if s.view != nil {
		s.view.Release()
		s.view = nil
	}
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
}
