package renderer

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuProgram is a Program backed by a registered render pipeline.
//
// Uniforms are split into two blocks: the frame block (group 0) holds everything the
// frame renderer sets once per pass, the object block (group 1) holds what drawables set
// per draw. Set calls stage into whichever block declares the name.
type wgpuProgram struct {
	backend  *wgpuRendererBackendImpl
	pipeline pipeline.Pipeline

	frame          *UniformLayout
	frameBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup

	object *UniformLayout

	// bind group indices the pipeline layout declares but the program does not use
	emptyGroups []uint32
	diffuseUnit TextureUnit
}

var _ Program = &wgpuProgram{}

func (p *wgpuProgram) Use() {
	p.backend.usePipeline(p)
}

func (p *wgpuProgram) SetMat4(name string, value [16]float32) {
	if !p.frame.SetMat4(name, value) && !p.object.SetMat4(name, value) {
		p.frame.WarnUnknown(name)
	}
}

func (p *wgpuProgram) SetVec3(name string, value [3]float32) {
	if !p.frame.SetVec3(name, value) && !p.object.SetVec3(name, value) {
		p.frame.WarnUnknown(name)
	}
}

func (p *wgpuProgram) SetFloat(name string, value float32) {
	if !p.frame.SetFloat(name, value) && !p.object.SetFloat(name, value) {
		p.frame.WarnUnknown(name)
	}
}

func (p *wgpuProgram) SetInt(name string, value int32) {
	if !p.frame.SetInt(name, value) && !p.object.SetInt(name, value) {
		p.frame.WarnUnknown(name)
	}
}

func (p *wgpuProgram) SetBool(name string, value bool) {
	if !p.frame.SetBool(name, value) && !p.object.SetBool(name, value) {
		p.frame.WarnUnknown(name)
	}
}

func (p *wgpuProgram) DrawIndexed(batch Batch) error {
	return p.backend.drawIndexed(p, batch)
}

// samplesDiffuse reports whether draws bind a diffuse texture group.
func (p *wgpuProgram) samplesDiffuse() bool {
	return p.pipeline.Pass() == pipeline.PassLit
}

func (p *wgpuProgram) release() {
	if p.frameBindGroup != nil {
		p.frameBindGroup.Release()
		p.frameBindGroup = nil
	}
	if p.frameBuffer != nil {
		p.frameBuffer.Release()
		p.frameBuffer = nil
	}
	if rp := p.pipeline.RenderPipeline(); rp != nil {
		rp.Release()
		p.pipeline.SetRenderPipeline(nil)
	}
}
