package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PassKind identifies which pass of the shadowed frame a pipeline draws in.
type PassKind int

const (
	// PassDepth is the depth-only pass from the light into the shadow target.
	// Depth pipelines have no fragment stage and no colour target.
	PassDepth PassKind = iota

	// PassLit is the main-target pass that samples the shadow map.
	PassLit

	// PassUnlit draws flat-coloured geometry on the main target during the lit pass.
	PassUnlit
)

func (k PassKind) String() string {
	switch k {
	case PassDepth:
		return "depth"
	case PassLit:
		return "lit"
	case PassUnlit:
		return "unlit"
	default:
		return "unknown"
	}
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	pass        PassKind

	// single WGSL module holding both stages
	source        string
	vertexEntry   string
	fragmentEntry string

	renderPipeline *wgpu.RenderPipeline

	// Pipeline configuration
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
}

// Pipeline describes the fixed-function state and shader source of one render program.
// The GPU object is created by the renderer backend and stored back via SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the unique identifier of this pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Pass returns which pass this pipeline draws in.
	//
	// Returns:
	//   - PassKind: the pass
	Pass() PassKind

	// Source returns the WGSL source of the shader module.
	//
	// Returns:
	//   - string: the WGSL code
	Source() string

	// VertexEntry returns the vertex stage entry point.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntry() string

	// FragmentEntry returns the fragment stage entry point, empty for depth-only pipelines.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntry() string

	// DepthOnly reports whether the pipeline has no fragment stage.
	//
	// Returns:
	//   - bool: true for depth-only pipelines
	DepthOnly() bool

	// RenderPipeline returns the GPU pipeline, nil until the backend registers it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// DepthWriteEnabled returns whether depth writing is enabled.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// DepthBias returns the constant depth bias.
	//
	// Returns:
	//   - int32: the depth bias
	DepthBias() int32

	// DepthBiasSlopeScale returns the slope-scaled depth bias.
	//
	// Returns:
	//   - float32: the slope scale
	DepthBiasSlopeScale() float32

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order of front faces.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding
	FrontFace() wgpu.FrontFace

	// SetRenderPipeline stores the GPU pipeline created by the backend.
	//
	// Parameters:
	//   - rp: the created render pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a Pipeline for the given pass.
// Defaults: entry points "vs_main" and "fs_main" (none for PassDepth), depth writes on,
// triangle lists with CCW front faces, back-face culling for lit/unlit and front-face
// culling for depth.
//
// Parameters:
//   - pipelineKey: the unique identifier of the pipeline
//   - pass: the pass the pipeline draws in
//   - opts: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(pipelineKey string, pass PassKind, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		pass:              pass,
		vertexEntry:       "vs_main",
		fragmentEntry:     "fs_main",
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
	}
	if pass == PassDepth {
		p.fragmentEntry = ""
		p.cullMode = wgpu.CullModeFront
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Pass() PassKind {
	return p.pass
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntry() string {
	return p.vertexEntry
}

func (p *pipeline) FragmentEntry() string {
	return p.fragmentEntry
}

func (p *pipeline) DepthOnly() bool {
	return p.fragmentEntry == ""
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
