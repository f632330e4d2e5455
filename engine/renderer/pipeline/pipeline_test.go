package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestDepthPipelineDefaults(t *testing.T) {
	p := NewPipeline("shadow", PassDepth, WithSource("// wgsl"))

	assert.True(t, p.DepthOnly())
	assert.Empty(t, p.FragmentEntry())
	assert.Equal(t, "vs_main", p.VertexEntry())
	assert.Equal(t, wgpu.CullModeFront, p.CullMode())
	assert.Equal(t, "// wgsl", p.Source())
	assert.Nil(t, p.RenderPipeline())
}

func TestLitPipelineDefaults(t *testing.T) {
	p := NewPipeline("lit", PassLit)

	assert.False(t, p.DepthOnly())
	assert.Equal(t, "fs_main", p.FragmentEntry())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, "lit", p.Pass().String())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("custom", PassUnlit,
		WithEntryPoints("vert", "frag"),
		WithDepthBias(2, 2.5),
		WithCullMode(wgpu.CullModeNone),
		WithDepthWriteEnabled(false),
		WithFrontFace(wgpu.FrontFaceCW),
		WithTopology(wgpu.PrimitiveTopologyLineList),
	)

	assert.Equal(t, "vert", p.VertexEntry())
	assert.Equal(t, "frag", p.FragmentEntry())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(2.5), p.DepthBiasSlopeScale())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
}
