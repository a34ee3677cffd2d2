package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("shapes")

	assert.Equal(t, "shapes", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.TextureFormatDepth32Float, p.DepthFormat())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.RenderPipeline())

	// no GPU object yet, must not panic
	p.Release()
}

func TestPipelineOptions(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 24}
	p := NewPipeline("custom",
		WithSource("@vertex fn main() {}"),
		WithEntryPoints("vmain", "fmain"),
		WithVertexLayouts(layout, layout),
		WithBindGroupLayouts(wgpu.BindGroupLayoutDescriptor{Label: "camera"}),
		WithCullMode(wgpu.CullModeNone),
		WithDepthFormat(wgpu.TextureFormatDepth24Plus),
		WithBlend(nil),
		WithDepth(true, false),
	)

	assert.Equal(t, "@vertex fn main() {}", p.Source())
	assert.Equal(t, "vmain", p.VertexEntryPoint())
	assert.Equal(t, "fmain", p.FragmentEntryPoint())
	assert.Len(t, p.VertexLayouts(), 2)
	assert.Equal(t, "camera", p.BindGroupLayouts()[0].Label)
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.TextureFormatDepth24Plus, p.DepthFormat())
	assert.True(t, p.BlendEnabled())
	assert.NotNil(t, p.BlendState())
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
}

func TestWithBlendCustomState(t *testing.T) {
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOne, Operation: wgpu.BlendOperationAdd},
	}
	p := NewPipeline("glow", WithBlend(additive))

	assert.True(t, p.BlendEnabled())
	assert.Same(t, additive, p.BlendState())
}
