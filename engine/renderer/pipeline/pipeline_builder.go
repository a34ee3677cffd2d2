package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption adjusts a pipeline description in NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithSource sets the WGSL module. It must already be pre-processed.
//
// Parameters:
//   - source: WGSL holding both entry points
//
// Returns:
//   - PipelineBuilderOption: the option
func WithSource(source string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.source = source
	}
}

// WithEntryPoints renames the vertex and fragment entry points.
func WithEntryPoints(vertex, fragment string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexEntryPoint = vertex
		p.fragEntryPoint = fragment
	}
}

// WithVertexLayouts sets the vertex buffer layouts. Slot 0 is the mesh vertex buffer and
// slot 1 the per-instance model matrices for the shape pipeline.
//
// Parameters:
//   - layouts: one layout per vertex buffer slot
//
// Returns:
//   - PipelineBuilderOption: the option
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexLayouts = layouts
	}
}

// WithBindGroupLayouts sets the layout descriptor of each @group, indexed by group number.
//
// Parameters:
//   - layouts: one descriptor per group
//
// Returns:
//   - PipelineBuilderOption: the option
func WithBindGroupLayouts(layouts ...wgpu.BindGroupLayoutDescriptor) PipelineBuilderOption {
	return func(p *pipeline) {
		p.bindGroupLayouts = layouts
	}
}

// WithDepth turns the depth test and depth writes on or off independently.
//
// Parameters:
//   - test: compare fragments against the depth attachment
//   - write: store fragment depth
//
// Returns:
//   - PipelineBuilderOption: the option
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = write
	}
}

// WithDepthFormat sets the format of the depth attachment the pass renders into.
// It must match the renderer's depth texture.
func WithDepthFormat(format wgpu.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthFormat = format
	}
}

// WithBlend enables alpha blending with the given state. A nil state keeps the default
// source-over blend.
//
// Parameters:
//   - state: the blend state, or nil
//
// Returns:
//   - PipelineBuilderOption: the option
func WithBlend(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = true
		if state != nil {
			p.blendState = state
		}
	}
}

// WithCullMode sets which faces are discarded.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithFrontFace sets the winding order of front faces. Shape meshes wind counter-clockwise.
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}
