package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline holds the WGSL module, vertex buffer layouts, bind group layouts and the fixed-function
// state used to build a single render pipeline.
type pipeline struct {
	pipelineKey string

	// source is one WGSL module holding both entry points
	source           string
	vertexEntryPoint string
	fragEntryPoint   string

	vertexLayouts    []wgpu.VertexBufferLayout
	bindGroupLayouts []wgpu.BindGroupLayoutDescriptor

	// renderPipeline is nil until the Renderer registers this pipeline
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthFormat       wgpu.TextureFormat
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline description. It holds all state
// required for pipeline creation including shader source, vertex layouts, bind group layouts,
// depth, blend, cull and topology settings. The Renderer creates the GPU object and stores it
// back through SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the key the renderer caches this pipeline under. Draw calls name it.
	//
	// Returns:
	//   - string: the key
	PipelineKey() string

	// Source returns the WGSL source containing the vertex and fragment entry points.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the vertex stage entry point.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage entry point.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntryPoint() string

	// VertexLayouts returns the vertex buffer layouts, indexed by vertex buffer slot.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayouts returns the bind group layout descriptors, indexed by group.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the descriptors
	BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor

	// RenderPipeline returns the created GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline or nil
	RenderPipeline() *wgpu.RenderPipeline

	// Fixed-function state read by the backend when it builds the GPU pipeline.
	// Blend state only applies when BlendEnabled is true; depth writes only when the
	// depth test is on.
	DepthTestEnabled() bool
	DepthWriteEnabled() bool
	DepthFormat() wgpu.TextureFormat
	BlendEnabled() bool
	BlendState() *wgpu.BlendState
	CullMode() wgpu.CullMode
	FrontFace() wgpu.FrontFace
	Topology() wgpu.PrimitiveTopology
	WriteMask() wgpu.ColorWriteMask

	// SetRenderPipeline stores the GPU pipeline created by Renderer.RegisterPipelines.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline.
// Defaults: triangle list, counter-clockwise front faces, back-face culling, depth test "less"
// with writes against a Depth32Float attachment, blending off, entry points vs_main / fs_main.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		vertexEntryPoint:  "vs_main",
		fragEntryPoint:    "fs_main",
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthFormat:       wgpu.TextureFormatDepth32Float,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragEntryPoint
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return p.bindGroupLayouts
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
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

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
