package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

type bindGroupProvider struct {
	label string

	// Filled in by Renderer.InitBindGroup; nil until then.
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
}

// BindGroupProvider defines the interface for components that own a uniform bind group.
// The camera uniform is the one user: the FramePipeline holds its provider, the Renderer
// initializes the buffer and bind group on it, and each frame the orchestrator binds it once.
//
// Usage pattern:
//  1. Create a provider with NewBindGroupProvider and a debug label
//  2. Renderer.InitBindGroup(provider, descriptor) creates the uniform buffers and bind group
//  3. Renderer.WriteBuffers([]BufferWrite{...}) updates the uniform data
//  4. Renderer.SetBindGroup(group, provider) binds it for draw calls
type BindGroupProvider interface {
	// Release frees the uniform buffers, the bind group and its layout.
	// The provider can be initialized again afterwards.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the bind group handed to SetBindGroup at draw time.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group, nil before InitBindGroup
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout, nil before InitBindGroup
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer backing a binding. BufferWrite targets it.
	//
	// Parameters:
	//   - binding: the @binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, nil if the binding has none
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns every uniform buffer keyed by @binding index.
	//
	// Returns:
	//   - map[int]*wgpu.Buffer: the buffers
	Buffers() map[int]*wgpu.Buffer

	// SetBindGroup stores the bind group built by the renderer.
	//
	// Parameters:
	//   - bg: the bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout built by the renderer.
	//
	// Parameters:
	//   - bgl: the layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the uniform buffer allocated for a binding.
	//
	// Parameters:
	//   - binding: the @binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the given debug label.
//
// Parameters:
//   - label: the debug label used for the GPU objects created on this provider
//   - options: a variadic list of BindGroupProviderOption functions
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) Release() {
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
}
