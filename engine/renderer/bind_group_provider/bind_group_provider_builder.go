package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption configures a provider in NewBindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer pre-assigns the uniform buffer of one binding. The provider takes ownership
// and releases it with the rest of its GPU objects.
//
// Parameters:
//   - binding: the @binding index the buffer backs
//   - buf: the buffer, may be nil to reserve the slot
//
// Returns:
//   - BindGroupProviderOption: the option
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetBuffer(binding, buf)
	}
}
