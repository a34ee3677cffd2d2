package renderer

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// Buffer usages for the instanced draw buffers.
const (
	VertexUsage = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	IndexUsage  = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
)

// DepthFormat is the depth attachment format of the main render pass.
const DepthFormat = wgpu.TextureFormatDepth32Float

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeAutoVSync prefers FifoRelaxed, then Fifo. Never tears at full rate.
	PresentModeAutoVSync PresentMode = iota

	// PresentModeAutoNoVSync prefers Immediate, then Mailbox, then Fifo.
	PresentModeAutoNoVSync

	// PresentModeFifo waits for the vertical blank. Supported everywhere.
	PresentModeFifo

	// PresentModeFifoRelaxed waits for the vertical blank unless the frame is late.
	PresentModeFifoRelaxed

	// PresentModeImmediate presents without waiting. May tear.
	PresentModeImmediate

	// PresentModeMailbox replaces the queued frame without tearing.
	PresentModeMailbox

	// PresentModeDefault leaves the choice to the surface's first supported mode.
	PresentModeDefault
)

var presentModeNames = map[PresentMode]string{
	PresentModeAutoVSync:   "auto_vsync",
	PresentModeAutoNoVSync: "auto_no_vsync",
	PresentModeFifo:        "fifo",
	PresentModeFifoRelaxed: "fifo_relaxed",
	PresentModeImmediate:   "immediate",
	PresentModeMailbox:     "mailbox",
	PresentModeDefault:     "default",
}

func (m PresentMode) String() string {
	if name, ok := presentModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PresentMode(%d)", int(m))
}

// ParsePresentMode converts a config or flag value into a PresentMode.
// Matching ignores case and accepts '-' in place of '_'.
//
// Parameters:
//   - name: the mode name, e.g. "auto_vsync"
//
// Returns:
//   - PresentMode: the parsed mode
//   - error: an error naming the valid modes if name is unknown
func ParsePresentMode(name string) (PresentMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for m, n := range presentModeNames {
		if n == key {
			return m, nil
		}
	}
	return PresentModeAutoVSync, fmt.Errorf("unknown present mode %q (want one of auto_vsync, auto_no_vsync, fifo, fifo_relaxed, immediate, mailbox, default)", name)
}

// preferences lists the wgpu modes to try in order. An empty list means "first supported".
func (m PresentMode) preferences() []wgpu.PresentMode {
	switch m {
	case PresentModeAutoVSync:
		return []wgpu.PresentMode{wgpu.PresentModeFifoRelaxed, wgpu.PresentModeFifo}
	case PresentModeAutoNoVSync:
		return []wgpu.PresentMode{wgpu.PresentModeImmediate, wgpu.PresentModeMailbox, wgpu.PresentModeFifo}
	case PresentModeFifo:
		return []wgpu.PresentMode{wgpu.PresentModeFifo}
	case PresentModeFifoRelaxed:
		return []wgpu.PresentMode{wgpu.PresentModeFifoRelaxed}
	case PresentModeImmediate:
		return []wgpu.PresentMode{wgpu.PresentModeImmediate}
	case PresentModeMailbox:
		return []wgpu.PresentMode{wgpu.PresentModeMailbox}
	default:
		return nil
	}
}

// choosePresentMode picks the first preferred mode the surface supports.
// When none is supported it falls back to supported[0] and reports fellBack, unless the
// mode is PresentModeDefault which asks for supported[0] in the first place.
// An empty supported list yields Fifo, which every WebGPU surface must support.
func choosePresentMode(mode PresentMode, supported []wgpu.PresentMode) (chosen wgpu.PresentMode, fellBack bool) {
	if len(supported) == 0 {
		return wgpu.PresentModeFifo, mode != PresentModeDefault && mode != PresentModeFifo && mode != PresentModeAutoVSync
	}
	prefs := mode.preferences()
	for _, want := range prefs {
		for _, have := range supported {
			if want == have {
				return want, false
			}
		}
	}
	return supported[0], len(prefs) > 0
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
