package renderer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	logger *slog.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	background           wgpu.Color
}

// SurfaceSource is anything that can hand the renderer a presentable surface and its size.
// window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API over a single forward render pass per frame: BeginFrame acquires the
// surface image and clears color and depth, SetBindGroup and DrawInstanced encode draws, EndFrame
// submits and Present shows the image. It also acts as the BufferFactory for instanced draw buffers.
type Renderer interface {
	BufferFactory

	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline for each description and caches it by key.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface and recreates the depth texture.
	// Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the depth texture could not be created
	Resize(width, height int) error

	// InitBindGroup creates uniform buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider. Buffers are sized by each entry's MinBindingSize.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass, clearing color to
	// the background and depth to 1.0. Acquisition failures are classified with ClassifySurfaceError.
	// Must be paired with EndFrame after all draws within a single frame.
	//
	// Returns:
	//   - error: a classified error if the swapchain texture could not be acquired
	BeginFrame() error

	// SetBindGroup binds a provider's bind group at a group index in the current pass.
	//
	// Parameters:
	//   - group: the bind group index
	//   - provider: the provider holding the bind group
	SetBindGroup(group uint32, provider bind_group_provider.BindGroupProvider)

	// DrawInstanced encodes one indexed, instanced draw of an InstancedDrawBuffer.
	// Buffers that are not Drawable are skipped without error.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - buf: the draw buffer
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawInstanced(pipelineKey string, buf *InstancedDrawBuffer) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetBackground sets the clear color of the main render pass.
	//
	// Parameters:
	//   - color: the RGBA clear color
	SetBackground(color wgpu.Color)

	// Release releases every pipeline and GPU object owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and surface source.
// GPU adapter, device, pipeline and surface failures are returned rather than panicking.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		logger:        logx.Nop(),
		presentMode:   PresentModeAutoVSync,
		background:    wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.logger)
	}
	if err != nil {
		return nil, err
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetBackground(r.background)

	if err := r.backend.ConfigureSurface(surface.Width(), surface.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}

	pipelines := make([]pipeline.Pipeline, 0, len(r.pipelineCache))
	for key, p := range r.pipelineCache {
		delete(r.pipelineCache, key)
		pipelines = append(pipelines, p)
	}
	if err := r.RegisterPipelines(pipelines...); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetBackground(color wgpu.Color) {
	r.backend.SetBackground(color)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) CreateBuffer(label string, contents []byte, usage wgpu.BufferUsage) (Buffer, error) {
	return r.backend.CreateBuffer(label, contents, usage)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) SetBindGroup(group uint32, provider bind_group_provider.BindGroupProvider) {
	r.backend.SetBindGroup(group, provider)
}

func (r *renderer) DrawInstanced(pipelineKey string, buf *InstancedDrawBuffer) error {
	if !buf.Drawable() {
		return nil
	}

	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	return r.backend.DrawInstanced(p, buf)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
