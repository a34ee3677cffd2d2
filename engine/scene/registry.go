package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
	"github.com/google/uuid"
)

// Handle identifies a primitive inside a Registry. The zero Handle is never issued.
type Handle uint32

// String renders the handle as "#<n>" for logs.
func (h Handle) String() string {
	return fmt.Sprintf("#%d", uint32(h))
}

// slot is one registry entry: the primitive and the draw buffer last built from it.
type slot struct {
	id        uuid.UUID
	primitive shape.GeometryPrimitive
	buffer    *renderer.InstancedDrawBuffer
}

type registry struct {
	mu     *sync.Mutex
	slots  []slot
	logger *slog.Logger
}

// Registry is an arena of GeometryPrimitives addressed by Handle.
// Slots are kept in insertion order and each owns at most one InstancedDrawBuffer,
// which the registry replaces when its primitive is dirty and releases on Release.
type Registry interface {
	// Add appends a primitive and returns its handle.
	//
	// Parameters:
	//   - p: the primitive to register
	//
	// Returns:
	//   - Handle: the handle of the new slot
	Add(p shape.GeometryPrimitive) Handle

	// Get retrieves the primitive of a slot.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - shape.GeometryPrimitive: the primitive, or nil for an unknown handle
	Get(h Handle) shape.GeometryPrimitive

	// ID returns the unique id assigned to a slot when it was added.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - uuid.UUID: the id, or uuid.Nil for an unknown handle
	ID(h Handle) uuid.UUID

	// Buffer returns the draw buffer currently held by a slot.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - *renderer.InstancedDrawBuffer: the buffer, or nil if never synced
	Buffer(h Handle) *renderer.InstancedDrawBuffer

	// Len returns the number of slots.
	//
	// Returns:
	//   - int: the slot count
	Len() int

	// Handles returns every handle in insertion order.
	//
	// Returns:
	//   - []Handle: the handles
	Handles() []Handle

	// Sync rebuilds the draw buffer of every dirty primitive among handles.
	// A failed rebuild is logged and releases the slot's previous buffer, so DrawList never
	// returns a copy older than its primitive; the primitive stays dirty and the next call
	// retries. A successful rebuild releases the previous buffer.
	//
	// Parameters:
	//   - factory: the buffer factory
	//   - handles: the slots to consider; unknown handles are ignored
	//
	// Returns:
	//   - int: the number of slots rebuilt
	//   - error: the joined rebuild errors, or nil
	Sync(factory renderer.BufferFactory, handles []Handle) (int, error)

	// DrawList returns the drawable buffers of the given handles in insertion order.
	// Slots without a buffer, without instances or without indices are left out.
	//
	// Parameters:
	//   - handles: the visible slots
	//
	// Returns:
	//   - []*renderer.InstancedDrawBuffer: the buffers to draw
	DrawList(handles []Handle) []*renderer.InstancedDrawBuffer

	// Release releases every draw buffer. Primitives are kept but not marked dirty,
	// so a released registry draws nothing until its primitives change.
	Release()
}

var _ Registry = &registry{}

// NewRegistry creates an empty Registry.
//
// Parameters:
//   - options: functional options to configure the registry
//
// Returns:
//   - Registry: the registry
func NewRegistry(options ...RegistryBuilderOption) Registry {
	r := &registry{
		mu:     &sync.Mutex{},
		logger: logx.Nop(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *registry) Add(p shape.GeometryPrimitive) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots = append(r.slots, slot{id: uuid.New(), primitive: p})
	h := Handle(len(r.slots))
	r.logger.Debug("shape registered", "handle", h.String(), "label", p.Label())
	return h
}

// lookup returns the slot for h. Caller must hold the mutex.
func (r *registry) lookup(h Handle) *slot {
	if h == 0 || int(h) > len(r.slots) {
		return nil
	}
	return &r.slots[h-1]
}

func (r *registry) Get(h Handle) shape.GeometryPrimitive {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.lookup(h); s != nil {
		return s.primitive
	}
	return nil
}

func (r *registry) ID(h Handle) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.lookup(h); s != nil {
		return s.id
	}
	return uuid.Nil
}

func (r *registry) Buffer(h Handle) *renderer.InstancedDrawBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.lookup(h); s != nil {
		return s.buffer
	}
	return nil
}

func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

func (r *registry) Handles() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Handle, len(r.slots))
	for i := range r.slots {
		out[i] = Handle(i + 1)
	}
	return out
}

func (r *registry) Sync(factory renderer.BufferFactory, handles []Handle) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	rebuilt := 0
	for _, h := range handles {
		s := r.lookup(h)
		if s == nil {
			continue
		}
		buf, err := renderer.SyncDrawBuffer(factory, s.primitive)
		if err != nil {
			r.logger.Error("shape rebuild failed", "handle", h.String(), "id", s.id, "label", s.primitive.Label(), "err", err)
			errs = append(errs, fmt.Errorf("shape %s: %w", h, err))
			s.buffer.Release()
			s.buffer = nil
			continue
		}
		if buf == nil {
			continue
		}
		s.buffer.Release()
		s.buffer = buf
		rebuilt++
	}
	return rebuilt, errors.Join(errs...)
}

func (r *registry) DrawList(handles []Handle) []*renderer.InstancedDrawBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()

	visible := make(map[Handle]struct{}, len(handles))
	for _, h := range handles {
		visible[h] = struct{}{}
	}

	out := make([]*renderer.InstancedDrawBuffer, 0, len(handles))
	for i := range r.slots {
		if _, ok := visible[Handle(i+1)]; !ok {
			continue
		}
		if buf := r.slots[i].buffer; buf.Drawable() {
			out = append(out, buf)
		}
	}
	return out
}

func (r *registry) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slots {
		r.slots[i].buffer.Release()
		r.slots[i].buffer = nil
	}
}
