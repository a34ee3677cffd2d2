package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct{ released int }

func (b *fakeBuffer) Release() { b.released++ }

type fakeFactory struct {
	calls int
	fail  bool
	made  []*fakeBuffer
}

func (f *fakeFactory) CreateBuffer(string, []byte, wgpu.BufferUsage) (renderer.Buffer, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("allocation failed")
	}
	b := &fakeBuffer{}
	f.made = append(f.made, b)
	return b, nil
}

func cube(instances ...shape.Instance) shape.GeometryPrimitive {
	return shape.Rect(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, [3]float32{1, 0, 0}, instances)
}

func TestRegistryHandles(t *testing.T) {
	r := NewRegistry()
	a := cube()
	b := cube()

	ha := r.Add(a)
	hb := r.Add(b)

	assert.NotEqual(t, Handle(0), ha)
	assert.NotEqual(t, ha, hb)
	assert.Same(t, a, r.Get(ha))
	assert.Same(t, b, r.Get(hb))
	assert.Equal(t, []Handle{ha, hb}, r.Handles())
	assert.Equal(t, 2, r.Len())

	assert.Nil(t, r.Get(0))
	assert.Nil(t, r.Get(99))
	assert.Nil(t, r.Buffer(99))
	assert.Equal(t, uuid.Nil, r.ID(99))
	assert.NotEqual(t, r.ID(ha), r.ID(hb))
	assert.Equal(t, "#1", ha.String())
}

func TestRegistrySyncOnlyDirtyVisible(t *testing.T) {
	r := NewRegistry()
	f := &fakeFactory{}
	ha := r.Add(cube(shape.IdentityInstance()))
	hb := r.Add(cube(shape.IdentityInstance()))

	n, err := r.Sync(f, []Handle{ha})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, f.calls)
	assert.NotNil(t, r.Buffer(ha))
	assert.Nil(t, r.Buffer(hb))
	assert.True(t, r.Get(hb).Dirty())

	n, err = r.Sync(f, []Handle{ha, hb, 42})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 6, f.calls)

	n, err = r.Sync(f, r.Handles())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 6, f.calls)
}

func TestRegistrySyncReplacesAndReleasesPrevious(t *testing.T) {
	r := NewRegistry()
	f := &fakeFactory{}
	h := r.Add(cube(shape.IdentityInstance()))

	_, err := r.Sync(f, []Handle{h})
	require.NoError(t, err)
	first := r.Buffer(h)
	old := f.made

	r.Get(h).SetInstances([]shape.Instance{shape.IdentityInstance(), shape.IdentityInstance()})
	_, err = r.Sync(f, []Handle{h})
	require.NoError(t, err)

	assert.NotSame(t, first, r.Buffer(h))
	assert.Equal(t, uint32(2), r.Buffer(h).InstanceCount)
	for _, b := range old[:3] {
		assert.Equal(t, 1, b.released)
	}
}

func TestRegistrySyncFailureDropsStaleBuffer(t *testing.T) {
	r := NewRegistry()
	f := &fakeFactory{}
	h := r.Add(cube(shape.IdentityInstance()))
	_, err := r.Sync(f, []Handle{h})
	require.NoError(t, err)
	prev := r.Buffer(h)

	r.Get(h).SetInstances(nil)
	f.fail = true
	n, err := r.Sync(f, []Handle{h})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "shape #1")
	assert.Equal(t, 0, n)
	assert.True(t, r.Get(h).Dirty())
	assert.Nil(t, r.Buffer(h))
	assert.Empty(t, r.DrawList([]Handle{h}))
	assert.Nil(t, prev.VertexBuffer, "previous buffers released")

	f.fail = false
	n, err = r.Sync(f, []Handle{h})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, r.Get(h).Dirty())
	assert.NotNil(t, r.Buffer(h))
}

func TestRegistrySyncEmptyPrimitive(t *testing.T) {
	r := NewRegistry()
	f := &fakeFactory{}
	h := r.Add(shape.NewGeometryPrimitive(shape.WithInstances([]shape.Instance{shape.IdentityInstance()})))

	require.NotPanics(t, func() {
		_, err := r.Sync(f, []Handle{h})
		require.NoError(t, err)
	})

	buf := r.Buffer(h)
	require.NotNil(t, buf)
	assert.Equal(t, uint32(0), buf.IndexCount)
	assert.Equal(t, uint32(1), buf.InstanceCount)
	assert.False(t, buf.Drawable())
	assert.False(t, r.Get(h).Dirty())
	assert.Empty(t, r.DrawList([]Handle{h}))
}

func TestRegistryDrawList(t *testing.T) {
	r := NewRegistry()
	f := &fakeFactory{}
	ha := r.Add(cube(shape.IdentityInstance()))
	hEmpty := r.Add(cube())
	hb := r.Add(cube(shape.IdentityInstance()))
	hNever := r.Add(cube(shape.IdentityInstance()))

	_, err := r.Sync(f, []Handle{ha, hEmpty, hb})
	require.NoError(t, err)

	// visibility order does not change insertion order
	list := r.DrawList([]Handle{hb, hNever, hEmpty, ha})
	require.Len(t, list, 2)
	assert.Same(t, r.Buffer(ha), list[0])
	assert.Same(t, r.Buffer(hb), list[1])

	assert.Empty(t, r.DrawList(nil))
	assert.Len(t, r.DrawList([]Handle{hb}), 1)
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry()
	f := &fakeFactory{}
	h := r.Add(cube(shape.IdentityInstance()))
	_, err := r.Sync(f, []Handle{h})
	require.NoError(t, err)

	r.Release()
	assert.Nil(t, r.Buffer(h))
	for _, b := range f.made {
		assert.Equal(t, 1, b.released)
	}
	assert.NotNil(t, r.Get(h))
}
