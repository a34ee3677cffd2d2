package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct {
	label    string
	size     int
	usage    wgpu.BufferUsage
	released int
}

func (b *fakeBuffer) Release() { b.released++ }

type countingFactory struct {
	created []*fakeBuffer
	failAt  int // 1-based call number that fails; 0 never fails
	calls   int
}

func (f *countingFactory) CreateBuffer(label string, contents []byte, usage wgpu.BufferUsage) (Buffer, error) {
	f.calls++
	if f.failAt == f.calls {
		return nil, errors.New("out of device memory")
	}
	b := &fakeBuffer{label: label, size: len(contents), usage: usage}
	f.created = append(f.created, b)
	return b, nil
}

func testCube(instances ...shape.Instance) shape.GeometryPrimitive {
	return shape.Rect(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, [3]float32{0, 0, 1}, instances)
}

func TestSyncDrawBufferBuildsAllThreeBuffers(t *testing.T) {
	p := testCube(shape.IdentityInstance(), shape.IdentityInstance().WithTranslation(mgl32.Vec3{3, 0, 0}))
	f := &countingFactory{}

	buf, err := SyncDrawBuffer(f, p)
	require.NoError(t, err)
	require.NotNil(t, buf)

	require.Len(t, f.created, 3)
	assert.Equal(t, 8*24, f.created[0].size)
	assert.Equal(t, VertexUsage, f.created[0].usage)
	assert.Equal(t, 36*2, f.created[1].size)
	assert.Equal(t, IndexUsage, f.created[1].usage)
	assert.Equal(t, 2*64, f.created[2].size)
	assert.Equal(t, VertexUsage, f.created[2].usage)
	assert.Contains(t, f.created[0].label, "Vertex Buffer")

	assert.Equal(t, uint32(36), buf.IndexCount)
	assert.Equal(t, uint32(2), buf.InstanceCount)
	assert.True(t, buf.Drawable())
	assert.False(t, p.Dirty())
}

func TestSyncDrawBufferIsIdempotent(t *testing.T) {
	p := testCube(shape.IdentityInstance())
	f := &countingFactory{}

	first, err := SyncDrawBuffer(f, p)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 3, f.calls)

	second, err := SyncDrawBuffer(f, p)
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, 3, f.calls)

	p.SetInstances(nil)
	assert.True(t, p.Dirty())
	third, err := SyncDrawBuffer(f, p)
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.Equal(t, 6, f.calls)
	assert.False(t, p.Dirty())
}

func TestSyncDrawBufferZeroInstances(t *testing.T) {
	p := testCube()
	f := &countingFactory{}

	buf, err := SyncDrawBuffer(f, p)
	require.NoError(t, err)
	require.NotNil(t, buf)
	assert.Equal(t, uint32(0), buf.InstanceCount)
	assert.False(t, buf.Drawable())
	assert.False(t, p.Dirty())
}

func TestSyncDrawBufferZeroVertices(t *testing.T) {
	p := shape.NewGeometryPrimitive(shape.WithInstances([]shape.Instance{shape.IdentityInstance()}))
	f := &countingFactory{}

	var buf *InstancedDrawBuffer
	require.NotPanics(t, func() {
		var err error
		buf, err = SyncDrawBuffer(f, p)
		require.NoError(t, err)
	})
	require.NotNil(t, buf)
	assert.Equal(t, uint32(0), buf.IndexCount)
	assert.Equal(t, uint32(1), buf.InstanceCount)
	assert.False(t, buf.Drawable())
	assert.False(t, p.Dirty())
	require.Len(t, f.created, 3)
	assert.Equal(t, 0, f.created[0].size)
	assert.Equal(t, 0, f.created[1].size)
}

func TestSyncDrawBufferPadsOddIndexCount(t *testing.T) {
	p := shape.NewGeometryPrimitive(
		shape.WithVertices([]shape.Vertex{
			shape.NewVertex([3]float32{0, 0, 0}, [3]float32{1, 1, 1}),
			shape.NewVertex([3]float32{1, 0, 0}, [3]float32{1, 1, 1}),
			shape.NewVertex([3]float32{0, 1, 0}, [3]float32{1, 1, 1}),
		}),
		shape.WithIndices([]uint16{0, 1, 2}),
		shape.WithInstances([]shape.Instance{shape.IdentityInstance()}),
	)
	f := &countingFactory{}

	buf, err := SyncDrawBuffer(f, p)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), buf.IndexCount)
	assert.Equal(t, 8, f.created[1].size)
}

func TestSyncDrawBufferFailureReleasesAndStaysDirty(t *testing.T) {
	tests := []struct {
		name     string
		failAt   int
		wantWrap string
		created  int
	}{
		{name: "vertex", failAt: 1, wantWrap: "create vertex buffer", created: 0},
		{name: "index", failAt: 2, wantWrap: "create index buffer", created: 1},
		{name: "instance", failAt: 3, wantWrap: "create instance buffer", created: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testCube(shape.IdentityInstance())
			f := &countingFactory{failAt: tt.failAt}

			buf, err := SyncDrawBuffer(f, p)
			require.Error(t, err)
			assert.Nil(t, buf)
			assert.Contains(t, err.Error(), tt.wantWrap)
			assert.True(t, p.Dirty())

			require.Len(t, f.created, tt.created)
			for _, b := range f.created {
				assert.Equal(t, 1, b.released, b.label)
			}

			// next frame retries and succeeds
			f.failAt = 0
			buf, err = SyncDrawBuffer(f, p)
			require.NoError(t, err)
			assert.NotNil(t, buf)
			assert.False(t, p.Dirty())
		})
	}
}

func TestInstancedDrawBufferRelease(t *testing.T) {
	var nilBuf *InstancedDrawBuffer
	assert.NotPanics(t, func() { nilBuf.Release() })
	assert.False(t, nilBuf.Drawable())

	v, x := &fakeBuffer{}, &fakeBuffer{}
	buf := &InstancedDrawBuffer{VertexBuffer: v, IndexBuffer: x}
	buf.Release()
	buf.Release()
	assert.Equal(t, 1, v.released)
	assert.Equal(t, 1, x.released)
}
