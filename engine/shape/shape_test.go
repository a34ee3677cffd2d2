package shape

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceToRawTranslationAndIdentityRotation(t *testing.T) {
	raw := NewInstance(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent()).ToRaw()

	assert.Equal(t, [4]float32{1, 2, 3, 1}, [4]float32{raw.Model[12], raw.Model[13], raw.Model[14], raw.Model[15]})
	for col := range 3 {
		for row := range 3 {
			want := float32(0)
			if row == col {
				want = 1
			}
			assert.InDelta(t, want, raw.Model[col*4+row], 1e-6, "m[%d][%d]", col, row)
		}
	}
	assert.Equal(t, 64, raw.Size())
}

func TestInstanceZeroQuatIsIdentity(t *testing.T) {
	raw := Instance{Position: mgl32.Vec3{4, 5, 6}}.ToRaw()
	assert.Equal(t, IdentityInstance().WithTranslation(mgl32.Vec3{4, 5, 6}).ToRaw(), raw)
}

func TestInstanceRotationApplied(t *testing.T) {
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	raw := IdentityInstance().WithRotation(rot).ToRaw()
	x := mgl32.Mat4(raw.Model).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, x.X(), 1e-5)
	assert.InDelta(t, 1, x.Y(), 1e-5)
}

func TestVertexMarshal(t *testing.T) {
	v := NewVertex([3]float32{1, 2, 3}, [3]float32{0.5, 0.25, 1})
	assert.Equal(t, 24, v.Size())
	assert.Len(t, v.Marshal(), 24)
	assert.Equal(t, uint64(24), VertexLayout().ArrayStride)
	assert.Equal(t, uint64(64), InstanceLayout().ArrayStride)
	assert.Len(t, InstanceLayout().Attributes, 4)
}

func TestPrimitiveDirtyLifecycle(t *testing.T) {
	p := NewGeometryPrimitive(WithInstances([]Instance{IdentityInstance()}))
	require.True(t, p.Dirty(), "new primitives start dirty")

	snap := p.Snapshot()
	p.MarkSynced(snap.Version)
	assert.False(t, p.Dirty())

	p.SetInstances(nil)
	assert.True(t, p.Dirty())
	assert.Empty(t, p.Instances())

	snap = p.Snapshot()
	p.MarkSynced(snap.Version)
	p.SetColor([3]float32{1, 0, 0})
	assert.True(t, p.Dirty())
}

func TestPrimitiveMutationDuringSyncKeepsDirty(t *testing.T) {
	p := NewGeometryPrimitive()
	snap := p.Snapshot()
	p.SetInstances([]Instance{IdentityInstance()})
	p.MarkSynced(snap.Version)
	assert.True(t, p.Dirty())
}

func TestPrimitiveReturnsCopies(t *testing.T) {
	in := []Instance{IdentityInstance()}
	p := NewGeometryPrimitive(WithInstances(in))
	in[0].Position = mgl32.Vec3{9, 9, 9}
	assert.Equal(t, mgl32.Vec3{}, p.Instances()[0].Position)

	got := p.Instances()
	got[0].Position = mgl32.Vec3{1, 1, 1}
	assert.Equal(t, mgl32.Vec3{}, p.Instances()[0].Position)
}

func TestBuild(t *testing.T) {
	color := [3]float32{0, 0, 1}
	tests := []struct {
		name      string
		points    map[string]mgl32.Vec3
		triangles [][3]string
		wantIdx   []uint16
		wantErr   error
	}{
		{
			name:      "single triangle sorted by name",
			points:    map[string]mgl32.Vec3{"c": {0, 1, 0}, "a": {0, 0, 0}, "b": {1, 0, 0}},
			triangles: [][3]string{{"a", "b", "c"}},
			wantIdx:   []uint16{0, 1, 2},
		},
		{
			name:      "unknown point",
			points:    map[string]mgl32.Vec3{"a": {}},
			triangles: [][3]string{{"a", "a", "z"}},
			wantErr:   ErrUnknownPoint,
		},
		{
			name:   "no triangles",
			points: map[string]mgl32.Vec3{"a": {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vertices, indices, err := Build(color, tt.points, tt.triangles)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, vertices, len(tt.points))
			assert.Equal(t, len(tt.wantIdx), len(indices))
			if tt.wantIdx != nil {
				assert.Equal(t, tt.wantIdx, indices)
			}
			for _, v := range vertices {
				assert.Equal(t, color, v.Color)
			}
		})
	}
}

func TestRect(t *testing.T) {
	p := Rect(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 2, 3}, [3]float32{1, 0, 0}, nil)

	assert.Len(t, p.Vertices(), 8)
	assert.Len(t, p.Indices(), 36)
	assert.Empty(t, p.Instances())
	assert.True(t, p.Dirty())

	var lo, hi mgl32.Vec3
	for i, v := range p.Vertices() {
		pos := mgl32.Vec3(v.Position)
		if i == 0 {
			lo, hi = pos, pos
		}
		for k := range 3 {
			lo[k] = min(lo[k], pos[k])
			hi[k] = max(hi[k], pos[k])
		}
	}
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)
}

func TestRectFacesPointOutward(t *testing.T) {
	p := Rect(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, [3]float32{}, nil)
	vs, idx := p.Vertices(), p.Indices()
	for i := 0; i < len(idx); i += 3 {
		a := mgl32.Vec3(vs[idx[i]].Position)
		b := mgl32.Vec3(vs[idx[i+1]].Position)
		c := mgl32.Vec3(vs[idx[i+2]].Position)
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, normal.Dot(centroid), float32(0), "triangle %d winds inward", i/3)
	}
}
