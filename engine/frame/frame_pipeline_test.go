package frame

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shapes/common"
	"github.com/Carmen-Shannon/oxy-shapes/engine/camera"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	writes []bind_group_provider.BufferWrite
}

func (w *recordingWriter) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	w.writes = append(w.writes, writes...)
}

func TestFramePipelineStartsDirtyAndPushesOnce(t *testing.T) {
	provider := bind_group_provider.NewBindGroupProvider("test camera")
	fp := NewFramePipeline(800, 600, WithCameraProvider(provider))
	w := &recordingWriter{}

	assert.True(t, fp.Dirty())
	assert.True(t, fp.PushIfDirty(w))
	require.Len(t, w.writes, 1)
	assert.Same(t, provider, w.writes[0].Provider)
	assert.Equal(t, CameraBinding, w.writes[0].Binding)
	assert.Equal(t, uint64(0), w.writes[0].Offset)
	assert.Len(t, w.writes[0].Data, 64)

	assert.False(t, fp.Dirty())
	assert.False(t, fp.PushIfDirty(w))
	assert.Len(t, w.writes, 1)
}

func TestFramePipelineUniformMatchesCamera(t *testing.T) {
	fp := NewFramePipeline(1280, 720)
	proj := fp.Projection()
	cam := fp.Camera()
	want := proj.Matrix().Mul4(cam.ViewMatrix())
	assert.Equal(t, [16]float32(want), fp.Uniform().ViewProj)
}

func TestFramePipelineNoInputTickIsNoOp(t *testing.T) {
	fp := NewFramePipeline(800, 600)
	fp.PushIfDirty(&recordingWriter{})
	before := fp.Camera()
	uniform := fp.Uniform()

	for i := 0; i < 10; i++ {
		assert.False(t, fp.Update(0.016))
	}
	assert.False(t, fp.Dirty())
	assert.Equal(t, before, fp.Camera())
	assert.Equal(t, uniform, fp.Uniform())
}

func TestFramePipelineUpdateMovesAndMarksDirty(t *testing.T) {
	fp := NewFramePipeline(800, 600)
	fp.PushIfDirty(&recordingWriter{})

	fp.Controller().ProcessKey(common.KeyW, true)
	assert.True(t, fp.Update(0.1))
	assert.True(t, fp.Dirty())
	// default yaw looks down -Z
	assert.InDelta(t, 1.0, fp.Camera().Position.Z(), 1e-4)

	// intents persist across ticks until released
	assert.True(t, fp.Update(0.1))
	assert.InDelta(t, 0.0, fp.Camera().Position.Z(), 1e-4)
}

func TestFramePipelinePitchClamp(t *testing.T) {
	limit := mgl32.DegToRad(90) - camera.PitchEpsilon

	fp := NewFramePipeline(800, 600)
	fp.Controller().ProcessMouseDelta(0, -10000)
	require.True(t, fp.Update(1))
	assert.Equal(t, limit, fp.Camera().Pitch)

	fp.Controller().ProcessMouseDelta(0, 10000)
	require.True(t, fp.Update(1))
	assert.Equal(t, -limit, fp.Camera().Pitch)
}

func TestFramePipelineResetCamera(t *testing.T) {
	fp := NewFramePipeline(800, 600)
	w := &recordingWriter{}

	fp.Controller().ProcessKey(common.KeyD, true)
	fp.Controller().ProcessMouseDelta(15, 4)
	fp.Update(0.5)
	fp.Controller().ProcessKey(common.KeyD, false)
	fp.PushIfDirty(w)
	require.NotEqual(t, camera.DefaultCameraState(), fp.Camera())
	projection := fp.Projection()

	fp.ResetCamera()
	assert.Equal(t, camera.DefaultCameraState(), fp.Camera())
	assert.Equal(t, projection, fp.Projection())
	assert.True(t, fp.Dirty())

	// resetting an already reset camera still marks dirty
	fp.PushIfDirty(w)
	fp.ResetCamera()
	assert.True(t, fp.Dirty())
}

func TestFramePipelineResize(t *testing.T) {
	fp := NewFramePipeline(800, 600)
	fp.PushIfDirty(&recordingWriter{})

	fp.Resize(0, 0)
	assert.False(t, fp.Dirty())
	proj := fp.Projection()
	assert.InDelta(t, 800.0/600.0, proj.Aspect(), 1e-6)

	fp.Resize(1600, 900)
	assert.True(t, fp.Dirty())
	proj = fp.Projection()
	assert.InDelta(t, 16.0/9.0, proj.Aspect(), 1e-6)
}

func TestFramePipelineSetCameraClampsPitch(t *testing.T) {
	fp := NewFramePipeline(800, 600)
	fp.SetCamera(camera.CameraState{Pitch: 3})
	assert.Equal(t, mgl32.DegToRad(90)-camera.PitchEpsilon, fp.Camera().Pitch)
}

func TestFramePipelineCameraInfo(t *testing.T) {
	fp := NewFramePipeline(800, 600)
	info := fp.CameraInfo()
	assert.InDelta(t, 0, info.X, 1e-6)
	assert.InDelta(t, 1, info.Y, 1e-6)
	assert.InDelta(t, 2, info.Z, 1e-6)
	assert.InDelta(t, -90, info.YawDeg, 1e-3)
	assert.InDelta(t, -20, info.PitchDeg, 1e-3)
	assert.Len(t, info.LogValue().Group(), 5)
}

func TestFramePipelineControllerOptions(t *testing.T) {
	fp := NewFramePipeline(800, 600,
		WithControllerOptions(camera.WithSpeed(3)),
		WithProjectionOptions(camera.WithFovy(mgl32.DegToRad(60))),
		WithInitialCamera(camera.CameraState{Position: mgl32.Vec3{5, 5, 5}}),
	)
	assert.Equal(t, float32(3), fp.Controller().Speed())
	assert.Equal(t, mgl32.DegToRad(60), fp.Projection().Fovy)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, fp.Camera().Position)

	c := camera.NewCameraController()
	assert.Same(t, c, NewFramePipeline(1, 1, WithController(c)).Controller())
}
