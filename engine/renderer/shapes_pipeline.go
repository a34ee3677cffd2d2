package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-shapes/engine/camera"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-shapes/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-shapes/engine/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/shape.wgsl
var shapeShaderTemplate string

// ShapeShaderSource is the pre-processed WGSL module drawing instanced, vertex-colored shapes.
// Group 0 binding 0 is the camera uniform; vertex slot 0 is shape.Vertex and slot 1 is
// shape.InstanceRaw.
var ShapeShaderSource = mustProcess(shapeShaderTemplate)

// mustProcess expands an embedded shader template. The templates ship with the binary,
// so a failure is a build defect.
func mustProcess(template string) string {
	source, err := shader.NewPreProcessor().Process(template)
	if err != nil {
		panic(fmt.Sprintf("shader template: %v", err))
	}
	return source
}

// ShapePipelineKey is the cache key of the shape render pipeline.
const ShapePipelineKey = "shapes"

// CameraBindGroupLayout describes the single uniform buffer visible to the vertex stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the camera bind group layout
func CameraBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	u := camera.GPUCameraUniform{}
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(u.Size()),
				},
			},
		},
	}
}

// NewShapePipeline describes the shape render pipeline: triangle list, CCW front faces,
// back-face culling and a "less" depth test against Depth32Float.
//
// Returns:
//   - pipeline.Pipeline: the pipeline description, not yet registered
func NewShapePipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(ShapePipelineKey,
		pipeline.WithSource(ShapeShaderSource),
		pipeline.WithVertexLayouts(shape.VertexLayout(), shape.InstanceLayout()),
		pipeline.WithBindGroupLayouts(CameraBindGroupLayout()),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
		pipeline.WithDepthFormat(DepthFormat),
	)
}
