package shape

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnknownPoint is returned by Build when a triangle names a point that was not declared.
	ErrUnknownPoint = errors.New("shape: triangle references unknown point")

	// ErrTooManyVertices is returned by Build when the mesh cannot be addressed with 16-bit indices.
	ErrTooManyVertices = errors.New("shape: vertex count exceeds uint16 index range")
)

// rectTriangles is the winding of an axis-aligned box built from points A through H,
// counter-clockwise when viewed from outside.
var rectTriangles = [][3]string{
	{"A", "D", "C"}, {"A", "C", "B"}, // front
	{"E", "F", "G"}, {"G", "H", "E"}, // back
	{"E", "A", "B"}, {"B", "F", "E"}, // top
	{"H", "G", "C"}, {"C", "D", "H"}, // bottom
	{"A", "E", "H"}, {"H", "D", "A"}, // left
	{"F", "B", "C"}, {"C", "G", "F"}, // right
}

// Build turns a set of named points and a list of named triangles into a single-colored mesh.
// Vertices are emitted in sorted point-name order so the result is deterministic.
//
// Parameters:
//   - color: the RGB color applied to every vertex
//   - points: the named model-space positions
//   - triangles: triangles as triples of point names
//
// Returns:
//   - []Vertex: the vertices, one per point
//   - []uint16: the indices, three per triangle
//   - error: ErrUnknownPoint or ErrTooManyVertices
func Build(color [3]float32, points map[string]mgl32.Vec3, triangles [][3]string) ([]Vertex, []uint16, error) {
	if len(points) > math.MaxUint16+1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrTooManyVertices, len(points))
	}

	names := make([]string, 0, len(points))
	for name := range points {
		names = append(names, name)
	}
	sort.Strings(names)

	lookup := make(map[string]uint16, len(names))
	vertices := make([]Vertex, 0, len(names))
	for i, name := range names {
		lookup[name] = uint16(i)
		vertices = append(vertices, NewVertex(points[name], color))
	}

	indices := make([]uint16, 0, len(triangles)*3)
	for _, tri := range triangles {
		for _, name := range tri {
			idx, ok := lookup[name]
			if !ok {
				return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPoint, name)
			}
			indices = append(indices, idx)
		}
	}
	return vertices, indices, nil
}

// Rect creates an axis-aligned box primitive spanning min to max.
// Passing the corners swapped turns every face inward, which makes the box
// visible from inside with back-face culling on.
//
// Parameters:
//   - min: the lowest corner
//   - max: the highest corner
//   - color: the RGB color of every vertex
//   - instances: the initial placements, may be empty
//
// Returns:
//   - GeometryPrimitive: the box primitive, dirty
func Rect(min, max mgl32.Vec3, color [3]float32, instances []Instance) GeometryPrimitive {
	d := max.Sub(min)
	dx, dy, dz := d.X(), d.Y(), d.Z()
	points := map[string]mgl32.Vec3{
		"A": max.Sub(mgl32.Vec3{dx, 0, 0}),
		"B": max,
		"C": max.Sub(mgl32.Vec3{0, dy, 0}),
		"D": max.Sub(mgl32.Vec3{dx, dy, 0}),
		"E": max.Sub(mgl32.Vec3{dx, 0, dz}),
		"F": max.Sub(mgl32.Vec3{0, 0, dz}),
		"G": max.Sub(mgl32.Vec3{0, dy, dz}),
		"H": min,
	}
	// the point set and triangle list are fixed, Build cannot fail here
	vertices, indices, _ := Build(color, points, rectTriangles)
	return NewGeometryPrimitive(
		WithLabel(fmt.Sprintf("rect %v-%v", min, max)),
		WithVertices(vertices),
		WithIndices(indices),
		WithInstances(instances),
	)
}
