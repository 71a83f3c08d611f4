package pointgl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a surface sample with its outward unit normal.
type Vertex struct {
	Pos    r3.Vec
	Normal r3.Vec
}

// Mesh is an ordered point cloud. It is transformed in place.
type Mesh struct {
	Vertices []Vertex
}

func (m *Mesh) Len() int { return len(m.Vertices) }

// Transform applies rot to every position and normal.
//
// rot must be orthonormal, otherwise normals drift off unit length.
func (m *Mesh) Transform(rot *r3.Mat) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Pos = rot.MulVec(v.Pos)
		v.Normal = rot.MulVec(v.Normal)
	}
}

// TorusSpec holds the fixed torus geometry.
type TorusSpec struct {
	Minor      float64 // cross-section radius
	Major      float64 // distance from the axis to the cross-section center
	RingPoints int
	Steps      int
}

var DefaultTorus = TorusSpec{
	Minor:      150,
	Major:      250,
	RingPoints: 30,
	Steps:      60,
}

// Ring samples the torus cross-section: n points on a circle of radius minor
// centered at (major, 0, 0) in the xy plane. Normals point away from the
// circle center and do not depend on major.
func Ring(minor, major float64, n int) []Vertex {
	if n < 3 {
		n = 3
	}
	out := make([]Vertex, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ct, st := math.Cos(theta), math.Sin(theta)
		out = append(out, Vertex{
			Pos:    r3.Vec{X: major + minor*ct, Y: minor * st},
			Normal: r3.Vec{X: ct, Y: st},
		})
	}
	return out
}

// Revolve sweeps ring around the vertical axis in steps equal turns. The
// result holds len(ring)*steps vertices; the ring index varies fastest.
func Revolve(ring []Vertex, steps int) Mesh {
	if steps < 3 {
		steps = 3
	}
	verts := make([]Vertex, 0, len(ring)*steps)
	for j := 0; j < steps; j++ {
		phi := 2 * math.Pi * float64(j) / float64(steps)
		rot := RotationY(-phi)
		for _, v := range ring {
			verts = append(verts, Vertex{
				Pos:    rot.MulVec(v.Pos),
				Normal: rot.MulVec(v.Normal),
			})
		}
	}
	return Mesh{Vertices: verts}
}

// NewTorus builds the full torus point cloud for s.
func NewTorus(s TorusSpec) Mesh {
	return Revolve(Ring(s.Minor, s.Major, s.RingPoints), s.Steps)
}
