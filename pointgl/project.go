package pointgl

import "gonum.org/v1/gonum/spatial/r3"

// Projection defaults sized so the default torus fits a 1000x800 target.
const (
	DefaultFocal       = 250
	DefaultDepthOffset = 480
)

// Projected is a vertex in screen space. Depth grows away from the viewer.
type Projected struct {
	X, Y  float64
	Depth float64
}

// Projector is a pinhole camera looking down +z from -Offset.
//
// Offset must keep z+Offset positive for all geometry; it is not checked.
type Projector struct {
	Focal   float64
	Offset  float64
	CenterX float64
	CenterY float64
}

// NewProjector returns the default camera centered on a w x h target.
func NewProjector(w, h int) Projector {
	return Projector{
		Focal:   DefaultFocal,
		Offset:  DefaultDepthOffset,
		CenterX: float64(w) / 2,
		CenterY: float64(h) / 2,
	}
}

// Perspective divides by depth without the screen-center translation.
func (p Projector) Perspective(v r3.Vec) (x, y, depth float64) {
	depth = v.Z + p.Offset
	return p.Focal * v.X / depth, p.Focal * v.Y / depth, depth
}

func (p Projector) Project(v r3.Vec) Projected {
	x, y, depth := p.Perspective(v)
	return Projected{X: x + p.CenterX, Y: y + p.CenterY, Depth: depth}
}
