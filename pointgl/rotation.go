package pointgl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSpinStep is the per-call spin angle in radians.
const DefaultSpinStep = 1e-5 * math.Pi

// RotationX returns the right-handed rotation by rad about the x axis.
func RotationX(rad float64) *r3.Mat {
	c, s := math.Cos(rad), math.Sin(rad)
	return r3.NewMat([]float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// RotationY returns the right-handed rotation by rad about the vertical axis.
func RotationY(rad float64) *r3.Mat {
	c, s := math.Cos(rad), math.Sin(rad)
	return r3.NewMat([]float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

// Rotator spins a mesh about the vertical axis in small fixed steps.
//
// Spin turns in the same sense Revolve sweeps in (negative about +y).
type Rotator struct {
	step float64
	spin *r3.Mat
}

// NewRotator builds a rotator for the given step. A zero step selects
// DefaultSpinStep.
func NewRotator(step float64) *Rotator {
	if step == 0 {
		step = DefaultSpinStep
	}
	return &Rotator{step: step, spin: RotationY(-step)}
}

func (r *Rotator) Step() float64 { return r.step }

// Spin rotates every position and normal in m by one step.
func (r *Rotator) Spin(m *Mesh) {
	m.Transform(r.spin)
}

// Orient tips the mesh +90° about x so the torus axis points at the viewer's
// up direction instead of being seen edge-on from below. Call it once.
func (r *Rotator) Orient(m *Mesh) {
	m.Transform(RotationX(math.Pi / 2))
}
