package pointgl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rasterizer defaults.
const (
	DefaultCellSize = 5
	DefaultLevels   = 5
)

// DefaultLight points from behind and below the screen toward the viewer.
var DefaultLight = r3.Vec{X: 0, Y: math.Sqrt(0.5), Z: -math.Sqrt(0.5)}

// CellKey addresses one grid cell: screen coordinates floor-divided by the
// cell size.
type CellKey struct {
	X, Y int
}

// Fragment is what a cell holds for the current frame.
type Fragment struct {
	Depth      float64
	Brightness float64
}

// Outcome reports what Plot did with a fragment.
type Outcome uint8

const (
	OutcomeClipped Outcome = iota
	OutcomeDrawn
	OutcomeOverwritten
	OutcomeOccluded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClipped:
		return "clipped"
	case OutcomeDrawn:
		return "drawn"
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeOccluded:
		return "occluded"
	default:
		return "unknown"
	}
}

// Stats counts Plot outcomes since the last Begin.
type Stats struct {
	Drawn       int
	Overwritten int
	Occluded    int
	Clipped     int
}

func (s Stats) Total() int { return s.Drawn + s.Overwritten + s.Occluded + s.Clipped }

type cellState struct {
	gen  uint32
	frag Fragment
}

// Rasterizer turns shaded, projected vertices into square splats on a cell
// grid with a per-cell depth test.
//
// Create it once and reuse it; the occupancy grid is invalidated by a
// generation counter rather than cleared.
type Rasterizer struct {
	CellSize   int
	Levels     float64
	Light      r3.Vec // unit direction
	Foreground Color
	Background Color

	cols, rows int
	cells      []cellState
	gen        uint32
	stats      Stats
}

// NewRasterizer returns a rasterizer with the default cell size, light and
// white-on-black palette.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		CellSize:   DefaultCellSize,
		Levels:     DefaultLevels,
		Light:      DefaultLight,
		Foreground: White,
		Background: Black,
	}
}

// Brightness is the clamped Lambertian term n·light scaled to [0, levels].
func Brightness(n, light r3.Vec, levels float64) float64 {
	d := r3.Dot(n, light)
	if d < 0 {
		d = 0
	}
	return d * levels
}

// RoundUpEven rounds b up to the nearest even integer.
func RoundUpEven(b float64) float64 {
	return math.Ceil(b/2) * 2
}

// Begin starts a new frame for target t. All cells become unseen.
func (r *Rasterizer) Begin(t Target) {
	if r.CellSize <= 0 {
		r.CellSize = DefaultCellSize
	}
	w, h := t.Size()
	cols := (max(w, 0) + r.CellSize - 1) / r.CellSize
	rows := (max(h, 0) + r.CellSize - 1) / r.CellSize
	if cols != r.cols || rows != r.rows {
		r.cols, r.rows = cols, rows
		if cap(r.cells) < cols*rows {
			r.cells = make([]cellState, cols*rows)
		} else {
			r.cells = r.cells[:cols*rows]
			clear(r.cells)
		}
		r.gen = 0
	}
	r.gen++
	if r.gen == 0 {
		clear(r.cells)
		r.gen = 1
	}
	r.stats = Stats{}
}

// Key returns the grid cell containing screen point (x, y).
func (r *Rasterizer) Key(x, y float64) CellKey {
	cs := float64(r.CellSize)
	return CellKey{X: int(math.Floor(x / cs)), Y: int(math.Floor(y / cs))}
}

func (r *Rasterizer) index(k CellKey) (int, bool) {
	if k.X < 0 || k.Y < 0 || k.X >= r.cols || k.Y >= r.rows {
		return 0, false
	}
	return k.Y*r.cols + k.X, true
}

// Cell returns the fragment recorded for k in the current frame.
func (r *Rasterizer) Cell(k CellKey) (Fragment, bool) {
	idx, ok := r.index(k)
	if !ok || r.cells[idx].gen != r.gen {
		return Fragment{}, false
	}
	return r.cells[idx].frag, true
}

func (r *Rasterizer) Stats() Stats { return r.stats }

// Plot shades a vertex with normal n, projected to p, and draws it into t.
//
// The first fragment in a cell is drawn at its raw brightness. A strictly
// nearer fragment erases the cell and is redrawn with its brightness rounded
// up to the next even level; that rounded value is what the cell records.
// Cells off the grid lie entirely outside the target and are skipped.
func (r *Rasterizer) Plot(t Target, n r3.Vec, p Projected) Outcome {
	b := Brightness(n, r.Light, r.Levels)
	key := r.Key(p.X, p.Y)
	idx, ok := r.index(key)
	if !ok {
		r.stats.Clipped++
		return OutcomeClipped
	}

	c := &r.cells[idx]
	if c.gen != r.gen {
		c.gen = r.gen
		c.frag = Fragment{Depth: p.Depth, Brightness: b}
		r.splat(t, key, b)
		r.stats.Drawn++
		return OutcomeDrawn
	}
	if p.Depth < c.frag.Depth {
		ox, oy := key.X*r.CellSize, key.Y*r.CellSize
		t.FillRect(ox, oy, r.CellSize, r.CellSize, r.Background)
		b = RoundUpEven(b)
		r.splat(t, key, b)
		c.frag = Fragment{Depth: p.Depth, Brightness: b}
		r.stats.Overwritten++
		return OutcomeOverwritten
	}
	r.stats.Occluded++
	return OutcomeOccluded
}

// splat draws a square of side b centered in the cell. Sides larger than the
// cell spill over its edges.
func (r *Rasterizer) splat(t Target, k CellKey, b float64) {
	side := int(b)
	if side <= 0 {
		return
	}
	off := int(math.Floor((float64(r.CellSize) - b) / 2))
	t.FillRect(k.X*r.CellSize+off, k.Y*r.CellSize+off, side, side, r.Foreground)
}
