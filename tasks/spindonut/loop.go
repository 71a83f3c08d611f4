// Package spindonut runs the spinning torus: it owns the mesh, sequences
// rotation, projection and rasterization for every vertex, and presents one
// frame per Tick.
package spindonut

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spindonut/hal"
	"spindonut/pointgl"
)

// ErrTerminated is returned by Tick once a quit event has been seen.
var ErrTerminated = errors.New("spindonut: terminated")

// State is the loop lifecycle.
type State uint8

const (
	StateRunning State = iota
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// FrameInfo describes one finished frame.
type FrameInfo struct {
	Frame    uint64
	Vertices int
	Stats    pointgl.Stats
	Duration time.Duration
}

// Observer is told about every presented frame.
type Observer interface {
	ObserveFrame(FrameInfo)
}

// Config is fixed at construction.
type Config struct {
	Torus    pointgl.TorusSpec
	SpinStep float64

	Foreground pointgl.Color
	Background pointgl.Color
	// Backdrop fills the canvas once before the first frame.
	Backdrop pointgl.Color

	HUD      bool
	Title    string
	Logger   hal.Logger
	Observer Observer
}

// DefaultConfig is white splats on black over a grey backdrop.
func DefaultConfig() Config {
	return Config{
		Torus:      pointgl.DefaultTorus,
		SpinStep:   pointgl.DefaultSpinStep,
		Foreground: pointgl.White,
		Background: pointgl.Black,
		Backdrop:   pointgl.Grey,
		Title:      "spindonut",
	}
}

// Loop renders the torus one frame per Tick. It is not safe for concurrent use.
type Loop struct {
	cfg    Config
	canvas Canvas

	mesh   pointgl.Mesh
	rot    *pointgl.Rotator
	proj   pointgl.Projector
	raster *pointgl.Rasterizer

	state  State
	frames uint64
	now    func() time.Time
}

// New builds and orients the torus mesh and prepares the canvas.
func New(c Canvas, cfg Config) *Loop {
	w, h := c.Size()

	raster := pointgl.NewRasterizer()
	raster.Foreground = cfg.Foreground
	raster.Background = cfg.Background

	l := &Loop{
		cfg:    cfg,
		canvas: c,
		mesh:   pointgl.NewTorus(cfg.Torus),
		rot:    pointgl.NewRotator(cfg.SpinStep),
		proj:   pointgl.NewProjector(w, h),
		raster: raster,
		now:    time.Now,
	}
	l.rot.Orient(&l.mesh)
	c.Clear(cfg.Backdrop)

	l.logf("mesh %d vertices (%dx%d), canvas %dx%d", l.mesh.Len(), cfg.Torus.RingPoints, cfg.Torus.Steps, w, h)
	return l
}

func (l *Loop) State() State                    { return l.state }
func (l *Loop) Frames() uint64                  { return l.frames }
func (l *Loop) Mesh() *pointgl.Mesh             { return &l.mesh }
func (l *Loop) Rasterizer() *pointgl.Rasterizer { return l.raster }

// Tick renders one frame.
//
// Pending events are drained first; a quit event moves the loop to
// StateTerminating and Tick returns ErrTerminated without drawing. Otherwise
// the canvas is cleared and every vertex is shaded, projected and plotted in
// mesh order. The whole mesh spins one step after each vertex, so later
// vertices of a frame see a slightly more rotated torus.
func (l *Loop) Tick() error {
	if l.state == StateTerminating {
		return ErrTerminated
	}
	for _, ev := range l.canvas.PollEvents() {
		if isQuit(ev) {
			l.state = StateTerminating
			l.logf("terminating after %d frames", l.frames)
			return ErrTerminated
		}
	}

	start := l.now()
	l.canvas.Clear(l.cfg.Background)
	l.raster.Begin(l.canvas)

	for i := range l.mesh.Vertices {
		v := l.mesh.Vertices[i]
		l.raster.Plot(l.canvas, v.Normal, l.proj.Project(v.Pos))
		l.rot.Spin(&l.mesh)
	}

	if l.cfg.HUD {
		drawHUD(l.canvas, l.cfg.Title)
	}
	if err := l.canvas.Present(); err != nil {
		return fmt.Errorf("present frame %d: %w", l.frames, err)
	}
	l.frames++

	if l.cfg.Observer != nil {
		l.cfg.Observer.ObserveFrame(FrameInfo{
			Frame:    l.frames,
			Vertices: l.mesh.Len(),
			Stats:    l.raster.Stats(),
			Duration: l.now().Sub(start),
		})
	}
	return nil
}

// Run ticks until a quit event (nil) or until ctx is done (ctx.Err()).
// There is no delay between frames.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Tick(); err != nil {
			if errors.Is(err, ErrTerminated) {
				return nil
			}
			return err
		}
	}
}

func isQuit(ev hal.Event) bool {
	switch ev.Type {
	case hal.EventQuit:
		return true
	case hal.EventKey:
		return ev.Press && (ev.Code == hal.KeyEscape || ev.Rune == 'q')
	}
	return false
}

func (l *Loop) logf(format string, args ...any) {
	if l.cfg.Logger == nil {
		return
	}
	l.cfg.Logger.WriteLineString("spindonut: " + fmt.Sprintf(format, args...))
}
