package spindonut

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"spindonut/hal"
	"spindonut/pointgl"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type fakeCanvas struct {
	w, h       int
	queue      [][]hal.Event
	polls      int
	clears     []pointgl.Color
	fills      []fill
	presents   int
	presentErr error
}

type fill struct {
	x, y, w, h int
	c          pointgl.Color
}

func newFakeCanvas(events ...[]hal.Event) *fakeCanvas {
	return &fakeCanvas{w: hal.DefaultWidth, h: hal.DefaultHeight, queue: events}
}

func (f *fakeCanvas) Size() (int, int)      { return f.w, f.h }
func (f *fakeCanvas) Clear(c pointgl.Color) { f.clears = append(f.clears, c) }
func (f *fakeCanvas) Present() error        { f.presents++; return f.presentErr }
func (f *fakeCanvas) FillRect(x, y, w, h int, c pointgl.Color) {
	f.fills = append(f.fills, fill{x, y, w, h, c})
}

func (f *fakeCanvas) PollEvents() []hal.Event {
	f.polls++
	if len(f.queue) == 0 {
		return nil
	}
	ev := f.queue[0]
	f.queue = f.queue[1:]
	return ev
}

type lineLogger struct{ lines []string }

func (l *lineLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type frameLog struct{ frames []FrameInfo }

func (o *frameLog) ObserveFrame(fi FrameInfo) { o.frames = append(o.frames, fi) }

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Torus = pointgl.TorusSpec{Minor: 150, Major: 250, RingPoints: 6, Steps: 4}
	return cfg
}

var quit = []hal.Event{{Type: hal.EventQuit}}

func TestNewOrientsMeshAndFillsBackdrop(t *testing.T) {
	c := newFakeCanvas()
	l := New(c, DefaultConfig())

	if got := l.Mesh().Len(); got != 1800 {
		t.Fatalf("expected 1800 vertices, got %d", got)
	}
	if diff := cmp.Diff([]pointgl.Color{pointgl.Grey}, c.clears); diff != "" {
		t.Fatalf("backdrop mismatch (-want +got):\n%s", diff)
	}

	// The second ring vertex starts in the xy plane and is tipped into xz.
	v := l.Mesh().Vertices[1]
	theta := 2 * math.Pi / 30
	if math.Abs(v.Normal.Y) > 1e-12 || math.Abs(v.Normal.Z-math.Sin(theta)) > 1e-12 {
		t.Fatalf("mesh not oriented: normal %+v", v.Normal)
	}
	if l.State() != StateRunning || l.Frames() != 0 {
		t.Fatalf("unexpected initial state %v frames=%d", l.State(), l.Frames())
	}
}

func TestTickDrawsOneFrame(t *testing.T) {
	c := newFakeCanvas()
	l := New(c, DefaultConfig())

	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if c.presents != 1 || l.Frames() != 1 {
		t.Fatalf("expected one presented frame, got presents=%d frames=%d", c.presents, l.Frames())
	}
	if diff := cmp.Diff([]pointgl.Color{pointgl.Grey, pointgl.Black}, c.clears); diff != "" {
		t.Fatalf("clear sequence mismatch (-want +got):\n%s", diff)
	}
	s := l.Rasterizer().Stats()
	if s.Total() != 1800 {
		t.Fatalf("expected every vertex plotted once, got %+v", s)
	}
	if s.Clipped != 0 {
		t.Fatalf("torus should fit the canvas, got %d clipped", s.Clipped)
	}
	if s.Drawn == 0 || len(c.fills) == 0 {
		t.Fatal("expected splats on the canvas")
	}
}

func TestTickSpinsAfterEveryVertex(t *testing.T) {
	cfg := smallConfig()
	c := newFakeCanvas()
	l := New(c, cfg)

	want := pointgl.Mesh{Vertices: append([]pointgl.Vertex(nil), l.Mesh().Vertices...)}
	n := l.Mesh().Len()
	want.Transform(pointgl.RotationY(-float64(n) * cfg.SpinStep))

	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if diff := cmp.Diff(want, *l.Mesh(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("mesh after one frame (-want +got):\n%s", diff)
	}
}

func TestTickQuitStopsBeforeDrawing(t *testing.T) {
	c := newFakeCanvas(quit)
	log := &lineLogger{}
	cfg := smallConfig()
	cfg.Logger = log
	l := New(c, cfg)

	if err := l.Tick(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("expected ErrTerminated, got %v", err)
	}
	if l.State() != StateTerminating {
		t.Fatalf("expected terminating, got %v", l.State())
	}
	if c.presents != 0 || len(c.clears) != 1 || len(c.fills) != 0 {
		t.Fatalf("quit frame drew: presents=%d clears=%d fills=%d", c.presents, len(c.clears), len(c.fills))
	}

	polls := c.polls
	if err := l.Tick(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("expected ErrTerminated again, got %v", err)
	}
	if c.polls != polls {
		t.Fatal("terminated loop should not poll again")
	}
	if last := log.lines[len(log.lines)-1]; !strings.Contains(last, "terminating after 0 frames") {
		t.Fatalf("unexpected log line %q", last)
	}
}

func TestTickQuitEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   hal.Event
		quit bool
	}{
		{"window close", hal.Event{Type: hal.EventQuit}, true},
		{"escape press", hal.Event{Type: hal.EventKey, Code: hal.KeyEscape, Press: true}, true},
		{"q rune", hal.Event{Type: hal.EventKey, Press: true, Rune: 'q'}, true},
		{"escape release", hal.Event{Type: hal.EventKey, Code: hal.KeyEscape}, false},
		{"enter", hal.Event{Type: hal.EventKey, Code: hal.KeyEnter, Press: true}, false},
		{"other rune", hal.Event{Type: hal.EventKey, Press: true, Rune: 'x'}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newFakeCanvas([]hal.Event{{Type: hal.EventKey, Rune: 'a', Press: true}, tc.ev})
			l := New(c, smallConfig())
			err := l.Tick()
			if got := errors.Is(err, ErrTerminated); got != tc.quit {
				t.Fatalf("quit=%v, want %v (err=%v)", got, tc.quit, err)
			}
		})
	}
}

func TestTickWrapsPresentError(t *testing.T) {
	boom := errors.New("boom")
	c := newFakeCanvas()
	c.presentErr = boom
	l := New(c, smallConfig())

	err := l.Tick()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped present error, got %v", err)
	}
	if l.Frames() != 0 {
		t.Fatalf("failed frame should not count, got %d", l.Frames())
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	c := newFakeCanvas(nil, nil, quit)
	l := New(c, smallConfig())

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if l.Frames() != 2 || c.presents != 2 {
		t.Fatalf("expected 2 frames before quit, got frames=%d presents=%d", l.Frames(), c.presents)
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := New(newFakeCanvas(), smallConfig())
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if l.Frames() != 0 {
		t.Fatalf("expected no frames, got %d", l.Frames())
	}
}

func TestObserverSeesEveryFrame(t *testing.T) {
	obs := &frameLog{}
	cfg := smallConfig()
	cfg.Observer = obs
	l := New(newFakeCanvas(), cfg)

	for i := 0; i < 3; i++ {
		if err := l.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if len(obs.frames) != 3 {
		t.Fatalf("expected 3 observed frames, got %d", len(obs.frames))
	}
	for i, fi := range obs.frames {
		if fi.Frame != uint64(i+1) || fi.Vertices != 24 || fi.Stats.Total() != 24 {
			t.Fatalf("frame %d: unexpected info %+v", i, fi)
		}
	}
}

func TestStartupLogLine(t *testing.T) {
	log := &lineLogger{}
	cfg := DefaultConfig()
	cfg.Logger = log
	New(newFakeCanvas(), cfg)
	if len(log.lines) != 1 || log.lines[0] != "spindonut: mesh 1800 vertices (30x60), canvas 1000x800" {
		t.Fatalf("unexpected log lines %q", log.lines)
	}
}

func TestHUDDrawsText(t *testing.T) {
	plain := newFakeCanvas()
	if err := New(plain, smallConfig()).Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	cfg := smallConfig()
	cfg.HUD = true
	withHUD := newFakeCanvas()
	if err := New(withHUD, cfg).Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if len(withHUD.fills) <= len(plain.fills) {
		t.Fatalf("expected HUD pixels, got %d fills vs %d", len(withHUD.fills), len(plain.fills))
	}
	for _, f := range withHUD.fills[len(plain.fills):] {
		if f.w != 1 || f.h != 1 || f.x < 0 || f.y < 0 || f.y > 60 {
			t.Fatalf("unexpected HUD fill %+v", f)
		}
	}
}

func TestCanvasOverHostFramebuffer(t *testing.T) {
	if _, err := NewCanvas(nil, nil); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer, got %v", err)
	}

	h := hal.New(hal.DefaultWidth, hal.DefaultHeight)
	c, err := NewCanvas(h.Display(), h.Input())
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	if evs := c.PollEvents(); len(evs) != 0 {
		t.Fatalf("expected no pending events, got %v", evs)
	}

	l := New(c, smallConfig())
	if err := l.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	buf := h.Display().Framebuffer().Buffer()
	var lit int
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0xFF && buf[i+1] == 0xFF {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected white splats in the framebuffer")
	}
}
