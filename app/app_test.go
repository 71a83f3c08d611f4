package app

import (
	"errors"
	"testing"

	"spindonut/hal"
	"spindonut/pointgl"
	"spindonut/tasks/spindonut"
)

type countObserver struct{ frames []spindonut.FrameInfo }

func (o *countObserver) ObserveFrame(fi spindonut.FrameInfo) { o.frames = append(o.frames, fi) }

type quitInput struct{ ch chan hal.Event }

func (q quitInput) Events() <-chan hal.Event { return q.ch }

type testHAL struct {
	hal.HAL
	in hal.Input
}

func (h testHAL) Input() hal.Input { return h.in }

func TestStepDrawsFrames(t *testing.T) {
	obs := &countObserver{}
	step := New(hal.New(200, 160), Config{Observer: obs})

	for i := 0; i < 2; i++ {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if len(obs.frames) != 2 {
		t.Fatalf("expected 2 observed frames, got %d", len(obs.frames))
	}
	if got := obs.frames[1].Vertices; got != pointgl.DefaultTorus.RingPoints*pointgl.DefaultTorus.Steps {
		t.Fatalf("unexpected vertex count %d", got)
	}
}

func TestStepStopsOnQuit(t *testing.T) {
	in := quitInput{ch: make(chan hal.Event, 1)}
	step := New(testHAL{HAL: hal.New(200, 160), in: in}, Config{})

	in.ch <- hal.Event{Type: hal.EventQuit}
	if err := step(); !errors.Is(err, hal.ErrStop) {
		t.Fatalf("expected ErrStop, got %v", err)
	}
	if err := step(); !errors.Is(err, hal.ErrStop) {
		t.Fatalf("expected ErrStop to stick, got %v", err)
	}
}

type noDisplayHAL struct{ hal.HAL }

func (noDisplayHAL) Display() hal.Display { return nil }

func TestStepReportsMissingFramebuffer(t *testing.T) {
	step := New(noDisplayHAL{HAL: hal.New(10, 10)}, Config{})
	if err := step(); !errors.Is(err, spindonut.ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer, got %v", err)
	}
}
