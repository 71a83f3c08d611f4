// Package app wires the host HAL to the torus frame loop.
package app

import (
	"errors"

	"spindonut/hal"
	"spindonut/internal/buildinfo"
	"spindonut/tasks/spindonut"
)

type Config struct {
	HUD bool
	// Observer receives per-frame statistics. Optional.
	Observer spindonut.Observer
}

// New builds the frame loop on h and returns its step function. The step
// returns hal.ErrStop once the loop has seen a quit event.
func New(h hal.HAL, cfg Config) func() error {
	c, err := spindonut.NewCanvas(h.Display(), h.Input())
	if err != nil {
		return func() error { return err }
	}

	lc := spindonut.DefaultConfig()
	lc.HUD = cfg.HUD
	lc.Title = "spindonut " + buildinfo.Short()
	lc.Logger = h.Logger()
	lc.Observer = cfg.Observer
	if l := h.Logger(); l != nil {
		l.WriteLineString("spindonut: build " + buildinfo.String())
	}

	loop := spindonut.New(c, lc)
	return func() error {
		if err := loop.Tick(); err != nil {
			if errors.Is(err, spindonut.ErrTerminated) {
				return hal.ErrStop
			}
			return err
		}
		return nil
	}
}
