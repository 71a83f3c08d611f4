package hal

import (
	"context"
	"errors"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int    // 0 runs uncapped
	Ticks   uint64 // 0 runs until stopped
}

// RunHeadless runs the app without opening a window.
//
// Cancelling ctx is delivered to the app as an EventQuit followed by one more
// step, so it can shut down the same way as when a window is closed. If the
// app does not stop on that step, ctx.Err() is returned.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	h := newHost(cfg.Width, cfg.Height, os.Stdout)
	return runHeadless(ctx, h, newApp(h), cfg)
}

func runHeadless(ctx context.Context, h *hostHAL, step func() error, cfg HeadlessConfig) error {
	run := func() (bool, error) {
		if step == nil {
			return false, nil
		}
		if err := step(); err != nil {
			if errors.Is(err, ErrStop) {
				return true, nil
			}
			return true, err
		}
		return false, nil
	}

	var tick <-chan time.Time
	if cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
		defer t.Stop()
		tick = t.C
	}

	var n uint64
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			h.in.quit()
			if done, err := run(); done {
				return err
			}
			return ctx.Err()
		}

		if done, err := run(); done {
			return err
		}
		n++
		if cfg.Ticks > 0 && n >= cfg.Ticks {
			return nil
		}
	}
}
