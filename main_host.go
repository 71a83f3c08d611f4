package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"spindonut/app"
	"spindonut/hal"
	"spindonut/internal/buildinfo"
	"spindonut/internal/framestats"
)

func main() {
	var cfg hal.HeadlessConfig
	var hud bool
	var plotPath string
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 0, "Frame rate in headless mode (0 = uncapped).")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run until interrupted).")
	flag.BoolVar(&hud, "hud", false, "Draw the title and key hint over the torus.")
	flag.StringVar(&plotPath, "plot", "", "Write a per-frame statistics chart to this file at exit (png, svg, pdf).")
	flag.Parse()

	var rec *framestats.Recorder
	appCfg := app.Config{HUD: hud}
	if plotPath != "" {
		rec = framestats.NewRecorder(0)
		appCfg.Observer = rec
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	var err error
	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = hal.RunHeadless(ctx, newApp, cfg)
		stop()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(hal.WindowConfig{
			Title:  "spindonut (" + buildinfo.Short() + ")",
			Width:  hal.DefaultWidth,
			Height: hal.DefaultHeight,
		}, newApp)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if rec != nil {
		if err := rec.WritePlot(plotPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		s := rec.Summary()
		fmt.Printf("spindonut: %d frames, %.0f splats/frame, mean %v, max %v\n",
			s.Frames, s.MeanDrawn, s.MeanDuration, s.MaxDuration)
	}
}
