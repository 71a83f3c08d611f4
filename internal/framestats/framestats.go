// Package framestats records per-frame rasterizer counters and frame times,
// and can chart them after a run.
package framestats

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"spindonut/tasks/spindonut"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultLimit is the number of most recent frames kept.
const DefaultLimit = 4096

// Sample is one frame's counters.
type Sample struct {
	Frame       uint64
	Drawn       int
	Overwritten int
	Occluded    int
	Clipped     int
	Duration    time.Duration
}

// Summary aggregates the retained samples.
type Summary struct {
	Frames       int
	MeanDrawn    float64
	MeanDuration time.Duration
	MaxDuration  time.Duration
}

// Recorder keeps the last Limit frames. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	samples []Sample
	next    int // ring write position once full
}

var _ spindonut.Observer = (*Recorder)(nil)

// NewRecorder returns a recorder that keeps up to limit frames. A
// non-positive limit selects DefaultLimit.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) ObserveFrame(fi spindonut.FrameInfo) {
	s := Sample{
		Frame:       fi.Frame,
		Drawn:       fi.Stats.Drawn,
		Overwritten: fi.Stats.Overwritten,
		Occluded:    fi.Stats.Occluded,
		Clipped:     fi.Stats.Clipped,
		Duration:    fi.Duration,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) < r.limit {
		r.samples = append(r.samples, s)
		return
	}
	r.samples[r.next] = s
	r.next = (r.next + 1) % r.limit
}

// Samples returns the retained frames, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, 0, len(r.samples))
	out = append(out, r.samples[r.next:]...)
	out = append(out, r.samples[:r.next]...)
	return out
}

func (r *Recorder) Summary() Summary {
	samples := r.Samples()
	var sum Summary
	if len(samples) == 0 {
		return sum
	}
	var drawn int
	var total time.Duration
	for _, s := range samples {
		drawn += s.Drawn
		total += s.Duration
		sum.MaxDuration = max(sum.MaxDuration, s.Duration)
	}
	sum.Frames = len(samples)
	sum.MeanDrawn = float64(drawn) / float64(len(samples))
	sum.MeanDuration = total / time.Duration(len(samples))
	return sum
}

// WritePlot charts the per-frame counters to path. The format follows the
// file extension (png, svg, pdf, ...).
func (r *Recorder) WritePlot(path string) error {
	samples := r.Samples()
	if len(samples) == 0 {
		return fmt.Errorf("framestats: no frames recorded")
	}

	p := plot.New()
	p.Title.Text = "Splats per frame"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Vertices"

	series := []struct {
		name  string
		color color.Color
		value func(Sample) int
	}{
		{"drawn", color.RGBA{R: 0x33, G: 0x99, B: 0xFF, A: 0xFF}, func(s Sample) int { return s.Drawn }},
		{"overwritten", color.RGBA{R: 0xFF, G: 0x99, B: 0x33, A: 0xFF}, func(s Sample) int { return s.Overwritten }},
		{"occluded", color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}, func(s Sample) int { return s.Occluded }},
		{"clipped", color.RGBA{R: 0xCC, G: 0x33, B: 0x33, A: 0xFF}, func(s Sample) int { return s.Clipped }},
	}
	for _, ser := range series {
		pts := make(plotter.XYs, 0, len(samples))
		for _, s := range samples {
			pts = append(pts, plotter.XY{X: float64(s.Frame), Y: float64(ser.value(s))})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("framestats: %s line: %w", ser.name, err)
		}
		line.Color = ser.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(ser.name, line)
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("framestats: save plot: %w", err)
	}
	return nil
}
