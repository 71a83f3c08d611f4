package spindonut

import (
	"errors"

	"spindonut/hal"
	"spindonut/pointgl"
)

// ErrNoFramebuffer is returned when the display cannot back a canvas.
var ErrNoFramebuffer = errors.New("spindonut: no RGB565 framebuffer")

// Canvas is the surface the loop draws on and the source of its events.
type Canvas interface {
	pointgl.Target
	Present() error
	// PollEvents drains pending events without blocking.
	PollEvents() []hal.Event
}

type fbCanvas struct {
	fb     hal.Framebuffer
	target pointgl.RGB565Target
	events <-chan hal.Event
	buf    []hal.Event
}

// NewCanvas adapts a HAL display and input to a Canvas. in may be nil.
func NewCanvas(disp hal.Display, in hal.Input) (Canvas, error) {
	if disp == nil {
		return nil, ErrNoFramebuffer
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Width() <= 0 || fb.Height() <= 0 {
		return nil, ErrNoFramebuffer
	}
	c := &fbCanvas{fb: fb}
	c.target = pointgl.RGB565Target{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
	if in != nil {
		c.events = in.Events()
	}
	return c, nil
}

func (c *fbCanvas) Size() (w, h int) { return c.target.Size() }

func (c *fbCanvas) Clear(col pointgl.Color) { c.fb.ClearRGB(col.R, col.G, col.B) }

func (c *fbCanvas) FillRect(x, y, w, h int, col pointgl.Color) {
	c.target.FillRect(x, y, w, h, col)
}

func (c *fbCanvas) SetPixel(x, y int, col pointgl.Color) { c.target.SetPixel(x, y, col) }

func (c *fbCanvas) Present() error { return c.fb.Present() }

func (c *fbCanvas) PollEvents() []hal.Event {
	c.buf = c.buf[:0]
	if c.events == nil {
		return c.buf
	}
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				c.events = nil
				return c.buf
			}
			c.buf = append(c.buf, ev)
		default:
			return c.buf
		}
	}
}
