package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrStop is returned by a step function to end a runner normally.
var ErrStop = errors.New("hal: stop requested")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeySpace
)

// EventType tells input events apart.
type EventType uint8

const (
	EventKey EventType = iota + 1
	// EventQuit means the host wants the program to end (window closed,
	// interrupt signal).
	EventQuit
)

// Event is an input event. Code, Press and Rune are set for EventKey only.
type Event struct {
	Type  EventType
	Code  KeyCode
	Press bool
	Rune  rune
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides host events (best-effort on each platform).
type Input interface {
	Events() <-chan Event
}

// HAL is the only contact point between the renderer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
