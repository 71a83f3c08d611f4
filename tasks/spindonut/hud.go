package spindonut

import (
	"image/color"

	"spindonut/pointgl"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var hudFont = &proggy.TinySZ8pt7b

// hudDisplayer lets tinyfont draw onto a Canvas one pixel at a time.
type hudDisplayer struct {
	c Canvas
}

var _ drivers.Displayer = hudDisplayer{}

func (d hudDisplayer) Size() (x, y int16) {
	w, h := d.c.Size()
	return int16(w), int16(h)
}

func (d hudDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.c.FillRect(int(x), int(y), 1, 1, pointgl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d hudDisplayer) Display() error { return nil }

func drawHUD(c Canvas, title string) {
	d := hudDisplayer{c: c}
	line := int16(hudFont.GetYAdvance())
	tinyfont.WriteLine(d, hudFont, 6, 6+line, title, color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF})
	tinyfont.WriteLine(d, hudFont, 6, 6+2*line, "q/ESC exit", color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF})
}
