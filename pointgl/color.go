package pointgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// Named colors used by the default palette.
var (
	Black = RGB(0x00, 0x00, 0x00)
	White = RGB(0xFF, 0xFF, 0xFF)
	Grey  = RGB(0x7F, 0x7F, 0x7F)
)

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}
