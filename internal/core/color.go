package core

import "fmt"

// RGBA is a straight (non-premultiplied) 8-bit color.
type RGBA struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	White = RGBA{255, 255, 255, 255}
	Black = RGBA{0, 0, 0, 255}
)

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Over blends c on top of dst using src-alpha / one-minus-src-alpha.
// The result is opaque when dst is opaque.
func (c RGBA) Over(dst RGBA) RGBA {
	switch c.A {
	case 0:
		return dst
	case 255:
		return c
	}
	a := uint32(c.A)
	inv := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*inv + 127) / 255)
	}
	return RGBA{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: uint8(a + (uint32(dst.A)*inv+127)/255),
	}
}
