// Package render rasterizes textured quads into a pixel framebuffer and
// packs the pixels into half-block terminal cells.
package render

import "github.com/vovakirdan/termpong/internal/core"

// Framebuffer is a row-major pixel buffer. Row 0 is the top of the view.
type Framebuffer struct {
	width  int
	height int
	pix    []core.RGBA
}

// NewFramebuffer allocates a width x height buffer cleared to white.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Resize reallocates the buffer. Content is discarded.
func (fb *Framebuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	fb.width = width
	fb.height = height
	fb.pix = make([]core.RGBA, width*height)
	fb.Clear(core.White)
}

// Clear fills every pixel with c.
func (fb *Framebuffer) Clear(c core.RGBA) {
	for i := range fb.pix {
		fb.pix[i] = c
	}
}

// At returns the pixel at (x, y). Out of range reads return transparent.
func (fb *Framebuffer) At(x, y int) core.RGBA {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return core.RGBA{}
	}
	return fb.pix[y*fb.width+x]
}

// Set writes the pixel at (x, y). Out of range writes are ignored.
func (fb *Framebuffer) Set(x, y int, c core.RGBA) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.pix[y*fb.width+x] = c
}

// Blend composites c over the pixel at (x, y).
func (fb *Framebuffer) Blend(x, y int, c core.RGBA) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := y*fb.width + x
	fb.pix[i] = c.Over(fb.pix[i])
}
