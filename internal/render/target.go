package render

import "github.com/vovakirdan/termpong/internal/core"

// Target renders draw lists to a terminal screen. Each cell shows two
// vertically stacked pixels, so the framebuffer is cols x 2*rows.
type Target struct {
	ClearColor core.RGBA

	raster *Rasterizer
	fb     *Framebuffer
	screen *core.Screen
	frames uint64
}

// NewTarget creates a target sized to cols x rows cells.
func NewTarget(raster *Rasterizer, cols, rows int) *Target {
	t := &Target{
		ClearColor: core.White,
		raster:     raster,
		fb:         NewFramebuffer(0, 0),
		screen:     core.NewScreen(0, 0),
	}
	t.Resize(cols, rows)
	return t
}

// Resize changes the cell dimensions.
func (t *Target) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == t.screen.Width() && rows == t.screen.Height() {
		return
	}
	t.fb.Resize(cols, rows*2)
	t.screen.Resize(cols, rows)
}

// Render clears, draws the list and packs the result into the screen.
func (t *Target) Render(list []core.Drawable) {
	t.fb.Clear(t.ClearColor)
	t.raster.Draw(t.fb, list)
	Pack(t.fb, t.screen)
	t.frames++
}

// Screen returns the cell buffer of the last rendered frame.
func (t *Target) Screen() *core.Screen { return t.screen }

// Framebuffer returns the pixel buffer of the last rendered frame.
func (t *Target) Framebuffer() *Framebuffer { return t.fb }

// Frames returns how many frames were rendered.
func (t *Target) Frames() uint64 { return t.frames }

// Pack writes pixel rows 2y and 2y+1 into row y of the screen as half
// blocks: foreground is the top pixel, background the bottom one.
func Pack(fb *Framebuffer, s *core.Screen) {
	for y := range s.Height() {
		for x := range s.Width() {
			s.SetCell(x, y, core.Cell{
				Rune: core.HalfBlock,
				Fg:   fb.At(x, 2*y),
				Bg:   fb.At(x, 2*y+1),
			})
		}
	}
}
