package render

import (
	"math"

	"github.com/vovakirdan/termpong/internal/assets"
	"github.com/vovakirdan/termpong/internal/core"
)

// unit quad corners in model space
var quadCorners = [4]core.Vec2{
	{X: -0.5, Y: -0.5},
	{X: 0.5, Y: -0.5},
	{X: 0.5, Y: 0.5},
	{X: -0.5, Y: 0.5},
}

// Rasterizer draws unit quads textured from an atlas.
// Sampling is nearest-neighbor and texels are alpha blended over the
// framebuffer in draw list order.
type Rasterizer struct {
	Projection core.Mat4
	Atlas      *assets.Atlas
}

// NewRasterizer creates a rasterizer with an orthographic projection of the
// given world box.
func NewRasterizer(atlas *assets.Atlas, left, right, bottom, top float64) *Rasterizer {
	return &Rasterizer{
		Projection: core.Ortho(left, right, bottom, top, -1, 1),
		Atlas:      atlas,
	}
}

// Draw rasterizes every drawable in order into fb.
func (r *Rasterizer) Draw(fb *Framebuffer, list []core.Drawable) {
	for _, d := range list {
		r.drawQuad(fb, d)
	}
}

func (r *Rasterizer) drawQuad(fb *Framebuffer, d core.Drawable) {
	if fb.Width() == 0 || fb.Height() == 0 || r.Atlas == nil {
		return
	}
	tex := r.Atlas.Texture(d.Texture)
	if tex == nil {
		return
	}

	mvp := r.Projection.Mul(d.Transform)
	inv, ok := mvp.Inverse2D()
	if !ok {
		return
	}

	w, h := float64(fb.Width()), float64(fb.Height())

	// Pixel-space bounding box of the projected corners.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range quadCorners {
		ndc := mvp.Apply(c)
		px := (ndc.X + 1) / 2 * w
		py := (1 - ndc.Y) / 2 * h
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}

	x0 := core.Clamp(int(math.Floor(minX)), 0, fb.Width())
	x1 := core.Clamp(int(math.Ceil(maxX)), 0, fb.Width())
	y0 := core.Clamp(int(math.Floor(minY)), 0, fb.Height())
	y1 := core.Clamp(int(math.Ceil(maxY)), 0, fb.Height())

	for y := y0; y < y1; y++ {
		ndcY := 1 - (float64(y)+0.5)/h*2
		for x := x0; x < x1; x++ {
			ndcX := (float64(x)+0.5)/w*2 - 1
			local := inv.Apply(core.V(ndcX, ndcY))
			if local.X < -0.5 || local.X >= 0.5 || local.Y <= -0.5 || local.Y > 0.5 {
				continue
			}
			// image top row maps to the quad top edge
			u := local.X + 0.5
			v := 0.5 - local.Y
			fb.Blend(x, y, tex.Sample(u, v))
		}
	}
}
