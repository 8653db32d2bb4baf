// Package assets loads and stores the sprite textures drawn by the renderer.
// Sprites are decoded once at startup into an Atlas and referenced by
// opaque core.TextureID handles afterwards.
package assets

import (
	"embed"
	"fmt"
	"image"
	"io/fs"
	"os"

	// PNG decoder registration for image.Decode
	_ "image/png"

	"github.com/vovakirdan/termpong/internal/core"
)

//go:embed sprites/*.png
var embedded embed.FS

// Embedded returns the sprites shipped with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "sprites")
	if err != nil {
		panic(fmt.Sprintf("assets: embedded sprites missing: %v", err))
	}
	return sub
}

// Source returns the file system sprites are read from: the directory when
// one is given, the embedded sprites otherwise.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// Texture is a decoded RGBA image.
type Texture struct {
	Width  int
	Height int
	Pix    []core.RGBA // row-major, row 0 is the top of the image
}

// At returns the texel at (x, y), clamping to the edge.
func (t *Texture) At(x, y int) core.RGBA {
	x = core.Clamp(x, 0, t.Width-1)
	y = core.Clamp(y, 0, t.Height-1)
	return t.Pix[y*t.Width+x]
}

// Sample returns the nearest texel for texture coordinates (u, v) in [0, 1],
// with v = 0 at the top row.
func (t *Texture) Sample(u, v float64) core.RGBA {
	return t.At(int(u*float64(t.Width)), int(v*float64(t.Height)))
}

// Atlas owns every loaded texture.
type Atlas struct {
	textures []*Texture
	names    []string
}

// NewAtlas creates an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{}
}

// Load decodes the named image from fsys and returns its handle.
func (a *Atlas) Load(fsys fs.FS, name string) (core.TextureID, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return 0, fmt.Errorf("assets: cannot open %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("assets: cannot decode %s: %w", name, err)
	}

	return a.Add(name, FromImage(img)), nil
}

// Add stores an already decoded texture.
func (a *Atlas) Add(name string, t *Texture) core.TextureID {
	a.textures = append(a.textures, t)
	a.names = append(a.names, name)
	return core.TextureID(len(a.textures) - 1)
}

// Texture returns the texture for a handle, or nil for an unknown handle.
func (a *Atlas) Texture(id core.TextureID) *Texture {
	if id < 0 || int(id) >= len(a.textures) {
		return nil
	}
	return a.textures[id]
}

// Name returns the file name a handle was loaded from.
func (a *Atlas) Name(id core.TextureID) string {
	if id < 0 || int(id) >= len(a.names) {
		return ""
	}
	return a.names[id]
}

// Len returns the number of loaded textures.
func (a *Atlas) Len() int {
	return len(a.textures)
}

// FromImage converts any image to straight-alpha RGBA texels.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]core.RGBA, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, al := img.At(x, y).RGBA()
			c := core.RGBA{A: uint8(al >> 8)}
			// color.Color is premultiplied; undo it
			if al > 0 {
				c.R = uint8((r * 0xffff / al) >> 8)
				c.G = uint8((g * 0xffff / al) >> 8)
				c.B = uint8((bl * 0xffff / al) >> 8)
			}
			t.Pix[(y-b.Min.Y)*t.Width+(x-b.Min.X)] = c
		}
	}
	return t
}

// Sprites holds the handles of the three game sprites.
type Sprites struct {
	LeftPaddle  core.TextureID
	RightPaddle core.TextureID
	Ball        core.TextureID
}

// LoadSprites loads the three game sprites into a new atlas.
// Any failure is returned; callers treat it as fatal.
func LoadSprites(fsys fs.FS, left, right, ball string) (*Atlas, Sprites, error) {
	atlas := NewAtlas()
	var s Sprites
	var err error

	if s.LeftPaddle, err = atlas.Load(fsys, left); err != nil {
		return nil, Sprites{}, err
	}
	if s.RightPaddle, err = atlas.Load(fsys, right); err != nil {
		return nil, Sprites{}, err
	}
	if s.Ball, err = atlas.Load(fsys, ball); err != nil {
		return nil, Sprites{}, err
	}
	return atlas, s, nil
}
