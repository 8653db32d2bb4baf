package core

// TextureID is an opaque reference to a decoded sprite.
type TextureID int

// Drawable is one textured unit quad ready for the renderer.
type Drawable struct {
	Name      string
	Transform Mat4
	Texture   TextureID
}
