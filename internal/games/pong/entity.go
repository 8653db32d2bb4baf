package pong

import (
	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/core"
)

// EntityID identifies one of the three simulated objects.
type EntityID int

const (
	BallID EntityID = iota
	LeftPaddleID
	RightPaddleID
)

// String returns the entity name.
func (id EntityID) String() string {
	switch id {
	case BallID:
		return "ball"
	case LeftPaddleID:
		return "left"
	case RightPaddleID:
		return "right"
	default:
		return "unknown"
	}
}

// Entity is a textured quad placed in world space.
type Entity struct {
	ID         EntityID
	BaseOffset core.Vec2 // fixed at construction
	Scale      core.Vec2 // fixed at construction
	Position   core.Vec2 // displacement from BaseOffset, mutated every frame
	Velocity   core.Vec2 // ball only
	Texture    core.TextureID
	Transform  core.Mat4 // recomposed every frame, see Compose
}

func newEntity(id EntityID, p config.EntityPlacement, tex core.TextureID) Entity {
	e := Entity{
		ID:         id,
		BaseOffset: p.Offset,
		Scale:      p.Scale,
		Texture:    tex,
	}
	e.Compose()
	return e
}

// World returns the entity center in world space.
func (e *Entity) World() core.Vec2 {
	return e.BaseOffset.Add(e.Position)
}

// Bounds returns the world-space box covered by the entity.
func (e *Entity) Bounds() core.Box {
	return core.Box{Center: e.World(), Size: e.Scale.Abs()}
}

// ModelMatrix computes translate(base) * translate(position) * scale(scale).
func (e *Entity) ModelMatrix() core.Mat4 {
	return core.Identity().
		Translate(e.BaseOffset).
		Translate(e.Position).
		Scale(e.Scale)
}

// Compose refreshes Transform from the current offset, position and scale.
func (e *Entity) Compose() {
	e.Transform = e.ModelMatrix()
}

// Drawable returns the renderer view of the entity.
func (e *Entity) Drawable() core.Drawable {
	return core.Drawable{
		Name:      e.ID.String(),
		Transform: e.Transform,
		Texture:   e.Texture,
	}
}
