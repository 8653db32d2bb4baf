// Package config provides YAML-based game configuration loading for
// the pong game: physics constants, entity placement, arena bounds,
// key bindings and asset locations.
package config

import "github.com/vovakirdan/termpong/internal/core"

// PongConfig contains all configuration for the game.
type PongConfig struct {
	Physics  PongPhysics  `yaml:"physics"`
	Entities PongEntities `yaml:"entities"`
	Arena    PongArena    `yaml:"arena"`
	SelfPlay PongSelfPlay `yaml:"self_play"`
	Input    PongInput    `yaml:"input"`
	Assets   PongAssets   `yaml:"assets"`
	Loop     PongLoop     `yaml:"loop"`
}

// PongPhysics defines physics parameters.
type PongPhysics struct {
	Gravity              core.Vec2 `yaml:"gravity"` // only Y is integrated
	BallVelocity         core.Vec2 `yaml:"ball_velocity"`
	PaddleSpeed          float64   `yaml:"paddle_speed"`
	MinCollisionDistance float64   `yaml:"min_collision_distance"`
	NudgeFactor          float64   `yaml:"nudge_factor"`
}

// EntityPlacement is the fixed base offset and size of one entity.
type EntityPlacement struct {
	Offset core.Vec2 `yaml:"offset"`
	Scale  core.Vec2 `yaml:"scale"`
}

// PongEntities defines where each entity starts and how big it is.
type PongEntities struct {
	Ball        EntityPlacement `yaml:"ball"`
	LeftPaddle  EntityPlacement `yaml:"left_paddle"`
	RightPaddle EntityPlacement `yaml:"right_paddle"`
}

// PongArena defines the visible world box. Top/Bottom are the walls,
// Left/Right the out-of-bounds lines.
type PongArena struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
}

// PongSelfPlay defines the autonomous left paddle.
type PongSelfPlay struct {
	Enabled     bool      `yaml:"enabled"` // start with self-play on
	Velocity    core.Vec2 `yaml:"velocity"`
	FrameLocked bool      `yaml:"frame_locked"` // move a fixed step per frame instead of per second
}

// KeyBindings lists the terminal key names for each action.
type KeyBindings struct {
	Quit      []string `yaml:"quit"`
	Toggle    []string `yaml:"toggle"`
	LeftUp    []string `yaml:"left_up"`
	LeftDown  []string `yaml:"left_down"`
	RightUp   []string `yaml:"right_up"`
	RightDown []string `yaml:"right_down"`
}

// PongInput defines keyboard handling.
type PongInput struct {
	HoldMS int         `yaml:"hold_ms"` // how long a key stays held after its last event
	Keys   KeyBindings `yaml:"keys"`
}

// PongAssets names the sprite files. An empty Dir selects the embedded sprites.
type PongAssets struct {
	Dir         string `yaml:"dir"`
	LeftPaddle  string `yaml:"left_paddle"`
	RightPaddle string `yaml:"right_paddle"`
	Ball        string `yaml:"ball"`
}

// PongLoop defines the frame loop.
type PongLoop struct {
	TickRate int    `yaml:"tick_rate"`
	LogFile  string `yaml:"log_file"`
}
