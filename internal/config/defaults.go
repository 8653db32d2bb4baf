package config

import (
	_ "embed"

	"github.com/vovakirdan/termpong/internal/core"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the default configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			Gravity:              core.V(0.3, -0.09),
			BallVelocity:         core.V(2.0, -0.02),
			PaddleSpeed:          2.0,
			MinCollisionDistance: 1.0,
			NudgeFactor:          0.1,
		},
		Entities: PongEntities{
			Ball: EntityPlacement{
				Offset: core.V(-4, 2),
				Scale:  core.V(1, 1),
			},
			LeftPaddle: EntityPlacement{
				Offset: core.V(-3, -2),
				Scale:  core.V(3, 3),
			},
			RightPaddle: EntityPlacement{
				Offset: core.V(3, -2),
				Scale:  core.V(3, 3),
			},
		},
		Arena: PongArena{
			Left:   -5.0,
			Right:  5.0,
			Bottom: -3.75,
			Top:    3.75,
		},
		SelfPlay: PongSelfPlay{
			Velocity: core.V(0, -0.02),
		},
		Input: PongInput{
			HoldMS: 120,
			Keys: KeyBindings{
				Quit:      []string{"q", "ctrl+c"},
				Toggle:    []string{"t"},
				LeftUp:    []string{"w"},
				LeftDown:  []string{"s"},
				RightUp:   []string{"up"},
				RightDown: []string{"down"},
			},
		},
		Assets: PongAssets{
			LeftPaddle:  "leftplay.png",
			RightPaddle: "rightplay.png",
			Ball:        "bean.png",
		},
		Loop: PongLoop{
			TickRate: 60,
			LogFile:  "~/.pong/pong.log",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPongYAML
}
