package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.pong/pong.yaml -> ./configs/pong.yaml -> embedded default.
// Files are applied on top of the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (PongConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PongConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return PongConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pong.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pong.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultPongYAML)
	if err != nil {
		return DefaultPongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults and validates the result.
func Parse(data []byte) (PongConfig, error) {
	cfg := DefaultPongConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PongConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return PongConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the game loop cannot run with.
func Validate(cfg PongConfig) error {
	var errs []error

	check := func(name string, p EntityPlacement) {
		if p.Scale.X == 0 || p.Scale.Y == 0 {
			errs = append(errs, fmt.Errorf("entities.%s.scale must be non-zero", name))
		}
	}
	check("ball", cfg.Entities.Ball)
	check("left_paddle", cfg.Entities.LeftPaddle)
	check("right_paddle", cfg.Entities.RightPaddle)

	if cfg.Arena.Left >= cfg.Arena.Right {
		errs = append(errs, errors.New("arena.left must be less than arena.right"))
	}
	if cfg.Arena.Bottom >= cfg.Arena.Top {
		errs = append(errs, errors.New("arena.bottom must be less than arena.top"))
	}
	if cfg.Loop.TickRate <= 0 {
		errs = append(errs, errors.New("loop.tick_rate must be positive"))
	}
	if cfg.Input.HoldMS < 0 {
		errs = append(errs, errors.New("input.hold_ms must not be negative"))
	}
	if cfg.Physics.MinCollisionDistance < 0 {
		errs = append(errs, errors.New("physics.min_collision_distance must not be negative"))
	}

	keys := cfg.Input.Keys
	for name, list := range map[string][]string{
		"quit":       keys.Quit,
		"toggle":     keys.Toggle,
		"left_up":    keys.LeftUp,
		"left_down":  keys.LeftDown,
		"right_up":   keys.RightUp,
		"right_down": keys.RightDown,
	} {
		if len(list) == 0 {
			errs = append(errs, fmt.Errorf("input.keys.%s needs at least one key", name))
		}
	}

	if cfg.Assets.LeftPaddle == "" || cfg.Assets.RightPaddle == "" || cfg.Assets.Ball == "" {
		errs = append(errs, errors.New("assets: every sprite needs a file name"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pong", filename)
}
