package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termpong/internal/assets"
	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/storage"
)

// game holds everything loaded once at startup.
type game struct {
	cfg     config.PongConfig
	atlas   *assets.Atlas
	sprites assets.Sprites
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (config.PongConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.PongConfig{}, err
	}
	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	return cfg, nil
}

// loadGame loads the configuration and decodes every sprite. Any texture
// failure is fatal.
func loadGame() (*game, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dir := cfg.Assets.Dir
	if dir != "" {
		if dir, err = config.ExpandHome(dir); err != nil {
			return nil, err
		}
	}

	atlas, sprites, err := assets.LoadSprites(assets.Source(dir), cfg.Assets.LeftPaddle, cfg.Assets.RightPaddle, cfg.Assets.Ball)
	if err != nil {
		return nil, err
	}

	return &game{cfg: cfg, atlas: atlas, sprites: sprites}, nil
}

// openStore opens the history database. Failures only disable history.
func openStore(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	return store
}

// openLogFile opens the collision log in append mode. An empty path
// discards the log.
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})
}
