package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termpong/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  W/S        - Move the left paddle
  Up/Down    - Move the right paddle
  T          - Toggle self-play for the left paddle
  Q/Ctrl+C   - Quit

Collisions are logged to the file named by loop.log_file
(default ~/.pong/pong.log).`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	g, err := loadGame()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(g.cfg.Loop.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	snap, err := tui.Run(tui.Options{
		Config:   g.cfg,
		Atlas:    g.atlas,
		Sprites:  g.sprites,
		Store:    store,
		EventLog: logger,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	fmt.Printf("Game over (%s) after %d frames: left %d, right %d, wall %d\n",
		snap.EndReason, snap.Frame, snap.LeftHits, snap.RightHits, snap.WallBounces)
	return nil
}
