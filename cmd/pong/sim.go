package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/termpong/internal/games/pong"
	"github.com/vovakirdan/termpong/internal/storage"
)

var (
	flagSimDT       float64
	flagSimFrames   uint64
	flagSimSelfPlay bool
	flagSimRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run the game loop without a display, advancing a fixed time step per
frame. Collisions are logged to stdout and the final state is printed as
YAML.

Examples:
  pong sim
  pong sim --frames 3600 --self-play
  pong sim --dt 0.1 --frames 10 --record`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimDT, "dt", 0, "Seconds per frame (0 = 1/tick_rate)")
	simCmd.Flags().Uint64Var(&flagSimFrames, "frames", 3600, "Frame limit (0 = until the game ends)")
	simCmd.Flags().BoolVar(&flagSimSelfPlay, "self-play", false, "Start with self-play enabled")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the history database")
}

func runSim(cmd *cobra.Command, args []string) error {
	g, err := loadGame()
	if err != nil {
		return err
	}

	dt := flagSimDT
	if dt <= 0 {
		dt = 1 / float64(g.cfg.Loop.TickRate)
	}

	logger := newLogger(os.Stdout)

	state := pong.NewState(g.cfg, g.sprites)
	if flagSimSelfPlay {
		state.SelfPlay = true
	}
	loop := pong.NewLoop(state, nil, nil, &pong.StepClock{DT: dt}, pong.NewLogSink(logger))

	var recorder *storage.Recorder
	if flagSimRecord {
		store := openStore(logger)
		if store != nil {
			defer store.Close()
			recorder = storage.NewRecorder(store, "sim")
			loop.AddSink(recorder)
		}
	}

	loop.Run(flagSimFrames)
	snap := state.Snapshot()

	if recorder != nil {
		id, err := recorder.Finish(snap)
		if err != nil {
			return err
		}
		logger.Info("session saved", "id", id)
	}

	out, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding final state: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
