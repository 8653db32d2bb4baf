// pong is a two-paddle ball game rendered in the terminal.
//
// Usage:
//
//	pong                 - Play (same as pong play)
//	pong play            - Play in this terminal
//	pong sim             - Run the simulation headless and log collisions
//	pong serve           - Start SSH server for remote play
//	pong history         - Browse recorded sessions
//	pong config          - Print the configuration
//
// Global flags:
//
//	--fps <rate>     - Override the tick rate
//	--config <path>  - Load configuration from a YAML file
//	--assets <dir>   - Load sprites from a directory instead of the embedded set
//	--db <path>      - Set database path (default: ~/.pong/history.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagConfig string
	flagAssets string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - a two-paddle ball game in your terminal",
	Long: `Pong is a two-paddle ball game drawn with half-block characters.

The left paddle is driven by W/S, or by itself in self-play mode (T).
The right paddle is driven by the arrow keys. The ball falls under gravity,
bounces off paddles and walls, and the game ends when it leaves the arena.

Examples:
  pong
  pong sim --frames 600 --self-play
  pong serve --ssh :2222
  pong history`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory to load sprites from")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/history.db", "Path to history database (empty disables history)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
