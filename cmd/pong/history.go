package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termpong/internal/platform/tui"
	"github.com/vovakirdan/termpong/internal/storage"
)

var (
	flagHistoryLimit   int
	flagHistorySession int64
	flagHistoryPlain   bool
	flagHistoryClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded sessions",
	Long: `Show recorded game sessions and their collision events.

In a terminal this opens an interactive browser; with --plain or when
stdout is not a terminal a table is printed instead.

Examples:
  pong history
  pong history --plain --limit 5
  pong history --session 12
  pong history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to list")
	historyCmd.Flags().Int64Var(&flagHistorySession, "session", 0, "Print the events of one session")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a table instead of the interactive browser")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return errors.New("history is disabled (empty --db)")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.ClearHistory(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil

	case flagHistorySession > 0:
		return printSession(store, flagHistorySession)
	}

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}
	return printSessions(store, flagHistoryLimit)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printSessions(store *storage.Store, limit int) error {
	sessions, err := store.RecentSessions(limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	t := newTable("ID", "Started", "User", "Frames", "L/R/Wall", "Ended")
	for _, s := range sessions {
		t.Row(tui.SessionRow(s)...)
	}
	fmt.Println(t.Render())

	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	fmt.Printf("%d sessions, %d frames, %d paddle hits, longest %d frames\n",
		stats.Sessions, stats.TotalFrames, stats.TotalHits, stats.LongestFrames)
	return nil
}

func printSession(store *storage.Store, id int64) error {
	sess, err := store.SessionByID(id)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("session %d not found", id)
	}

	fmt.Printf("Session %d (%s): %d frames in %s, ended by %s\n",
		sess.ID, sess.User, sess.Frames, sess.Duration, sess.EndReason)

	events, err := store.SessionEvents(id)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No collisions.")
		return nil
	}

	t := newTable("Frame", "Kind", "Ball X", "Ball Y")
	for _, ev := range events {
		t.Row(fmt.Sprintf("%d", ev.Frame), ev.Kind, fmt.Sprintf("%.2f", ev.BallX), fmt.Sprintf("%.2f", ev.BallY))
	}
	fmt.Println(t.Render())
	return nil
}
