package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termpong/internal/assets"
	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/core"
	"github.com/vovakirdan/termpong/internal/games/pong"
	"github.com/vovakirdan/termpong/internal/storage"
)

func testOptions() Options {
	atlas := assets.NewAtlas()
	solid := func(c core.RGBA) *assets.Texture {
		return &assets.Texture{Width: 1, Height: 1, Pix: []core.RGBA{c}}
	}
	sprites := assets.Sprites{
		LeftPaddle:  atlas.Add("left", solid(core.RGBA{R: 200, A: 255})),
		RightPaddle: atlas.Add("right", solid(core.RGBA{B: 200, A: 255})),
		Ball:        atlas.Add("ball", solid(core.RGBA{G: 200, A: 255})),
	}
	return Options{
		Config:  config.DefaultPongConfig(),
		Atlas:   atlas,
		Sprites: sprites,
		Width:   40,
		Height:  12,
		Clock:   &pong.StepClock{DT: 1.0 / 60},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelTickRunsFrame(t *testing.T) {
	m := NewModel(testOptions())

	m, cmd := update(t, m, TickMsg{})

	if cmd == nil || isQuit(cmd) {
		t.Fatal("running game should schedule the next tick")
	}
	if f := m.Session().Snapshot().Frame; f != 1 {
		t.Errorf("frame = %d, expected 1", f)
	}
	if m.Session().target.Frames() != 1 {
		t.Error("tick should render one frame")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(testOptions())

	m, _ = update(t, m, runeKey('q'))
	m, cmd := update(t, m, TickMsg{})
	if isQuit(cmd) {
		t.Fatal("the frame that samples quit should still complete")
	}
	if m.Session().Snapshot().Frame != 1 {
		t.Error("quit frame should update")
	}

	m, cmd = update(t, m, TickMsg{})
	if !isQuit(cmd) {
		t.Fatal("next tick should quit the program")
	}
	if m.Session().Snapshot().EndReason != string(pong.ReasonQuit) {
		t.Errorf("reason = %q", m.Session().Snapshot().EndReason)
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelCloseSkipsFrame(t *testing.T) {
	m := NewModel(testOptions())

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, CloseMsg{})
	m, cmd := update(t, m, TickMsg{})

	if !isQuit(cmd) {
		t.Fatal("tick after close should quit")
	}
	if f := m.Session().Snapshot().Frame; f != 1 {
		t.Errorf("frame = %d, close must stop updates", f)
	}
	if m.Session().target.Frames() != 1 {
		t.Error("close must stop rendering")
	}
	if m.Session().Snapshot().EndReason != string(pong.ReasonWindowClose) {
		t.Errorf("reason = %q", m.Session().Snapshot().EndReason)
	}
}

func TestModelToggleSelfPlay(t *testing.T) {
	m := NewModel(testOptions())

	m, _ = update(t, m, runeKey('t'))
	m, _ = update(t, m, TickMsg{})

	if !m.Session().Snapshot().SelfPlay {
		t.Error("t should enable self-play")
	}
	if !strings.Contains(m.View(), "self-play on") {
		t.Error("status line should show self-play on")
	}
}

func TestModelRightPaddleKey(t *testing.T) {
	m := NewModel(testOptions())
	m, _ = update(t, m, TickMsg{})
	before := m.Session().Snapshot().RightY

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, TickMsg{})

	if after := m.Session().Snapshot().RightY; after <= before {
		t.Errorf("right paddle y %v -> %v, expected upward motion", before, after)
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(testOptions())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})
	m, _ = update(t, m, TickMsg{})

	s := m.Session().target.Screen()
	if s.Width() != 50 || s.Height() != 20-hudLines {
		t.Errorf("screen = %dx%d, expected 50x%d", s.Width(), s.Height(), 20-hudLines)
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 20 {
		t.Errorf("view has %d lines, expected 20", lines)
	}
}

func TestModelSavesHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Store = store
	opts.User = "tester"
	m := NewModel(opts)

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('q'))
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	// a second finish must not save again
	m.Session().Finish(pong.ReasonWindowClose)

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	if sessions[0].User != "tester" || sessions[0].EndReason != "quit" || sessions[0].Frames != 2 {
		t.Errorf("session = %+v", sessions[0])
	}
}

func TestRenderScreenGroupsRuns(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.Black, core.White)
	s.SetCell(2, 0, core.Cell{Rune: core.HalfBlock, Fg: core.RGBA{R: 255, A: 255}, Bg: core.White})

	out := RenderScreen(s)

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	if !strings.Contains(out, "ab") || !strings.ContainsRune(out, core.HalfBlock) {
		t.Errorf("missing cell content in %q", out)
	}
}
