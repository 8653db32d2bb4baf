package tui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termpong/internal/assets"
	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/games/pong"
	"github.com/vovakirdan/termpong/internal/render"
	"github.com/vovakirdan/termpong/internal/storage"
)

// hudLines is the number of rows below the play field.
const hudLines = 2

var hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// CloseMsg tells the model that its window is going away.
type CloseMsg struct{}

// Options configures one game session.
type Options struct {
	Config  config.PongConfig
	Atlas   *assets.Atlas
	Sprites assets.Sprites

	Store    *storage.Store // optional, nil disables history
	User     string
	EventLog *log.Logger // optional collision log

	Width  int // terminal columns
	Height int // terminal rows
	Clock  pong.Clock
}

// Session owns the loop of one game and its side effects. It is shared by
// every copy of the Bubble Tea model, so whoever ends the game last sees the
// same state.
type Session struct {
	loop     *pong.Loop
	target   *render.Target
	recorder *storage.Recorder
	logger   *log.Logger

	lastEvent string
	finished  bool
}

// NewSession builds the state, renderer and sinks for one game.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	raster := render.NewRasterizer(opts.Atlas, cfg.Arena.Left, cfg.Arena.Right, cfg.Arena.Bottom, cfg.Arena.Top)
	target := render.NewTarget(raster, opts.Width, max(opts.Height-hudLines, 1))

	clock := opts.Clock
	if clock == nil {
		clock = pong.NewMonotonicClock()
	}

	s := &Session{
		target: target,
		logger: opts.EventLog,
	}
	s.loop = pong.NewLoop(pong.NewState(cfg, opts.Sprites), nil, target, clock, pong.EventFunc(s.record))

	if opts.EventLog != nil {
		s.loop.AddSink(pong.NewLogSink(opts.EventLog))
	}
	if opts.Store != nil {
		user := opts.User
		if user == "" {
			user = "local"
		}
		s.recorder = storage.NewRecorder(opts.Store, user)
		s.loop.AddSink(s.recorder)
	}
	return s
}

func (s *Session) record(ev pong.Event) {
	s.lastEvent = ev.Kind.String()
}

// Loop returns the game loop.
func (s *Session) Loop() *pong.Loop { return s.loop }

// Snapshot returns the current game state.
func (s *Session) Snapshot() pong.Snapshot { return s.loop.State.Snapshot() }

// Finish ends the game with reason unless it already ended, and saves the
// history once. It returns the final snapshot.
func (s *Session) Finish(reason pong.EndReason) pong.Snapshot {
	s.loop.State.Terminate(reason)
	snap := s.Snapshot()
	if s.finished {
		return snap
	}
	s.finished = true

	if s.logger != nil {
		s.logger.Info("game over", "reason", snap.EndReason, "frames", snap.Frame)
	}
	if s.recorder != nil {
		if _, err := s.recorder.Finish(snap); err != nil && s.logger != nil {
			s.logger.Warn("could not save session", "error", err)
		}
	}
	return snap
}

// Model is the Bubble Tea model for running a pong game.
type Model struct {
	session  *Session
	keys     KeyMap
	keyState *KeyState
	help     help.Model
	tickRate int
	quitting bool
}

// NewModel creates a model around a fresh session.
func NewModel(opts Options) Model {
	return NewModelWithSession(NewSession(opts), opts.Config)
}

// NewModelWithSession creates a model driving an existing session.
func NewModelWithSession(sess *Session, cfg config.PongConfig) Model {
	keyState := NewKeyState(time.Duration(cfg.Input.HoldMS) * time.Millisecond)
	sess.loop.SetInput(keyState)

	h := help.New()
	h.ShowAll = false

	return Model{
		session:  sess,
		keys:     NewKeyMap(cfg.Input.Keys),
		keyState: keyState,
		help:     h,
		tickRate: cfg.Loop.TickRate,
	}
}

// Session returns the session driven by the model.
func (m Model) Session() *Session { return m.session }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keyState.Press(m.keys.Action(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.session.target.Resize(msg.Width, max(msg.Height-hudLines, 1))
		m.help.Width = msg.Width
		return m, nil

	case CloseMsg:
		// takes effect at the top of the next frame
		m.session.loop.Close()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick runs one frame of the loop.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.session.loop.Step() {
		m.session.Finish(pong.ReasonWindowClose)
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// View renders the last frame, the status line and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return RenderScreen(m.session.target.Screen()) + "\n" +
		hudStyle.Render(m.statusLine()) + "\n" +
		m.help.View(m.keys)
}

func (m Model) statusLine() string {
	snap := m.session.Snapshot()
	selfPlay := "off"
	if snap.SelfPlay {
		selfPlay = "on"
	}
	line := fmt.Sprintf("frame %d | self-play %s | left %d right %d wall %d",
		snap.Frame, selfPlay, snap.LeftHits, snap.RightHits, snap.WallBounces)
	if m.session.lastEvent != "" {
		line += " | " + m.session.lastEvent
	}
	return line
}

// Run starts the Bubble Tea program and blocks until the game ends.
// SIGHUP and SIGTERM are delivered to the game as a window close.
func Run(opts Options) (pong.Snapshot, error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			p.Send(CloseMsg{})
		case <-done:
		}
	}()

	_, err := p.Run()
	signal.Stop(sigs)
	close(done)

	// covers a program killed before the loop saw the close
	return model.session.Finish(pong.ReasonWindowClose), err
}
