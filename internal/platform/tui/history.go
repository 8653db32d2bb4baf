package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termpong/internal/games/pong"
	"github.com/vovakirdan/termpong/internal/storage"
)

// History layout constants
const (
	maxSessions   = 100 // Max sessions to load
	maxEventLines = 8   // Events shown for the selected session
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses recorded sessions and their collision events.
type HistoryModel struct {
	store    *storage.Store
	sessions []storage.Session
	events   []storage.SessionEvent
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// NewHistoryModel loads the most recent sessions from store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.sessions, m.err = store.RecentSessions(maxSessions)
	m.table = m.createTable()
	m.updateTableRows()
	m.loadEvents()
	return m
}

// createTable creates the sessions table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Started", Width: 14},
		{Title: "User", Width: 10},
		{Title: "Frames", Width: 7},
		{Title: "L/R/Wall", Width: 10},
		{Title: "Ended", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-maxEventLines-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SessionRow formats one session as table cells.
func SessionRow(s storage.Session) []string {
	return []string{
		fmt.Sprintf("%d", s.ID),
		s.StartedAt.Local().Format("Jan 02 15:04"),
		s.User,
		fmt.Sprintf("%d", s.Frames),
		fmt.Sprintf("%d/%d/%d", s.LeftHits, s.RightHits, s.WallBounces),
		s.EndReason,
	}
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = SessionRow(s)
	}
	m.table.SetRows(rows)
}

// loadEvents loads the events of the highlighted session.
func (m *HistoryModel) loadEvents() {
	m.events = nil
	i := m.table.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return
	}
	events, err := m.store.SessionEvents(m.sessions[i].ID)
	if err != nil {
		m.err = err
		return
	}
	m.events = events
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		before := m.table.Cursor()
		m.table, cmd = m.table.Update(msg)
		if m.table.Cursor() != before {
			m.loadEvents()
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("SESSION HISTORY"))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(boxStyle.Render("Could not read history: " + m.err.Error()))
	case len(m.sessions) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No sessions recorded yet.\nPlay a game first!")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(m.renderEvents()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderEvents() string {
	if len(m.events) == 0 {
		return "No collisions."
	}
	lines := make([]string, 0, maxEventLines+1)
	for i, ev := range m.events {
		if i == maxEventLines {
			lines = append(lines, fmt.Sprintf("... %d more", len(m.events)-maxEventLines))
			break
		}
		lines = append(lines, EventLine(ev))
	}
	return strings.Join(lines, "\n")
}

// EventLine formats one recorded event.
func EventLine(ev storage.SessionEvent) string {
	label := ev.Kind
	if kind, ok := pong.ParseEventKind(ev.Kind); ok {
		label = kind.String()
	}
	return fmt.Sprintf("frame %6d  %-16s ball (%.2f, %.2f)", ev.Frame, label, ev.BallX, ev.BallY)
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
