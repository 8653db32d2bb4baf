package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/core"
)

// KeyMap defines the game key bindings.
type KeyMap struct {
	Quit      key.Binding
	Toggle    key.Binding
	LeftUp    key.Binding
	LeftDown  key.Binding
	RightUp   key.Binding
	RightDown key.Binding
}

// NewKeyMap builds bindings from the configured key lists.
func NewKeyMap(b config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:      binding(b.Quit, "quit"),
		Toggle:    binding(b.Toggle, "self-play"),
		LeftUp:    binding(b.LeftUp, "left up"),
		LeftDown:  binding(b.LeftDown, "left down"),
		RightUp:   binding(b.RightUp, "right up"),
		RightDown: binding(b.RightDown, "right down"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LeftUp, k.LeftDown, k.RightUp, k.RightDown, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown},
		{k.RightUp, k.RightDown},
		{k.Toggle, k.Quit},
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Toggle):
		return core.ActionToggleSelfPlay
	case key.Matches(msg, k.LeftUp):
		return core.ActionLeftUp
	case key.Matches(msg, k.LeftDown):
		return core.ActionLeftDown
	case key.Matches(msg, k.RightUp):
		return core.ActionRightUp
	case key.Matches(msg, k.RightDown):
		return core.ActionRightDown
	}
	return core.ActionNone
}

// KeyState turns discrete terminal key events into held keys.
// Terminals report presses and auto-repeats but no releases, so a key
// counts as held until hold elapses without another event for it.
type KeyState struct {
	hold     time.Duration
	deadline map[core.Action]time.Time
	now      func() time.Time
}

// NewKeyState creates a key state with the given hold duration.
func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{
		hold:     hold,
		deadline: make(map[core.Action]time.Time),
		now:      time.Now,
	}
}

// Press marks an action held from now.
func (ks *KeyState) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	ks.deadline[a] = ks.now().Add(ks.hold)
}

// Release drops an action immediately.
func (ks *KeyState) Release(a core.Action) {
	delete(ks.deadline, a)
}

// Poll returns the actions held at this instant. Expired keys are dropped.
func (ks *KeyState) Poll() core.InputFrame {
	now := ks.now()
	f := core.NewInputFrame()
	for a, until := range ks.deadline {
		if now.Before(until) {
			f.Set(a)
			continue
		}
		delete(ks.deadline, a)
	}
	return f
}
