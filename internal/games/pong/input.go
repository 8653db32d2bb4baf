package pong

import "github.com/vovakirdan/termpong/internal/core"

// Intents is what the input sampler produced for one frame.
type Intents struct {
	Left           float64 // -1, 0 or +1 on the vertical axis
	Right          float64
	ToggleSelfPlay bool
	Quit           bool
}

// Sampler turns polled key state into per-frame intents.
// The self-play toggle fires on the rising edge of its key, so a held key
// flips the flag once.
type Sampler struct {
	toggleHeld bool
}

// Sample converts the held actions of one frame into intents.
func (sm *Sampler) Sample(f core.InputFrame) Intents {
	held := f.Has(core.ActionToggleSelfPlay)
	in := Intents{
		Left:           f.Axis(core.ActionLeftUp, core.ActionLeftDown),
		Right:          f.Axis(core.ActionRightUp, core.ActionRightDown),
		ToggleSelfPlay: held && !sm.toggleHeld,
		Quit:           f.Has(core.ActionQuit),
	}
	sm.toggleHeld = held
	return in
}

// ApplyInput writes the status and self-play effects of intents to s.
// Paddle intents are consumed by Update.
func ApplyInput(s *State, in Intents) {
	if in.ToggleSelfPlay {
		s.SelfPlay = !s.SelfPlay
	}
	if in.Quit {
		s.Terminate(ReasonQuit)
	}
}
