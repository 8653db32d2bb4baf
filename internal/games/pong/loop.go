package pong

import (
	"time"

	"github.com/vovakirdan/termpong/internal/core"
)

// InputSource yields the held actions for the current frame.
type InputSource interface {
	Poll() core.InputFrame
}

// Renderer draws one frame from an ordered draw list.
type Renderer interface {
	Render(list []core.Drawable)
}

// Clock returns monotonic timestamps in seconds.
type Clock interface {
	Now() float64
}

// Loop runs the fixed input -> update -> render cycle over a State.
type Loop struct {
	State *State

	input    InputSource
	renderer Renderer
	clock    Clock
	sampler  Sampler
	sinks    []EventSink
}

// NewLoop wires a loop. A nil input polls nothing and a nil renderer draws
// nothing.
func NewLoop(state *State, input InputSource, renderer Renderer, clock Clock, sinks ...EventSink) *Loop {
	if input == nil {
		input = noInput{}
	}
	if renderer == nil {
		renderer = noRenderer{}
	}
	return &Loop{
		State:    state,
		input:    input,
		renderer: renderer,
		clock:    clock,
		sinks:    sinks,
	}
}

// SetInput replaces the input source.
func (l *Loop) SetInput(input InputSource) {
	if input == nil {
		input = noInput{}
	}
	l.input = input
}

// AddSink registers another event sink.
func (l *Loop) AddSink(sink EventSink) {
	l.sinks = append(l.sinks, sink)
}

// Step runs one frame. The status is checked first: a terminated game
// performs no input, update or render and Step returns false. A quit seen
// during this frame still completes the frame.
func (l *Loop) Step() bool {
	if !l.State.Running() {
		return false
	}

	in := l.sampler.Sample(l.input.Poll())
	ApplyInput(l.State, in)

	for _, ev := range Update(l.State, in, l.clock.Now()) {
		for _, sink := range l.sinks {
			sink.Record(ev)
		}
	}

	l.renderer.Render(l.State.DrawList())
	return true
}

// Run steps until the game terminates or maxFrames frames have run
// (0 means no limit). It returns the number of frames executed.
func (l *Loop) Run(maxFrames uint64) uint64 {
	var n uint64
	for maxFrames == 0 || n < maxFrames {
		if !l.Step() {
			break
		}
		n++
	}
	if maxFrames > 0 && n == maxFrames {
		l.State.Terminate(ReasonFrameLimit)
	}
	return n
}

// Close delivers a window-close signal. The next Step does nothing.
func (l *Loop) Close() {
	l.State.Terminate(ReasonWindowClose)
}

type noInput struct{}

func (noInput) Poll() core.InputFrame { return core.InputFrame{} }

type noRenderer struct{}

func (noRenderer) Render([]core.Drawable) {}

// MonotonicClock measures seconds since it was created.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now returns the seconds elapsed since start.
func (c *MonotonicClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// StepClock advances by a fixed DT on every call.
// Used for headless runs and tests.
type StepClock struct {
	DT float64
	t  float64
}

// Now returns the next timestamp.
func (c *StepClock) Now() float64 {
	c.t += c.DT
	return c.t
}
