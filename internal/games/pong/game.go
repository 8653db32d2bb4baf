// Package pong implements the two-paddle ball game: an explicit simulation
// state, the per-frame physics update, and the fixed input/update/render loop.
// The left paddle is driven by W/S or by the self-play bounce rule, the right
// paddle by the arrow keys. A ball that leaves the arena ends the game.
package pong

import (
	"github.com/vovakirdan/termpong/internal/assets"
	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/core"
)

// Status is the application status flag.
type Status int

const (
	StatusRunning Status = iota
	StatusTerminated
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusTerminated {
		return "TERMINATED"
	}
	return "RUNNING"
}

// EndReason records why a game stopped.
type EndReason string

const (
	ReasonNone        EndReason = ""
	ReasonQuit        EndReason = "quit"
	ReasonWindowClose EndReason = "window_close"
	ReasonOutOfBounds EndReason = "out_of_bounds"
	ReasonFrameLimit  EndReason = "frame_limit"
)

// Counts tallies collision events for one game.
type Counts struct {
	Left  int
	Right int
	Wall  int
}

// State is the complete simulation state. It is owned by the loop and
// passed by pointer to every phase.
type State struct {
	Ball  Entity
	Left  Entity
	Right Entity

	PrevTicks    float64 // seconds, taken from the loop clock
	SelfPlay     bool
	SelfVelocity core.Vec2
	Status       Status
	Reason       EndReason
	Frame        uint64
	Counts       Counts

	cfg config.PongConfig
}

// NewState builds the three entities at their configured offsets with zero
// displacement and the configured initial ball velocity.
func NewState(cfg config.PongConfig, sprites assets.Sprites) *State {
	s := &State{
		Ball:         newEntity(BallID, cfg.Entities.Ball, sprites.Ball),
		Left:         newEntity(LeftPaddleID, cfg.Entities.LeftPaddle, sprites.LeftPaddle),
		Right:        newEntity(RightPaddleID, cfg.Entities.RightPaddle, sprites.RightPaddle),
		SelfPlay:     cfg.SelfPlay.Enabled,
		SelfVelocity: cfg.SelfPlay.Velocity,
		Status:       StatusRunning,
		cfg:          cfg,
	}
	s.Ball.Velocity = cfg.Physics.BallVelocity
	return s
}

// Terminate stops the game. It is sticky: the first reason wins and the
// status never returns to running.
func (s *State) Terminate(reason EndReason) {
	if s.Status == StatusTerminated {
		return
	}
	s.Status = StatusTerminated
	s.Reason = reason
}

// Running reports whether the game is still running.
func (s *State) Running() bool {
	return s.Status == StatusRunning
}

// Entities returns the entities in draw order: ball, left paddle, right paddle.
func (s *State) Entities() []*Entity {
	return []*Entity{&s.Ball, &s.Left, &s.Right}
}

// DrawList returns this frame's drawables in draw order.
func (s *State) DrawList() []core.Drawable {
	entities := s.Entities()
	list := make([]core.Drawable, 0, len(entities))
	for _, e := range entities {
		list = append(list, e.Drawable())
	}
	return list
}
