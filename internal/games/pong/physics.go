package pong

import (
	"math"

	"github.com/vovakirdan/termpong/internal/core"
)

// Update advances the simulation to timestamp now (seconds on the loop
// clock) and returns the collision events of this frame.
//
// Order: paddles move, the ball integrates under gravity, transforms are
// composed, then paddle hits, wall bounces and the out-of-bounds test run
// against this frame's positions.
func Update(s *State, in Intents, now float64) []Event {
	dt := now - s.PrevTicks
	if dt < 0 {
		dt = 0
	}
	s.PrevTicks = now
	s.Frame++

	s.moveLeftPaddle(in.Left, dt)
	s.moveRightPaddle(in.Right, dt)
	s.integrateBall(dt)
	s.compose()

	var events []Event
	if s.hitsPaddle(&s.Right, 1) {
		s.bounceOffPaddle()
		s.Counts.Right++
		events = append(events, s.event(EventRightCollision))
	}
	if s.hitsPaddle(&s.Left, -1) {
		s.bounceOffPaddle()
		s.Counts.Left++
		events = append(events, s.event(EventLeftCollision))
	}
	if s.ballOutsideWalls() {
		s.Ball.Velocity.Y = -s.Ball.Velocity.Y
		s.Counts.Wall++
		events = append(events, s.event(EventWallCollision))
	}
	if s.ballOutOfBounds() {
		s.Terminate(ReasonOutOfBounds)
	}

	// nudges moved the ball; keep transforms in step with positions
	s.compose()
	return events
}

func (s *State) moveLeftPaddle(intent, dt float64) {
	speed := s.cfg.Physics.PaddleSpeed
	if !s.SelfPlay {
		s.Left.Position.Y += intent * speed * dt
		return
	}

	step := s.SelfVelocity.Mul(speed)
	if !s.cfg.SelfPlay.FrameLocked {
		// per-frame velocity normalized to the configured tick rate
		step = step.Mul(dt * float64(s.cfg.Loop.TickRate))
	}
	s.Left.Position = s.Left.Position.Add(step)

	b := s.Left.Bounds()
	switch {
	case b.Max().Y > s.cfg.Arena.Top:
		s.SelfVelocity.Y = -math.Abs(s.SelfVelocity.Y)
	case b.Min().Y < s.cfg.Arena.Bottom:
		s.SelfVelocity.Y = math.Abs(s.SelfVelocity.Y)
	}
}

func (s *State) moveRightPaddle(intent, dt float64) {
	s.Right.Position.Y += intent * s.cfg.Physics.PaddleSpeed * dt
}

// integrateBall applies gravity to the vertical velocity, then moves the
// ball with the updated velocity (explicit Euler on both axes).
func (s *State) integrateBall(dt float64) {
	s.Ball.Velocity.Y += s.cfg.Physics.Gravity.Y * dt
	s.Ball.Position = s.Ball.Position.Add(s.Ball.Velocity.Mul(dt))
}

func (s *State) compose() {
	for _, e := range s.Entities() {
		e.Compose()
	}
}

// hitsPaddle reports a collision when the center gaps on both axes are
// within the minimum collision distance and the ball moves toward the
// paddle. side is +1 for the paddle on the positive-x side, -1 otherwise.
func (s *State) hitsPaddle(p *Entity, side float64) bool {
	minDist := s.cfg.Physics.MinCollisionDistance
	gap := s.Ball.World().Sub(p.World()).Abs().Sub(core.V(minDist, minDist))
	if gap.X > 0 || gap.Y > 0 {
		return false
	}
	return core.Sign(s.Ball.Velocity.X) == side
}

// bounceOffPaddle reflects the horizontal velocity, then nudges the ball
// along the reflected velocity. After reflection the x component points
// along the paddle's outward normal, so the nudge always separates the ball
// from the paddle it hit.
func (s *State) bounceOffPaddle() {
	s.Ball.Velocity.X = -s.Ball.Velocity.X
	s.Ball.Position = s.Ball.Position.Add(s.Ball.Velocity.Mul(s.cfg.Physics.NudgeFactor))
}

func (s *State) ballOutsideWalls() bool {
	b := s.Ball.Bounds()
	return b.Max().Y > s.cfg.Arena.Top || b.Min().Y < s.cfg.Arena.Bottom
}

// ballOutOfBounds is true once the ball is entirely past either side.
func (s *State) ballOutOfBounds() bool {
	b := s.Ball.Bounds()
	return b.Max().X <= s.cfg.Arena.Left || b.Min().X >= s.cfg.Arena.Right
}

func (s *State) event(kind EventKind) Event {
	return Event{
		Kind:  kind,
		Frame: s.Frame,
		Ball:  s.Ball.World(),
	}
}
