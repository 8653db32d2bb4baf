package pong

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termpong/internal/assets"
	"github.com/vovakirdan/termpong/internal/config"
	"github.com/vovakirdan/termpong/internal/core"
)

const tol = 1e-9

func newTestState() *State {
	return NewState(config.DefaultPongConfig(), assets.Sprites{LeftPaddle: 0, RightPaddle: 1, Ball: 2})
}

func newTestStateWith(mutate func(*config.PongConfig)) *State {
	cfg := config.DefaultPongConfig()
	mutate(&cfg)
	return NewState(cfg, assets.Sprites{LeftPaddle: 0, RightPaddle: 1, Ball: 2})
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func TestNewStateInitialPlacement(t *testing.T) {
	s := newTestState()

	if !s.Running() {
		t.Error("new state should be running")
	}
	if s.Ball.Position != (core.Vec2{}) || s.Left.Position != (core.Vec2{}) || s.Right.Position != (core.Vec2{}) {
		t.Error("entities should start with zero displacement")
	}
	if s.Ball.Velocity != core.V(2.0, -0.02) {
		t.Errorf("ball velocity = %v, expected (2, -0.02)", s.Ball.Velocity)
	}
	if s.Left.Velocity != (core.Vec2{}) || s.Right.Velocity != (core.Vec2{}) {
		t.Error("paddles should have no velocity")
	}
	if s.Ball.World() != core.V(-4, 2) {
		t.Errorf("ball world = %v, expected (-4, 2)", s.Ball.World())
	}
}

func TestBallIntegrationScenario(t *testing.T) {
	s := newTestState()

	Update(s, Intents{}, 0.1)

	if !s.Ball.Velocity.ApproxEqual(core.V(2.0, -0.029), 1e-9) {
		t.Errorf("velocity = %v, expected (2.0, -0.029)", s.Ball.Velocity)
	}
	if !s.Ball.Position.ApproxEqual(core.V(0.2, -0.0029), 1e-9) {
		t.Errorf("position = %v, expected (0.2, -0.0029)", s.Ball.Position)
	}
}

func TestGravityOnlyAffectsVerticalVelocity(t *testing.T) {
	s := newTestState()
	s.Ball.Velocity = core.V(0, 0.5)

	dt := 0.25
	Update(s, Intents{}, dt)

	want := 0.5 + s.cfg.Physics.Gravity.Y*dt
	if !near(s.Ball.Velocity.Y, want) {
		t.Errorf("vy = %v, expected %v", s.Ball.Velocity.Y, want)
	}
	if s.Ball.Velocity.X != 0 {
		t.Errorf("vx = %v, gravity.x must not be applied", s.Ball.Velocity.X)
	}
}

func TestDeltaTimeFromTimestamps(t *testing.T) {
	s := newTestState()

	Update(s, Intents{Right: 1}, 0.5)
	Update(s, Intents{Right: 1}, 0.75)

	// 2 units/s for 0.75 s total
	if !near(s.Right.Position.Y, 1.5) {
		t.Errorf("right paddle y = %v, expected 1.5", s.Right.Position.Y)
	}
	if s.PrevTicks != 0.75 {
		t.Errorf("PrevTicks = %v, expected 0.75", s.PrevTicks)
	}

	// A timestamp going backwards counts as zero elapsed time
	before := s.Right.Position.Y
	Update(s, Intents{Right: 1}, 0.5)
	if s.Right.Position.Y != before {
		t.Errorf("negative dt moved the paddle: %v -> %v", before, s.Right.Position.Y)
	}
}

func TestWallBounceFlipsOnce(t *testing.T) {
	tests := []struct {
		name     string
		position core.Vec2
		velocity core.Vec2
	}{
		{"above top", core.V(0, 2), core.V(0, 1)},
		{"below bottom", core.V(0, -5.5), core.V(0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState()
			s.Ball.Position = tc.position
			s.Ball.Velocity = tc.velocity

			dt := 0.01
			events := Update(s, Intents{}, dt)

			expected := -(tc.velocity.Y + s.cfg.Physics.Gravity.Y*dt)
			if !near(s.Ball.Velocity.Y, expected) {
				t.Errorf("vy = %v, expected %v", s.Ball.Velocity.Y, expected)
			}

			walls := 0
			for _, ev := range events {
				if ev.Kind == EventWallCollision {
					walls++
				}
			}
			if walls != 1 || s.Counts.Wall != 1 {
				t.Errorf("wall events = %d (count %d), expected exactly 1", walls, s.Counts.Wall)
			}
		})
	}
}

func TestOutOfBoundsTerminates(t *testing.T) {
	tests := []struct {
		name     string
		position core.Vec2
	}{
		{"past right edge", core.V(10, 0)},  // world x 6, left edge 5.5
		{"past left edge", core.V(-1.6, 0)}, // world x -5.6, right edge -5.1
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState()
			s.Ball.Position = tc.position
			s.Ball.Velocity = core.V(0, 0)

			Update(s, Intents{}, 0.01)

			if s.Status != StatusTerminated {
				t.Fatalf("status = %v, expected TERMINATED", s.Status)
			}
			if s.Reason != ReasonOutOfBounds {
				t.Errorf("reason = %q, expected %q", s.Reason, ReasonOutOfBounds)
			}

			// Moving the ball back never resumes the game
			s.Ball.Position = core.Vec2{}
			Update(s, Intents{}, 0.02)
			if s.Running() {
				t.Error("terminated game resumed running")
			}
		})
	}
}

func TestBallPartlyOutsideKeepsRunning(t *testing.T) {
	s := newTestState()
	s.Ball.Position = core.V(8.8, 0) // world x 4.8, straddles the right edge
	s.Ball.Velocity = core.V(0, 0)

	Update(s, Intents{}, 0.01)

	if !s.Running() {
		t.Error("ball overlapping the edge should not end the game")
	}
}

func TestPaddleCollisionOnlyWhenMovingToward(t *testing.T) {
	tests := []struct {
		name      string
		paddle    func(*State) *Entity
		velocityX float64
		wantKind  EventKind // 0 means no collision
	}{
		{"right paddle, moving away", func(s *State) *Entity { return &s.Right }, -1, 0},
		{"right paddle, moving toward", func(s *State) *Entity { return &s.Right }, 1, EventRightCollision},
		{"left paddle, moving away", func(s *State) *Entity { return &s.Left }, 1, 0},
		{"left paddle, moving toward", func(s *State) *Entity { return &s.Left }, -1, EventLeftCollision},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState()
			p := tc.paddle(s)
			// Put the ball on the paddle center
			s.Ball.Position = p.World().Sub(s.Ball.BaseOffset)
			s.Ball.Velocity = core.V(tc.velocityX, 0)
			start := s.Ball.Position.X

			events := Update(s, Intents{}, 0.01)

			if tc.wantKind == 0 {
				if len(events) != 0 {
					t.Fatalf("unexpected events %v", events)
				}
				if s.Ball.Velocity.X != tc.velocityX {
					t.Errorf("vx changed to %v without a collision", s.Ball.Velocity.X)
				}
				return
			}

			if len(events) != 1 || events[0].Kind != tc.wantKind {
				t.Fatalf("events = %v, expected one %v", events, tc.wantKind)
			}
			if s.Ball.Velocity.X != -tc.velocityX {
				t.Errorf("vx = %v, expected reflected %v", s.Ball.Velocity.X, -tc.velocityX)
			}

			// Integration moved the ball by v*dt toward the paddle; the nudge
			// then pushes it by 10% of the reflected velocity, away from it.
			moved := s.Ball.Position.X - start
			expected := tc.velocityX*0.01 - tc.velocityX*0.1
			if !near(moved, expected) {
				t.Errorf("ball moved %v, expected %v", moved, expected)
			}
		})
	}
}

func TestCollisionOutsideDistanceIgnored(t *testing.T) {
	s := newTestState()
	// 1.5 above the right paddle center: inside the sprite, outside the
	// minimum collision distance
	s.Ball.Position = s.Right.World().Add(core.V(0, 1.5)).Sub(s.Ball.BaseOffset)
	s.Ball.Velocity = core.V(1, 0)

	if events := Update(s, Intents{}, 0.01); len(events) != 0 {
		t.Errorf("events = %v, expected none", events)
	}
}

func TestSelfPlayReflectsAtEdge(t *testing.T) {
	s := newTestState()
	s.SelfPlay = true
	s.Left.Position.Y = 5 // world center 3, top 4.5 > 3.75
	s.SelfVelocity = core.V(0, 0.02)

	Update(s, Intents{}, 1.0/60)

	if s.SelfVelocity.Y >= 0 {
		t.Errorf("self velocity y = %v, expected sign flip to negative", s.SelfVelocity.Y)
	}

	// Bottom edge
	s.Left.Position.Y = -1.5 // world center -3.5
	s.SelfVelocity = core.V(0, -0.02)
	Update(s, Intents{}, 2.0/60)
	if s.SelfVelocity.Y <= 0 {
		t.Errorf("self velocity y = %v, expected sign flip to positive", s.SelfVelocity.Y)
	}
}

func TestSelfPlayStep(t *testing.T) {
	t.Run("frame locked ignores dt", func(t *testing.T) {
		s := newTestStateWith(func(c *config.PongConfig) { c.SelfPlay.FrameLocked = true })
		s.SelfPlay = true

		Update(s, Intents{Left: 1}, 5.0)

		// velocity * speed, independent of dt, user input ignored
		if !near(s.Left.Position.Y, -0.04) {
			t.Errorf("left y = %v, expected -0.04", s.Left.Position.Y)
		}
	})

	t.Run("normalized to tick rate", func(t *testing.T) {
		s := newTestState()
		s.SelfPlay = true

		Update(s, Intents{Left: 1}, 1.0/60)
		if !near(s.Left.Position.Y, -0.04) {
			t.Errorf("left y after one 60Hz frame = %v, expected -0.04", s.Left.Position.Y)
		}

		Update(s, Intents{Left: 1}, 1.0/60+1.0/30)
		if !near(s.Left.Position.Y, -0.12) {
			t.Errorf("left y after a 30Hz frame = %v, expected -0.12", s.Left.Position.Y)
		}
	})
}

func TestUserPaddleMotion(t *testing.T) {
	s := newTestState()

	Update(s, Intents{Left: 1, Right: -1}, 0.5)

	if !near(s.Left.Position.Y, 1) {
		t.Errorf("left y = %v, expected 1", s.Left.Position.Y)
	}
	if !near(s.Right.Position.Y, -1) {
		t.Errorf("right y = %v, expected -1", s.Right.Position.Y)
	}
	if s.Left.Position.X != 0 || s.Right.Position.X != 0 {
		t.Error("paddles should only move vertically")
	}
}

func TestTransformsDeriveFromCurrentFields(t *testing.T) {
	s := newTestState()
	clock := &StepClock{DT: 1.0 / 60}

	for i := 0; i < 200 && s.Running(); i++ {
		in := Intents{}
		if i%3 == 0 {
			in.Left = 1
		}
		if i%5 == 0 {
			in.Right = -1
		}
		if i == 50 {
			s.SelfPlay = true
		}
		Update(s, in, clock.Now())

		for _, e := range s.Entities() {
			want := core.Identity().Translate(e.BaseOffset.Add(e.Position)).Scale(e.Scale)
			if !e.Transform.ApproxEqual(want, tol) {
				t.Fatalf("frame %d: %v transform is stale", s.Frame, e.ID)
			}
		}
	}
}

func TestDrawListOrder(t *testing.T) {
	s := newTestState()
	list := s.DrawList()

	if len(list) != 3 {
		t.Fatalf("draw list has %d entries, expected 3", len(list))
	}
	names := []string{list[0].Name, list[1].Name, list[2].Name}
	if strings.Join(names, ",") != "ball,left,right" {
		t.Errorf("draw order = %v, expected ball,left,right", names)
	}
	if list[0].Texture != 2 || list[1].Texture != 0 || list[2].Texture != 1 {
		t.Errorf("textures = %d,%d,%d", list[0].Texture, list[1].Texture, list[2].Texture)
	}
}

func TestSamplerToggleRisingEdge(t *testing.T) {
	var sm Sampler
	held := core.NewInputFrame()
	held.Set(core.ActionToggleSelfPlay)
	released := core.NewInputFrame()

	frames := []core.InputFrame{held, held, held, released, held}
	want := []bool{true, false, false, false, true}

	for i, f := range frames {
		if got := sm.Sample(f).ToggleSelfPlay; got != want[i] {
			t.Errorf("frame %d: toggle = %v, expected %v", i, got, want[i])
		}
	}
}

func TestSamplerIntents(t *testing.T) {
	var sm Sampler
	f := core.NewInputFrame()
	f.Set(core.ActionLeftDown)
	f.Set(core.ActionRightUp)
	f.Set(core.ActionQuit)

	in := sm.Sample(f)
	if in.Left != -1 || in.Right != 1 || !in.Quit {
		t.Errorf("intents = %+v", in)
	}
}

// scriptedInput replays frames, then returns empty frames.
type scriptedInput struct {
	frames []core.InputFrame
	i      int
}

func (s *scriptedInput) Poll() core.InputFrame {
	if s.i >= len(s.frames) {
		return core.InputFrame{}
	}
	f := s.frames[s.i]
	s.i++
	return f
}

type countingRenderer struct {
	frames int
	last   []core.Drawable
}

func (r *countingRenderer) Render(list []core.Drawable) {
	r.frames++
	r.last = list
}

func TestLoopCloseStopsBeforeUpdate(t *testing.T) {
	s := newTestState()
	r := &countingRenderer{}
	loop := NewLoop(s, nil, r, &StepClock{DT: 1.0 / 60})

	if !loop.Step() {
		t.Fatal("first Step should run")
	}
	loop.Close()

	frame := s.Frame
	if loop.Step() {
		t.Error("Step after close should not run")
	}
	if r.frames != 1 {
		t.Errorf("rendered %d frames, expected 1", r.frames)
	}
	if s.Frame != frame {
		t.Error("Update ran after close")
	}
	if s.Reason != ReasonWindowClose {
		t.Errorf("reason = %q, expected %q", s.Reason, ReasonWindowClose)
	}
}

func TestLoopQuitCompletesFrame(t *testing.T) {
	quit := core.NewInputFrame()
	quit.Set(core.ActionQuit)

	s := newTestState()
	r := &countingRenderer{}
	loop := NewLoop(s, &scriptedInput{frames: []core.InputFrame{quit}}, r, &StepClock{DT: 1.0 / 60})

	if !loop.Step() {
		t.Fatal("quit frame should still run")
	}
	if r.frames != 1 || s.Frame != 1 {
		t.Errorf("frames rendered=%d updated=%d, expected 1/1", r.frames, s.Frame)
	}
	if s.Running() {
		t.Error("quit should terminate")
	}
	if loop.Step() {
		t.Error("Step after quit should not run")
	}
}

func TestLoopTogglesSelfPlay(t *testing.T) {
	toggle := core.NewInputFrame()
	toggle.Set(core.ActionToggleSelfPlay)

	s := newTestState()
	loop := NewLoop(s, &scriptedInput{frames: []core.InputFrame{toggle, toggle, {}, toggle}}, nil, &StepClock{DT: 1.0 / 60})

	want := []bool{true, true, true, false}
	for i, w := range want {
		loop.Step()
		if s.SelfPlay != w {
			t.Errorf("frame %d: self-play = %v, expected %v", i, s.SelfPlay, w)
		}
	}
}

func TestLoopRunUntilOutOfBounds(t *testing.T) {
	s := newTestState()
	var events []Event
	loop := NewLoop(s, nil, nil, &StepClock{DT: 1.0 / 60}, EventFunc(func(ev Event) {
		events = append(events, ev)
	}))

	n := loop.Run(1000)

	if s.Reason != ReasonOutOfBounds {
		t.Fatalf("reason = %q, expected out_of_bounds", s.Reason)
	}
	// ball starts at x=-4 moving 2 u/s and must travel 9.5 units
	if n < 280 || n > 290 {
		t.Errorf("ran %d frames, expected about 285", n)
	}
	if len(events) != 0 {
		t.Errorf("default serve should miss both paddles, got %v", events)
	}
}

func TestLoopRunFrameLimit(t *testing.T) {
	s := newTestState()
	loop := NewLoop(s, nil, nil, &StepClock{DT: 1.0 / 60})

	if n := loop.Run(10); n != 10 {
		t.Errorf("Run(10) = %d", n)
	}
	if s.Reason != ReasonFrameLimit {
		t.Errorf("reason = %q, expected frame_limit", s.Reason)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := newTestState()
		s.SelfPlay = true
		s.Ball.Velocity = core.V(-1.5, 0.8)
		loop := NewLoop(s, nil, nil, &StepClock{DT: 1.0 / 60})
		loop.Run(600)
		return s.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("Determinism failed:\n%+v\n%+v", a, b)
	}
}

func TestLogSinkWritesLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{ReportTimestamp: true})

	sink := NewLogSink(logger)
	sink.Record(Event{Kind: EventRightCollision, Frame: 7})
	sink.Record(Event{Kind: EventWallCollision, Frame: 8})

	out := buf.String()
	if !strings.Contains(out, "Right Collision.") || !strings.Contains(out, "Wall Collision.") {
		t.Errorf("log output missing labels: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected one line per event, got %q", out)
	}
}

func TestEventKindCodes(t *testing.T) {
	for _, k := range []EventKind{EventRightCollision, EventLeftCollision, EventWallCollision} {
		back, ok := ParseEventKind(k.Code())
		if !ok || back != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.Code(), back, ok)
		}
	}
	if _, ok := ParseEventKind("nope"); ok {
		t.Error("unknown code should not parse")
	}
}
