package pong

// Snapshot is a flat copy of the observable game state.
// Uses primitive types only for stable printing and storage.
type Snapshot struct {
	Frame       uint64  `yaml:"frame"`
	BallX       float64 `yaml:"ball_x"` // world space
	BallY       float64 `yaml:"ball_y"`
	BallVX      float64 `yaml:"ball_vx"`
	BallVY      float64 `yaml:"ball_vy"`
	LeftY       float64 `yaml:"left_y"` // world space paddle centers
	RightY      float64 `yaml:"right_y"`
	SelfPlay    bool    `yaml:"self_play"`
	Terminated  bool    `yaml:"terminated"`
	EndReason   string  `yaml:"end_reason,omitempty"`
	LeftHits    int     `yaml:"left_hits"`
	RightHits   int     `yaml:"right_hits"`
	WallBounces int     `yaml:"wall_bounces"`
}

// Snapshot returns the current game state.
func (s *State) Snapshot() Snapshot {
	ball := s.Ball.World()
	return Snapshot{
		Frame:       s.Frame,
		BallX:       ball.X,
		BallY:       ball.Y,
		BallVX:      s.Ball.Velocity.X,
		BallVY:      s.Ball.Velocity.Y,
		LeftY:       s.Left.World().Y,
		RightY:      s.Right.World().Y,
		SelfPlay:    s.SelfPlay,
		Terminated:  s.Status == StatusTerminated,
		EndReason:   string(s.Reason),
		LeftHits:    s.Counts.Left,
		RightHits:   s.Counts.Right,
		WallBounces: s.Counts.Wall,
	}
}
