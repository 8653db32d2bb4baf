package storage

import (
	"time"

	"github.com/vovakirdan/termpong/internal/games/pong"
)

// Recorder collects the events of one running game and saves the session
// when the game ends. It implements pong.EventSink.
type Recorder struct {
	store   *Store
	user    string
	started time.Time
	events  []SessionEvent
	saved   bool

	now func() time.Time
}

// NewRecorder starts recording a session for user.
func NewRecorder(store *Store, user string) *Recorder {
	r := &Recorder{
		store: store,
		user:  user,
		now:   time.Now,
	}
	r.started = r.now()
	return r
}

// Record buffers one collision event.
func (r *Recorder) Record(ev pong.Event) {
	r.events = append(r.events, SessionEvent{
		Frame: ev.Frame,
		Kind:  ev.Kind.Code(),
		BallX: ev.Ball.X,
		BallY: ev.Ball.Y,
		At:    r.now(),
	})
}

// Pending returns the number of buffered events.
func (r *Recorder) Pending() int {
	return len(r.events)
}

// Finish saves the session with the final snapshot. Only the first call
// writes; later calls return 0 and no error.
func (r *Recorder) Finish(snap pong.Snapshot) (int64, error) {
	if r.saved {
		return 0, nil
	}
	r.saved = true

	sess := Session{
		User:        r.user,
		StartedAt:   r.started,
		Duration:    r.now().Sub(r.started),
		Frames:      snap.Frame,
		LeftHits:    snap.LeftHits,
		RightHits:   snap.RightHits,
		WallBounces: snap.WallBounces,
		SelfPlay:    snap.SelfPlay,
		EndReason:   snap.EndReason,
	}
	return r.store.SaveSession(sess, r.events)
}

var _ pong.EventSink = (*Recorder)(nil)
