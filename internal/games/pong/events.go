package pong

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termpong/internal/core"
)

// EventKind identifies a collision.
type EventKind int

const (
	EventRightCollision EventKind = iota + 1
	EventLeftCollision
	EventWallCollision
)

// String returns the console label of the event.
func (k EventKind) String() string {
	switch k {
	case EventRightCollision:
		return "Right Collision."
	case EventLeftCollision:
		return "Left Collision."
	case EventWallCollision:
		return "Wall Collision."
	default:
		return "Unknown Collision."
	}
}

// Code returns a stable short name for storage.
func (k EventKind) Code() string {
	switch k {
	case EventRightCollision:
		return "right"
	case EventLeftCollision:
		return "left"
	case EventWallCollision:
		return "wall"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of Code.
func ParseEventKind(code string) (EventKind, bool) {
	switch code {
	case "right":
		return EventRightCollision, true
	case "left":
		return EventLeftCollision, true
	case "wall":
		return EventWallCollision, true
	}
	return 0, false
}

// Event is one collision detected during Update.
type Event struct {
	Kind  EventKind
	Frame uint64
	Ball  core.Vec2 // ball center in world space after the response
}

// EventSink receives events as the loop produces them.
type EventSink interface {
	Record(ev Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(Event)

// Record calls f(ev).
func (f EventFunc) Record(ev Event) { f(ev) }

// LogSink writes one timestamped line per event.
type LogSink struct {
	Logger *log.Logger
}

// NewLogSink creates a sink around logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

// Record logs the event label.
func (l *LogSink) Record(ev Event) {
	l.Logger.Info(ev.Kind.String(), "frame", ev.Frame)
}
