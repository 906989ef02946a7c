// Package rotary decodes a KY-040 style rotary encoder (quadrature A/B lines plus a
// momentary push switch) into semantic events.
//
// Decoding runs in the edge context: whatever goroutine the GPIO layer delivers edges on,
// plus the long-press deadline goroutine. Code in that context only touches small fixed
// state and hands events to a Queue. Listeners registered on a Dispatcher are called from
// the application loop when it drains the queue.
package rotary

import "time"

// Line identifies one of the encoder's input lines.
type Line int

const (
	LineData   Line = iota // DT / B
	LineClock              // CLK / A
	LineSwitch             // SW
)

func (l Line) String() string {
	switch l {
	case LineData:
		return "DT"
	case LineClock:
		return "CLK"
	case LineSwitch:
		return "SW"
	default:
		return "UNKNOWN"
	}
}

// Edge is a single level change on one line, as reported by the GPIO layer.
type Edge struct {
	Line  Line
	Level bool // true = high
	Time  time.Time
}

// EventType identifies a decoded encoder event.
type EventType string

const (
	EventClockwise        EventType = "CW"
	EventCounterClockwise EventType = "CCW"
	EventPressed          EventType = "PRESSED"
	EventReleased         EventType = "RELEASED"
	EventLongPress        EventType = "LONG_PRESS"
)

// Event is a decoded encoder event. Events are values and are never mutated after
// creation.
type Event struct {
	Type      EventType
	Timestamp time.Time
	// AfterLongPress is set on EventReleased when EventLongPress already fired for the
	// same press, so the release is not a short press.
	AfterLongPress bool
}

// IsRotation reports whether the event came from the quadrature lines.
func (e Event) IsRotation() bool {
	return e.Type == EventClockwise || e.Type == EventCounterClockwise
}

// IsShortPress reports whether the event is a release that ends a short press.
func (e Event) IsShortPress() bool {
	return e.Type == EventReleased && !e.AfterLongPress
}

// Emitter accepts decoded events from the edge context. Implementations must not block.
type Emitter interface {
	Offer(ev Event) bool
}

// Levels holds the three line levels, sampled once at startup to seed the decoders.
type Levels struct {
	Data   bool
	Clock  bool
	Switch bool
}

// Default timing.
const (
	DefaultLongPress = 1000 * time.Millisecond
	DefaultQueueSize = 64
)
