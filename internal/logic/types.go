// Package logic contains the pure kitchen-timer state machine.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// Build-time limits.
const (
	DefaultTimerSeconds = 8 * 60
	MaxTimeSeconds      = 99*60 + 59
	MinTimeSeconds      = 1
)

// State is the countdown state.
type State string

const (
	StateActive  State = "ACTIVE"
	StatePaused  State = "PAUSED"
	StateExpired State = "EXPIRED"
)

// Mode is what the knob currently adjusts.
type Mode string

const (
	ModeSettingMinutes Mode = "SET_MINUTES"
	ModeSettingSeconds Mode = "SET_SECONDS"
	ModeRunning        Mode = "RUNNING"
)

// next returns the mode a long press moves to.
func (m Mode) next() Mode {
	switch m {
	case ModeSettingMinutes:
		return ModeSettingSeconds
	case ModeSettingSeconds:
		return ModeRunning
	default:
		return ModeSettingMinutes
	}
}

// Snapshot is the complete timer state. It is a value type.
type Snapshot struct {
	State   State
	Mode    Mode
	Seconds int
}

// Valid reports whether the snapshot satisfies the clamp invariant. Seconds is in
// [1, MaxTimeSeconds], except that an expired timer holds 0.
func (s Snapshot) Valid() bool {
	if s.State == StateExpired && s.Seconds == 0 {
		return true
	}
	return s.Seconds >= MinTimeSeconds && s.Seconds <= MaxTimeSeconds
}

// Display returns the remaining time as "MM:SS".
func (s Snapshot) Display() string {
	return FormatTime(s.Seconds)
}

// FormatTime formats seconds as zero-padded "MM:SS". Negative values show as 00:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Effects is the set of side effects a transition asks the control loop to perform.
type Effects uint8

const (
	RequestRedraw Effects = 1 << iota
	RequestEndSound
	RequestShortBeep
)

// Has reports whether all effects in f are set.
func (e Effects) Has(f Effects) bool {
	return e&f == f
}

func (e Effects) String() string {
	if e == 0 {
		return "none"
	}
	s := ""
	for _, x := range []struct {
		f    Effects
		name string
	}{
		{RequestRedraw, "redraw"},
		{RequestEndSound, "end_sound"},
		{RequestShortBeep, "short_beep"},
	} {
		if e.Has(x.f) {
			if s != "" {
				s += "|"
			}
			s += x.name
		}
	}
	return s
}

// EventType identifies a timer transition reported to telemetry.
type EventType string

const (
	EventStarted     EventType = "TIMER_STARTED"
	EventPaused      EventType = "TIMER_PAUSED"
	EventExpired     EventType = "TIMER_EXPIRED"
	EventReset       EventType = "TIMER_RESET"
	EventModeChanged EventType = "MODE_CHANGED"
)

// Event is a timer transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
	Mode      Mode
	Seconds   int
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Started int
	Paused  int
	Expired int
	Reset   int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
