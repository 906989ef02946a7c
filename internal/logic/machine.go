package logic

import (
	"time"

	"github.com/sweeney/kitchen-timer/internal/rotary"
)

// Apply is the transition function for encoder events. It never fails: events with no
// defined transition leave the snapshot unchanged and request nothing.
// defaultSeconds is the value an expired timer resets to.
func Apply(s Snapshot, ev rotary.Event, defaultSeconds int) (Snapshot, Effects) {
	switch ev.Type {
	case rotary.EventClockwise, rotary.EventCounterClockwise:
		step := stepFor(s.Mode)
		if step == 0 {
			return s, 0
		}
		if ev.Type == rotary.EventCounterClockwise {
			step = -step
		}
		n := clamp(s.Seconds + step)
		if n == s.Seconds {
			return s, 0
		}
		s.Seconds = n
		return s, RequestRedraw

	case rotary.EventReleased:
		if ev.AfterLongPress {
			return s, 0
		}
		switch s.State {
		case StateActive:
			s.State = StatePaused
		case StatePaused:
			s.Mode = ModeRunning
			s.State = StateActive
		case StateExpired:
			s.Seconds = clamp(defaultSeconds)
			s.State = StatePaused
		}
		return s, RequestRedraw

	case rotary.EventLongPress:
		// Mode changes are locked out while counting down.
		if s.State == StateActive {
			return s, 0
		}
		s.Mode = s.Mode.next()
		return s, RequestRedraw | RequestShortBeep
	}

	return s, 0
}

// Tick is the transition function for the periodic tick. lastTick is the Seconds value
// seen on the previous tick; idle timers only redraw when it changed.
func Tick(s Snapshot, lastTick int) (Snapshot, Effects) {
	if s.State == StateActive {
		s.Seconds--
		if s.Seconds <= 0 {
			s.Seconds = 0
			s.State = StateExpired
			return s, RequestEndSound
		}
		return s, RequestRedraw
	}

	if s.Seconds != lastTick {
		return s, RequestRedraw
	}
	return s, 0
}

func stepFor(m Mode) int {
	switch m {
	case ModeSettingMinutes:
		return 60
	case ModeSettingSeconds:
		return 1
	default:
		return 0
	}
}

func clamp(n int) int {
	if n < MinTimeSeconds {
		return MinTimeSeconds
	}
	if n > MaxTimeSeconds {
		return MaxTimeSeconds
	}
	return n
}

// Diff returns the telemetry events describing the change from before to after.
func Diff(before, after Snapshot, at time.Time) []Event {
	var types []EventType

	switch {
	case before.State != StateActive && after.State == StateActive:
		types = append(types, EventStarted)
	case before.State == StateActive && after.State == StatePaused:
		types = append(types, EventPaused)
	case before.State != StateExpired && after.State == StateExpired:
		types = append(types, EventExpired)
	case before.State == StateExpired && after.State == StatePaused:
		types = append(types, EventReset)
	}
	if before.Mode != after.Mode {
		types = append(types, EventModeChanged)
	}

	if len(types) == 0 {
		return nil
	}
	events := make([]Event, len(types))
	for i, t := range types {
		events[i] = Event{
			Timestamp: at,
			Type:      t,
			State:     after.State,
			Mode:      after.Mode,
			Seconds:   after.Seconds,
		}
	}
	return events
}

// Machine owns the timer snapshot. It is not safe for concurrent use; the control loop
// is its only caller.
type Machine struct {
	snap           Snapshot
	defaultSeconds int
	lastTick       int
	counts         EventCounts
}

// NewMachine creates a paused timer in run mode, set to the default time.
func NewMachine() *Machine {
	return NewMachineFrom(Snapshot{
		State:   StatePaused,
		Mode:    ModeRunning,
		Seconds: DefaultTimerSeconds,
	})
}

// NewMachineFrom creates a machine starting at s.
func NewMachineFrom(s Snapshot) *Machine {
	return &Machine{
		snap:           s,
		defaultSeconds: DefaultTimerSeconds,
		lastTick:       -1,
	}
}

// Handle applies an encoder event. It returns the requested effects and any telemetry
// events the transition produced.
func (m *Machine) Handle(ev rotary.Event) (Effects, []Event) {
	before := m.snap
	var eff Effects
	m.snap, eff = Apply(before, ev, m.defaultSeconds)
	return eff, m.record(before, ev.Timestamp)
}

// Tick advances the timer by one period.
func (m *Machine) Tick(now time.Time) (Effects, []Event) {
	before := m.snap
	var eff Effects
	m.snap, eff = Tick(before, m.lastTick)
	m.lastTick = m.snap.Seconds
	return eff, m.record(before, now)
}

func (m *Machine) record(before Snapshot, at time.Time) []Event {
	events := Diff(before, m.snap, at)
	for _, e := range events {
		switch e.Type {
		case EventStarted:
			m.counts.Started++
		case EventPaused:
			m.counts.Paused++
		case EventExpired:
			m.counts.Expired++
		case EventReset:
			m.counts.Reset++
		}
	}
	return events
}

// Snapshot returns the current timer state.
func (m *Machine) Snapshot() Snapshot {
	return m.snap
}

// Counts returns the number of each transition since startup.
func (m *Machine) Counts() EventCounts {
	return m.counts
}
