package rotary

import (
	"sync"
	"time"
)

// AfterFunc schedules f to run once after d and returns a function that cancels it.
// The returned function reports whether the call was cancelled before it ran.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// PressOption configures a PressClassifier.
type PressOption func(*PressClassifier)

// WithAfterFunc replaces time.AfterFunc for the long-press deadline.
func WithAfterFunc(fn AfterFunc) PressOption {
	return func(c *PressClassifier) {
		c.afterFunc = fn
	}
}

// WithNow replaces time.Now for long-press timestamps.
func WithNow(now func() time.Time) PressOption {
	return func(c *PressClassifier) {
		c.now = now
	}
}

// PressClassifier turns switch edges into press, release and long-press events.
// The switch is wired active-low: a low level means closed.
//
// Edge and the deadline callback may run on different goroutines; the small state below
// is guarded by mu, which is never held across anything that can block.
type PressClassifier struct {
	out       Emitter
	threshold time.Duration
	afterFunc AfterFunc
	now       func() time.Time

	mu        sync.Mutex
	lastLevel bool
	down      bool
	startedAt time.Time
	longFired bool
	armed     uint64 // generation of the live deadline
	stop      func() bool
}

// NewPressClassifier creates a classifier seeded with the switch's current level.
// A switch that is already closed at startup is not treated as a press.
func NewPressClassifier(level bool, threshold time.Duration, out Emitter, opts ...PressOption) *PressClassifier {
	c := &PressClassifier{
		out:       out,
		threshold: threshold,
		afterFunc: timeAfterFunc,
		now:       time.Now,
		lastLevel: level,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Edge records a switch level change.
func (c *PressClassifier) Edge(level bool, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if level == c.lastLevel {
		return
	}
	c.lastLevel = level

	if !level {
		c.cancelLocked()
		c.down = true
		c.startedAt = at
		c.longFired = false
		c.armed++
		gen := c.armed
		c.out.Offer(Event{Type: EventPressed, Timestamp: at})
		c.stop = c.afterFunc(c.threshold, func() { c.deadline(gen) })
		return
	}

	// Release without a press we saw, e.g. the switch was held at startup.
	if !c.down {
		return
	}

	c.cancelLocked()
	long := c.longFired
	c.down = false
	c.longFired = false
	c.startedAt = time.Time{}
	c.out.Offer(Event{Type: EventReleased, Timestamp: at, AfterLongPress: long})
}

// deadline runs when the long-press timer for generation gen fires. A stale generation
// means the press it belonged to is already over.
func (c *PressClassifier) deadline(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.armed || !c.down || c.longFired {
		return
	}
	c.longFired = true
	c.stop = nil
	c.out.Offer(Event{Type: EventLongPress, Timestamp: c.now()})
}

func (c *PressClassifier) cancelLocked() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// Down reports whether the switch is currently held and, if so, since when.
func (c *PressClassifier) Down() (bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.down, c.startedAt
}
