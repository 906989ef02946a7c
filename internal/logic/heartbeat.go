package logic

import "time"

// Heartbeat schedules the periodic liveness event. A non-positive interval disables it.
type Heartbeat struct {
	start    time.Time
	interval time.Duration
	next     time.Time
}

func NewHeartbeat(start time.Time, interval time.Duration) *Heartbeat {
	return &Heartbeat{start: start, interval: interval, next: start.Add(interval)}
}

// Due reports whether a heartbeat should be sent at now. When it returns true the next
// heartbeat is scheduled one interval after now, so a late tick does not cause a burst.
func (h *Heartbeat) Due(now time.Time, counts EventCounts) (HeartbeatData, bool) {
	if h.interval <= 0 || now.Before(h.next) {
		return HeartbeatData{}, false
	}
	h.next = now.Add(h.interval)
	return HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(h.start),
		Counts:    counts,
	}, true
}
