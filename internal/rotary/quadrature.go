package rotary

import "time"

// Transition codes ((previous << 2) | current) that confirm one detent. All other codes
// are contact bounce or a skipped state and are dropped.
const (
	transitionCW  = 0b1110
	transitionCCW = 0b1101
)

// QuadratureDecoder turns A/B edges into rotation events.
// Not safe for concurrent use: edges must be delivered serially, which is what a single
// gpiocdev line request guarantees.
type QuadratureDecoder struct {
	out        Emitter
	data       bool
	clock      bool
	lastStatus uint8
}

// NewQuadratureDecoder seeds the decoder with the current line levels.
func NewQuadratureDecoder(data, clock bool, out Emitter) *QuadratureDecoder {
	d := &QuadratureDecoder{out: out, data: data, clock: clock}
	d.lastStatus = d.status()
	return d
}

// Edge records a level change on the data or clock line and emits at most one event.
// Edges for other lines are ignored.
func (d *QuadratureDecoder) Edge(line Line, level bool, at time.Time) {
	switch line {
	case LineData:
		d.data = level
	case LineClock:
		d.clock = level
	default:
		return
	}

	status := d.status()
	if status == d.lastStatus {
		return
	}

	switch (d.lastStatus << 2) | status {
	case transitionCW:
		d.out.Offer(Event{Type: EventClockwise, Timestamp: at})
	case transitionCCW:
		d.out.Offer(Event{Type: EventCounterClockwise, Timestamp: at})
	}

	d.lastStatus = status
}

// Status returns the last seen 2-bit pin state (data << 1 | clock).
func (d *QuadratureDecoder) Status() uint8 {
	return d.lastStatus
}

func (d *QuadratureDecoder) status() uint8 {
	var s uint8
	if d.data {
		s |= 0b10
	}
	if d.clock {
		s |= 0b01
	}
	return s
}
