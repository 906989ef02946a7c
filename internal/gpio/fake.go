package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/kitchen-timer/internal/rotary"
)

// FakeEncoder is a test double that replays scripted edges.
type FakeEncoder struct {
	// Initial is returned by Levels and tracks the level of each line as edges are
	// emitted.
	Initial rotary.Levels

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Levels()
	ReadError error

	// WatchError, if set, will be returned by Watch()
	WatchError error

	// Now stamps emitted edges. Defaults to time.Now.
	Now func() time.Time

	sink func(rotary.Edge)
}

// NewFakeEncoder creates a FakeEncoder at rest: all lines pulled high.
func NewFakeEncoder() *FakeEncoder {
	return &FakeEncoder{Initial: rotary.Levels{Data: true, Clock: true, Switch: true}}
}

// Levels returns the current scripted levels.
func (f *FakeEncoder) Levels() (rotary.Levels, error) {
	if f.ReadError != nil {
		return rotary.Levels{}, f.ReadError
	}
	return f.Initial, nil
}

// Watch registers fn as the edge receiver.
func (f *FakeEncoder) Watch(fn func(rotary.Edge)) error {
	if f.WatchError != nil {
		return f.WatchError
	}
	f.sink = fn
	return nil
}

// Emit delivers a single edge synchronously. Emitting before Watch is an error.
func (f *FakeEncoder) Emit(line rotary.Line, level bool) error {
	if f.sink == nil {
		return errors.New("fake encoder: not watching")
	}
	switch line {
	case rotary.LineData:
		f.Initial.Data = level
	case rotary.LineClock:
		f.Initial.Clock = level
	case rotary.LineSwitch:
		f.Initial.Switch = level
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	f.sink(rotary.Edge{Line: line, Level: level, Time: now()})
	return nil
}

// StepClockwise emits one full detent clockwise from rest (11 -> 10 -> 00 -> 01 -> 11).
func (f *FakeEncoder) StepClockwise() error {
	return f.emitAll([]rotary.Edge{
		{Line: rotary.LineClock, Level: false},
		{Line: rotary.LineData, Level: false},
		{Line: rotary.LineClock, Level: true},
		{Line: rotary.LineData, Level: true},
	})
}

// StepCounterClockwise emits one full detent counter-clockwise from rest
// (11 -> 01 -> 00 -> 10 -> 11).
func (f *FakeEncoder) StepCounterClockwise() error {
	return f.emitAll([]rotary.Edge{
		{Line: rotary.LineData, Level: false},
		{Line: rotary.LineClock, Level: false},
		{Line: rotary.LineData, Level: true},
		{Line: rotary.LineClock, Level: true},
	})
}

// Press closes the switch (active low).
func (f *FakeEncoder) Press() error {
	return f.Emit(rotary.LineSwitch, false)
}

// Release opens the switch.
func (f *FakeEncoder) Release() error {
	return f.Emit(rotary.LineSwitch, true)
}

func (f *FakeEncoder) emitAll(edges []rotary.Edge) error {
	for _, e := range edges {
		if err := f.Emit(e.Line, e.Level); err != nil {
			return err
		}
	}
	return nil
}

// Close marks the encoder as closed.
func (f *FakeEncoder) Close() error {
	f.Closed = true
	return nil
}
