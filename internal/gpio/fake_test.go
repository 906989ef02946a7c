package gpio

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/kitchen-timer/internal/rotary"
)

func TestFakeEncoderLevels(t *testing.T) {
	f := NewFakeEncoder()

	lv, err := f.Levels()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lv.Data || !lv.Clock || !lv.Switch {
		t.Errorf("expected all lines high at rest, got %+v", lv)
	}
}

func TestFakeEncoderReadError(t *testing.T) {
	f := NewFakeEncoder()
	f.ReadError = errors.New("simulated error")

	_, err := f.Levels()
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeEncoderEmitBeforeWatch(t *testing.T) {
	f := NewFakeEncoder()
	if err := f.Press(); err == nil {
		t.Error("expected error emitting before Watch")
	}
}

func TestFakeEncoderWatchError(t *testing.T) {
	f := NewFakeEncoder()
	f.WatchError = errors.New("busy")
	if err := f.Watch(func(rotary.Edge) {}); err == nil {
		t.Error("expected watch error")
	}
}

func TestFakeEncoderStepClockwise(t *testing.T) {
	f := NewFakeEncoder()
	stamp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.Now = func() time.Time { return stamp }

	var edges []rotary.Edge
	f.Watch(func(e rotary.Edge) { edges = append(edges, e) })

	if err := f.StepClockwise(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}
	if edges[0].Line != rotary.LineClock || edges[0].Level {
		t.Errorf("first edge: got %+v, want CLK low", edges[0])
	}
	if !edges[0].Time.Equal(stamp) {
		t.Errorf("timestamp: got %v", edges[0].Time)
	}

	// Back at rest.
	lv, _ := f.Levels()
	if !lv.Data || !lv.Clock {
		t.Errorf("expected rest after detent, got %+v", lv)
	}
}

func TestFakeEncoderDrivesDecoder(t *testing.T) {
	f := NewFakeEncoder()
	q := rotary.NewQueue(16)
	initial, _ := f.Levels()
	enc := rotary.NewEncoder(initial, time.Hour, q)
	f.Watch(enc.HandleEdge)

	f.StepClockwise()
	f.StepClockwise()
	f.StepCounterClockwise()
	f.Press()
	f.Release()

	var got []rotary.EventType
	q.Drain(func(ev rotary.Event) { got = append(got, ev.Type) })
	want := []rotary.EventType{
		rotary.EventClockwise,
		rotary.EventClockwise,
		rotary.EventCounterClockwise,
		rotary.EventPressed,
		rotary.EventReleased,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFakeEncoderClose(t *testing.T) {
	f := NewFakeEncoder()

	if f.Closed {
		t.Error("should not be closed initially")
	}

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestDefaultPins(t *testing.T) {
	p := DefaultPins()
	if p.Data != DefaultPinDT || p.Clock != DefaultPinCLK || p.Switch != DefaultPinSW {
		t.Errorf("unexpected default pins: %+v", p)
	}
}
