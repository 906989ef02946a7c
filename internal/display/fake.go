package display

import "fmt"

// FakeDisplay records draw calls for test assertions.
type FakeDisplay struct {
	frame

	// Ops lists draw calls in order, e.g. "clear_all", "time 08:00", "marker minutes",
	// "flush".
	Ops []string

	// Flushed holds every frame pushed by Flush.
	Flushed []Frame

	// FlushError, if set, will be returned by Flush.
	FlushError error
}

// NewFakeDisplay creates a FakeDisplay for testing.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

func (f *FakeDisplay) ClearAll() {
	f.Ops = append(f.Ops, "clear_all")
	f.frame.ClearAll()
}

func (f *FakeDisplay) ClearRegion(topAreaOnly bool) {
	if topAreaOnly {
		f.Ops = append(f.Ops, "clear top")
	} else {
		f.Ops = append(f.Ops, "clear main")
	}
	f.frame.ClearRegion(topAreaOnly)
}

func (f *FakeDisplay) RenderTime(text string) {
	f.Ops = append(f.Ops, "time "+text)
	f.frame.RenderTime(text)
}

func (f *FakeDisplay) RenderMarker(forMinutes bool) {
	if forMinutes {
		f.Ops = append(f.Ops, "marker minutes")
	} else {
		f.Ops = append(f.Ops, "marker seconds")
	}
	f.frame.RenderMarker(forMinutes)
}

func (f *FakeDisplay) RenderStatus(text string) {
	f.Ops = append(f.Ops, fmt.Sprintf("status %s", text))
	f.frame.RenderStatus(text)
}

// Flush records the pending frame.
func (f *FakeDisplay) Flush() error {
	f.Ops = append(f.Ops, "flush")
	if f.FlushError != nil {
		return f.FlushError
	}
	f.Flushed = append(f.Flushed, f.cur)
	return nil
}

// Current returns the pending frame.
func (f *FakeDisplay) Current() Frame {
	return f.cur
}

// Last returns the most recently flushed frame.
func (f *FakeDisplay) Last() (Frame, bool) {
	if len(f.Flushed) == 0 {
		return Frame{}, false
	}
	return f.Flushed[len(f.Flushed)-1], true
}

// Reset clears recorded calls.
func (f *FakeDisplay) Reset() {
	f.Ops = nil
	f.Flushed = nil
	f.FlushError = nil
}
