package buzzer

// FakeBuzzer records beeps for test assertions.
type FakeBuzzer struct {
	// Calls lists the patterns sounded, in order: "short", "double", "error".
	Calls []string

	// Err, if set, is returned by every beep.
	Err error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBuzzer creates a FakeBuzzer for testing.
func NewFakeBuzzer() *FakeBuzzer {
	return &FakeBuzzer{}
}

func (f *FakeBuzzer) ShortBeep() error  { return f.record("short") }
func (f *FakeBuzzer) DoubleBeep() error { return f.record("double") }
func (f *FakeBuzzer) ErrorBeep() error  { return f.record("error") }

func (f *FakeBuzzer) record(name string) error {
	f.Calls = append(f.Calls, name)
	return f.Err
}

// Close marks the buzzer as closed.
func (f *FakeBuzzer) Close() error {
	f.Closed = true
	return nil
}
