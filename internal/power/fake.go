package power

// FakeMonitor returns scripted samples.
type FakeMonitor struct {
	// States are returned in order; the last one repeats.
	States []SupplyState

	// Err, if set, is returned instead of a sample.
	Err error

	// Reads counts calls to ReadSupplyState.
	Reads int

	index int
}

// NewFakeMonitor creates a FakeMonitor with the given samples.
func NewFakeMonitor(states ...SupplyState) *FakeMonitor {
	return &FakeMonitor{States: states}
}

// ReadSupplyState returns the next scripted sample.
func (f *FakeMonitor) ReadSupplyState() (SupplyState, error) {
	f.Reads++
	if f.Err != nil {
		return SupplyState{}, f.Err
	}
	if len(f.States) == 0 {
		return SupplyState{}, ErrNoSupply
	}
	s := f.States[f.index]
	if f.index < len(f.States)-1 {
		f.index++
	}
	return s, nil
}
