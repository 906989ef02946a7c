package rotary

import "time"

// Encoder routes raw edges to the quadrature decoder or the press classifier.
// HandleEdge is the only entry point the GPIO layer needs.
type Encoder struct {
	decoder *QuadratureDecoder
	button  *PressClassifier
}

// NewEncoder creates an encoder seeded with the current line levels. Decoded events are
// offered to out.
func NewEncoder(initial Levels, longPress time.Duration, out Emitter, opts ...PressOption) *Encoder {
	if longPress <= 0 {
		longPress = DefaultLongPress
	}
	return &Encoder{
		decoder: NewQuadratureDecoder(initial.Data, initial.Clock, out),
		button:  NewPressClassifier(initial.Switch, longPress, out, opts...),
	}
}

// HandleEdge processes one edge. Safe to call from the GPIO event goroutine.
func (e *Encoder) HandleEdge(edge Edge) {
	switch edge.Line {
	case LineData, LineClock:
		e.decoder.Edge(edge.Line, edge.Level, edge.Time)
	case LineSwitch:
		e.button.Edge(edge.Level, edge.Time)
	}
}

// Pressed reports whether the switch is currently held.
func (e *Encoder) Pressed() bool {
	down, _ := e.button.Down()
	return down
}
