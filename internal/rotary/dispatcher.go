package rotary

// Listener receives dispatched events. Listeners filter by event type themselves.
type Listener func(Event)

// Dispatcher fans events out to registered listeners in registration order.
// Registering or removing listeners from inside a listener during Publish is unsupported.
// Dispatcher is meant to be used from the application loop only.
type Dispatcher struct {
	listeners []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register appends a listener.
func (d *Dispatcher) Register(l Listener) {
	d.listeners = append(d.listeners, l)
}

// Publish calls every listener with ev, synchronously and in order.
func (d *Dispatcher) Publish(ev Event) {
	for _, l := range d.listeners {
		l(ev)
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}
