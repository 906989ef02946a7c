// Package control runs the kitchen timer: it owns the state machine and drives the
// display, buzzer and telemetry from a single goroutine.
package control

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/kitchen-timer/internal/buzzer"
	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/power"
	"github.com/sweeney/kitchen-timer/internal/rotary"
	"github.com/sweeney/kitchen-timer/internal/status"
)

// DefaultTick is the countdown period, a little under one second.
const DefaultTick = 900 * time.Millisecond

// Deps are the loop's collaborators. Publisher and MQTTStatus may be nil.
type Deps struct {
	Queue      *rotary.Queue
	Machine    *logic.Machine
	Display    display.Display
	Buzzer     buzzer.Buzzer
	Power      power.Monitor
	Publisher  mqtt.Publisher
	MQTTStatus mqtt.ConnectionStatus
	Tracker    *status.Tracker

	// Heartbeat is the HEARTBEAT interval; 0 disables it.
	Heartbeat time.Duration

	// Network is polled for fresh network info with every heartbeat. Optional.
	Network func() *status.NetworkInfo

	// Now defaults to time.Now.
	Now func() time.Time
}

// Loop is the control loop. All methods must be called from one goroutine.
type Loop struct {
	queue      *rotary.Queue
	dispatcher *rotary.Dispatcher
	machine    *logic.Machine
	display    display.Display
	buzzer     buzzer.Buzzer
	power      power.Monitor
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	network    func() *status.NetworkInfo
	now        func() time.Time

	heartbeat *logic.Heartbeat

	supply      *power.SupplyState // last good sample
	powerFailed bool
	dropped     uint64
}

// New creates a Loop. The state machine is registered as the first listener on the
// loop's dispatcher.
func New(d Deps) *Loop {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	l := &Loop{
		queue:      d.Queue,
		dispatcher: rotary.NewDispatcher(),
		machine:    d.Machine,
		display:    d.Display,
		buzzer:     d.Buzzer,
		power:      d.Power,
		publisher:  d.Publisher,
		mqttStatus: d.MQTTStatus,
		tracker:    d.Tracker,
		network:    d.Network,
		now:        now,
		heartbeat:  logic.NewHeartbeat(now(), d.Heartbeat),
	}
	l.dispatcher.Register(l.handle)
	return l
}

// Subscribe adds a listener that sees every encoder event after the state machine.
func (l *Loop) Subscribe(fn rotary.Listener) {
	l.dispatcher.Register(fn)
}

// Start draws the initial face and sounds the startup beep.
func (l *Loop) Start() {
	l.samplePower()
	l.display.ClearAll()
	l.redraw()
	l.beep("startup", l.buzzer.ShortBeep)
	l.updateTracker()
}

// Run processes encoder events and ticks until a signal arrives, then publishes
// SHUTDOWN and returns. Events already queued when a tick fires are handled before
// that tick.
func (l *Loop) Run(tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			l.shutdown(signalName(s))
			return nil

		case ev := <-l.queue.C():
			l.dispatcher.Publish(ev)

		case <-tick:
			l.Drain()
			l.Tick(l.now())
		}
	}
}

// Drain dispatches every event already queued and returns how many there were.
func (l *Loop) Drain() int {
	return l.queue.Drain(l.dispatcher.Publish)
}

// handle feeds an encoder event to the state machine.
func (l *Loop) handle(ev rotary.Event) {
	eff, events := l.machine.Handle(ev)
	l.apply(eff, events)
	l.updateTracker()
}

// Tick runs one countdown period.
func (l *Loop) Tick(t time.Time) {
	l.samplePower()
	l.checkDropped()

	eff, events := l.machine.Tick(t)
	l.apply(eff, events)

	l.updateTracker()
	l.checkHeartbeat(t)
}

func (l *Loop) apply(eff logic.Effects, events []logic.Event) {
	if eff.Has(logic.RequestEndSound) {
		l.endSound()
	} else if eff.Has(logic.RequestRedraw) {
		l.redraw()
	}
	if eff.Has(logic.RequestShortBeep) {
		l.beep("short", l.buzzer.ShortBeep)
	}

	for _, event := range events {
		log.Printf("event: %s (state=%s mode=%s remaining=%s)", event.Type, event.State, event.Mode, logic.FormatTime(event.Seconds))
		if l.publisher == nil {
			continue
		}
		if err := l.publisher.Publish(event); err != nil {
			log.Printf("publish error: %v", err)
		}
	}
}

// redraw renders the whole face from the current snapshot.
func (l *Loop) redraw() {
	s := l.machine.Snapshot()
	switch s.Mode {
	case logic.ModeSettingMinutes:
		l.display.RenderMarker(true)
	case logic.ModeSettingSeconds:
		l.display.RenderMarker(false)
	default:
		l.display.ClearRegion(true)
	}
	l.display.RenderTime(s.Display())
	l.display.RenderStatus(l.statusLine())
	l.flush()
}

// endSound blanks the time, double-beeps, then shows 00:00.
func (l *Loop) endSound() {
	l.display.ClearRegion(false)
	l.flush()
	l.beep("end", l.buzzer.DoubleBeep)
	l.redraw()
}

func (l *Loop) flush() {
	if err := l.display.Flush(); err != nil {
		log.Printf("display error: %v", err)
	}
}

func (l *Loop) beep(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("buzzer %s beep error: %v", name, err)
	}
}

func (l *Loop) statusLine() string {
	if l.supply == nil {
		return ""
	}
	return power.Format(*l.supply)
}

// samplePower reads the supply. On failure the last good sample is kept; the failure is
// logged once until a read succeeds again.
func (l *Loop) samplePower() {
	if l.power == nil {
		return
	}
	s, err := l.power.ReadSupplyState()
	if err != nil {
		if !l.powerFailed {
			log.Printf("power read error: %v", err)
			l.powerFailed = true
		}
		return
	}
	l.powerFailed = false
	l.supply = &s
	if l.tracker != nil {
		l.tracker.SetPower(s)
	}
}

// checkDropped sounds the error beep when encoder input was lost since the last tick.
func (l *Loop) checkDropped() {
	n := l.queue.Dropped()
	if n == l.dropped {
		return
	}
	log.Printf("input queue full: %d events dropped", n-l.dropped)
	l.dropped = n
	l.beep("error", l.buzzer.ErrorBeep)
}

func (l *Loop) updateTracker() {
	if l.tracker == nil {
		return
	}
	l.tracker.Update(l.machine.Snapshot(), l.machine.Counts())
	l.tracker.SetDropped(l.queue.Dropped())
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
}

func (l *Loop) checkHeartbeat(t time.Time) {
	hb, ok := l.heartbeat.Due(t, l.machine.Counts())
	if !ok {
		return
	}
	log.Printf("heartbeat: uptime=%v started=%d paused=%d expired=%d reset=%d",
		hb.Uptime, hb.Counts.Started, hb.Counts.Paused, hb.Counts.Expired, hb.Counts.Reset)

	if l.publisher == nil {
		return
	}
	ev := mqtt.SystemEvent{
		Timestamp: hb.Timestamp,
		Event:     "HEARTBEAT",
	}
	if l.tracker != nil {
		if l.network != nil {
			if net := l.network(); net != nil {
				l.tracker.SetNetwork(net)
			}
		}
		ev.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "HEARTBEAT", "")
	}
	if err := l.publisher.PublishSystem(ev); err != nil {
		log.Printf("heartbeat publish error: %v", err)
	}
}

func (l *Loop) shutdown(reason string) {
	l.display.ClearAll()
	l.flush()

	if l.publisher == nil {
		return
	}
	ev := mqtt.SystemEvent{
		Timestamp: l.now(),
		Event:     "SHUTDOWN",
		Reason:    reason,
		Retained:  true,
	}
	if l.tracker != nil {
		l.updateTracker()
		ev.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "SHUTDOWN", reason)
	}
	if err := l.publisher.PublishSystem(ev); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}
