// Package status holds the daemon state shared between the control loop, the web
// page and MQTT status payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/power"
)

// NetworkInfo is the host's network state as reported by the helper env file.
type NetworkInfo struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64  `json:"tick_ms"`
	LongPressMs int64  `json:"long_press_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
}

// Snapshot is a copy of the daemon state at one instant.
type Snapshot struct {
	Timer         logic.Snapshot
	Counts        logic.EventCounts
	Power         *power.SupplyState
	Dropped       uint64
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker is the shared daemon state. The control loop writes it and HTTP handlers
// read it, so every access goes through mu.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{snap: Snapshot{StartTime: startTime, Config: cfg}}
}

func (t *Tracker) modify(fn func(s *Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.snap)
}

// Update records the timer state after a transition or tick.
func (t *Tracker) Update(timer logic.Snapshot, counts logic.EventCounts) {
	t.modify(func(s *Snapshot) { s.Timer, s.Counts = timer, counts })
}

func (t *Tracker) SetPower(p power.SupplyState) {
	t.modify(func(s *Snapshot) { s.Power = &p })
}

// SetDropped records the total number of encoder events lost to a full queue.
func (t *Tracker) SetDropped(n uint64) {
	t.modify(func(s *Snapshot) { s.Dropped = n })
}

func (t *Tracker) SetMQTTConnected(connected bool) {
	t.modify(func(s *Snapshot) { s.MQTTConnected = connected })
}

func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.modify(func(s *Snapshot) { s.Network = info })
}

// Snapshot returns a copy of the current state with Now set to the wall clock.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
