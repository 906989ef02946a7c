package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/kitchen-timer/internal/power"
)

// StatusJSON is the envelope shared by /index.json and the retained system topic.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner carries Event and Reason only on MQTT system events.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Timer         TimerJSON    `json:"timer"`
	Power         *PowerJSON   `json:"power,omitempty"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Dropped       uint64       `json:"dropped_events"`
	Network       *NetworkInfo `json:"network,omitempty"`
	Config        Config       `json:"config"`
}

type TimerJSON struct {
	State            string `json:"state"`
	Mode             string `json:"mode"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Display          string `json:"display"`
}

// PowerJSON is the last good supply sample. Line is the text shown on the display.
type PowerJSON struct {
	Source  string  `json:"source"`
	Voltage float64 `json:"voltage"`
	Percent int     `json:"percent,omitempty"`
	Line    string  `json:"line"`
}

type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

type CountsJSON struct {
	Started int `json:"started"`
	Paused  int `json:"paused"`
	Expired int `json:"expired"`
	Reset   int `json:"reset"`
}

func unknownIfEmpty[T ~string](v T) string {
	if v == "" {
		return "UNKNOWN"
	}
	return string(v)
}

func newInner(snap Snapshot) StatusInner {
	c := snap.Counts
	inner := StatusInner{
		Timer: TimerJSON{
			State:            unknownIfEmpty(snap.Timer.State),
			Mode:             unknownIfEmpty(snap.Timer.Mode),
			RemainingSeconds: snap.Timer.Seconds,
			Display:          snap.Timer.Display(),
		},
		UptimeSeconds: int64(snap.Uptime() / time.Second),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts:        CountsJSON{Started: c.Started, Paused: c.Paused, Expired: c.Expired, Reset: c.Reset},
		Dropped:       snap.Dropped,
		Network:       snap.Network,
		Config:        snap.Config,
	}
	if p := snap.Power; p != nil {
		inner.Power = &PowerJSON{
			Source:  string(p.Source),
			Voltage: p.Voltage,
			Percent: p.Percent,
			Line:    power.Format(*p),
		}
	}
	return inner
}

// FormatJSON renders the indented document served at /index.json.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: newInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent renders a compact STARTUP, HEARTBEAT or SHUTDOWN payload.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := newInner(snap)
	inner.Event, inner.Reason = event, reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
