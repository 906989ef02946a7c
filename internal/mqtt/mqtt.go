// Package mqtt publishes timer transitions and daemon lifecycle events.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

const (
	// Topic receives one message per timer transition.
	Topic = "kitchen/timer/events"
	// TopicSystem receives STARTUP, HEARTBEAT, RECONNECTED and SHUTDOWN.
	TopicSystem = "kitchen/timer/system"
)

// Publisher is implemented by RealPublisher and FakePublisher. Publish errors are
// reported to the caller but are never fatal to the daemon.
type Publisher interface {
	Publish(event logic.Event) error
	PublishSystem(event SystemEvent) error
	Close() error
}

type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent is a lifecycle message. When RawPayload is set it is sent as is,
// otherwise a small {"system": ...} document is built from the other fields.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string
	Reason     string // shutdown signal or disconnect cause
	RawPayload []byte
	Retained   bool
}

type timerMessage struct {
	Timer struct {
		Timestamp        string `json:"timestamp"`
		Event            string `json:"event"`
		State            string `json:"state"`
		Mode             string `json:"mode"`
		RemainingSeconds int    `json:"remaining_seconds"`
		Display          string `json:"display"`
	} `json:"timer"`
}

type systemMessage struct {
	System struct {
		Timestamp string `json:"timestamp"`
		Event     string `json:"event"`
		Reason    string `json:"reason,omitempty"`
	} `json:"system"`
}

// FormatPayload encodes a timer event for Topic.
func FormatPayload(event logic.Event) ([]byte, error) {
	var m timerMessage
	m.Timer.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	m.Timer.Event = string(event.Type)
	m.Timer.State = string(event.State)
	m.Timer.Mode = string(event.Mode)
	m.Timer.RemainingSeconds = event.Seconds
	m.Timer.Display = logic.FormatTime(event.Seconds)
	return json.Marshal(m)
}

// FormatSystemPayload encodes a lifecycle event for TopicSystem.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	var m systemMessage
	m.System.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	m.System.Event = event.Event
	m.System.Reason = event.Reason
	return json.Marshal(m)
}
