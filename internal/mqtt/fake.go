package mqtt

import (
	"github.com/sweeney/kitchen-timer/internal/logic"
)

// Message is one publish as the broker would have seen it.
type Message struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// FakePublisher records publishes in memory. Failed publishes are not recorded.
type FakePublisher struct {
	Events       []logic.Event
	SystemEvents []SystemEvent
	Messages     []Message

	PublishError       error
	PublishSystemError error

	Connected bool
	Closed    bool
}

// NewFakePublisher returns an empty, disconnected FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(event logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Messages = append(f.Messages, Message{Topic: Topic, Payload: payload})
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.Messages = append(f.Messages, Message{Topic: TopicSystem, Payload: payload, Retained: event.Retained})
	return nil
}

// Payloads returns the payloads recorded on topic, oldest first.
func (f *FakePublisher) Payloads(topic string) [][]byte {
	var out [][]byte
	for _, m := range f.Messages {
		if m.Topic == topic {
			out = append(out, m.Payload)
		}
	}
	return out
}

// Last returns the most recent timer event.
func (f *FakePublisher) Last() (logic.Event, bool) {
	if n := len(f.Events); n > 0 {
		return f.Events[n-1], true
	}
	return logic.Event{}, false
}

// SystemEventNames lists the published system event names in order.
func (f *FakePublisher) SystemEventNames() []string {
	names := make([]string, 0, len(f.SystemEvents))
	for _, e := range f.SystemEvents {
		names = append(names, e.Event)
	}
	return names
}

func (f *FakePublisher) IsConnected() bool { return f.Connected }

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset returns f to its freshly constructed state.
func (f *FakePublisher) Reset() {
	*f = FakePublisher{}
}
