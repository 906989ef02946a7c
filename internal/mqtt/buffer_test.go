package mqtt

import (
	"testing"
)

// fill pushes one message per value, using the value as a one-byte payload.
func fill(rb *ringBuffer, values ...byte) {
	for _, v := range values {
		rb.push(bufferedMsg{topic: "t", payload: []byte{v}})
	}
}

func seq(from, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(from + i)
	}
	return out
}

func payloadBytes(msgs []bufferedMsg) []byte {
	out := make([]byte, len(msgs))
	for i, m := range msgs {
		out[i] = m.payload[0]
	}
	return out
}

func TestRingBufferDrainOrder(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushed   []byte
		want     []byte
	}{
		{"empty", 4, nil, nil},
		{"partial", 10, seq(0, 5), seq(0, 5)},
		{"exactly full", 6, seq(0, 6), seq(0, 6)},
		{"overflow keeps newest", 5, seq(0, 8), seq(3, 5)},
		{"wraps twice", 3, seq(20, 7), seq(24, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := newRingBuffer(tt.capacity)
			fill(rb, tt.pushed...)

			got := rb.drainAll()
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %d items, want nil", len(got))
				}
				return
			}
			if string(payloadBytes(got)) != string(tt.want) {
				t.Errorf("payloads: got %v, want %v", payloadBytes(got), tt.want)
			}
			if rb.drainAll() != nil {
				t.Error("second drain should be empty")
			}
		})
	}
}

func TestRingBufferReuseAfterDrain(t *testing.T) {
	rb := newRingBuffer(5)

	fill(rb, seq(0, 3)...)
	if n := len(rb.drainAll()); n != 3 {
		t.Fatalf("first drain: got %d items, want 3", n)
	}

	fill(rb, seq(10, 4)...)
	got := payloadBytes(rb.drainAll())
	if string(got) != string(seq(10, 4)) {
		t.Errorf("second drain: got %v, want %v", got, seq(10, 4))
	}
}

func TestRingBufferLenTracksContents(t *testing.T) {
	rb := newRingBuffer(3)
	steps := []struct {
		push int
		want int
	}{
		{0, 0},
		{2, 2},
		{1, 3},
		{4, 3},
	}
	for _, s := range steps {
		fill(rb, seq(0, s.push)...)
		if rb.len() != s.want {
			t.Errorf("after pushing %d: len %d, want %d", s.push, rb.len(), s.want)
		}
	}

	rb.drainAll()
	if rb.len() != 0 {
		t.Errorf("len after drain: got %d, want 0", rb.len())
	}
}

func TestRingBufferKeepsMessageMetadata(t *testing.T) {
	rb := newRingBuffer(2)
	in := bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"status":{"event":"HEARTBEAT"}}`),
		qos:      1,
		retained: true,
	}
	rb.push(in)

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	out := got[0]
	if out.topic != in.topic || string(out.payload) != string(in.payload) {
		t.Errorf("message: got %s %s, want %s %s", out.topic, out.payload, in.topic, in.payload)
	}
	if out.qos != 1 || !out.retained {
		t.Errorf("qos/retained: got %d/%v, want 1/true", out.qos, out.retained)
	}
}

func TestRingBufferCountsDropped(t *testing.T) {
	rb := newRingBuffer(2)
	fill(rb, seq(0, 5)...)
	if rb.dropped != 3 {
		t.Errorf("dropped: got %d, want 3", rb.dropped)
	}

	// The running total survives a drain.
	rb.drainAll()
	fill(rb, 9)
	if rb.dropped != 3 {
		t.Errorf("dropped after drain: got %d, want 3", rb.dropped)
	}
	if rb.len() != 1 {
		t.Errorf("len: got %d, want 1", rb.len())
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	rb := newRingBuffer(0)
	rb.push(bufferedMsg{topic: "a"})
	rb.push(bufferedMsg{topic: "b"})

	got := rb.drainAll()
	if len(got) != 1 || got[0].topic != "b" {
		t.Errorf("got %+v, want only the newest message", got)
	}
}
