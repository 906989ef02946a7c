package buzzer

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Audio format used for generated tones.
const (
	SampleRate   = 44100
	ChannelCount = 1
	amplitude    = 0.3
)

// SpeakerToner plays square-wave tones through the host's audio device. Handy on a
// bench machine without a buzzer wired up.
type SpeakerToner struct {
	ctx *oto.Context
}

// NewSpeakerToner initializes the system audio context. Only one can exist per process.
func NewSpeakerToner() (*SpeakerToner, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &SpeakerToner{ctx: ctx}, nil
}

// Tone plays a square wave at freq for d and blocks until it finishes.
func (s *SpeakerToner) Tone(freq int, d time.Duration) error {
	p := s.ctx.NewPlayer(bytes.NewReader(SquareWave(freq, d, SampleRate)))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}
	return p.Close()
}

// Close is a no-op; oto contexts live for the whole process.
func (s *SpeakerToner) Close() error {
	return nil
}

// SquareWave renders a mono signed 16-bit little-endian square wave.
func SquareWave(freq int, d time.Duration, rate int) []byte {
	n := int(int64(rate) * int64(d) / int64(time.Second))
	buf := make([]byte, n*2)
	if freq <= 0 {
		return buf
	}

	peak := int16(amplitude * 32767)
	half := float64(rate) / float64(freq) / 2
	for i := 0; i < n; i++ {
		v := peak
		if int(float64(i)/half)%2 == 1 {
			v = -peak
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}
