// Package buzzer provides the timer's audible feedback.
//
// A Beeper builds the short, double and error patterns on top of a Toner, which can be
// an active buzzer on a GPIO line or the host's sound card.
package buzzer

import (
	"fmt"
	"time"
)

// Buzzer is what the control loop calls. Calls block for the length of the pattern.
type Buzzer interface {
	ShortBeep() error
	DoubleBeep() error
	ErrorBeep() error
	Close() error
}

// Toner sounds a single tone. Implementations that cannot vary pitch ignore freq.
type Toner interface {
	Tone(freq int, d time.Duration) error
	Close() error
}

// Tone parameters.
const (
	NormalFreq    = 3000
	ErrorFreq     = 500
	ShortDuration = 200 * time.Millisecond
	DoubleGap     = 15 * time.Millisecond
	ErrorDuration = 700 * time.Millisecond
)

// Beeper implements Buzzer on top of a Toner.
type Beeper struct {
	toner Toner
	sleep func(time.Duration)
}

// New creates a Beeper driving t.
func New(t Toner) *Beeper {
	return &Beeper{toner: t, sleep: time.Sleep}
}

// ShortBeep sounds a short beep.
func (b *Beeper) ShortBeep() error {
	if err := b.toner.Tone(NormalFreq, ShortDuration); err != nil {
		return fmt.Errorf("short beep: %w", err)
	}
	return nil
}

// DoubleBeep sounds two short beeps.
func (b *Beeper) DoubleBeep() error {
	if err := b.ShortBeep(); err != nil {
		return err
	}
	b.sleep(DoubleGap)
	return b.ShortBeep()
}

// ErrorBeep sounds a long low beep.
func (b *Beeper) ErrorBeep() error {
	if err := b.toner.Tone(ErrorFreq, ErrorDuration); err != nil {
		return fmt.Errorf("error beep: %w", err)
	}
	return nil
}

// Close releases the underlying toner.
func (b *Beeper) Close() error {
	return b.toner.Close()
}

// Silent is a Toner that makes no sound.
type Silent struct{}

func (Silent) Tone(int, time.Duration) error { return nil }
func (Silent) Close() error                  { return nil }
