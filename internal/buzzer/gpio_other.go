//go:build !linux

package buzzer

import (
	"errors"
	"time"
)

// LineToner is not available on non-Linux platforms.
type LineToner struct{}

// NewLineToner returns an error on non-Linux platforms.
func NewLineToner(chipName string, pin int) (*LineToner, error) {
	return nil, errors.New("buzzer: gpio not supported on this platform (requires Linux)")
}

// Tone is not implemented on non-Linux platforms.
func (t *LineToner) Tone(freq int, d time.Duration) error {
	return errors.New("buzzer: gpio not supported")
}

// Close is not implemented on non-Linux platforms.
func (t *LineToner) Close() error {
	return nil
}
