//go:build !linux

package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/kitchen-timer/internal/rotary"
)

// RealEncoder is not available on non-Linux platforms.
type RealEncoder struct{}

// NewRealEncoder returns an error on non-Linux platforms.
func NewRealEncoder(chipName string, pins Pins, debounce time.Duration) (*RealEncoder, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Levels is not implemented on non-Linux platforms.
func (r *RealEncoder) Levels() (rotary.Levels, error) {
	return rotary.Levels{}, errors.New("gpio: not supported")
}

// Watch is not implemented on non-Linux platforms.
func (r *RealEncoder) Watch(fn func(rotary.Edge)) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealEncoder) Close() error {
	return nil
}
