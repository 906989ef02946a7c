// Package gpio provides rotary encoder edge delivery with hardware abstraction.
// The real implementation uses the Linux GPIO character device and its edge events.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/kitchen-timer/internal/rotary"

// Encoder reads the encoder's three input lines.
type Encoder interface {
	// Levels returns the current raw levels of DT, CLK and SW (true = high).
	Levels() (rotary.Levels, error)

	// Watch starts delivering edges to fn. Edges are delivered serially, on a goroutine
	// owned by the implementation; fn must not block.
	Watch(fn func(rotary.Edge)) error

	// Close releases GPIO resources.
	Close() error
}

// Pins holds BCM line offsets for the encoder.
type Pins struct {
	Data   int
	Clock  int
	Switch int
}

// Pin definitions (BCM numbering)
const (
	DefaultChip      = "gpiochip0"
	DefaultPinCLK    = 17
	DefaultPinDT     = 27
	DefaultPinSW     = 22
	DefaultPinBuzzer = 18
)

// DefaultPins returns the standard wiring.
func DefaultPins() Pins {
	return Pins{Data: DefaultPinDT, Clock: DefaultPinCLK, Switch: DefaultPinSW}
}
