//go:build linux

package gpio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sweeney/kitchen-timer/internal/rotary"
	"github.com/warthog618/go-gpiocdev"
)

// RealEncoder reads the encoder from actual hardware using the Linux GPIO character
// device. Edges come from the kernel's edge detection, delivered by gpiocdev on a single
// watcher goroutine.
type RealEncoder struct {
	chip    *gpiocdev.Chip
	lines   *gpiocdev.Lines
	offsets []int
	byPin   map[int]rotary.Line
	sink    atomic.Pointer[func(rotary.Edge)]
}

// NewRealEncoder requests the encoder lines on chip with pull-ups and both-edge
// detection. A non-zero debounce asks the kernel to filter contact bounce as well.
func NewRealEncoder(chipName string, pins Pins, debounce time.Duration) (*RealEncoder, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealEncoder{
		chip:    chip,
		offsets: []int{pins.Data, pins.Clock, pins.Switch},
		byPin: map[int]rotary.Line{
			pins.Data:   rotary.LineData,
			pins.Clock:  rotary.LineClock,
			pins.Switch: rotary.LineSwitch,
		},
	}

	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(r.handle),
	}
	if debounce > 0 {
		opts = append(opts, gpiocdev.WithDebounce(debounce))
	}

	lines, err := chip.RequestLines(r.offsets, opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request encoder pins %v: %w", r.offsets, err)
	}
	r.lines = lines

	return r, nil
}

// Levels returns the current raw levels.
func (r *RealEncoder) Levels() (rotary.Levels, error) {
	vals := make([]int, len(r.offsets))
	if err := r.lines.Values(vals); err != nil {
		return rotary.Levels{}, fmt.Errorf("read encoder pins: %w", err)
	}
	return rotary.Levels{
		Data:   vals[0] != 0,
		Clock:  vals[1] != 0,
		Switch: vals[2] != 0,
	}, nil
}

// Watch starts forwarding edges to fn. Edges seen before Watch are dropped.
func (r *RealEncoder) Watch(fn func(rotary.Edge)) error {
	r.sink.Store(&fn)
	return nil
}

// handle runs on gpiocdev's event goroutine.
func (r *RealEncoder) handle(evt gpiocdev.LineEvent) {
	fn := r.sink.Load()
	if fn == nil {
		return
	}
	line, ok := r.byPin[evt.Offset]
	if !ok {
		return
	}
	(*fn)(rotary.Edge{
		Line:  line,
		Level: evt.Type == gpiocdev.LineEventRisingEdge,
		Time:  time.Now(),
	})
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults) before closing
// to ensure clean state for system shutdown/reboot.
func (r *RealEncoder) Close() error {
	var errs []error

	if r.lines != nil {
		if err := r.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure encoder pins: %w", err))
		}
		if err := r.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close encoder pins: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
