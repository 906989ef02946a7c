//go:build linux

package buzzer

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// LineToner drives an active buzzer from a GPIO output line. The buzzer has its own
// oscillator, so freq is ignored.
type LineToner struct {
	chip  *gpiocdev.Chip
	line  *gpiocdev.Line
	sleep func(time.Duration)
}

// NewLineToner requests pin on chip as an output, initially low.
func NewLineToner(chipName string, pin int) (*LineToner, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}

	return &LineToner{chip: chip, line: line, sleep: time.Sleep}, nil
}

// Tone holds the line high for d.
func (t *LineToner) Tone(freq int, d time.Duration) error {
	if err := t.line.SetValue(1); err != nil {
		return fmt.Errorf("buzzer on: %w", err)
	}
	t.sleep(d)
	if err := t.line.SetValue(0); err != nil {
		return fmt.Errorf("buzzer off: %w", err)
	}
	return nil
}

// Close drives the line low and returns it to an input with pull-down (Pi boot
// default).
func (t *LineToner) Close() error {
	var errs []error

	if t.line != nil {
		if err := t.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("buzzer off: %w", err))
		}
		if err := t.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
		}
		if err := t.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
		}
	}
	if t.chip != nil {
		if err := t.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
