// Package power samples the supply feeding the timer.
package power

import (
	"fmt"
	"math"
)

// Source is where power currently comes from.
type Source string

const (
	SourceUSB     Source = "USB"
	SourceBattery Source = "BAT"
)

// Single-cell LiPo range used when the supply does not report a capacity.
const (
	BatteryMax = 4.20
	BatteryMin = 3.3
)

// SupplyState is one sample of the supply.
type SupplyState struct {
	Source  Source
	Voltage float64 // volts
	Percent int     // 0..100, battery only
}

// Monitor reads the current supply state. Reads may fail; callers keep the last good
// sample.
type Monitor interface {
	ReadSupplyState() (SupplyState, error)
}

// PercentFromVoltage maps a battery voltage onto 0..100 linearly over
// [BatteryMin, BatteryMax].
func PercentFromVoltage(v float64) int {
	p := (v - BatteryMin) / (BatteryMax - BatteryMin) * 100
	return clampPercent(int(math.Round(p)))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Format renders the state for the display's status line, e.g. "USB: 5.0V" or
// "BAT: 3.9V (66%)". A zero battery percent is omitted.
func Format(s SupplyState) string {
	src := s.Source
	if src == "" {
		src = SourceBattery
	}
	txt := fmt.Sprintf("%s: %.1fV", src, s.Voltage)
	if src == SourceBattery && s.Percent > 0 {
		txt += fmt.Sprintf(" (%d%%)", clampPercent(s.Percent))
	}
	return txt
}
