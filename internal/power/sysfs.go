package power

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSysfsRoot is where Linux exposes power supplies.
const DefaultSysfsRoot = "/sys/class/power_supply"

// ErrNoSupply is returned when no usable supply is found under the root.
var ErrNoSupply = errors.New("power: no supply found")

// SysfsMonitor reads supplies from the Linux power_supply class.
// An online USB or Mains supply wins; otherwise the first battery is reported.
type SysfsMonitor struct {
	root string
}

// NewSysfsMonitor creates a monitor reading from root, or DefaultSysfsRoot if empty.
func NewSysfsMonitor(root string) *SysfsMonitor {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsMonitor{root: root}
}

// ReadSupplyState samples the supplies.
func (m *SysfsMonitor) ReadSupplyState() (SupplyState, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return SupplyState{}, fmt.Errorf("read power supplies: %w", err)
	}

	var battery *SupplyState
	for _, e := range entries {
		dir := filepath.Join(m.root, e.Name())
		typ := readString(dir, "type")

		switch typ {
		case "USB", "Mains":
			if readString(dir, "online") != "1" {
				continue
			}
			v, _ := readMicro(dir, "voltage_now")
			return SupplyState{Source: SourceUSB, Voltage: v}, nil

		case "Battery":
			if battery != nil {
				continue
			}
			v, err := readMicro(dir, "voltage_now")
			if err != nil {
				continue
			}
			s := SupplyState{Source: SourceBattery, Voltage: v}
			if c, err := strconv.Atoi(readString(dir, "capacity")); err == nil {
				s.Percent = clampPercent(c)
			} else {
				s.Percent = PercentFromVoltage(v)
			}
			battery = &s
		}
	}

	if battery != nil {
		return *battery, nil
	}
	return SupplyState{}, ErrNoSupply
}

func readString(dir, name string) string {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// readMicro reads a sysfs value in micro-units and returns base units.
func readMicro(dir, name string) (float64, error) {
	n, err := strconv.ParseInt(readString(dir, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return float64(n) / 1e6, nil
}
