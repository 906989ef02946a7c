package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sweeney/kitchen-timer/internal/buzzer"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/rotary"
	"github.com/sweeney/kitchen-timer/internal/status"
)

// TestEnvVarNames verifies the env var constants match what pi-helper writes
// to /run/pi-helper.env. If pi-helper changes its var names, this test fails
// and we update the constants, not the other way around.
func TestEnvVarNames(t *testing.T) {
	want := map[string]string{
		"NETWORK_TYPE":        envNetworkType,
		"NETWORK_IP":          envNetworkIP,
		"NETWORK_STATUS":      envNetworkStatus,
		"NETWORK_GATEWAY":     envNetworkGateway,
		"NETWORK_WIFI_STATUS": envNetworkWifiStatus,
		"NETWORK_WIFI_SSID":   envNetworkWifiSSID,
	}
	for canonical, got := range want {
		if got != canonical {
			t.Errorf("env var constant: got %q, want %q", got, canonical)
		}
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pi-helper.env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadNetworkInfoFromFile(t *testing.T) {
	path := writeEnvFile(t, `NETWORK_TYPE=wifi
NETWORK_IP=192.168.1.100
NETWORK_STATUS=connected
NETWORK_GATEWAY=192.168.1.1
NETWORK_WIFI_STATUS=connected
NETWORK_WIFI_SSID="My Network"
`)

	info := readNetworkInfo(path)
	if info == nil {
		t.Fatal("expected non-nil NetworkInfo")
	}

	want := status.NetworkInfo{
		Type:       "wifi",
		IP:         "192.168.1.100",
		Status:     "connected",
		Gateway:    "192.168.1.1",
		WifiStatus: "connected",
		SSID:       "My Network",
	}
	if *info != want {
		t.Errorf("got %+v, want %+v", *info, want)
	}
}

func TestReadNetworkInfoFileIgnoresEnvironment(t *testing.T) {
	t.Setenv(envNetworkStatus, "from-env")
	path := writeEnvFile(t, "NETWORK_STATUS=from-file\n")

	info := readNetworkInfo(path)
	if info == nil || info.Status != "from-file" {
		t.Errorf("got %+v, want status from file", info)
	}
}

func TestReadNetworkInfoMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv(envNetworkStatus, "connected")
	t.Setenv(envNetworkIP, "10.0.0.5")

	info := readNetworkInfo(filepath.Join(t.TempDir(), "missing.env"))
	if info == nil {
		t.Fatal("expected non-nil NetworkInfo from environment")
	}
	if info.Status != "connected" || info.IP != "10.0.0.5" {
		t.Errorf("got %+v", info)
	}
	if info.Type != "" || info.SSID != "" {
		t.Errorf("unset vars should be empty, got %+v", info)
	}
}

func TestReadNetworkInfoNoneSet(t *testing.T) {
	t.Setenv(envNetworkStatus, "")

	info := readNetworkInfo("")
	if info != nil {
		t.Errorf("expected nil when NETWORK_STATUS is unset, got %+v", info)
	}
}

func TestReadNetworkInfoFileWithoutStatus(t *testing.T) {
	path := writeEnvFile(t, "NETWORK_IP=192.168.1.100\n")

	if info := readNetworkInfo(path); info != nil {
		t.Errorf("expected nil without NETWORK_STATUS, got %+v", info)
	}
}

func TestNewToner(t *testing.T) {
	for _, kind := range []string{"off", ""} {
		toner, err := newToner(kind, "gpiochip0", 18)
		if err != nil {
			t.Fatalf("newToner(%q): %v", kind, err)
		}
		if _, ok := toner.(buzzer.Silent); !ok {
			t.Errorf("newToner(%q): got %T, want buzzer.Silent", kind, toner)
		}
	}

	if _, err := newToner("kazoo", "gpiochip0", 18); err == nil {
		t.Error("expected error for unknown buzzer")
	}
}

func TestPrintLevels(t *testing.T) {
	tests := []struct {
		levels rotary.Levels
		want   string
	}{
		{rotary.Levels{Data: true, Clock: true, Switch: true}, "CLK: HIGH, DT: HIGH, SW: HIGH (released)\n"},
		{rotary.Levels{Data: false, Clock: true, Switch: false}, "CLK: HIGH, DT: LOW, SW: LOW (pressed)\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		printLevels(&buf, tt.levels)
		if buf.String() != tt.want {
			t.Errorf("printLevels(%+v): got %q, want %q", tt.levels, buf.String(), tt.want)
		}
	}
}

func TestPublishStartup(t *testing.T) {
	pub := mqtt.NewFakePublisher()
	tr := status.NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), status.Config{Broker: "tcp://localhost:1883"})

	publishStartup(pub, tr)

	if len(pub.SystemEvents) != 1 {
		t.Fatalf("expected 1 system event, got %d", len(pub.SystemEvents))
	}
	e := pub.SystemEvents[0]
	if e.Event != "STARTUP" || !e.Retained {
		t.Errorf("got %+v, want retained STARTUP", e)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(pub.Payloads(mqtt.TopicSystem)[0], &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "STARTUP" {
		t.Errorf("payload event: got %q", parsed.Status.Event)
	}
	if parsed.Status.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("payload broker: got %q", parsed.Status.MQTT.Broker)
	}
}
