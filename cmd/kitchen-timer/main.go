// Command kitchen-timer runs a rotary-encoder kitchen timer on a Raspberry Pi.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sweeney/kitchen-timer/internal/buzzer"
	"github.com/sweeney/kitchen-timer/internal/control"
	"github.com/sweeney/kitchen-timer/internal/display"
	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/mqtt"
	"github.com/sweeney/kitchen-timer/internal/power"
	"github.com/sweeney/kitchen-timer/internal/rotary"
	"github.com/sweeney/kitchen-timer/internal/status"
	"github.com/sweeney/kitchen-timer/internal/web"
)

type config struct {
	chip       string
	pins       gpio.Pins
	pinBuzzer  int
	debounce   time.Duration
	tick       time.Duration
	longPress  time.Duration
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	buzzer     string
	powerRoot  string
	envFile    string
	printState bool
	verbose    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.chip, "chip", gpio.DefaultChip, "GPIO chip name")
	flag.IntVar(&cfg.pins.Clock, "pin-clk", gpio.DefaultPinCLK, "BCM pin number for encoder CLK (A)")
	flag.IntVar(&cfg.pins.Data, "pin-dt", gpio.DefaultPinDT, "BCM pin number for encoder DT (B)")
	flag.IntVar(&cfg.pins.Switch, "pin-sw", gpio.DefaultPinSW, "BCM pin number for encoder push switch")
	flag.IntVar(&cfg.pinBuzzer, "pin-buzzer", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer")
	flag.DurationVar(&cfg.debounce, "debounce", 0, "Kernel debounce for encoder lines (0 to disable)")
	flag.DurationVar(&cfg.tick, "tick", control.DefaultTick, "Countdown tick period")
	flag.DurationVar(&cfg.longPress, "long-press", rotary.DefaultLongPress, "Hold time for a long press")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	flag.DurationVar(&cfg.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&cfg.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&cfg.buzzer, "buzzer", "gpio", `Buzzer backend: "gpio", "speaker" or "off"`)
	flag.StringVar(&cfg.powerRoot, "power-sysfs", power.DefaultSysfsRoot, "power_supply sysfs directory")
	flag.StringVar(&cfg.envFile, "env-file", defaultEnvFile, "pi-helper env file with network info")
	flag.BoolVar(&cfg.printState, "print-state", false, "Print encoder line levels and exit")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Log every encoder event")

	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config) error {
	// Initialize GPIO
	enc, err := gpio.NewRealEncoder(cfg.chip, cfg.pins, cfg.debounce)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer enc.Close()

	levels, err := enc.Levels()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}

	// Print state mode
	if cfg.printState {
		printLevels(os.Stdout, levels)
		return nil
	}

	toner, err := newToner(cfg.buzzer, cfg.chip, cfg.pinBuzzer)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	beeper := buzzer.New(toner)
	defer beeper.Close()

	// Edge context: decoder and classifier feed the queue, nothing else.
	queue := rotary.NewQueue(rotary.DefaultQueueSize)
	decoder := rotary.NewEncoder(levels, cfg.longPress, queue)
	if err := enc.Watch(decoder.HandleEdge); err != nil {
		return fmt.Errorf("watch gpio: %w", err)
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      cfg.tick.Milliseconds(),
		LongPressMs: cfg.longPress.Milliseconds(),
		DebounceMs:  cfg.debounce.Milliseconds(),
		HeartbeatMs: cfg.heartbeat.Milliseconds(),
		Broker:      cfg.broker,
		HTTPPort:    cfg.httpAddr,
	})
	network := func() *status.NetworkInfo { return readNetworkInfo(cfg.envFile) }
	if net := network(); net != nil {
		tracker.SetNetwork(net)
	}

	machine := logic.NewMachine()
	tracker.Update(machine.Snapshot(), machine.Counts())

	// Initialize MQTT
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.broker != "" {
		p, err := mqtt.NewRealPublisher(cfg.broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer p.Close()
		publisher, mqttStatus = p, p
		tracker.SetMQTTConnected(p.IsConnected())
		publishStartup(publisher, tracker)
	}

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	loop := control.New(control.Deps{
		Queue:      queue,
		Machine:    machine,
		Display:    display.NewTerminalDisplay(os.Stdout),
		Buzzer:     beeper,
		Power:      power.NewSysfsMonitor(cfg.powerRoot),
		Publisher:  publisher,
		MQTTStatus: mqttStatus,
		Tracker:    tracker,
		Heartbeat:  cfg.heartbeat,
		Network:    network,
	})
	if cfg.verbose {
		loop.Subscribe(func(ev rotary.Event) {
			log.Printf("input: %s", ev.Type)
		})
	}

	log.Printf("started: chip=%s clk=%d dt=%d sw=%d tick=%v long-press=%v broker=%q heartbeat=%v",
		cfg.chip, cfg.pins.Clock, cfg.pins.Data, cfg.pins.Switch, cfg.tick, cfg.longPress, cfg.broker, cfg.heartbeat)

	loop.Start()

	ticker := time.NewTicker(cfg.tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return loop.Run(ticker.C, sigCh)
}

// newToner picks the buzzer backend.
func newToner(kind, chip string, pin int) (buzzer.Toner, error) {
	switch kind {
	case "gpio":
		return buzzer.NewLineToner(chip, pin)
	case "speaker":
		return buzzer.NewSpeakerToner()
	case "off", "":
		return buzzer.Silent{}, nil
	default:
		return nil, fmt.Errorf("unknown buzzer %q", kind)
	}
}

// publishStartup sends the retained STARTUP event with a full status snapshot.
func publishStartup(publisher mqtt.Publisher, tracker *status.Tracker) {
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}
}

func printLevels(w io.Writer, l rotary.Levels) {
	sw := "released"
	if !l.Switch {
		sw = "pressed"
	}
	fmt.Fprintf(w, "CLK: %s, DT: %s, SW: %s (%s)\n", levelString(l.Clock), levelString(l.Data), levelString(l.Switch), sw)
}

func levelString(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}

// defaultEnvFile is where pi-helper writes network state.
const defaultEnvFile = "/run/pi-helper.env"

// pi-helper env var names.
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

// readNetworkInfo reads network state from the pi-helper env file, falling back to the
// process environment when the file is missing. Returns nil if no status is known.
func readNetworkInfo(envFile string) *status.NetworkInfo {
	get := os.Getenv
	if envFile != "" {
		if vars, err := godotenv.Read(envFile); err == nil {
			get = func(k string) string { return vars[k] }
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Printf("read %s: %v", envFile, err)
		}
	}

	s := get(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       get(envNetworkType),
		IP:         get(envNetworkIP),
		Status:     s,
		Gateway:    get(envNetworkGateway),
		WifiStatus: get(envNetworkWifiStatus),
		SSID:       get(envNetworkWifiSSID),
	}
}
