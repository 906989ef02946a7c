package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"
	"time"

	"github.com/sweeney/kitchen-timer/internal/logic"
	"github.com/sweeney/kitchen-timer/internal/power"
	"github.com/sweeney/kitchen-timer/internal/status"
)

// page is the view model for indexHTML. All formatting happens here so the template
// only places strings.
type page struct {
	status.Snapshot
	Clock      string
	ClockClass string
	State      string
	Mode       string
	PowerLine  string
	Uptime     string
	Started    string
	Debounce   string
	Heartbeat  string
	Broker     string
}

func newPage(snap status.Snapshot) page {
	p := page{
		Snapshot:   snap,
		Clock:      snap.Timer.Display(),
		ClockClass: "unknown",
		State:      "UNKNOWN",
		Mode:       "UNKNOWN",
		PowerLine:  "unknown",
		Uptime:     formatUptime(snap.Uptime()),
		Started:    snap.StartTime.UTC().Format(time.RFC3339),
		Debounce:   msOr(snap.Config.DebounceMs, "off"),
		Heartbeat:  msOr(snap.Config.HeartbeatMs, "disabled"),
		Broker:     snap.Config.Broker,
	}
	switch snap.Timer.State {
	case logic.StateActive, logic.StatePaused, logic.StateExpired:
		p.State = string(snap.Timer.State)
		p.ClockClass = strings.ToLower(p.State)
	}
	if snap.Timer.Mode != "" {
		p.Mode = string(snap.Timer.Mode)
	}
	if snap.Power != nil {
		p.PowerLine = power.Format(*snap.Power)
	}
	if p.Broker == "" {
		p.Broker = "disabled"
	}
	return p
}

func msOr(ms int64, zero string) string {
	if ms == 0 {
		return zero
	}
	return fmt.Sprintf("%dms", ms)
}

// formatUptime renders d as "3d 4h 5m 6s", leaving out leading zero units.
func formatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	parts := []struct {
		n      int64
		suffix string
	}{
		{secs / 86400, "d"},
		{secs / 3600 % 24, "h"},
		{secs / 60 % 60, "m"},
		{secs % 60, "s"},
	}
	var b strings.Builder
	for i, p := range parts {
		if b.Len() == 0 && p.n == 0 && i < len(parts)-1 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d%s", p.n, p.suffix)
	}
	return b.String()
}

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Kitchen Timer</title>
<style>
body { font-family: monospace; max-width: 36em; margin: 1.5em auto; padding: 0 1em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; }
th, td { text-align: left; padding: 3px 6px; border-bottom: 1px dotted #bbb; }
th { width: 45%; font-weight: normal; color: #555; }
.clock { font-size: 3.5em; margin: 0.3em 0; }
.active { color: #070; }
.paused { color: #777; }
.expired { color: #c00; }
.unknown { color: #c80; }
</style>
</head>
<body>
<h1>Kitchen Timer</h1>
<p id="clock" class="clock {{.ClockClass}}">{{.Clock}}</p>

<table>
<tr><th>State</th><td id="timer-state">{{.State}}</td></tr>
<tr><th>Mode</th><td id="timer-mode">{{.Mode}}</td></tr>
<tr><th>Remaining</th><td>{{.Timer.Seconds}}s</td></tr>
<tr><th>Power</th><td id="power">{{.PowerLine}}</td></tr>
</table>

<table>
<tr><th>Timers started</th><td>{{.Counts.Started}}</td></tr>
<tr><th>Paused</th><td>{{.Counts.Paused}}</td></tr>
<tr><th>Expired</th><td>{{.Counts.Expired}}</td></tr>
<tr><th>Reset</th><td>{{.Counts.Reset}}</td></tr>
<tr><th>Dropped inputs</th><td id="dropped">{{.Dropped}}</td></tr>
</table>

<table>
<tr><th>MQTT</th><td id="mqtt">{{if .MQTTConnected}}connected{{else}}disconnected{{end}} ({{.Broker}})</td></tr>
{{with .Network}}<tr><th>Network</th><td>{{.Status}} {{.Type}}{{if .SSID}} "{{.SSID}}"{{end}} {{.IP}}</td></tr>{{end}}
<tr><th>Uptime</th><td id="uptime">{{.Uptime}}</td></tr>
<tr><th>Up since</th><td>{{.Started}}</td></tr>
<tr><th>Tick / long press</th><td>{{.Config.TickMs}}ms / {{.Config.LongPressMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Debounce}}</td></tr>
<tr><th>Heartbeat</th><td>{{.Heartbeat}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">index.json</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, newPage(snap)); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
