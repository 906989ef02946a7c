package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFrameRegions(t *testing.T) {
	var f frame
	f.RenderTime("08:00")
	f.RenderMarker(true)
	f.RenderStatus("USB: 5.0V")

	f.ClearRegion(true)
	if f.cur.Marker != MarkerNone || f.cur.Status != "" {
		t.Errorf("top area not cleared: %+v", f.cur)
	}
	if f.cur.Time != "08:00" {
		t.Errorf("main area should survive a top clear, got %q", f.cur.Time)
	}

	f.RenderMarker(false)
	f.ClearRegion(false)
	if f.cur.Time != "" {
		t.Errorf("main area not cleared: %q", f.cur.Time)
	}
	if f.cur.Marker != MarkerSeconds {
		t.Errorf("marker should survive a main clear, got %v", f.cur.Marker)
	}

	f.ClearAll()
	if f.cur != (Frame{}) {
		t.Errorf("ClearAll left %+v", f.cur)
	}
}

func TestTerminalDisplayFlush(t *testing.T) {
	var buf bytes.Buffer
	d := NewTerminalDisplay(&buf)

	d.RenderTime("08:00")
	d.RenderStatus("BAT: 3.9V (66%)")
	if buf.Len() != 0 {
		t.Fatal("nothing should be written before Flush")
	}
	if err := d.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "08:00") {
		t.Errorf("frame missing time: %q", out)
	}
	if !strings.Contains(out, "BAT: 3.9V (66%)") {
		t.Errorf("frame missing status: %q", out)
	}
}

func TestTerminalDisplaySkipsIdenticalFrames(t *testing.T) {
	var buf bytes.Buffer
	d := NewTerminalDisplay(&buf)

	d.RenderTime("01:00")
	d.Flush()
	n := buf.Len()
	d.RenderTime("01:00")
	d.Flush()
	if buf.Len() != n {
		t.Error("identical frame was redrawn")
	}

	d.RenderTime("00:59")
	d.Flush()
	if buf.Len() == n {
		t.Error("changed frame was not drawn")
	}
}

func TestRenderMarkerPosition(t *testing.T) {
	min := Render(Frame{Time: "08:00", Marker: MarkerMinutes})
	sec := Render(Frame{Time: "08:00", Marker: MarkerSeconds})
	none := Render(Frame{Time: "08:00"})

	if !strings.Contains(min, "▀▀") || !strings.Contains(sec, "▀▀") {
		t.Error("marker bar missing")
	}
	if strings.Contains(none, "▀") {
		t.Error("no marker expected in run mode")
	}
	if strings.Index(min, "▀") >= strings.Index(sec, "▀") {
		t.Error("minutes marker should sit left of the seconds marker")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestTerminalDisplayWriteError(t *testing.T) {
	d := NewTerminalDisplay(failWriter{})
	d.RenderTime("00:01")
	if err := d.Flush(); err == nil {
		t.Error("expected write error")
	}
}

func TestFakeDisplayRecords(t *testing.T) {
	f := NewFakeDisplay()
	f.ClearAll()
	f.RenderMarker(true)
	f.RenderTime("05:00")
	f.Flush()

	want := []string{"clear_all", "marker minutes", "time 05:00", "flush"}
	if len(f.Ops) != len(want) {
		t.Fatalf("got %v", f.Ops)
	}
	for i := range want {
		if f.Ops[i] != want[i] {
			t.Errorf("op %d: got %q, want %q", i, f.Ops[i], want[i])
		}
	}
	last, ok := f.Last()
	if !ok || last.Time != "05:00" || last.Marker != MarkerMinutes {
		t.Errorf("last frame: %+v", last)
	}
}
