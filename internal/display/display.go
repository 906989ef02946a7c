// Package display renders the timer face.
//
// The face mirrors a 128x64 OLED with two areas: a small top area holding
// the setup marker and the power line, and the main area holding the "MM:SS" time.
package display

// Display is the drawing surface the control loop talks to. Draw calls only update the
// pending frame; Flush pushes it out.
type Display interface {
	ClearAll()
	// ClearRegion clears the top area (marker and status) when topAreaOnly is set, the
	// main time area otherwise.
	ClearRegion(topAreaOnly bool)
	RenderTime(text string)
	// RenderMarker draws the setup bar over the minutes or the seconds.
	RenderMarker(forMinutes bool)
	RenderStatus(text string)
	Flush() error
}

// Marker identifies which field the setup bar is over.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerMinutes
	MarkerSeconds
)

// Frame is the content of the face.
type Frame struct {
	Time   string
	Marker Marker
	Status string
}

// frame holds the pending content shared by the implementations.
type frame struct {
	cur Frame
}

func (f *frame) ClearAll() {
	f.cur = Frame{}
}

func (f *frame) ClearRegion(topAreaOnly bool) {
	if topAreaOnly {
		f.cur.Marker = MarkerNone
		f.cur.Status = ""
		return
	}
	f.cur.Time = ""
}

func (f *frame) RenderTime(text string) {
	f.cur.Time = text
}

func (f *frame) RenderMarker(forMinutes bool) {
	if forMinutes {
		f.cur.Marker = MarkerMinutes
	} else {
		f.cur.Marker = MarkerSeconds
	}
}

func (f *frame) RenderStatus(text string) {
	f.cur.Status = text
}
