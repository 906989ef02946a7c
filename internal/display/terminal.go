package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	faceBorder = lipgloss.Color("#334155")
	timeColor  = lipgloss.Color("#F8FAFC")
	barColor   = lipgloss.Color("#F97316")
	dimColor   = lipgloss.Color("#94A3B8")

	faceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faceBorder).
			Padding(0, 2)

	timeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(timeColor)

	barStyle = lipgloss.NewStyle().
			Foreground(barColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// TerminalDisplay draws the face to a terminal. Identical frames are not redrawn.
type TerminalDisplay struct {
	frame
	out  io.Writer
	last string
}

// NewTerminalDisplay creates a display writing to out, or stdout if out is nil.
func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalDisplay{out: out}
}

// Flush writes the pending frame if it differs from the last one written.
func (d *TerminalDisplay) Flush() error {
	s := Render(d.cur)
	if s == d.last {
		return nil
	}
	if _, err := fmt.Fprintln(d.out, s); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	d.last = s
	return nil
}

// Render draws f as a bordered block: marker row, time, status line.
func Render(f Frame) string {
	t := f.Time
	if t == "" {
		t = "     "
	}

	var bar string
	switch f.Marker {
	case MarkerMinutes:
		bar = barStyle.Render("▀▀") + "   "
	case MarkerSeconds:
		bar = "   " + barStyle.Render("▀▀")
	default:
		bar = strings.Repeat(" ", 5)
	}

	rows := []string{bar, timeStyle.Render(t)}
	if f.Status != "" {
		rows = append(rows, statusStyle.Render(f.Status))
	}
	return faceStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
