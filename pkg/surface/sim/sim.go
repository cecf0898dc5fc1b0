// Package sim provides a simulation surface for testing, built on
// tcell's SimulationScreen. It renders nothing to a real terminal and
// exposes capture helpers for asserting on screen content.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/surface/tcellsurf"
)

// Surface is a testable surface over a tcell simulation screen.
type Surface struct {
	*tcellsurf.Surface
	screen tcellv2.SimulationScreen
	mu     sync.Mutex
}

// New creates an initialized simulation surface with the given
// dimensions.
func New(width, height int) (*Surface, error) {
	screen := tcellv2.NewSimulationScreen("")
	s := &Surface{
		Surface: tcellsurf.NewWithScreen(screen),
		screen:  screen,
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	screen.SetSize(width, height)
	return s, nil
}

// Resize changes the simulation screen size.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.SetSize(width, height)
}

// InjectKey injects a key event.
func (s *Surface) InjectKey(key surface.Key, r rune) {
	s.PostEvent(&surface.KeyEvent{Key: key, Rune: r})
}

// InjectRune injects a printable keypress.
func (s *Surface) InjectRune(r rune) {
	s.InjectKey(surface.KeyRune, r)
}

// InjectString injects a string as a sequence of key events.
func (s *Surface) InjectString(str string) {
	for _, r := range str {
		s.InjectRune(r)
	}
}

// Capture captures the current screen content as a string, one line
// per row, trailing cells as spaces.
func (s *Surface) Capture() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	var lines []string

	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			mainc, comb, _, _ := s.screen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Surface) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []string
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, _, _, _ := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}
