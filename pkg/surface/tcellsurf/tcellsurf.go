// Package tcellsurf provides a Surface implementation using tcell.
package tcellsurf

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/bindery/pkg/surface"
)

// Surface implements surface.Surface on a tcell screen.
type Surface struct {
	screen tcell.Screen
}

// New creates a surface on a real terminal screen.
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Surface{screen: screen}, nil
}

// NewWithScreen creates a surface over an existing tcell screen
// (simulation screens included).
func NewWithScreen(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Init initializes the screen.
func (s *Surface) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	s.screen.EnablePaste()
	return nil
}

// Fini restores the terminal state.
func (s *Surface) Fini() {
	s.screen.Fini()
}

// Size returns the screen dimensions.
func (s *Surface) Size() (width, height int) {
	return s.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (s *Surface) SetContent(x, y int, mainc rune, comb []rune, style surface.Style) {
	s.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// SetCursor places and shows the hardware cursor.
func (s *Surface) SetCursor(x, y int) {
	s.screen.ShowCursor(x, y)
}

// HideCursor hides the hardware cursor.
func (s *Surface) HideCursor() {
	s.screen.HideCursor()
}

// Show flushes buffered writes to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

// Clear blanks the screen.
func (s *Surface) Clear() {
	s.screen.Clear()
}

// PollEvent blocks until an event is available.
func (s *Surface) PollEvent() surface.Event {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if converted := convertEvent(ev); converted != nil {
			return converted
		}
	}
}

// PostEvent injects an event into the queue.
func (s *Surface) PostEvent(ev surface.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return s.screen.PostEvent(tev)
	}
	return nil
}

func convertStyle(st surface.Style) tcell.Style {
	out := tcell.StyleDefault
	if st.Fg != surface.ColorDefault {
		out = out.Foreground(tcell.PaletteColor(int(st.Fg)))
	}
	if st.Bg != surface.ColorDefault {
		out = out.Background(tcell.PaletteColor(int(st.Bg)))
	}
	return out.Bold(st.IsBold).Reverse(st.IsReverse).Dim(st.IsDim)
}

var keyFromTcell = map[tcell.Key]surface.Key{
	tcell.KeyEnter:      surface.KeyEnter,
	tcell.KeyBackspace:  surface.KeyBackspace,
	tcell.KeyBackspace2: surface.KeyBackspace,
	tcell.KeyDelete:     surface.KeyDelete,
	tcell.KeyTab:        surface.KeyTab,
	tcell.KeyEscape:     surface.KeyEscape,
	tcell.KeyUp:         surface.KeyUp,
	tcell.KeyDown:       surface.KeyDown,
	tcell.KeyLeft:       surface.KeyLeft,
	tcell.KeyRight:      surface.KeyRight,
	tcell.KeyHome:       surface.KeyHome,
	tcell.KeyEnd:        surface.KeyEnd,
	tcell.KeyPgUp:       surface.KeyPgUp,
	tcell.KeyPgDn:       surface.KeyPgDn,
}

var keyToTcell = map[surface.Key]tcell.Key{
	surface.KeyEnter:     tcell.KeyEnter,
	surface.KeyBackspace: tcell.KeyBackspace2,
	surface.KeyDelete:    tcell.KeyDelete,
	surface.KeyTab:       tcell.KeyTab,
	surface.KeyEscape:    tcell.KeyEscape,
	surface.KeyUp:        tcell.KeyUp,
	surface.KeyDown:      tcell.KeyDown,
	surface.KeyLeft:      tcell.KeyLeft,
	surface.KeyRight:     tcell.KeyRight,
	surface.KeyHome:      tcell.KeyHome,
	surface.KeyEnd:       tcell.KeyEnd,
	surface.KeyPgUp:      tcell.KeyPgUp,
	surface.KeyPgDn:      tcell.KeyPgDn,
}

func convertEvent(ev tcell.Event) surface.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		out := &surface.KeyEvent{
			Alt:   e.Modifiers()&tcell.ModAlt != 0,
			Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
			Shift: e.Modifiers()&tcell.ModShift != 0,
		}
		if e.Key() == tcell.KeyRune {
			out.Key = surface.KeyRune
			out.Rune = e.Rune()
			return out
		}
		if k, ok := keyFromTcell[e.Key()]; ok {
			out.Key = k
			return out
		}
		return nil

	case *tcell.EventResize:
		w, h := e.Size()
		return surface.ResizeEvent{Width: w, Height: h}

	case *tcell.EventPaste:
		// Paste boundaries are handled by the component itself.
		return nil

	case *tcell.EventMouse:
		x, y := e.Position()
		return surface.MouseEvent{X: x, Y: y, Button: convertButton(e.Buttons())}
	}
	return nil
}

func convertButton(b tcell.ButtonMask) surface.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return surface.MouseLeft
	case b&tcell.Button2 != 0:
		return surface.MouseMiddle
	case b&tcell.Button3 != 0:
		return surface.MouseRight
	case b&tcell.WheelUp != 0:
		return surface.MouseWheelUp
	case b&tcell.WheelDown != 0:
		return surface.MouseWheelDown
	}
	return surface.MouseNone
}

func reverseConvertEvent(ev surface.Event) tcell.Event {
	switch e := ev.(type) {
	case *surface.KeyEvent:
		var mod tcell.ModMask
		if e.Alt {
			mod |= tcell.ModAlt
		}
		if e.Ctrl {
			mod |= tcell.ModCtrl
		}
		if e.Shift {
			mod |= tcell.ModShift
		}
		if e.Key == surface.KeyRune {
			return tcell.NewEventKey(tcell.KeyRune, e.Rune, mod)
		}
		if k, ok := keyToTcell[e.Key]; ok {
			return tcell.NewEventKey(k, 0, mod)
		}
		return nil

	case surface.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	}
	return nil
}
