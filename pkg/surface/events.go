package surface

// Event represents a surface input event.
type Event interface {
	eventMarker()
}

// KeyEvent represents a key press. It is delivered by pointer so
// interceptors can mark it consumed before default handling runs.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool

	consumed bool
}

func (*KeyEvent) eventMarker() {}

// Consume marks the event as handled, suppressing default behavior.
func (e *KeyEvent) Consume() {
	e.consumed = true
}

// Consumed reports whether an interceptor claimed the event.
func (e *KeyEvent) Consumed() bool {
	return e.consumed
}

// ResizeEvent indicates the surface size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent represents a mouse input event.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
}

func (MouseEvent) eventMarker() {}

// PasteEvent represents bracketed paste content.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// Key identifies a non-rune key, or KeyRune for printable input.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
)

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)
