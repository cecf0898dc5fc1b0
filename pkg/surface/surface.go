// Package surface defines the render-surface abstraction embedded
// editor components draw to. It decouples the binding layer from any
// concrete terminal: real terminals (tcellsurf) and simulation screens
// (sim) implement the same interfaces, which is what makes the
// binding layer testable without a TTY.
package surface

// Target is the write-side of a surface: the subset components render
// to. Coordinates are cell-based, origin top-left.
type Target interface {
	// Size returns the target dimensions in cells.
	Size() (width, height int)

	// SetContent sets the cell at (x, y). comb carries combining
	// characters and can be nil.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// SetCursor places and shows the hardware cursor.
	SetCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()
}

// Surface is a full interactive surface: a Target plus lifecycle and
// an input event queue.
type Surface interface {
	Target

	// Init acquires the surface (raw mode, alt screen).
	Init() error

	// Fini releases the surface and restores terminal state.
	Fini()

	// Show flushes buffered cell writes to the output.
	Show()

	// Clear blanks the surface.
	Clear()

	// PollEvent blocks for the next input event; nil on shutdown.
	PollEvent() Event

	// PostEvent injects an event into the queue.
	PostEvent(ev Event) error
}

// SubTarget exposes a clipped, offset region of a parent target.
// Writes outside the region are dropped.
type SubTarget struct {
	parent  Target
	offsetX int
	offsetY int
	width   int
	height  int
}

// NewSubTarget creates a sub-region of a Target.
func NewSubTarget(parent Target, x, y, w, h int) *SubTarget {
	return &SubTarget{
		parent:  parent,
		offsetX: x,
		offsetY: y,
		width:   w,
		height:  h,
	}
}

// Size returns the sub-target dimensions.
func (s *SubTarget) Size() (width, height int) {
	return s.width, s.height
}

// SetContent sets content with coordinates relative to the sub-target.
func (s *SubTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.parent.SetContent(s.offsetX+x, s.offsetY+y, mainc, comb, style)
}

// SetCursor places the cursor relative to the sub-target. Positions
// outside the region hide the cursor instead.
func (s *SubTarget) SetCursor(x, y int) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		s.parent.HideCursor()
		return
	}
	s.parent.SetCursor(s.offsetX+x, s.offsetY+y)
}

// HideCursor hides the cursor on the parent.
func (s *SubTarget) HideCursor() {
	s.parent.HideCursor()
}
