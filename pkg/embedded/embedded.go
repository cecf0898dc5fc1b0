// Package embedded defines the contract the binding layer consumes
// from a pluggable editor component. Any editor that implements
// Component can be bound to a document model; the binding layer never
// depends on a concrete editor.
//
// All positions crossing this boundary use the embedded convention
// (1-based line and column, textpos.EmbeddedPosition).
package embedded

import (
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// Buffer is the embedded component's internal text model: the live
// editing surface for user keystrokes.
type Buffer interface {
	// Text returns the full buffer content.
	Text() string

	// Length returns the content length in runes.
	Length() int

	// SetText replaces the entire content. This reloads the buffer:
	// marks and cursors are reset and the undo history is cleared,
	// which is why incremental ApplyEdit is preferred when the delta
	// is known.
	SetText(text string)

	// ApplyEdit applies one minimal edit: span is replaced by text.
	// Marks and cursors outside the span are preserved, and the edit
	// is recorded in the undo history. Spans outside the current
	// bounds are rejected with a structured error.
	ApplyEdit(span textpos.EmbeddedSpan, text string) error

	// LineCount returns the number of lines. Always >= 1.
	LineCount() int

	// Line returns the content of 1-based line n, without its newline.
	Line(n int) (string, bool)

	// OffsetAt returns the rune offset of p, clamped into bounds.
	OffsetAt(p textpos.EmbeddedPosition) int

	// PositionAt returns the position of a rune offset, clamped.
	PositionAt(offset int) textpos.EmbeddedPosition

	// Language returns the buffer's language identifier.
	Language() string

	// SetLanguage changes the language identifier. Setting the current
	// value fires no event.
	SetLanguage(id string)

	// OnContentChange registers a listener fired after every content
	// mutation, from either SetText or ApplyEdit or user editing.
	OnContentChange(fn func()) signal.Subscription

	// OnLanguageChange registers a listener for language id changes.
	OnLanguageChange(fn func(string)) signal.Subscription
}

// Metrics describes the component's vertical geometry in surface
// units, consumed by the layout engine's auto-size mode.
type Metrics struct {
	LineHeight      int
	ScrollbarHeight int
}

// Options configure a component at construction. Nil pointers fall
// back to the component's own defaults.
type Options struct {
	Text        string
	Language    string
	LineNumbers *bool
	WordWrap    *bool
	ReadOnly    *bool
}

// Factory constructs a component mounted in a container.
type Factory func(container *surface.Container, opts Options) (Component, error)

// Component is the embedded editor consumed by the binding layer.
type Component interface {
	// Buffer returns the live buffer, or nil before the component has
	// produced one. Callers treat nil as an invariant violation.
	Buffer() Buffer

	// OnBufferSwap registers a listener fired when the component
	// replaces its internal buffer with a new instance.
	OnBufferSwap(fn func(Buffer)) signal.Subscription

	// OnConfigChange registers a listener fired after any
	// configuration change (line numbers, wrap, read-only, size).
	OnConfigChange(fn func()) signal.Subscription

	// OnKeydown registers a pre-hook invoked before the component's
	// default key handling. Listeners may Consume the event.
	OnKeydown(fn func(*surface.KeyEvent)) signal.Subscription

	// OverlayVisible reports whether a transient overlay UI (such as a
	// completion popup) currently owns key input.
	OverlayVisible() bool

	// Focus/HasFocus manage keyboard focus.
	Focus()
	Blur()
	HasFocus() bool

	// Live configuration.
	LineNumbers() bool
	SetLineNumbers(v bool)
	WordWrap() bool
	SetWordWrap(v bool)
	ReadOnly() bool
	SetReadOnly(v bool)

	// Undo/Redo delegate to the component's own history.
	Undo()
	Redo()

	// Cursor and selection state, embedded convention.
	CursorPosition() textpos.EmbeddedPosition
	SetCursorPosition(p textpos.EmbeddedPosition)
	Selections() []textpos.EmbeddedSpan
	SetSelections(spans []textpos.EmbeddedSpan)

	// Scrolling.
	RevealPosition(p textpos.EmbeddedPosition)
	RevealSpan(s textpos.EmbeddedSpan)

	// CoordinateForPosition returns the surface rect of the glyph at
	// p. ok is false while the component is not renderable.
	CoordinateForPosition(p textpos.EmbeddedPosition) (rect surface.Rect, ok bool)

	// PositionForCoordinate maps an absolute surface cell to a buffer
	// position. ok is false when nothing is under the cell.
	PositionForCoordinate(x, y int) (pos textpos.EmbeddedPosition, ok bool)

	// Metrics returns the component's layout geometry.
	Metrics() Metrics

	// Resize applies explicit dimensions computed by the layout
	// engine.
	Resize(width, height int)

	// Dispose releases the component. Idempotent.
	Dispose()
}
