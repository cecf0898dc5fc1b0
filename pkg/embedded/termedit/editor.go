// Package termedit implements a terminal code editor component
// satisfying the embedded.Component contract. It is the reference
// embedded editor for the binding layer: real enough to edit text on
// a tcell surface, small enough to run against a simulation screen in
// tests.
package termedit

import (
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// tabSpaces is what a Tab keypress inserts. Hard tabs would need
// elastic cell mapping in the hit tester; spaces keep columns exact.
const tabSpaces = "    "

// Editor is a terminal editor component. It implements
// embedded.Component.
type Editor struct {
	container *surface.Container
	buf       *Buffer

	lineNumbers bool
	wordWrap    bool
	readOnly    bool
	focused     bool
	overlay     bool
	disposed    bool

	width  int
	height int

	scrollTop  int
	scrollLeft int

	// cursor and selections are kept in host convention internally
	// and translated at the contract boundary.
	cursor     textpos.Position
	selections []textpos.Span

	keySubs  signal.List[*surface.KeyEvent]
	cfgSubs  signal.List[struct{}]
	swapSubs signal.List[embedded.Buffer]
	bufSubs  signal.Group
}

// New creates an editor mounted in container. Nil option pointers fall
// back to the editor defaults: line numbers on, wrap off, writable.
func New(container *surface.Container, opts embedded.Options) (*Editor, error) {
	e := &Editor{
		container:   container,
		lineNumbers: true,
	}
	if opts.LineNumbers != nil {
		e.lineNumbers = *opts.LineNumbers
	}
	if opts.WordWrap != nil {
		e.wordWrap = *opts.WordWrap
	}
	if opts.ReadOnly != nil {
		e.readOnly = *opts.ReadOnly
	}
	if container != nil {
		bounds := container.Bounds()
		e.width, e.height = bounds.Width, bounds.Height
	}
	e.installBuffer(NewBuffer(opts.Text, opts.Language))
	return e, nil
}

// Factory is the embedded.Factory for terminal editors.
func Factory(container *surface.Container, opts embedded.Options) (embedded.Component, error) {
	return New(container, opts)
}

// installBuffer wires the editor's own listeners onto buf.
func (e *Editor) installBuffer(buf *Buffer) {
	e.bufSubs.UnsubscribeAll()
	e.buf = buf
	e.bufSubs.Add(buf.OnContentChange(func() {
		// Keep derived view state valid after any mutation source.
		e.cursor = e.buf.ix.Clamp(e.cursor)
		e.clampSelections()
		e.clampScroll()
		e.Render()
	}))
}

// clampSelections drops selections that collapsed out of bounds.
func (e *Editor) clampSelections() {
	for i, s := range e.selections {
		e.selections[i] = textpos.Span{
			Start: e.buf.ix.Clamp(s.Start),
			End:   e.buf.ix.Clamp(s.End),
		}
	}
}

// SwapBuffer replaces the internal buffer with a fresh empty one and
// notifies swap listeners. This models the component rebuilding its
// text model, which some configuration paths do.
func (e *Editor) SwapBuffer() {
	e.installBuffer(NewBuffer("", ""))
	e.cursor = textpos.Position{}
	e.selections = nil
	e.scrollTop, e.scrollLeft = 0, 0
	e.swapSubs.Emit(e.buf)
	e.Render()
}

// Buffer returns the live buffer.
func (e *Editor) Buffer() embedded.Buffer {
	if e.buf == nil {
		return nil
	}
	return e.buf
}

// OnBufferSwap registers a buffer replacement listener.
func (e *Editor) OnBufferSwap(fn func(embedded.Buffer)) signal.Subscription {
	return e.swapSubs.Listen(fn)
}

// OnConfigChange registers a configuration change listener.
func (e *Editor) OnConfigChange(fn func()) signal.Subscription {
	return e.cfgSubs.Listen(func(struct{}) { fn() })
}

// OnKeydown registers a key pre-hook.
func (e *Editor) OnKeydown(fn func(*surface.KeyEvent)) signal.Subscription {
	return e.keySubs.Listen(fn)
}

// OverlayVisible reports whether the completion overlay owns input.
func (e *Editor) OverlayVisible() bool {
	return e.overlay
}

// ShowOverlay opens the completion overlay.
func (e *Editor) ShowOverlay() {
	e.overlay = true
}

// HideOverlay closes the completion overlay.
func (e *Editor) HideOverlay() {
	e.overlay = false
}

// Focus gives the editor keyboard focus.
func (e *Editor) Focus() {
	e.focused = true
	e.Render()
}

// Blur removes keyboard focus.
func (e *Editor) Blur() {
	e.focused = false
	e.Render()
}

// HasFocus reports keyboard focus.
func (e *Editor) HasFocus() bool {
	return e.focused
}

// LineNumbers reports whether the gutter is shown.
func (e *Editor) LineNumbers() bool {
	return e.lineNumbers
}

// SetLineNumbers toggles the gutter.
func (e *Editor) SetLineNumbers(v bool) {
	if e.lineNumbers == v {
		return
	}
	e.lineNumbers = v
	e.cfgSubs.Emit(struct{}{})
	e.Render()
}

// WordWrap reports soft wrapping.
func (e *Editor) WordWrap() bool {
	return e.wordWrap
}

// SetWordWrap toggles soft wrapping.
func (e *Editor) SetWordWrap(v bool) {
	if e.wordWrap == v {
		return
	}
	e.wordWrap = v
	e.scrollLeft = 0
	e.cfgSubs.Emit(struct{}{})
	e.Render()
}

// ReadOnly reports whether editing keys are ignored.
func (e *Editor) ReadOnly() bool {
	return e.readOnly
}

// SetReadOnly toggles read-only mode.
func (e *Editor) SetReadOnly(v bool) {
	if e.readOnly == v {
		return
	}
	e.readOnly = v
	e.cfgSubs.Emit(struct{}{})
}

// Undo reverts the last edit.
func (e *Editor) Undo() {
	e.buf.Undo()
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() {
	e.buf.Redo()
}

// CursorPosition returns the cursor in embedded convention.
func (e *Editor) CursorPosition() textpos.EmbeddedPosition {
	return textpos.ToEmbedded(e.cursor)
}

// SetCursorPosition moves the cursor, clamped into bounds.
func (e *Editor) SetCursorPosition(p textpos.EmbeddedPosition) {
	e.cursor = e.buf.ix.Clamp(textpos.ToHost(p))
	e.scrollToCursor()
	e.Render()
}

// Selections returns current selections in embedded convention.
// Transiently empty when nothing is selected.
func (e *Editor) Selections() []textpos.EmbeddedSpan {
	out := make([]textpos.EmbeddedSpan, len(e.selections))
	for i, s := range e.selections {
		out[i] = textpos.SpanToEmbedded(s)
	}
	return out
}

// SetSelections replaces current selections, clamping each span. The
// cursor moves to the end of the last selection.
func (e *Editor) SetSelections(spans []textpos.EmbeddedSpan) {
	e.selections = e.selections[:0]
	for _, s := range spans {
		hs := textpos.SpanToHost(s)
		e.selections = append(e.selections, textpos.Span{
			Start: e.buf.ix.Clamp(hs.Start),
			End:   e.buf.ix.Clamp(hs.End),
		})
	}
	if n := len(e.selections); n > 0 {
		e.cursor = e.selections[n-1].End
		e.scrollToCursor()
	}
	e.Render()
}

// Metrics returns the editor's layout geometry. Terminal cells are the
// surface unit, so a line is one cell high and there is no horizontal
// scrollbar reserve.
func (e *Editor) Metrics() embedded.Metrics {
	return embedded.Metrics{LineHeight: 1, ScrollbarHeight: 0}
}

// Resize applies explicit dimensions. Same-size calls fire no event.
func (e *Editor) Resize(width, height int) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	e.clampScroll()
	e.cfgSubs.Emit(struct{}{})
	e.Render()
}

// Dispose releases the editor. Idempotent.
func (e *Editor) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.bufSubs.UnsubscribeAll()
	e.focused = false
	e.overlay = false
}

// HandleKey feeds one key event through the editor: registered
// pre-hooks first, then overlay handling, then default editing.
func (e *Editor) HandleKey(ev *surface.KeyEvent) {
	if e.disposed {
		return
	}

	e.keySubs.Emit(ev)
	if ev.Consumed() {
		return
	}

	if e.overlay {
		e.handleOverlayKey(ev)
		return
	}

	switch ev.Key {
	case surface.KeyRune:
		e.insertAtCursor(string(ev.Rune))
	case surface.KeyEnter:
		e.insertAtCursor("\n")
	case surface.KeyTab:
		e.insertAtCursor(tabSpaces)
	case surface.KeyBackspace:
		e.deleteBackward()
	case surface.KeyDelete:
		e.deleteForward()
	case surface.KeyUp:
		e.moveCursor(-1, 0)
	case surface.KeyDown:
		e.moveCursor(1, 0)
	case surface.KeyLeft:
		e.moveCursorRune(-1)
	case surface.KeyRight:
		e.moveCursorRune(1)
	case surface.KeyHome:
		e.cursor.Column = 0
		e.afterMove()
	case surface.KeyEnd:
		e.cursor.Column = e.buf.ix.LineLen(e.cursor.Line)
		e.afterMove()
	case surface.KeyPgUp:
		e.moveCursor(-e.height, 0)
	case surface.KeyPgDn:
		e.moveCursor(e.height, 0)
	}
}

// handleOverlayKey gives the overlay exclusive key handling while
// visible.
func (e *Editor) handleOverlayKey(ev *surface.KeyEvent) {
	switch ev.Key {
	case surface.KeyEscape, surface.KeyEnter:
		e.HideOverlay()
	case surface.KeyUp, surface.KeyDown:
		// Overlay row navigation; nothing observable without items.
	}
}

func (e *Editor) insertAtCursor(text string) {
	if e.readOnly {
		return
	}
	// Typing replaces an active selection.
	if len(e.selections) > 0 && !e.selections[0].IsEmpty() {
		span := e.selections[0].Normalize()
		e.selections = nil
		start := e.buf.ix.OffsetOf(span.Start)
		if e.buf.ApplyEdit(textpos.SpanToEmbedded(span), text) == nil {
			e.cursor = e.buf.ix.PositionOf(start + len([]rune(text)))
			e.afterMove()
		}
		return
	}
	offset := e.buf.ix.OffsetOf(e.cursor)
	span := textpos.SpanToEmbedded(textpos.Collapsed(e.cursor))
	if e.buf.ApplyEdit(span, text) == nil {
		e.cursor = e.buf.ix.PositionOf(offset + len([]rune(text)))
		e.afterMove()
	}
}

func (e *Editor) deleteBackward() {
	if e.readOnly {
		return
	}
	offset := e.buf.ix.OffsetOf(e.cursor)
	if offset == 0 {
		return
	}
	span := textpos.EmbeddedSpan{
		Start: e.buf.PositionAt(offset - 1),
		End:   e.buf.PositionAt(offset),
	}
	if e.buf.ApplyEdit(span, "") == nil {
		e.cursor = e.buf.ix.PositionOf(offset - 1)
		e.afterMove()
	}
}

func (e *Editor) deleteForward() {
	if e.readOnly {
		return
	}
	offset := e.buf.ix.OffsetOf(e.cursor)
	if offset >= e.buf.Length() {
		return
	}
	span := textpos.EmbeddedSpan{
		Start: e.buf.PositionAt(offset),
		End:   e.buf.PositionAt(offset + 1),
	}
	e.buf.ApplyEdit(span, "")
}

func (e *Editor) moveCursor(dLine, dCol int) {
	e.cursor = e.buf.ix.Clamp(textpos.Position{
		Line:   e.cursor.Line + dLine,
		Column: e.cursor.Column + dCol,
	})
	e.afterMove()
}

// moveCursorRune moves by whole runes, crossing line boundaries.
func (e *Editor) moveCursorRune(delta int) {
	offset := e.buf.ix.OffsetOf(e.cursor)
	e.cursor = e.buf.ix.PositionOf(offset + delta)
	e.afterMove()
}

func (e *Editor) afterMove() {
	e.selections = nil
	e.scrollToCursor()
	e.Render()
}
