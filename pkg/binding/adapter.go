// Package binding implements the editor binding layer: the change
// bridge keeping a host document model and an embedded editor buffer
// synchronized, the selection mapper and layout engine serving it, and
// the adapter composition root that hosts consume.
package binding

import (
	"github.com/google/uuid"

	"github.com/odvcencio/bindery/pkg/document"
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/errors"
	"github.com/odvcencio/bindery/pkg/langmap"
	"github.com/odvcencio/bindery/pkg/logging"
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// DefaultSelectionStyle tags selections an adapter stores on the model
// when no style is configured.
const DefaultSelectionStyle = "editor"

// Options configure an adapter at construction. Zero values fall back
// to documented defaults.
type Options struct {
	// SelectionStyle tags this adapter's selections on the model.
	SelectionStyle string

	// AutoSize derives editor height from line count. MinLines floors
	// it; negative disables the floor.
	AutoSize bool
	MinLines int

	// Initial embedded configuration. Nil defers to the component.
	LineNumbers *bool
	WordWrap    *bool
	ReadOnly    *bool

	// Languages maps MIME types to language ids. Nil uses the built-in
	// defaults. Injected rather than global so adapters under test can
	// carry different tables.
	Languages *langmap.Table

	Logger *logging.Logger

	// Fail overrides the bridge's panic-on-contract-violation policy.
	Fail func(error)
}

// KeydownHandler inspects a key event before the embedded component's
// default handling. Returning true marks the event consumed and stops
// dispatch to later handlers.
type KeydownHandler func(*surface.KeyEvent) bool

// Adapter binds one embedded editor component to one host document
// model. It owns the bridge, mapper and layout engine, and implements
// the host-facing editor contract.
type Adapter struct {
	id    string
	style string

	model     *document.Model
	component embedded.Component
	container *surface.Container

	bridge *Bridge
	mapper *SelectionMapper
	layout *LayoutEngine

	keyHandlers signal.List[*surface.KeyEvent]
	subs        signal.Group
	disposed    bool

	log *logging.Logger
}

// New constructs an adapter: builds the embedded component via factory
// in container, seeds it from model, and wires the bridge.
func New(model *document.Model, factory embedded.Factory, container *surface.Container, opts Options) (*Adapter, error) {
	if model == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil document model")
	}

	languages := opts.Languages
	if languages == nil {
		languages = langmap.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	style := opts.SelectionStyle
	if style == "" {
		style = DefaultSelectionStyle
	}

	lang, _ := languages.LanguageFor(model.MimeType())
	component, err := factory(container, embedded.Options{
		Text:        model.Text(),
		Language:    lang,
		LineNumbers: opts.LineNumbers,
		WordWrap:    opts.WordWrap,
		ReadOnly:    opts.ReadOnly,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "embedded factory failed")
	}

	a := &Adapter{
		id:        uuid.NewString(),
		style:     style,
		model:     model,
		component: component,
		container: container,
		log:       log,
	}
	log.SetAdapterID(a.id)

	a.mapper = NewSelectionMapper(component.Buffer())
	a.layout = NewLayoutEngine(container, component, log)
	a.layout.SetAutoSize(opts.AutoSize, opts.MinLines)

	a.bridge = NewBridge(model, component, languages, log, opts.Fail)
	a.bridge.OnSynced(a.layout.Auto)
	if err := a.bridge.Bind(); err != nil {
		component.Dispose()
		return nil, err
	}

	a.subs.Add(
		component.OnConfigChange(a.layout.Auto),
		component.OnKeydown(a.dispatchKeydown),
		component.OnBufferSwap(func(buf embedded.Buffer) { a.mapper.SetBuffer(buf) }),
	)

	a.layout.Auto()
	log.Info(logging.CategoryLifecycle, "adapter_created", "", map[string]any{
		"mime": model.MimeType(),
	})
	return a, nil
}

// ID returns the adapter's unique identifier, used as its selection
// owner key on the model.
func (a *Adapter) ID() string {
	return a.id
}

// SelectionStyle returns the style tag for this adapter's selections.
func (a *Adapter) SelectionStyle() string {
	return a.style
}

// Model returns the bound document model. The adapter does not own it.
func (a *Adapter) Model() *document.Model {
	return a.model
}

// Dispose releases the adapter: all listeners on both sides, keydown
// handlers, this adapter's selections on the model, and the embedded
// component. Idempotent; the model itself is never otherwise mutated.
func (a *Adapter) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true

	a.bridge.Unbind()
	a.subs.UnsubscribeAll()
	a.model.SetSelections(a.id, nil)
	a.component.Dispose()
	a.log.Info(logging.CategoryLifecycle, "adapter_disposed", "", nil)
}

// Disposed reports whether Dispose has run.
func (a *Adapter) Disposed() bool {
	return a.disposed
}

// Focus gives the embedded component keyboard focus.
func (a *Adapter) Focus() {
	a.component.Focus()
}

// Blur removes keyboard focus.
func (a *Adapter) Blur() {
	a.component.Blur()
}

// HasFocus reports keyboard focus.
func (a *Adapter) HasFocus() bool {
	return a.component.HasFocus()
}

// Line returns the content of 0-based line i.
func (a *Adapter) Line(i int) (string, bool) {
	return a.component.Buffer().Line(i + 1)
}

// LineCount returns the number of lines in the bound content.
func (a *Adapter) LineCount() int {
	return a.component.Buffer().LineCount()
}

// OffsetAt returns the rune offset of a host position, clamped.
func (a *Adapter) OffsetAt(p textpos.Position) int {
	return a.component.Buffer().OffsetAt(textpos.ToEmbedded(p))
}

// PositionAt returns the host position of a rune offset, clamped.
func (a *Adapter) PositionAt(offset int) textpos.Position {
	return textpos.ToHost(a.component.Buffer().PositionAt(offset))
}

// Undo delegates to the embedded component's history.
func (a *Adapter) Undo() {
	a.component.Undo()
}

// Redo delegates to the embedded component's history.
func (a *Adapter) Redo() {
	a.component.Redo()
}

// ClearHistory resets the embedded undo stack by reapplying the
// current content as a full replace; the reset is that reload's
// documented side effect.
func (a *Adapter) ClearHistory() {
	buf := a.component.Buffer()
	buf.SetText(buf.Text())
}

// SetSize applies explicit dimensions; negative components are
// computed by the layout engine.
func (a *Adapter) SetSize(dim surface.Dimension) {
	a.layout.Resize(dim)
}

// Resize recomputes both dimensions from the container and content.
func (a *Adapter) Resize() {
	a.layout.Auto()
}

// SetAutoSize reconfigures content-derived height.
func (a *Adapter) SetAutoSize(enabled bool, minLines int) {
	a.layout.SetAutoSize(enabled, minLines)
	a.layout.Auto()
}

// RevealPosition scrolls the embedded view to a host position.
func (a *Adapter) RevealPosition(p textpos.Position) {
	a.component.RevealPosition(textpos.ToEmbedded(p))
}

// RevealSelection scrolls the embedded view to a host span.
func (a *Adapter) RevealSelection(s textpos.Span) {
	a.component.RevealSpan(textpos.SpanToEmbedded(a.mapper.Validate(s)))
}

// CoordinateForPosition returns the surface rect of the glyph at a
// host position. ok is false while the component is not renderable.
func (a *Adapter) CoordinateForPosition(p textpos.Position) (surface.Rect, bool) {
	return a.component.CoordinateForPosition(textpos.ToEmbedded(p))
}

// PositionForCoordinate maps an absolute surface cell to a host
// position. ok is false when nothing is under the cell.
func (a *Adapter) PositionForCoordinate(x, y int) (textpos.Position, bool) {
	p, ok := a.component.PositionForCoordinate(x, y)
	if !ok {
		return textpos.Position{}, false
	}
	return textpos.ToHost(p), true
}

// LineNumbers reports the embedded gutter setting.
func (a *Adapter) LineNumbers() bool {
	return a.component.LineNumbers()
}

// SetLineNumbers toggles the embedded gutter.
func (a *Adapter) SetLineNumbers(v bool) {
	a.component.SetLineNumbers(v)
}

// WordWrap reports the embedded wrap setting.
func (a *Adapter) WordWrap() bool {
	return a.component.WordWrap()
}

// SetWordWrap toggles embedded soft wrapping.
func (a *Adapter) SetWordWrap(v bool) {
	a.component.SetWordWrap(v)
}

// ReadOnly reports the embedded read-only setting.
func (a *Adapter) ReadOnly() bool {
	return a.component.ReadOnly()
}

// SetReadOnly toggles embedded read-only mode.
func (a *Adapter) SetReadOnly(v bool) {
	a.component.SetReadOnly(v)
}

// CursorPosition returns the cursor in host convention.
func (a *Adapter) CursorPosition() textpos.Position {
	return textpos.ToHost(a.component.CursorPosition())
}

// SetCursorPosition moves the cursor, validated against bounds.
func (a *Adapter) SetCursorPosition(p textpos.Position) {
	valid := a.mapper.Validate(textpos.Collapsed(p))
	a.component.SetCursorPosition(textpos.ToEmbedded(valid.Start))
}

// Selections returns current selections in host convention. Never
// empty: a collapsed selection at the cursor stands in when the
// component reports none.
func (a *Adapter) Selections() []textpos.Span {
	return a.mapper.ToHost(a.component.Selections(), a.component.CursorPosition())
}

// Selection returns the first of Selections.
func (a *Adapter) Selection() textpos.Span {
	return a.Selections()[0]
}

// SetSelections applies host selections to the component and records
// them on the model under this adapter's id. An empty list resets to
// a collapsed selection at document start.
func (a *Adapter) SetSelections(spans []textpos.Span) {
	mapped := a.mapper.ToEmbedded(spans)
	a.component.SetSelections(mapped)

	stored := make([]document.Selection, len(spans))
	for i, s := range spans {
		stored[i] = document.Selection{Span: a.mapper.Validate(s), Style: a.style}
	}
	a.model.SetSelections(a.id, stored)
}

// SetSelection applies a single selection.
func (a *Adapter) SetSelection(s textpos.Span) {
	a.SetSelections([]textpos.Span{s})
}

// AddKeydownHandler registers an interception handler invoked before
// the embedded component's default key handling. Handlers run in
// registration order; the first returning true consumes the event.
func (a *Adapter) AddKeydownHandler(fn KeydownHandler) signal.Subscription {
	return a.keyHandlers.Listen(func(ev *surface.KeyEvent) {
		if ev.Consumed() {
			return
		}
		if fn(ev) {
			ev.Consume()
		}
	})
}

// dispatchKeydown feeds component key events through registered
// handlers. The whole dispatch is suppressed while the component's
// transient overlay owns key input, so overlay UI keeps exclusive
// handling.
func (a *Adapter) dispatchKeydown(ev *surface.KeyEvent) {
	if a.keyHandlers.Len() == 0 || a.component.OverlayVisible() {
		return
	}
	a.keyHandlers.Emit(ev)
}
