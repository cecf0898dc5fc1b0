package binding

import (
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/embedded/termedit"
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// fakeTarget is a throwaway render target for layout tests.
type fakeTarget struct {
	width  int
	height int
}

func (t *fakeTarget) Size() (int, int)                                 { return t.width, t.height }
func (t *fakeTarget) SetContent(int, int, rune, []rune, surface.Style) {}
func (t *fakeTarget) SetCursor(int, int)                               {}
func (t *fakeTarget) HideCursor()                                      {}

// attachedContainer returns a container mounted on a fake target with
// the given content-box size.
func attachedContainer(width, height int) *surface.Container {
	c := surface.NewContainer()
	c.Attach(&fakeTarget{width: width, height: height})
	c.SetBounds(surface.Rect{Width: width, Height: height})
	return c
}

// countingBuffer wraps a real buffer and counts mutation calls, so
// tests can assert "at most one embedded mutation per host change".
type countingBuffer struct {
	*termedit.Buffer
	setTextCalls   int
	applyEditCalls int
}

func (b *countingBuffer) SetText(text string) {
	b.setTextCalls++
	b.Buffer.SetText(text)
}

func (b *countingBuffer) ApplyEdit(span textpos.EmbeddedSpan, text string) error {
	b.applyEditCalls++
	return b.Buffer.ApplyEdit(span, text)
}

// fakeComponent is a scriptable embedded.Component for bridge, layout
// and adapter tests. Geometry is configurable so auto-size arithmetic
// can be exercised with non-trivial line heights.
type fakeComponent struct {
	buf     *countingBuffer
	metrics embedded.Metrics

	overlay bool
	focused bool

	lineNumbers bool
	wordWrap    bool
	readOnly    bool

	cursor     textpos.EmbeddedPosition
	selections []textpos.EmbeddedSpan

	resizes      []surface.Dimension
	disposeCalls int

	keySubs  signal.List[*surface.KeyEvent]
	cfgSubs  signal.List[struct{}]
	swapSubs signal.List[embedded.Buffer]
}

func newFakeComponent(opts embedded.Options) *fakeComponent {
	f := &fakeComponent{
		buf:    &countingBuffer{Buffer: termedit.NewBuffer(opts.Text, opts.Language)},
		cursor: textpos.EmbeddedPosition{Line: 1, Column: 1},
		metrics: embedded.Metrics{
			LineHeight: 1,
		},
	}
	if opts.LineNumbers != nil {
		f.lineNumbers = *opts.LineNumbers
	}
	if opts.WordWrap != nil {
		f.wordWrap = *opts.WordWrap
	}
	if opts.ReadOnly != nil {
		f.readOnly = *opts.ReadOnly
	}
	return f
}

// fakeFactory returns a factory that captures the component it builds.
func fakeFactory(capture **fakeComponent) embedded.Factory {
	return func(_ *surface.Container, opts embedded.Options) (embedded.Component, error) {
		f := newFakeComponent(opts)
		*capture = f
		return f, nil
	}
}

// swap replaces the internal buffer, as a real component does on some
// configuration changes.
func (f *fakeComponent) swap(text, lang string) {
	f.buf = &countingBuffer{Buffer: termedit.NewBuffer(text, lang)}
	f.swapSubs.Emit(f.buf)
}

// pressKey feeds one key event through the component's pre-hooks.
func (f *fakeComponent) pressKey(ev *surface.KeyEvent) {
	f.keySubs.Emit(ev)
}

func (f *fakeComponent) lastResize() (surface.Dimension, bool) {
	if len(f.resizes) == 0 {
		return surface.Dimension{}, false
	}
	return f.resizes[len(f.resizes)-1], true
}

func (f *fakeComponent) Buffer() embedded.Buffer {
	if f.buf == nil {
		return nil
	}
	return f.buf
}

func (f *fakeComponent) OnBufferSwap(fn func(embedded.Buffer)) signal.Subscription {
	return f.swapSubs.Listen(fn)
}

func (f *fakeComponent) OnConfigChange(fn func()) signal.Subscription {
	return f.cfgSubs.Listen(func(struct{}) { fn() })
}

func (f *fakeComponent) OnKeydown(fn func(*surface.KeyEvent)) signal.Subscription {
	return f.keySubs.Listen(fn)
}

func (f *fakeComponent) OverlayVisible() bool { return f.overlay }

func (f *fakeComponent) Focus()         { f.focused = true }
func (f *fakeComponent) Blur()          { f.focused = false }
func (f *fakeComponent) HasFocus() bool { return f.focused }

func (f *fakeComponent) LineNumbers() bool     { return f.lineNumbers }
func (f *fakeComponent) SetLineNumbers(v bool) { f.lineNumbers = v }
func (f *fakeComponent) WordWrap() bool        { return f.wordWrap }
func (f *fakeComponent) SetWordWrap(v bool)    { f.wordWrap = v }
func (f *fakeComponent) ReadOnly() bool        { return f.readOnly }
func (f *fakeComponent) SetReadOnly(v bool)    { f.readOnly = v }

func (f *fakeComponent) Undo() { f.buf.Undo() }
func (f *fakeComponent) Redo() { f.buf.Redo() }

func (f *fakeComponent) CursorPosition() textpos.EmbeddedPosition     { return f.cursor }
func (f *fakeComponent) SetCursorPosition(p textpos.EmbeddedPosition) { f.cursor = p }

func (f *fakeComponent) Selections() []textpos.EmbeddedSpan { return f.selections }
func (f *fakeComponent) SetSelections(spans []textpos.EmbeddedSpan) {
	f.selections = spans
}

func (f *fakeComponent) RevealPosition(textpos.EmbeddedPosition) {}
func (f *fakeComponent) RevealSpan(textpos.EmbeddedSpan)         {}

func (f *fakeComponent) CoordinateForPosition(textpos.EmbeddedPosition) (surface.Rect, bool) {
	return surface.Rect{}, false
}

func (f *fakeComponent) PositionForCoordinate(int, int) (textpos.EmbeddedPosition, bool) {
	return textpos.EmbeddedPosition{}, false
}

func (f *fakeComponent) Metrics() embedded.Metrics { return f.metrics }

func (f *fakeComponent) Resize(width, height int) {
	f.resizes = append(f.resizes, surface.Dimension{Width: width, Height: height})
}

func (f *fakeComponent) Dispose() { f.disposeCalls++ }
