package termedit

import (
	"testing"

	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/surface/sim"
	"github.com/odvcencio/bindery/pkg/textpos"
)

func boolPtr(v bool) *bool { return &v }

func newTestEditor(t *testing.T, opts embedded.Options) (*Editor, *sim.Surface, *surface.Container) {
	t.Helper()

	surf, err := sim.New(20, 6)
	if err != nil {
		t.Fatalf("sim surface: %v", err)
	}
	t.Cleanup(surf.Fini)

	container := surface.NewContainer()
	container.Attach(surf)
	container.SetBounds(surface.Rect{X: 0, Y: 0, Width: 20, Height: 6})

	e, err := New(container, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Dispose)
	return e, surf, container
}

func pressRune(e *Editor, r rune) {
	e.HandleKey(&surface.KeyEvent{Key: surface.KeyRune, Rune: r})
}

func press(e *Editor, key surface.Key) {
	e.HandleKey(&surface.KeyEvent{Key: key})
}

func TestEditorTyping(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{})

	for _, r := range "hi" {
		pressRune(e, r)
	}
	press(e, surface.KeyEnter)
	pressRune(e, '!')

	if got := e.Buffer().Text(); got != "hi\n!" {
		t.Errorf("Text() = %q", got)
	}
	if got := e.CursorPosition(); got != (textpos.EmbeddedPosition{Line: 2, Column: 2}) {
		t.Errorf("cursor = %v", got)
	}
}

func TestEditorBackspaceJoinsLines(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{Text: "ab\ncd"})

	e.SetCursorPosition(textpos.EmbeddedPosition{Line: 2, Column: 1})
	press(e, surface.KeyBackspace)

	if got := e.Buffer().Text(); got != "abcd" {
		t.Errorf("Text() = %q", got)
	}
	if got := e.CursorPosition(); got != (textpos.EmbeddedPosition{Line: 1, Column: 3}) {
		t.Errorf("cursor = %v", got)
	}
}

func TestEditorTypingReplacesSelection(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{Text: "hello"})

	e.SetSelections([]textpos.EmbeddedSpan{span(1, 2, 1, 4)})
	pressRune(e, 'X')

	if got := e.Buffer().Text(); got != "hXlo" {
		t.Errorf("Text() = %q", got)
	}
	if got := e.CursorPosition(); got != (textpos.EmbeddedPosition{Line: 1, Column: 3}) {
		t.Errorf("cursor = %v", got)
	}
	if got := e.Selections(); len(got) != 0 {
		t.Errorf("selections survived replace: %v", got)
	}
}

func TestEditorReadOnlyIgnoresEdits(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{
		Text:     "fixed",
		ReadOnly: boolPtr(true),
	})

	pressRune(e, 'x')
	press(e, surface.KeyBackspace)
	press(e, surface.KeyDelete)

	if got := e.Buffer().Text(); got != "fixed" {
		t.Errorf("Text() = %q", got)
	}
}

func TestEditorKeydownPreHookConsumes(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{})

	var seen []rune
	sub := e.OnKeydown(func(ev *surface.KeyEvent) {
		seen = append(seen, ev.Rune)
		if ev.Rune == 'a' {
			ev.Consume()
		}
	})

	pressRune(e, 'a')
	pressRune(e, 'b')

	if got := e.Buffer().Text(); got != "b" {
		t.Errorf("Text() = %q, consumed key leaked into buffer", got)
	}
	if len(seen) != 2 {
		t.Errorf("pre-hook saw %d events, want 2", len(seen))
	}

	sub.Unsubscribe()
	pressRune(e, 'a')
	if got := e.Buffer().Text(); got != "ba" {
		t.Errorf("Text() after unsubscribe = %q", got)
	}
}

func TestEditorOverlayOwnsKeys(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{})

	e.ShowOverlay()
	if !e.OverlayVisible() {
		t.Fatal("overlay not visible after ShowOverlay")
	}

	pressRune(e, 'x')
	if got := e.Buffer().Text(); got != "" {
		t.Errorf("overlay let a rune through: %q", got)
	}

	press(e, surface.KeyEscape)
	if e.OverlayVisible() {
		t.Error("overlay still visible after Escape")
	}

	pressRune(e, 'x')
	if got := e.Buffer().Text(); got != "x" {
		t.Errorf("Text() = %q after overlay dismissed", got)
	}
}

func TestEditorRenderGutter(t *testing.T) {
	e, surf, _ := newTestEditor(t, embedded.Options{Text: "hello\nworld"})

	e.Render()
	surf.Show()

	if got := surf.CaptureRegion(0, 0, 7, 2); got != "1 hello\n2 world" {
		t.Errorf("capture:\n%s", got)
	}
}

func TestEditorRenderWithoutGutter(t *testing.T) {
	e, surf, _ := newTestEditor(t, embedded.Options{
		Text:        "hello",
		LineNumbers: boolPtr(false),
	})

	e.Render()
	surf.Show()

	if got := surf.CaptureRegion(0, 0, 5, 1); got != "hello" {
		t.Errorf("capture: %q", got)
	}
}

func TestEditorWordWrap(t *testing.T) {
	e, surf, container := newTestEditor(t, embedded.Options{
		Text:        "abcdefgh",
		LineNumbers: boolPtr(false),
		WordWrap:    boolPtr(true),
	})
	container.SetBounds(surface.Rect{Width: 6, Height: 4})
	e.Resize(6, 4)

	e.Render()
	surf.Show()

	if got := surf.CaptureRegion(0, 0, 6, 2); got != "abcdef\ngh    " {
		t.Errorf("capture:\n%s", got)
	}
}

func TestEditorCoordinateRoundTrip(t *testing.T) {
	e, _, container := newTestEditor(t, embedded.Options{
		Text:        "hello\nworld",
		LineNumbers: boolPtr(false),
	})
	container.SetBounds(surface.Rect{X: 3, Y: 1, Width: 10, Height: 4})
	e.Resize(10, 4)

	pos := textpos.EmbeddedPosition{Line: 2, Column: 3}
	rect, ok := e.CoordinateForPosition(pos)
	if !ok {
		t.Fatal("CoordinateForPosition not ok")
	}
	if rect.X != 5 || rect.Y != 2 {
		t.Errorf("rect = %+v, want X=5 Y=2", rect)
	}

	back, ok := e.PositionForCoordinate(rect.X, rect.Y)
	if !ok {
		t.Fatal("PositionForCoordinate not ok")
	}
	if back != pos {
		t.Errorf("round trip %v -> %+v -> %v", pos, rect, back)
	}
}

func TestEditorCoordinateDetached(t *testing.T) {
	e, _, container := newTestEditor(t, embedded.Options{Text: "x"})
	container.Detach()

	if _, ok := e.CoordinateForPosition(textpos.EmbeddedPosition{Line: 1, Column: 1}); ok {
		t.Error("CoordinateForPosition ok while detached")
	}
	if _, ok := e.PositionForCoordinate(0, 0); ok {
		t.Error("PositionForCoordinate ok while detached")
	}
}

func TestEditorConfigEvents(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{})

	fired := 0
	e.OnConfigChange(func() { fired++ })

	e.Resize(20, 6) // same size, no event
	if fired != 0 {
		t.Fatalf("same-size resize fired %d events", fired)
	}

	e.Resize(10, 4)
	e.SetWordWrap(true)
	e.SetWordWrap(true) // no change
	e.SetLineNumbers(false)
	e.SetReadOnly(true)

	if fired != 4 {
		t.Errorf("fired = %d, want 4", fired)
	}
}

func TestEditorSwapBufferResetsState(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{Text: "one\ntwo"})
	e.SetCursorPosition(textpos.EmbeddedPosition{Line: 2, Column: 2})

	var swapped embedded.Buffer
	e.OnBufferSwap(func(b embedded.Buffer) { swapped = b })

	e.SwapBuffer()

	if swapped == nil {
		t.Fatal("swap listener not fired")
	}
	if swapped != e.Buffer() {
		t.Error("swap listener got stale buffer")
	}
	if got := e.Buffer().Text(); got != "" {
		t.Errorf("new buffer text = %q", got)
	}
	if got := e.CursorPosition(); got != (textpos.EmbeddedPosition{Line: 1, Column: 1}) {
		t.Errorf("cursor = %v", got)
	}
}

func TestEditorUndoRedo(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{})

	pressRune(e, 'a')
	pressRune(e, 'b')

	e.Undo()
	if got := e.Buffer().Text(); got != "a" {
		t.Errorf("after undo: %q", got)
	}
	e.Redo()
	if got := e.Buffer().Text(); got != "ab" {
		t.Errorf("after redo: %q", got)
	}
}

func TestEditorDisposeIdempotent(t *testing.T) {
	e, _, _ := newTestEditor(t, embedded.Options{Text: "x"})

	e.Focus()
	e.Dispose()
	e.Dispose()

	if e.HasFocus() {
		t.Error("focused after dispose")
	}
	pressRune(e, 'y')
	if got := e.Buffer().Text(); got != "x" {
		t.Errorf("disposed editor accepted input: %q", got)
	}
}
