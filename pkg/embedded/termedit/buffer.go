package termedit

import (
	"github.com/odvcencio/bindery/pkg/errors"
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// defaultHistoryLimit bounds the undo stack.
const defaultHistoryLimit = 200

// edit is one reversible splice, recorded in rune offsets against the
// text as it was before the edit.
type edit struct {
	start    int
	inserted string
	removed  string
}

// history is a bounded undo/redo stack of edits.
type history struct {
	undo  []edit
	redo  []edit
	limit int
}

func (h *history) push(e edit) {
	h.undo = append(h.undo, e)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

func (h *history) clear() {
	h.undo = nil
	h.redo = nil
}

// Buffer is the terminal editor's internal text model. It implements
// embedded.Buffer.
type Buffer struct {
	text string
	ix   *textpos.LineIndex
	lang string
	hist history

	contentSubs signal.List[struct{}]
	langSubs    signal.List[string]
}

// NewBuffer creates a buffer with initial content and language.
func NewBuffer(text, lang string) *Buffer {
	if lang == "" {
		lang = "plaintext"
	}
	return &Buffer{
		text: text,
		ix:   textpos.NewLineIndex(text),
		lang: lang,
		hist: history{limit: defaultHistoryLimit},
	}
}

// Text returns the full content.
func (b *Buffer) Text() string {
	return b.text
}

// Length returns the content length in runes.
func (b *Buffer) Length() int {
	return b.ix.RuneCount()
}

// Index returns the buffer's current line index.
func (b *Buffer) Index() *textpos.LineIndex {
	return b.ix
}

// SetText replaces the entire content, clearing the undo history.
// Setting identical content still reloads (and still clears history);
// that reset side effect is relied on by ClearHistory upstream.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.ix = textpos.NewLineIndex(text)
	b.hist.clear()
	b.contentSubs.Emit(struct{}{})
}

// ApplyEdit splices text over span, recording the edit for undo.
// The span must lie within current bounds; out-of-range spans are
// rejected without mutating the buffer.
func (b *Buffer) ApplyEdit(span textpos.EmbeddedSpan, text string) error {
	hostSpan := textpos.SpanToHost(span).Normalize()
	if !b.ix.Contains(hostSpan.Start) || !b.ix.Contains(hostSpan.End) {
		return errors.Newf(errors.ErrCodeSpanOutOfRange,
			"edit span %v outside buffer of %d lines", span, b.ix.LineCount())
	}

	start := b.ix.OffsetOf(hostSpan.Start)
	end := b.ix.OffsetOf(hostSpan.End)

	runes := []rune(b.text)
	removed := string(runes[start:end])
	b.splice(start, end, text)
	b.hist.push(edit{start: start, inserted: text, removed: removed})
	b.contentSubs.Emit(struct{}{})
	return nil
}

// splice replaces the rune span [start, end) with text and rebuilds
// the index. No events, no history.
func (b *Buffer) splice(start, end int, text string) {
	runes := []rune(b.text)
	b.text = string(runes[:start]) + text + string(runes[end:])
	b.ix = textpos.NewLineIndex(b.text)
}

// Undo reverts the most recent edit. Returns false when there is
// nothing to undo.
func (b *Buffer) Undo() bool {
	n := len(b.hist.undo)
	if n == 0 {
		return false
	}
	e := b.hist.undo[n-1]
	b.hist.undo = b.hist.undo[:n-1]

	b.splice(e.start, e.start+len([]rune(e.inserted)), e.removed)
	b.hist.redo = append(b.hist.redo, e)
	b.contentSubs.Emit(struct{}{})
	return true
}

// Redo reapplies the most recently undone edit. Returns false when
// there is nothing to redo.
func (b *Buffer) Redo() bool {
	n := len(b.hist.redo)
	if n == 0 {
		return false
	}
	e := b.hist.redo[n-1]
	b.hist.redo = b.hist.redo[:n-1]

	b.splice(e.start, e.start+len([]rune(e.removed)), e.inserted)
	b.hist.undo = append(b.hist.undo, e)
	b.contentSubs.Emit(struct{}{})
	return true
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.ix.LineCount()
}

// Line returns the content of 1-based line n.
func (b *Buffer) Line(n int) (string, bool) {
	return b.ix.Line(n - 1)
}

// OffsetAt returns the rune offset of p, clamped into bounds.
func (b *Buffer) OffsetAt(p textpos.EmbeddedPosition) int {
	return b.ix.OffsetOf(textpos.ToHost(p))
}

// PositionAt returns the position of a rune offset, clamped.
func (b *Buffer) PositionAt(offset int) textpos.EmbeddedPosition {
	return textpos.ToEmbedded(b.ix.PositionOf(offset))
}

// Language returns the buffer's language identifier.
func (b *Buffer) Language() string {
	return b.lang
}

// SetLanguage changes the language identifier.
func (b *Buffer) SetLanguage(id string) {
	if id == "" || id == b.lang {
		return
	}
	b.lang = id
	b.langSubs.Emit(id)
}

// OnContentChange registers a content mutation listener.
func (b *Buffer) OnContentChange(fn func()) signal.Subscription {
	return b.contentSubs.Listen(func(struct{}) { fn() })
}

// OnLanguageChange registers a language change listener.
func (b *Buffer) OnLanguageChange(fn func(string)) signal.Subscription {
	return b.langSubs.Listen(fn)
}
