// Package document implements the host-owned document model: an
// observable text value with typed change records, a MIME-type field
// with its own change stream, and per-owner selection storage for
// multi-view bindings.
//
// The model is single-goroutine, event-driven: every mutation runs its
// listeners synchronously before returning, in registration order.
package document

import (
	"unicode/utf8"

	"github.com/odvcencio/bindery/pkg/errors"
	"github.com/odvcencio/bindery/pkg/signal"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// DefaultMimeType is assumed when a model is created without one.
const DefaultMimeType = "text/plain"

// Selection is a styled, owner-scoped range over the document.
type Selection struct {
	Span  textpos.Span
	Style string
}

// Model holds the authoritative text content and its metadata.
// It outlives any adapter bound to it and may be shared by several.
type Model struct {
	text    string
	mime    string
	version uint64

	selections map[string][]Selection

	changeSubs    signal.List[Change]
	mimeSubs      signal.List[string]
	selectionSubs signal.List[string]
}

// NewModel creates a model with the given initial content and MIME
// type. An empty mimeType defaults to DefaultMimeType.
func NewModel(text, mimeType string) *Model {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return &Model{
		text:       text,
		mime:       mimeType,
		selections: make(map[string][]Selection),
	}
}

// Text returns the current content.
func (m *Model) Text() string {
	return m.text
}

// Length returns the content length in runes.
func (m *Model) Length() int {
	return utf8.RuneCountInString(m.text)
}

// Version returns the mutation counter. It increments once per
// successful text change.
func (m *Model) Version() uint64 {
	return m.version
}

// SetText replaces the entire content. Setting the current value is a
// no-op and fires no event.
func (m *Model) SetText(text string) {
	if text == m.text {
		return
	}
	oldLen := m.Length()
	m.text = text
	m.version++
	m.changeSubs.Emit(Change{Kind: KindSet, Start: 0, End: oldLen, Text: text})
}

// Insert inserts text at the given rune offset.
func (m *Model) Insert(offset int, text string) error {
	return m.splice(Change{Kind: KindInsert, Start: offset, End: offset, Text: text})
}

// Remove deletes the rune span [start, end).
func (m *Model) Remove(start, end int) error {
	return m.splice(Change{Kind: KindRemove, Start: start, End: end})
}

// Replace substitutes text for the rune span [start, end).
func (m *Model) Replace(start, end int, text string) error {
	return m.splice(Change{Kind: KindReplace, Start: start, End: end, Text: text})
}

// splice validates and applies an incremental change, then notifies.
func (m *Model) splice(c Change) error {
	runes := []rune(m.text)
	if c.Start < 0 || c.End < c.Start || c.End > len(runes) {
		return errors.Newf(errors.ErrCodeSpanOutOfRange,
			"change span [%d,%d) outside document of length %d", c.Start, c.End, len(runes)).
			WithContext("kind", string(c.Kind))
	}
	if c.Kind == KindInsert && c.Start != c.End {
		return errors.New(errors.ErrCodeChangeInvalid, "insert change must have an empty span")
	}
	if c.Start == c.End && c.Text == "" {
		return nil // nothing to do, fire nothing
	}

	m.text = string(runes[:c.Start]) + c.Text + string(runes[c.End:])
	m.version++
	m.changeSubs.Emit(c)
	return nil
}

// OnChange registers a listener for text changes.
func (m *Model) OnChange(fn func(Change)) signal.Subscription {
	return m.changeSubs.Listen(fn)
}

// MimeType returns the document's MIME type.
func (m *Model) MimeType() string {
	return m.mime
}

// SetMimeType changes the MIME type. Setting the current value is a
// no-op and fires no event.
func (m *Model) SetMimeType(mime string) {
	if mime == "" || mime == m.mime {
		return
	}
	m.mime = mime
	m.mimeSubs.Emit(mime)
}

// OnMimeTypeChange registers a listener for MIME-type changes.
func (m *Model) OnMimeTypeChange(fn func(string)) signal.Subscription {
	return m.mimeSubs.Listen(fn)
}

// Selections returns the selection list stored for owner. The result
// is a copy; mutate through SetSelections.
func (m *Model) Selections(owner string) []Selection {
	stored := m.selections[owner]
	out := make([]Selection, len(stored))
	copy(out, stored)
	return out
}

// SetSelections stores the selection list for owner and notifies
// selection listeners with the owner id. An empty or nil list clears
// the owner's entry.
func (m *Model) SetSelections(owner string, sels []Selection) {
	if len(sels) == 0 {
		delete(m.selections, owner)
	} else {
		stored := make([]Selection, len(sels))
		copy(stored, sels)
		m.selections[owner] = stored
	}
	m.selectionSubs.Emit(owner)
}

// SelectionOwners returns the ids of owners with stored selections.
func (m *Model) SelectionOwners() []string {
	owners := make([]string, 0, len(m.selections))
	for owner := range m.selections {
		owners = append(owners, owner)
	}
	return owners
}

// OnSelectionsChange registers a listener invoked with the owner id
// whose selections changed.
func (m *Model) OnSelectionsChange(fn func(string)) signal.Subscription {
	return m.selectionSubs.Listen(fn)
}

// LineIndex builds a line index over the current content.
func (m *Model) LineIndex() *textpos.LineIndex {
	return textpos.NewLineIndex(m.text)
}
