package document

import "fmt"

// ChangeKind discriminates the shape of a text mutation.
type ChangeKind string

const (
	// KindSet replaces the entire document content.
	KindSet ChangeKind = "set"
	// KindInsert inserts Text at Start (Start == End).
	KindInsert ChangeKind = "insert"
	// KindRemove deletes the span [Start, End) (Text is empty).
	KindRemove ChangeKind = "remove"
	// KindReplace substitutes Text for the span [Start, End).
	KindReplace ChangeKind = "replace"
)

// Valid reports whether k is a recognized change kind.
func (k ChangeKind) Valid() bool {
	switch k {
	case KindSet, KindInsert, KindRemove, KindReplace:
		return true
	}
	return false
}

// Change describes one text mutation. Start and End are rune offsets
// into the text as it was before the change; for KindSet they cover
// the whole previous content.
type Change struct {
	Kind  ChangeKind
	Start int
	End   int
	Text  string
}

func (c Change) String() string {
	return fmt.Sprintf("%s[%d,%d)=%q", c.Kind, c.Start, c.End, c.Text)
}
