package textpos

import "strings"

// LineIndex maps between rune offsets and host positions for a fixed
// snapshot of text. Offsets count runes, not bytes, so multi-byte
// characters occupy a single column step.
//
// A LineIndex is immutable once built; rebuild it after each mutation.
type LineIndex struct {
	lines  []string // line content without trailing newline
	starts []int    // rune offset of each line start
	runes  int      // total rune count including newlines
}

// NewLineIndex builds an index over text. Empty text yields a single
// empty line, matching editor convention.
func NewLineIndex(text string) *LineIndex {
	lines := strings.Split(text, "\n")
	ix := &LineIndex{
		lines:  lines,
		starts: make([]int, len(lines)),
	}
	off := 0
	for i, line := range lines {
		ix.starts[i] = off
		off += len([]rune(line)) + 1 // +1 for the newline
	}
	ix.runes = off - 1 // last line has no trailing newline
	return ix
}

// LineCount returns the number of lines. Always >= 1.
func (ix *LineIndex) LineCount() int {
	return len(ix.lines)
}

// Line returns the content of line i without its newline.
// The second result is false when i is out of range.
func (ix *LineIndex) Line(i int) (string, bool) {
	if i < 0 || i >= len(ix.lines) {
		return "", false
	}
	return ix.lines[i], true
}

// LineLen returns the rune length of line i, excluding the newline.
// Out-of-range lines have length 0.
func (ix *LineIndex) LineLen(i int) int {
	if i < 0 || i >= len(ix.lines) {
		return 0
	}
	return len([]rune(ix.lines[i]))
}

// RuneCount returns the total rune length of the text.
func (ix *LineIndex) RuneCount() int {
	return ix.runes
}

// End returns the position one past the last character.
func (ix *LineIndex) End() Position {
	last := len(ix.lines) - 1
	return Position{Line: last, Column: ix.LineLen(last)}
}

// Clamp returns the nearest valid position to p: line clamped into
// [0, LineCount-1], column into [0, LineLen(line)].
func (ix *LineIndex) Clamp(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(ix.lines) {
		return ix.End()
	}
	if p.Column < 0 {
		p.Column = 0
	} else if n := ix.LineLen(p.Line); p.Column > n {
		p.Column = n
	}
	return p
}

// ClampOffset returns offset clamped into [0, RuneCount].
func (ix *LineIndex) ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > ix.runes {
		return ix.runes
	}
	return offset
}

// OffsetOf returns the rune offset of position p. Positions outside
// the text are clamped first, so the result is always in [0, RuneCount].
func (ix *LineIndex) OffsetOf(p Position) int {
	p = ix.Clamp(p)
	return ix.starts[p.Line] + p.Column
}

// PositionOf returns the position of the given rune offset. Offsets
// outside the text are clamped first.
func (ix *LineIndex) PositionOf(offset int) Position {
	offset = ix.ClampOffset(offset)
	// Binary search for the last line starting at or before offset.
	lo, hi := 0, len(ix.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	col := offset - ix.starts[lo]
	// A newline offset belongs to the end of its line, not column -1
	// of the next; the search above already guarantees col >= 0.
	if n := ix.LineLen(lo); col > n {
		col = n
	}
	return Position{Line: lo, Column: col}
}

// Contains reports whether p addresses a valid position, including the
// end-of-line column.
func (ix *LineIndex) Contains(p Position) bool {
	return ix.Clamp(p) == p
}
