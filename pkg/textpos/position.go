// Package textpos defines the position vocabulary shared by the host
// document model and embedded editor components, and the pure
// conversions between their coordinate conventions.
//
// Host positions are 0-based in both line and column. Embedded
// positions are 1-based in both. The two are distinct types so the
// convention in use is always compiler-checked rather than assumed.
package textpos

// Position is a host-convention location: 0-based line and column.
type Position struct {
	Line   int
	Column int
}

// EmbeddedPosition is an embedded-convention location: 1-based line
// and column.
type EmbeddedPosition struct {
	Line   int
	Column int
}

// Span is a host-convention range between two positions.
// Start and End are inclusive/exclusive in the usual [Start, End) sense
// but need not be ordered; Normalize orders them.
type Span struct {
	Start Position
	End   Position
}

// ToEmbedded converts a host position to the embedded convention.
// Total and pure; inputs are assumed validated by the caller.
func ToEmbedded(p Position) EmbeddedPosition {
	return EmbeddedPosition{Line: p.Line + 1, Column: p.Column + 1}
}

// ToHost converts an embedded position to the host convention.
// Inverse of ToEmbedded for any in-range position.
func ToHost(p EmbeddedPosition) Position {
	return Position{Line: p.Line - 1, Column: p.Column - 1}
}

// Before reports whether p sorts strictly before q in document order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Start == (Position{}) && s.End == (Position{})
}

// IsEmpty reports whether the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Normalize returns the span with Start and End in document order.
func (s Span) Normalize() Span {
	if s.End.Before(s.Start) {
		return Span{Start: s.End, End: s.Start}
	}
	return s
}

// Collapsed returns a zero-width span at p.
func Collapsed(p Position) Span {
	return Span{Start: p, End: p}
}

// EmbeddedSpan is an embedded-convention range between two positions.
type EmbeddedSpan struct {
	Start EmbeddedPosition
	End   EmbeddedPosition
}

// SpanToEmbedded converts both endpoints of a host span.
func SpanToEmbedded(s Span) EmbeddedSpan {
	return EmbeddedSpan{Start: ToEmbedded(s.Start), End: ToEmbedded(s.End)}
}

// SpanToHost converts both endpoints of an embedded span.
func SpanToHost(s EmbeddedSpan) Span {
	return Span{Start: ToHost(s.Start), End: ToHost(s.End)}
}
