package binding

import (
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// SelectionMapper converts selections between the host and embedded
// conventions, validating every endpoint against the live buffer before
// translation. It holds no state beyond the buffer it validates against.
type SelectionMapper struct {
	buf embedded.Buffer
}

// NewSelectionMapper creates a mapper validating against buf.
func NewSelectionMapper(buf embedded.Buffer) *SelectionMapper {
	return &SelectionMapper{buf: buf}
}

// SetBuffer points the mapper at a new buffer after a swap.
func (m *SelectionMapper) SetBuffer(buf embedded.Buffer) {
	m.buf = buf
}

// Validate clamps a host span's endpoints into current buffer bounds:
// line into [0, lineCount-1], column into [0, lineLength].
func (m *SelectionMapper) Validate(s textpos.Span) textpos.Span {
	return textpos.Span{
		Start: m.clamp(s.Start),
		End:   m.clamp(s.End),
	}
}

func (m *SelectionMapper) clamp(p textpos.Position) textpos.Position {
	last := m.buf.LineCount() - 1
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line > last {
		p.Line = last
	}

	line, _ := m.buf.Line(p.Line + 1)
	max := len([]rune(line))
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column > max {
		p.Column = max
	}
	return p
}

// ToEmbedded validates and translates host spans. An empty input maps
// to a single zero-width selection at document start; this is the
// documented reset behavior for "apply no selections".
func (m *SelectionMapper) ToEmbedded(spans []textpos.Span) []textpos.EmbeddedSpan {
	if len(spans) == 0 {
		start := textpos.EmbeddedPosition{Line: 1, Column: 1}
		return []textpos.EmbeddedSpan{{Start: start, End: start}}
	}
	out := make([]textpos.EmbeddedSpan, len(spans))
	for i, s := range spans {
		out[i] = textpos.SpanToEmbedded(m.Validate(s))
	}
	return out
}

// ToHost translates embedded spans back to host convention. When the
// embedded component transiently reports no selections, one is
// synthesized from cursor so the host contract "selections are never
// empty" holds.
func (m *SelectionMapper) ToHost(spans []textpos.EmbeddedSpan, cursor textpos.EmbeddedPosition) []textpos.Span {
	if len(spans) == 0 {
		return []textpos.Span{textpos.Collapsed(textpos.ToHost(cursor))}
	}
	out := make([]textpos.Span, len(spans))
	for i, s := range spans {
		out[i] = m.Validate(textpos.SpanToHost(s))
	}
	return out
}
