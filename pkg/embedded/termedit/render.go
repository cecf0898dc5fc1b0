package termedit

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/bindery/pkg/surface"
	"github.com/odvcencio/bindery/pkg/textpos"
)

// visualRow is one rendered row: a line, or a wrapped slice of one.
type visualRow struct {
	line     int // 0-based buffer line
	startCol int // first rune column shown on this row
	runes    []rune
}

// gutterWidth returns the cells reserved for line numbers, 0 when the
// gutter is hidden.
func (e *Editor) gutterWidth() int {
	if !e.lineNumbers {
		return 0
	}
	digits := len(fmt.Sprintf("%d", e.buf.LineCount()))
	return digits + 1
}

// textWidth returns the cells available for text.
func (e *Editor) textWidth() int {
	return e.width - e.gutterWidth()
}

// visualRows lays the buffer out into rows for the current wrap mode.
func (e *Editor) visualRows() []visualRow {
	tw := e.textWidth()
	var rows []visualRow

	for line := 0; line < e.buf.LineCount(); line++ {
		content, _ := e.buf.Line(line + 1)
		runes := []rune(content)

		if !e.wordWrap || tw <= 0 {
			rows = append(rows, visualRow{line: line, runes: runes})
			continue
		}

		start := 0
		for {
			width := 0
			end := start
			for end < len(runes) {
				w := cellWidth(runes[end])
				if width+w > tw && end > start {
					break
				}
				width += w
				end++
			}
			rows = append(rows, visualRow{line: line, startCol: start, runes: runes[start:end]})
			if end >= len(runes) {
				break
			}
			start = end
		}
	}
	return rows
}

func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// rowOf finds the visual row index containing pos.
func rowOf(rows []visualRow, pos textpos.Position) (int, bool) {
	for i, row := range rows {
		if row.line != pos.Line {
			continue
		}
		end := row.startCol + len(row.runes)
		last := i+1 >= len(rows) || rows[i+1].line != pos.Line
		if pos.Column < end || (last && pos.Column == end) {
			if pos.Column >= row.startCol {
				return i, true
			}
		}
	}
	return 0, false
}

// xOf returns the cell x of pos within its row, before scroll and
// gutter adjustment.
func xOf(row visualRow, pos textpos.Position) int {
	x := 0
	for i := row.startCol; i < pos.Column && i-row.startCol < len(row.runes); i++ {
		x += cellWidth(row.runes[i-row.startCol])
	}
	return x
}

// Render draws the editor into its container region. A detached
// container makes this a no-op.
func (e *Editor) Render() {
	if e.disposed || e.container == nil {
		return
	}
	region := e.container.Region()
	if region == nil || e.width <= 0 || e.height <= 0 {
		return
	}

	gw := e.gutterWidth()
	rows := e.visualRows()
	base := surface.DefaultStyle()
	gutter := base.Dim(true)
	selected := base.Reverse(true)

	for y := 0; y < e.height; y++ {
		ri := e.scrollTop + y

		// Blank the row first.
		for x := 0; x < e.width; x++ {
			region.SetContent(x, y, ' ', nil, base)
		}
		if ri >= len(rows) {
			continue
		}
		row := rows[ri]

		if gw > 0 && row.startCol == 0 {
			num := fmt.Sprintf("%*d", gw-1, row.line+1)
			for i, r := range num {
				region.SetContent(i, y, r, nil, gutter)
			}
		}

		x := gw - e.scrollLeft
		for i, r := range row.runes {
			w := cellWidth(r)
			if x >= gw {
				style := base
				if e.inSelection(textpos.Position{Line: row.line, Column: row.startCol + i}) {
					style = selected
				}
				region.SetContent(x, y, r, nil, style)
			}
			x += w
			if x >= e.width {
				break
			}
		}
	}

	ri, ok := rowOf(rows, e.cursor)
	if e.focused && ok {
		y := ri - e.scrollTop
		x := gw + xOf(rows[ri], e.cursor) - e.scrollLeft
		if y >= 0 && y < e.height && x >= gw && x < e.width {
			region.SetCursor(x, y)
			return
		}
	}
	region.HideCursor()
}

// inSelection reports whether pos lies inside any active selection.
func (e *Editor) inSelection(pos textpos.Position) bool {
	for _, s := range e.selections {
		s = s.Normalize()
		if !pos.Before(s.Start) && pos.Before(s.End) {
			return true
		}
	}
	return false
}

// CoordinateForPosition returns the absolute surface rect of the glyph
// at p. ok is false while unmounted or when p is scrolled out of view.
func (e *Editor) CoordinateForPosition(p textpos.EmbeddedPosition) (surface.Rect, bool) {
	if e.container == nil || !e.container.Attached() {
		return surface.Rect{}, false
	}
	pos := e.buf.ix.Clamp(textpos.ToHost(p))
	rows := e.visualRows()
	ri, ok := rowOf(rows, pos)
	if !ok {
		return surface.Rect{}, false
	}

	y := ri - e.scrollTop
	x := e.gutterWidth() + xOf(rows[ri], pos) - e.scrollLeft
	if y < 0 || y >= e.height || x < e.gutterWidth() || x >= e.width {
		return surface.Rect{}, false
	}

	width := 1
	if i := pos.Column - rows[ri].startCol; i < len(rows[ri].runes) {
		width = cellWidth(rows[ri].runes[i])
	}

	bounds := e.container.Bounds()
	return surface.Rect{X: bounds.X + x, Y: bounds.Y + y, Width: width, Height: 1}, true
}

// PositionForCoordinate maps an absolute surface cell to a buffer
// position. ok is false when the cell is outside the editor or below
// the last row.
func (e *Editor) PositionForCoordinate(x, y int) (textpos.EmbeddedPosition, bool) {
	if e.container == nil || !e.container.Attached() {
		return textpos.EmbeddedPosition{}, false
	}
	bounds := e.container.Bounds()
	if !bounds.Contains(x, y) {
		return textpos.EmbeddedPosition{}, false
	}

	relY := y - bounds.Y
	relX := x - bounds.X - e.gutterWidth() + e.scrollLeft
	if relX < 0 {
		relX = 0
	}

	rows := e.visualRows()
	ri := e.scrollTop + relY
	if ri < 0 || ri >= len(rows) {
		return textpos.EmbeddedPosition{}, false
	}
	row := rows[ri]

	col := row.startCol
	width := 0
	for _, r := range row.runes {
		w := cellWidth(r)
		if width+w > relX {
			break
		}
		width += w
		col++
	}
	return textpos.ToEmbedded(textpos.Position{Line: row.line, Column: col}), true
}

// RevealPosition scrolls the minimum amount to bring p into view.
func (e *Editor) RevealPosition(p textpos.EmbeddedPosition) {
	pos := e.buf.ix.Clamp(textpos.ToHost(p))
	rows := e.visualRows()
	ri, ok := rowOf(rows, pos)
	if !ok {
		return
	}

	if ri < e.scrollTop {
		e.scrollTop = ri
	} else if e.height > 0 && ri >= e.scrollTop+e.height {
		e.scrollTop = ri - e.height + 1
	}

	if !e.wordWrap {
		x := xOf(rows[ri], pos)
		tw := e.textWidth()
		if x < e.scrollLeft {
			e.scrollLeft = x
		} else if tw > 0 && x >= e.scrollLeft+tw {
			e.scrollLeft = x - tw + 1
		}
	}
	e.Render()
}

// RevealSpan scrolls to the start of s.
func (e *Editor) RevealSpan(s textpos.EmbeddedSpan) {
	e.RevealPosition(s.Start)
}

func (e *Editor) scrollToCursor() {
	e.RevealPosition(textpos.ToEmbedded(e.cursor))
}

func (e *Editor) clampScroll() {
	maxTop := len(e.visualRows()) - 1
	if maxTop < 0 {
		maxTop = 0
	}
	if e.scrollTop > maxTop {
		e.scrollTop = maxTop
	}
	if e.scrollTop < 0 {
		e.scrollTop = 0
	}
	if e.scrollLeft < 0 {
		e.scrollLeft = 0
	}
}
