package surface

import "testing"

type recordTarget struct {
	width, height int
	cells         map[[2]int]rune
	cursorX       int
	cursorY       int
	cursorShown   bool
}

func newRecordTarget(w, h int) *recordTarget {
	return &recordTarget{width: w, height: h, cells: make(map[[2]int]rune)}
}

func (t *recordTarget) Size() (int, int) { return t.width, t.height }

func (t *recordTarget) SetContent(x, y int, mainc rune, _ []rune, _ Style) {
	t.cells[[2]int{x, y}] = mainc
}

func (t *recordTarget) SetCursor(x, y int) {
	t.cursorX, t.cursorY, t.cursorShown = x, y, true
}

func (t *recordTarget) HideCursor() { t.cursorShown = false }

func TestContainerDetachedByDefault(t *testing.T) {
	c := NewContainer()

	if c.Attached() {
		t.Error("new container reports attached")
	}
	if c.Region() != nil {
		t.Error("detached container returned a region")
	}
	if _, ok := c.ContentSize(); ok {
		t.Error("detached container reported a content size")
	}
}

func TestContainerAttachDetach(t *testing.T) {
	c := NewContainer()
	c.SetBounds(Rect{X: 2, Y: 1, Width: 10, Height: 5})
	c.Attach(newRecordTarget(40, 12))

	dim, ok := c.ContentSize()
	if !ok {
		t.Fatal("attached container reported no content size")
	}
	if dim != (Dimension{Width: 10, Height: 5}) {
		t.Errorf("ContentSize() = %+v", dim)
	}

	c.Detach()
	if c.Attached() {
		t.Error("still attached after Detach")
	}
}

func TestContainerRegionOffsetsWrites(t *testing.T) {
	target := newRecordTarget(40, 12)
	c := NewContainer()
	c.Attach(target)
	c.SetBounds(Rect{X: 5, Y: 3, Width: 10, Height: 4})

	region := c.Region()
	region.SetContent(0, 0, 'A', nil, DefaultStyle())
	region.SetContent(9, 3, 'Z', nil, DefaultStyle())

	if target.cells[[2]int{5, 3}] != 'A' {
		t.Error("origin write not offset to container bounds")
	}
	if target.cells[[2]int{14, 6}] != 'Z' {
		t.Error("corner write not offset to container bounds")
	}
}

func TestSubTargetClipsWrites(t *testing.T) {
	target := newRecordTarget(40, 12)
	sub := NewSubTarget(target, 5, 3, 10, 4)

	sub.SetContent(-1, 0, 'x', nil, DefaultStyle())
	sub.SetContent(10, 0, 'x', nil, DefaultStyle())
	sub.SetContent(0, 4, 'x', nil, DefaultStyle())

	if len(target.cells) != 0 {
		t.Errorf("out-of-region writes reached the parent: %v", target.cells)
	}
}

func TestSubTargetCursorOutsideHides(t *testing.T) {
	target := newRecordTarget(40, 12)
	target.cursorShown = true
	sub := NewSubTarget(target, 5, 3, 10, 4)

	sub.SetCursor(2, 1)
	if !target.cursorShown || target.cursorX != 7 || target.cursorY != 4 {
		t.Errorf("cursor at (%d,%d) shown=%v", target.cursorX, target.cursorY, target.cursorShown)
	}

	sub.SetCursor(99, 0)
	if target.cursorShown {
		t.Error("out-of-region cursor not hidden")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 3, false},
		{2, 5, false},
		{1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestKeyEventConsume(t *testing.T) {
	ev := &KeyEvent{Key: KeyRune, Rune: 'a'}

	if ev.Consumed() {
		t.Error("new event already consumed")
	}
	ev.Consume()
	if !ev.Consumed() {
		t.Error("Consume did not mark the event")
	}
}
