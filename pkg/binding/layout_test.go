package binding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/surface"
)

func TestLayoutExplicitSize(t *testing.T) {
	component := newFakeComponent(embedded.Options{})
	engine := NewLayoutEngine(attachedContainer(80, 24), component, nil)

	engine.Resize(surface.Dimension{Width: 40, Height: 10})

	dim, ok := component.lastResize()
	require.True(t, ok)
	require.Equal(t, surface.Dimension{Width: 40, Height: 10}, dim)
}

func TestLayoutFillsFromContainer(t *testing.T) {
	component := newFakeComponent(embedded.Options{})
	engine := NewLayoutEngine(attachedContainer(80, 24), component, nil)

	engine.Auto()

	dim, ok := component.lastResize()
	require.True(t, ok)
	require.Equal(t, surface.Dimension{Width: 80, Height: 24}, dim)
}

func TestLayoutPartialDimension(t *testing.T) {
	component := newFakeComponent(embedded.Options{})
	engine := NewLayoutEngine(attachedContainer(80, 24), component, nil)

	engine.Resize(surface.Dimension{Width: 40, Height: -1})

	dim, ok := component.lastResize()
	require.True(t, ok)
	require.Equal(t, surface.Dimension{Width: 40, Height: 24}, dim)
}

func TestLayoutAutoSizeFromContent(t *testing.T) {
	component := newFakeComponent(embedded.Options{Text: "1\n2\n3\n4\n5\n6\n7"})
	component.metrics = embedded.Metrics{LineHeight: 20, ScrollbarHeight: 8}

	engine := NewLayoutEngine(attachedContainer(80, 24), component, nil)
	engine.SetAutoSize(true, -1)
	engine.Auto()

	dim, ok := component.lastResize()
	require.True(t, ok)
	require.Equal(t, 20*7+8, dim.Height)
}

func TestLayoutAutoSizeFloor(t *testing.T) {
	component := newFakeComponent(embedded.Options{Text: "one\ntwo"})
	component.metrics = embedded.Metrics{LineHeight: 20, ScrollbarHeight: 8}

	engine := NewLayoutEngine(attachedContainer(80, 24), component, nil)
	engine.SetAutoSize(true, 5)
	engine.Auto()

	// Two lines of content, floored at five.
	dim, ok := component.lastResize()
	require.True(t, ok)
	require.Equal(t, 20*5+8, dim.Height)
}

func TestLayoutAutoSizeFloorDisabled(t *testing.T) {
	component := newFakeComponent(embedded.Options{Text: "one\ntwo"})
	component.metrics = embedded.Metrics{LineHeight: 20, ScrollbarHeight: 8}

	engine := NewLayoutEngine(attachedContainer(80, 24), component, nil)
	engine.SetAutoSize(true, -1)
	engine.Auto()

	dim, ok := component.lastResize()
	require.True(t, ok)
	require.Equal(t, 20*2+8, dim.Height)
}

func TestLayoutDetachedContainerNoOp(t *testing.T) {
	component := newFakeComponent(embedded.Options{})
	engine := NewLayoutEngine(surface.NewContainer(), component, nil)

	engine.Auto()

	_, ok := component.lastResize()
	require.False(t, ok)
}

func TestLayoutNeverNegative(t *testing.T) {
	component := newFakeComponent(embedded.Options{})
	container := attachedContainer(0, 0)
	container.SetBounds(surface.Rect{Width: -3, Height: -3})
	engine := NewLayoutEngine(container, component, nil)

	engine.Auto()

	dim, ok := component.lastResize()
	require.True(t, ok)
	require.GreaterOrEqual(t, dim.Width, 0)
	require.GreaterOrEqual(t, dim.Height, 0)
}
