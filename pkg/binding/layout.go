package binding

import (
	"github.com/odvcencio/bindery/pkg/embedded"
	"github.com/odvcencio/bindery/pkg/logging"
	"github.com/odvcencio/bindery/pkg/surface"
)

// LayoutEngine computes the embedded component's dimensions from an
// explicit request, the hosting container's content box, or, in
// auto-size mode, from content metrics.
type LayoutEngine struct {
	container *surface.Container
	component embedded.Component

	// autoSize derives height from line count instead of the container.
	autoSize bool

	// minLines floors auto-sized height; negative disables the floor.
	minLines int

	log *logging.Logger
}

// NewLayoutEngine creates an engine sizing component within container.
func NewLayoutEngine(container *surface.Container, component embedded.Component, log *logging.Logger) *LayoutEngine {
	if log == nil {
		log = logging.Nop()
	}
	return &LayoutEngine{
		container: container,
		component: component,
		minLines:  -1,
		log:       log,
	}
}

// SetAutoSize enables content-derived height with a minimum line count.
// minLines < 0 disables the floor.
func (l *LayoutEngine) SetAutoSize(enabled bool, minLines int) {
	l.autoSize = enabled
	l.minLines = minLines
}

// AutoSize reports whether content-derived height is enabled.
func (l *LayoutEngine) AutoSize() bool {
	return l.autoSize
}

// Auto requests a full recompute of both dimensions.
func (l *LayoutEngine) Auto() {
	l.Resize(surface.Dimension{Width: -1, Height: -1})
}

// Resize applies dim, computing each negative ("unspecified")
// dimension from the container or, for height in auto-size mode, from
// content metrics. A detached container makes this a no-op; the result
// never has a negative dimension.
func (l *LayoutEngine) Resize(dim surface.Dimension) {
	if dim.Width >= 0 && dim.Height >= 0 {
		l.apply(dim.Width, dim.Height)
		return
	}

	content, ok := l.container.ContentSize()
	if !ok {
		l.log.Debug(logging.CategoryLayout, "resize_skipped", "container detached", nil)
		return
	}

	width := dim.Width
	if width < 0 {
		width = content.Width
	}

	height := dim.Height
	if height < 0 {
		if l.autoSize {
			height = l.contentHeight()
		} else {
			height = content.Height
		}
	}
	l.apply(width, height)
}

// contentHeight is lineHeight*lineCount plus the horizontal scrollbar
// reserve, floored at minLines lines when a floor is configured.
func (l *LayoutEngine) contentHeight() int {
	metrics := l.component.Metrics()
	lines := l.component.Buffer().LineCount()
	if l.minLines >= 0 && lines < l.minLines {
		lines = l.minLines
	}
	return metrics.LineHeight*lines + metrics.ScrollbarHeight
}

func (l *LayoutEngine) apply(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	l.log.Debug(logging.CategoryLayout, "resize", "", map[string]any{
		"width":  width,
		"height": height,
	})
	l.component.Resize(width, height)
}
