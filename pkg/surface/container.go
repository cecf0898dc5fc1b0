package surface

// Rect is a positioned rectangle in surface cells.
type Rect struct {
	X, Y, Width, Height int
}

// Size returns the rect's dimensions.
func (r Rect) Size() Dimension {
	return Dimension{Width: r.Width, Height: r.Height}
}

// Contains reports whether the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Dimension is a width/height pair. Negative values mean "unspecified"
// when used as a resize request.
type Dimension struct {
	Width  int
	Height int
}

// Container is the host node an embedded component is mounted into.
// It may exist before being attached to a renderable surface; layout
// against a detached container is a no-op by contract.
type Container struct {
	target Target
	bounds Rect
}

// NewContainer creates a detached container.
func NewContainer() *Container {
	return &Container{}
}

// Attach mounts the container onto a render target.
func (c *Container) Attach(target Target) {
	c.target = target
}

// Detach releases the render target.
func (c *Container) Detach() {
	c.target = nil
}

// Attached reports whether the container is on a renderable surface.
func (c *Container) Attached() bool {
	return c.target != nil
}

// SetBounds assigns the container's region on the surface.
func (c *Container) SetBounds(bounds Rect) {
	c.bounds = bounds
}

// Bounds returns the assigned region.
func (c *Container) Bounds() Rect {
	return c.bounds
}

// ContentSize returns the container's content-box size. ok is false
// while the container is detached.
func (c *Container) ContentSize() (dim Dimension, ok bool) {
	if c.target == nil {
		return Dimension{}, false
	}
	return c.bounds.Size(), true
}

// Region returns a render target clipped to the container bounds, or
// nil while detached.
func (c *Container) Region() Target {
	if c.target == nil {
		return nil
	}
	return NewSubTarget(c.target, c.bounds.X, c.bounds.Y, c.bounds.Width, c.bounds.Height)
}
