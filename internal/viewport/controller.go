package viewport

// Controller owns the camera of one map view and applies user input to it.
type Controller struct {
	cam      Camera
	limits   Limits
	size     Size
	factor   float64
	dragging bool
	anchor   Point

	// pending is the world target of the initial centering, resolved by
	// target once the container has a size.
	pending     bool
	initialZoom float64
	target      func(Size) (Point, bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLimits overrides the zoom bounds and step.
func WithLimits(l Limits) Option {
	return func(c *Controller) {
		if l.Min > 0 && l.Max >= l.Min && l.Step > 0 {
			c.limits = l
		}
	}
}

// WithPannableFactor sets how many containers wide the world is.
func WithPannableFactor(f float64) Option {
	return func(c *Controller) {
		if f > 0 {
			c.factor = f
		}
	}
}

// WithInitialZoom sets the zoom used when the view first centers.
func WithInitialZoom(z float64) Option {
	return func(c *Controller) {
		if z > 0 {
			c.initialZoom = z
		}
	}
}

// WithInitialTarget asks the controller to center on the world point
// returned by target as soon as the container is first measured. target
// receives the container size because world positions scale with it.
func WithInitialTarget(target func(Size) (Point, bool)) Option {
	return func(c *Controller) {
		c.target = target
		c.pending = target != nil
	}
}

// NewController creates a controller at zoom 1 with no pan.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		cam:         Identity,
		limits:      DefaultLimits,
		factor:      DefaultPannableFactor,
		initialZoom: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Camera returns the current transform.
func (c *Controller) Camera() Camera { return c.cam }

// Size returns the last measured container size.
func (c *Controller) Size() Size { return c.size }

// Limits returns the zoom bounds in effect.
func (c *Controller) Limits() Limits { return c.limits }

// PannableFactor returns the world-to-container ratio.
func (c *Controller) PannableFactor() float64 { return c.factor }

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool { return c.dragging }

// WorldPosition places a grid coordinate in world space for the current
// container size.
func (c *Controller) WorldPosition(gridX, gridY int) Point {
	return WorldPosition(gridX, gridY, c.size, c.factor)
}

// StartPan begins a drag at screen point p. The anchor is fixed for the
// whole drag so the dragged point tracks the pointer exactly.
func (c *Controller) StartPan(p Point) {
	c.anchor = p.Sub(c.cam.Pan)
	c.dragging = true
}

// MovePan moves the drag to screen point p. No-op unless dragging.
func (c *Controller) MovePan(p Point) bool {
	if !c.dragging {
		return false
	}
	c.cam.Pan = p.Sub(c.anchor)
	return true
}

// EndPan finishes the drag. It is also the pointer-leave handler.
func (c *Controller) EndPan() {
	c.dragging = false
}

// PanBy shifts the camera by a screen-space delta. During a drag the anchor
// moves with it, so the next MovePan keeps the nudge.
func (c *Controller) PanBy(d Point) {
	c.cam.Pan = c.cam.Pan.Add(d)
	if c.dragging {
		c.anchor = c.anchor.Sub(d)
	}
}

// ZoomAt steps the zoom in direction d keeping the world point under screen
// point p fixed. It reports whether the zoom changed; at a limit the call
// leaves the camera untouched.
func (c *Controller) ZoomAt(p Point, d Direction) bool {
	world := c.cam.WorldFromScreen(p)
	next := c.limits.Next(c.cam.Zoom, d)
	if next == c.cam.Zoom {
		return false
	}
	c.cam.Zoom = next
	c.cam.Pan = p.Sub(world.Scale(next))
	return true
}

// CenterOn places world point w at the center of the container at the
// current zoom. No-op while the container is unmeasured.
func (c *Controller) CenterOn(w Point) bool {
	if c.size.Empty() {
		return false
	}
	c.cam = c.cam.Centered(w, c.size)
	return true
}

// CenterOnGrid centers on a grid coordinate.
func (c *Controller) CenterOnGrid(gridX, gridY int) bool {
	return c.CenterOn(c.WorldPosition(gridX, gridY))
}

// Resize records a new container measurement. The first non-empty
// measurement triggers the initial centering; empty ones are skipped and the
// centering waits for the next call.
func (c *Controller) Resize(s Size) {
	c.size = s
	if !c.pending || s.Empty() {
		return
	}
	c.pending = false
	w, ok := c.target(s)
	if !ok {
		return
	}
	c.cam = Camera{Zoom: c.limits.Clamp(c.initialZoom)}.Centered(w, s)
}

// Reset returns to the initial view: zoom back to the initial value and
// centered again on the initial target.
func (c *Controller) Reset() {
	c.dragging = false
	c.cam = Identity
	if c.target == nil {
		return
	}
	c.pending = true
	c.Resize(c.size)
}
