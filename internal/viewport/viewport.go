// Package viewport holds the pan and zoom camera for the network map.
//
// World space is a virtual canvas larger than the visible container so the
// map can be dragged past its edges. A camera maps world points to screen
// points by scaling first and translating second.
package viewport

import "math"

// Point is a 2-D coordinate in either world or screen space.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Div(k float64) Point   { return Point{p.X / k, p.Y / k} }

// Dist is the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Near reports whether p and q agree within eps on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Size is a container's measured pixel dimensions.
type Size struct {
	W, H float64
}

// Empty reports whether the container has not been laid out yet.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Center is the geometric center of the container.
func (s Size) Center() Point {
	return Point{s.W / 2, s.H / 2}
}

// Camera is the world-to-screen transform.
type Camera struct {
	Pan  Point
	Zoom float64
}

// Identity is the camera with no pan and unit zoom.
var Identity = Camera{Zoom: 1}

// ScreenFromWorld maps a world point onto the screen: p*zoom + pan.
func (c Camera) ScreenFromWorld(p Point) Point {
	return p.Scale(c.Zoom).Add(c.Pan)
}

// WorldFromScreen is the inverse of ScreenFromWorld.
func (c Camera) WorldFromScreen(p Point) Point {
	return p.Sub(c.Pan).Div(c.Zoom)
}

// Centered returns the camera at the same zoom whose pan places world point
// w at the center of a container of size s.
func (c Camera) Centered(w Point, s Size) Camera {
	return Camera{Pan: s.Center().Sub(w.Scale(c.Zoom)), Zoom: c.Zoom}
}

// Direction is the sense of a zoom step.
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

// Limits bound the zoom factor and set its step.
type Limits struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultLimits are the stock zoom bounds.
var DefaultLimits = Limits{Min: 0.5, Max: 2.5, Step: 0.1}

// Clamp restricts z to [Min, Max].
func (l Limits) Clamp(z float64) float64 {
	return math.Max(l.Min, math.Min(l.Max, z))
}

// Next returns the zoom one step from z in direction d, clamped. The result
// is rounded to a millionth so repeated steps do not drift off the grid of
// reachable values.
func (l Limits) Next(z float64, d Direction) float64 {
	n := l.Clamp(z + float64(d)*l.Step)
	return math.Round(n*1e6) / 1e6
}

// GridSize is the number of grid units spanning the world on each axis.
const GridSize = 25

// DefaultPannableFactor is how much larger than the container the world is.
const DefaultPannableFactor = 1.5

// WorldPosition places a grid coordinate in world space for a container of
// size s: each grid unit is 1/GridSize of the pannable extent.
func WorldPosition(gridX, gridY int, s Size, pannableFactor float64) Point {
	return Point{
		X: s.W * pannableFactor * float64(gridX) / GridSize,
		Y: s.H * pannableFactor * float64(gridY) / GridSize,
	}
}
