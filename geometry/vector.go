package geometry

import (
	"fmt"
	"math"

	"github.com/skelterjohn/geom"
)

// Vector2d is a 2D vector in world coordinates
type Vector2d struct {
	X, Y float64
}

// Position is a world-space location
type Position = Vector2d

// TargetPoint is a waypoint handed to the control loop
type TargetPoint struct {
	Location Position
}

// Vec is shorthand for Vector2d{X: x, Y: y}
func Vec(x, y float64) Vector2d {
	return Vector2d{X: x, Y: y}
}

// FromCoord converts a geom.Coord into a Vector2d
func FromCoord(c geom.Coord) Vector2d {
	return Vector2d{X: c.X, Y: c.Y}
}

func (v Vector2d) Coord() geom.Coord {
	return geom.Coord{X: v.X, Y: v.Y}
}

func (v Vector2d) Add(o Vector2d) Vector2d {
	return Vector2d{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2d) Sub(o Vector2d) Vector2d {
	return Vector2d{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2d) Scale(s float64) Vector2d {
	return Vector2d{X: v.X * s, Y: v.Y * s}
}

func (v Vector2d) Dot(o Vector2d) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product
func (v Vector2d) Cross(o Vector2d) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2d) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vector2d) Normalized() Vector2d {
	l := v.Length()
	if l == 0 {
		return Vector2d{}
	}
	return Vector2d{X: v.X / l, Y: v.Y / l}
}

func (v Vector2d) Distance(o Vector2d) float64 {
	return v.Sub(o).Length()
}

func (v Vector2d) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

// NewTargetPoint wraps p in a TargetPoint
func NewTargetPoint(p Position) TargetPoint {
	return TargetPoint{Location: p}
}
