package geometry

import (
	"math"

	"github.com/skelterjohn/geom"
)

// Circle is a round obstacle, typically another agent
type Circle struct {
	Center Position
	Radius float64
}

func NewCircle(center Position, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

func (c *Circle) Kind() Kind {
	return KindCircle
}

func (c *Circle) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
		Max: geom.Coord{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
	}
}

func (c *Circle) IsInside(p Position) bool {
	return p.Distance(c.Center) < c.Radius
}

func (c *Circle) Intersects(seg LineSegment) bool {
	return seg.DistanceTo(c.Center) <= c.Radius
}

func (c *Circle) Intersection(seg LineSegment) []Position {
	d := seg.Direction()
	f := seg.A.Sub(c.Center)
	a := d.Dot(d)
	if a == 0 {
		return nil
	}
	b := 2 * f.Dot(d)
	cc := f.Dot(f) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var ts []float64
	for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t >= -Epsilon && t <= 1+Epsilon {
			ts = append(ts, clamp01(t))
		}
	}
	return orderedPoints(seg, ts)
}

func (c *Circle) Distance(p Position) float64 {
	return math.Max(0, p.Distance(c.Center)-c.Radius)
}

// ValidPosition pushes p radially out of the circle
func (c *Circle) ValidPosition(p Position) Position {
	if !c.IsInside(p) {
		return p
	}
	dir := p.Sub(c.Center).Normalized()
	if dir == (Vector2d{}) {
		dir = Vector2d{X: 1}
	}
	return c.Center.Add(dir.Scale(c.Radius + ValidMargin))
}
