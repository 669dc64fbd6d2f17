package geometry

import (
	"math"

	"github.com/skelterjohn/geom"
)

// Epsilon absorbs rounding error in the segment predicates
var Epsilon = 1e-9

// LineSegment is the straight connection between A and B
type LineSegment struct {
	A, B Position
}

func Segment(a, b Position) LineSegment {
	return LineSegment{A: a, B: b}
}

func (s LineSegment) Direction() Vector2d {
	return s.B.Sub(s.A)
}

func (s LineSegment) Length() float64 {
	return s.A.Distance(s.B)
}

// PointAt returns A + t*(B-A)
func (s LineSegment) PointAt(t float64) Position {
	return s.A.Add(s.Direction().Scale(t))
}

// Bounds returns the axis aligned bounding box of the segment
func (s LineSegment) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: math.Min(s.A.X, s.B.X), Y: math.Min(s.A.Y, s.B.Y)},
		Max: geom.Coord{X: math.Max(s.A.X, s.B.X), Y: math.Max(s.A.Y, s.B.Y)},
	}
}

// Intersects reports whether the segment hits shape
func (s LineSegment) Intersects(shape Shape) bool {
	return shape.Intersects(s)
}

// ClosestPoint returns the point on the segment nearest to p
func (s LineSegment) ClosestPoint(p Position) Position {
	d := s.Direction()
	ll := d.Dot(d)
	if ll == 0 {
		return s.A
	}
	t := p.Sub(s.A).Dot(d) / ll
	t = math.Max(0, math.Min(1, t))
	return s.PointAt(t)
}

func (s LineSegment) DistanceTo(p Position) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// crossings returns the parameters along s at which s meets o. Collinear
// overlaps report both ends of the shared piece.
func (s LineSegment) crossings(o LineSegment) []float64 {
	d1 := s.Direction()
	d2 := o.Direction()
	diff := o.A.Sub(s.A)
	l1 := d1.Length()

	if l1 == 0 {
		if o.DistanceTo(s.A) <= Epsilon {
			return []float64{0}
		}
		return nil
	}

	denom := d1.Cross(d2)
	if math.Abs(denom) > Epsilon*l1*math.Max(d2.Length(), Epsilon) {
		t := diff.Cross(d2) / denom
		u := diff.Cross(d1) / denom
		if t < -Epsilon || t > 1+Epsilon || u < -Epsilon || u > 1+Epsilon {
			return nil
		}
		return []float64{clamp01(t)}
	}

	// parallel
	if math.Abs(diff.Cross(d1))/l1 > Epsilon {
		return nil
	}
	ll := l1 * l1
	t0 := diff.Dot(d1) / ll
	t1 := o.B.Sub(s.A).Dot(d1) / ll
	lo := math.Max(0, math.Min(t0, t1))
	hi := math.Min(1, math.Max(t0, t1))
	if lo > hi+Epsilon {
		return nil
	}
	if hi-lo <= Epsilon {
		return []float64{clamp01(lo)}
	}
	return []float64{lo, hi}
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
