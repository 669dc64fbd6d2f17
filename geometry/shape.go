package geometry

import (
	"sort"

	"github.com/skelterjohn/geom"
)

// Kind tags the concrete category of a shape
type Kind uint32

const (
	KindPolygon Kind = iota
	KindCircle
	KindCornerZone
	KindBoundary
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindCircle:
		return "circle"
	case KindCornerZone:
		return "corner"
	case KindBoundary:
		return "boundary"
	}
	return "unknown"
}

// Shape is any region the planner can query
type Shape interface {
	Kind() Kind
	IsInside(p Position) bool
	Intersects(seg LineSegment) bool
	// Intersection returns the boundary crossings of seg ordered by their
	// distance from seg.A.
	Intersection(seg LineSegment) []Position
	Bounds() geom.Rect
}

// Obstacle is a shape the path has to avoid
type Obstacle interface {
	Shape
	// ValidPosition returns the nearest position outside the obstacle
	ValidPosition(p Position) Position
	// Distance returns the distance from p to the obstacle, 0 inside
	Distance(p Position) float64
}

// Boundary is the containment shape of the playing field
type Boundary interface {
	Shape
	Center() Position
}

// Corner names one of the four corner exclusion zones of the field
type Corner int

const (
	BottomLeft Corner = iota
	BottomRight
	TopLeft
	TopRight
)

// Corners lists the corners in the order the planner binds them
var Corners = [4]Corner{BottomLeft, BottomRight, TopLeft, TopRight}

func (c Corner) String() string {
	switch c {
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	}
	return "unknown"
}

// ValidMargin is how far ValidPosition moves a point beyond the boundary
var ValidMargin = 1e-4

// boundsOverlap is the cheap rejection test run before exact edge checks.
// Touching boxes count as overlapping.
func boundsOverlap(a, b geom.Rect) bool {
	return geom.RectsIntersect(a, b)
}

// orderedPoints turns crossing parameters along seg into positions sorted from
// seg.A, dropping duplicates.
func orderedPoints(seg LineSegment, ts []float64) []Position {
	if len(ts) == 0 {
		return nil
	}
	sort.Float64s(ts)
	points := make([]Position, 0, len(ts))
	last := -1.0
	for _, t := range ts {
		if last >= 0 && t-last <= Epsilon {
			continue
		}
		points = append(points, seg.PointAt(t))
		last = t
	}
	return points
}
