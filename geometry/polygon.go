package geometry

import (
	"math"

	"github.com/skelterjohn/geom"
)

// Polygon is a closed, not self-intersecting polygon. It serves as obstacle,
// corner zone or field boundary depending on its kind.
type Polygon struct {
	vertices []Position
	kind     Kind
	bounds   geom.Rect
}

func newPolygon(kind Kind, vertices []Position) *Polygon {
	p := &Polygon{kind: kind, vertices: append([]Position(nil), vertices...)}
	if len(vertices) > 0 {
		p.bounds = geom.Rect{Min: vertices[0].Coord(), Max: vertices[0].Coord()}
	}
	for _, v := range vertices {
		p.bounds.Min.X = math.Min(p.bounds.Min.X, v.X)
		p.bounds.Min.Y = math.Min(p.bounds.Min.Y, v.Y)
		p.bounds.Max.X = math.Max(p.bounds.Max.X, v.X)
		p.bounds.Max.Y = math.Max(p.bounds.Max.Y, v.Y)
	}
	return p
}

// NewPolygon creates a polygonal obstacle
func NewPolygon(vertices ...Position) *Polygon {
	return newPolygon(KindPolygon, vertices)
}

// NewCornerZone creates a corner exclusion zone
func NewCornerZone(vertices ...Position) *Polygon {
	return newPolygon(KindCornerZone, vertices)
}

// NewFieldBoundary creates the outer shape of the playing field
func NewFieldBoundary(vertices ...Position) *Polygon {
	return newPolygon(KindBoundary, vertices)
}

// Rect returns the corners of the axis aligned rectangle min-max in
// counter-clockwise order.
func Rect(min, max Position) []Position {
	return []Position{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
	}
}

// RectFromGeom converts a geom.Rect into polygon vertices
func RectFromGeom(r geom.Rect) []Position {
	return Rect(FromCoord(r.Min), FromCoord(r.Max))
}

func (p *Polygon) Kind() Kind {
	return p.kind
}

func (p *Polygon) Vertices() []Position {
	return p.vertices
}

func (p *Polygon) Bounds() geom.Rect {
	return p.bounds
}

// Center returns the centre of the bounding box
func (p *Polygon) Center() Position {
	return Position{
		X: (p.bounds.Min.X + p.bounds.Max.X) / 2,
		Y: (p.bounds.Min.Y + p.bounds.Max.Y) / 2,
	}
}

func (p *Polygon) edge(i int) LineSegment {
	return LineSegment{A: p.vertices[i], B: p.vertices[(i+1)%len(p.vertices)]}
}

func (p *Polygon) onBoundary(pt Position) bool {
	for i := range p.vertices {
		if p.edge(i).DistanceTo(pt) <= Epsilon {
			return true
		}
	}
	return false
}

// IsInside uses ray casting. Points on the boundary are outside.
func (p *Polygon) IsInside(pt Position) bool {
	n := len(p.vertices)
	if n < 3 {
		return false
	}
	if pt.X < p.bounds.Min.X || pt.X > p.bounds.Max.X || pt.Y < p.bounds.Min.Y || pt.Y > p.bounds.Max.Y {
		return false
	}
	if p.onBoundary(pt) {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p.vertices[i], p.vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) {
			x := (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Intersects is true when seg touches an edge or starts/ends inside
func (p *Polygon) Intersects(seg LineSegment) bool {
	if len(p.vertices) < 3 || !boundsOverlap(p.bounds, seg.Bounds()) {
		return false
	}
	if p.IsInside(seg.A) || p.IsInside(seg.B) {
		return true
	}
	for i := range p.vertices {
		if len(seg.crossings(p.edge(i))) > 0 {
			return true
		}
	}
	return false
}

func (p *Polygon) Intersection(seg LineSegment) []Position {
	if len(p.vertices) < 2 || !boundsOverlap(p.bounds, seg.Bounds()) {
		return nil
	}
	var ts []float64
	for i := range p.vertices {
		ts = append(ts, seg.crossings(p.edge(i))...)
	}
	return orderedPoints(seg, ts)
}

// nearestBoundary returns the closest boundary point to pt and its distance
func (p *Polygon) nearestBoundary(pt Position) (Position, float64) {
	best := pt
	bestDist := math.Inf(1)
	for i := range p.vertices {
		c := p.edge(i).ClosestPoint(pt)
		if d := c.Distance(pt); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// Distance is 0 inside the polygon and the boundary distance outside
func (p *Polygon) Distance(pt Position) float64 {
	if len(p.vertices) == 0 || p.IsInside(pt) {
		return 0
	}
	_, d := p.nearestBoundary(pt)
	return d
}

// ValidPosition moves pt to the nearest boundary point and ValidMargin beyond
// it. Points already outside are returned as they are.
func (p *Polygon) ValidPosition(pt Position) Position {
	if !p.IsInside(pt) {
		return pt
	}
	nearest, _ := p.nearestBoundary(pt)
	out := nearest.Sub(pt).Normalized()
	if out == (Vector2d{}) {
		out = nearest.Sub(p.Center()).Normalized()
	}
	return nearest.Add(out.Scale(ValidMargin))
}
