// Package world holds the static geometry of a playing field: its boundary,
// the four corner exclusion zones and the obstacles on it.
package world

import (
	"sync"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/skelterjohn/geom"
)

// FieldExtents are the nominal extents of the playing field
var FieldExtents = geom.Rect{
	Min: geom.Coord{X: -1.425, Y: -0.880},
	Max: geom.Coord{X: 1.385, Y: 0.882},
}

// Layout describes the field and its corner zones
type Layout struct {
	Field      geom.Rect
	CornerSize float64
}

func DefaultLayout() Layout {
	return Layout{Field: FieldExtents, CornerSize: 0.1}
}

// Physics owns the field geometry. Readers get copies of the obstacle list, so
// SetObstacles between planning phases does not disturb a running planner.
type Physics struct {
	mu        sync.RWMutex
	layout    Layout
	field     *geometry.Polygon
	corners   map[geometry.Corner]*geometry.Polygon
	obstacles []geometry.Obstacle
}

func NewPhysics(layout Layout, obstacles ...geometry.Obstacle) *Physics {
	min := geometry.FromCoord(layout.Field.Min)
	max := geometry.FromCoord(layout.Field.Max)
	size := layout.CornerSize

	return &Physics{
		layout: layout,
		field:  geometry.NewFieldBoundary(geometry.Rect(min, max)...),
		corners: map[geometry.Corner]*geometry.Polygon{
			geometry.BottomLeft:  geometry.NewCornerZone(geometry.Rect(min, geometry.Vec(min.X+size, min.Y+size))...),
			geometry.BottomRight: geometry.NewCornerZone(geometry.Rect(geometry.Vec(max.X-size, min.Y), geometry.Vec(max.X, min.Y+size))...),
			geometry.TopLeft:     geometry.NewCornerZone(geometry.Rect(geometry.Vec(min.X, max.Y-size), geometry.Vec(min.X+size, max.Y))...),
			geometry.TopRight:    geometry.NewCornerZone(geometry.Rect(geometry.Vec(max.X-size, max.Y-size), max)...),
		},
		obstacles: append([]geometry.Obstacle(nil), obstacles...),
	}
}

//Getters
func (p *Physics) Layout() Layout {
	return p.layout
}

func (p *Physics) FieldShape() geometry.Boundary {
	return p.field
}

// CornerShape returns nil for an unknown corner
func (p *Physics) CornerShape(c geometry.Corner) geometry.Shape {
	corner, ok := p.corners[c]
	if !ok {
		return nil
	}
	return corner
}

func (p *Physics) Obstacles() []geometry.Obstacle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]geometry.Obstacle(nil), p.obstacles...)
}

func (p *Physics) SetObstacles(obstacles []geometry.Obstacle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.obstacles = append(p.obstacles[:0:0], obstacles...)
}

func (p *Physics) AddObstacle(obstacle geometry.Obstacle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.obstacles = append(p.obstacles, obstacle)
}

// Blocked reports whether point is outside the field, inside a corner zone or
// inside an obstacle
func (p *Physics) Blocked(point geometry.Position) bool {
	if !p.field.IsInside(point) {
		return true
	}
	for _, corner := range p.corners {
		if corner.IsInside(point) {
			return true
		}
	}
	for _, obstacle := range p.Obstacles() {
		if obstacle.IsInside(point) {
			return true
		}
	}
	return false
}
