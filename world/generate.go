package world

import (
	"math/rand"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/skelterjohn/geom"
)

func hasIntersection(rect *geom.Rect, obstacles []*geom.Rect) bool {
	for _, obstacle := range obstacles {
		if geom.RectsIntersect(*obstacle, *rect) {
			return true
		}
	}
	return false
}

func rectContains(rect geom.Rect, point geometry.Position) bool {
	return point.X >= rect.Min.X && point.Y >= rect.Min.Y && point.X <= rect.Max.X && point.Y <= rect.Max.Y
}

// GenerateObstacles scatters up to count non-overlapping rectangles with sides
// between minSize and maxSize inside area. Rectangles never cover a keepClear
// point. Fewer rectangles are returned when the area is too crowded.
func GenerateObstacles(rng *rand.Rand, area geom.Rect, count int, minSize, maxSize float64, keepClear ...geometry.Position) []*geom.Rect {
	var obstacles []*geom.Rect
	if count <= 0 || maxSize < minSize || area.Width() <= maxSize || area.Height() <= maxSize {
		return obstacles
	}

	attempts := 0
	maxAttempts := count * 20
	for len(obstacles) < count && attempts < maxAttempts {
		attempts++

		width := minSize + rng.Float64()*(maxSize-minSize)
		height := minSize + rng.Float64()*(maxSize-minSize)
		topLeft := geom.Coord{
			X: area.Min.X + rng.Float64()*(area.Width()-width),
			Y: area.Min.Y + rng.Float64()*(area.Height()-height),
		}
		rect := geom.Rect{Min: topLeft, Max: geom.Coord{X: topLeft.X + width, Y: topLeft.Y + height}}

		if hasIntersection(&rect, obstacles) {
			continue
		}
		free := true
		for _, point := range keepClear {
			if rectContains(rect, point) {
				free = false
				break
			}
		}
		if free {
			obstacles = append(obstacles, &rect)
		}
	}

	return obstacles
}

// Polygons turns rectangles into polygon obstacles
func Polygons(rects []*geom.Rect) []geometry.Obstacle {
	obstacles := make([]geometry.Obstacle, 0, len(rects))
	for _, rect := range rects {
		obstacles = append(obstacles, geometry.NewPolygon(geometry.RectFromGeom(*rect)...))
	}
	return obstacles
}
