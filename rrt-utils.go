package main

import (
	"math"
	"time"

	"github.com/brychanrobot/rrt-path/geometry"
)

// pathLength is the travelled distance from start through every waypoint
func pathLength(start geometry.Position, points []geometry.TargetPoint) float64 {
	length := 0.0
	previous := start
	for _, p := range points {
		length += previous.Distance(p.Location)
		previous = p.Location
	}
	return length
}

func angleBetweenPoints(p1, p2 geometry.Position) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
