package rrtpath

import (
	"math"

	"github.com/brychanrobot/rrt-path/geometry"
)

// simplify drops every waypoint that can be skipped by a straight, obstacle
// free connection, scanning from the far end for each start
func (p *Path) simplify() {
	points := p.targetPoints
	for startIndex := 0; startIndex < len(points); startIndex++ {
		for endIndex := len(points) - 1; endIndex > startIndex+1; endIndex-- {
			seg := geometry.Segment(points[startIndex].Location, points[endIndex].Location)
			if !p.intersectsObstacle(seg) {
				points = append(points[:startIndex+1], points[endIndex:]...)
				break
			}
		}
	}
	p.targetPoints = points
}

// cutCorners replaces sharp turns by a short chamfer where it stays clear of
// obstacles
func (p *Path) cutCorners() {
	for i := 1; i < len(p.targetPoints)-1; i++ {
		left := p.targetPoints[i-1].Location
		mid := p.targetPoints[i].Location
		right := p.targetPoints[i+1].Location
		diffLeft := left.Sub(mid)
		diffRight := right.Sub(mid)

		// max corner cutting distance
		step := math.Min(diffLeft.Length(), diffRight.Length())
		diffLeft = diffLeft.Normalized()
		diffRight = diffRight.Normalized()

		step /= 2
		dist := step
		lastGood := 0.0

		for step > cutTolerance {
			// symmetrical
			line := geometry.Segment(mid.Add(diffLeft.Scale(dist)), mid.Add(diffRight.Scale(dist)))
			step /= 2
			if !p.intersectsObstacle(line) {
				lastGood = dist
				dist += step
			} else {
				dist -= step
			}
		}

		if lastGood > 0 {
			p.targetPoints[i].Location = mid.Add(diffLeft.Scale(lastGood))
			cut := geometry.NewTargetPoint(mid.Add(diffRight.Scale(lastGood)))
			p.targetPoints = append(p.targetPoints, geometry.TargetPoint{})
			copy(p.targetPoints[i+2:], p.targetPoints[i+1:])
			p.targetPoints[i+1] = cut
			i++
		}
	}
}
