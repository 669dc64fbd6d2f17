package rrtpath

import (
	"math"

	"github.com/brychanrobot/rrt-path/geometry"
)

// DefaultMaxTravel is the distance a follower covers per tick
const DefaultMaxTravel = 0.02

// Follower moves an agent along a waypoint list, one tick at a time. It
// implements Locator so a Path can plan from wherever the agent currently is.
type Follower struct {
	position        geometry.Position
	heading         float64
	MaxTravel       float64
	CurrentPath     []geometry.TargetPoint
	CurrentWaypoint *geometry.TargetPoint
}

func NewFollower(start geometry.Position, maxTravel float64) *Follower {
	if maxTravel <= 0 {
		maxTravel = DefaultMaxTravel
	}
	return &Follower{position: start, MaxTravel: maxTravel}
}

func (f *Follower) Position() geometry.Position {
	return f.position
}

// Heading is the direction of the last move in radians
func (f *Follower) Heading() float64 {
	return f.heading
}

// Follow replaces the current path
func (f *Follower) Follow(path []geometry.TargetPoint) {
	f.CurrentPath = append(f.CurrentPath[:0], path...)
	f.CurrentWaypoint = nil
}

// Done reports whether every waypoint has been reached
func (f *Follower) Done() bool {
	return len(f.CurrentPath) == 0
}

// Step advances one tick and reports whether the path is finished
func (f *Follower) Step() bool {
	if len(f.CurrentPath) == 0 {
		f.CurrentWaypoint = nil
		return true
	}

	f.CurrentWaypoint = &f.CurrentPath[0]
	waypoint := f.CurrentWaypoint.Location
	if f.position.Distance(waypoint) <= f.MaxTravel {
		f.position = waypoint
		f.CurrentPath = f.CurrentPath[1:]
	} else {
		f.heading = math.Atan2(waypoint.Y-f.position.Y, waypoint.X-f.position.X)
		f.position.X += f.MaxTravel * math.Cos(f.heading)
		f.position.Y += f.MaxTravel * math.Sin(f.heading)
	}

	return len(f.CurrentPath) == 0
}
