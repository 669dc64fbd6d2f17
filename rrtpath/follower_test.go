package rrtpath

import (
	"math"
	"testing"

	"github.com/brychanrobot/rrt-path/geometry"
)

func TestFollowerReachesEveryWaypoint(t *testing.T) {
	f := NewFollower(geometry.Vec(0, 0), 0.1)
	f.Follow([]geometry.TargetPoint{
		geometry.NewTargetPoint(geometry.Vec(0.25, 0)),
		geometry.NewTargetPoint(geometry.Vec(0.25, 0.3)),
	})

	ticks := 0
	for !f.Step() {
		ticks++
		if ticks > 100 {
			t.Fatal("follower never finished")
		}
	}
	if f.Position() != geometry.Vec(0.25, 0.3) {
		t.Errorf("Position = %v", f.Position())
	}
	if !f.Done() {
		t.Error("Done should be true")
	}
	if math.Abs(f.Heading()-math.Pi/2) > 1e-9 {
		t.Errorf("Heading = %v, want pi/2", f.Heading())
	}
}

func TestFollowerDefaultsTravel(t *testing.T) {
	f := NewFollower(geometry.Vec(0, 0), 0)
	if f.MaxTravel != DefaultMaxTravel {
		t.Errorf("MaxTravel = %v", f.MaxTravel)
	}
	if !f.Step() {
		t.Error("empty follower should be done")
	}
}

func TestFollowerDrivesReplanning(t *testing.T) {
	w, _ := blockedWorld()
	cfg := blockedConfig()
	follower := NewFollower(geometry.Vec(0, 0), 0.25)
	p := NewPath(w, 7, follower, cfg)
	if err := p.InitializePath(); err != nil {
		t.Fatal(err)
	}

	goal := geometry.Vec(10, 0)
	points, err := p.Compute(geometry.NewTargetPoint(goal))
	if err != nil {
		t.Fatal(err)
	}
	follower.Follow(points)
	for i := 0; i < 10; i++ {
		follower.Step()
	}

	// planning again starts where the follower is now
	points, err = p.Compute(geometry.NewTargetPoint(goal))
	if err != nil {
		t.Fatal(err)
	}
	if p.Tree() != nil && p.Tree().Root().Position != follower.Position() {
		t.Errorf("root %v, want follower position %v", p.Tree().Root().Position, follower.Position())
	}
	assertCollisionFree(t, points, w.obstacles)
}
