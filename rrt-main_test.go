package main

import (
	"bytes"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/brychanrobot/rrt-path/rrtpath"
	"github.com/brychanrobot/rrt-path/world"
)

func TestPathLength(t *testing.T) {
	tests := []struct {
		name   string
		points []geometry.TargetPoint
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []geometry.TargetPoint{geometry.NewTargetPoint(geometry.Vec(3, 4))}, 5},
		{"two legs", []geometry.TargetPoint{
			geometry.NewTargetPoint(geometry.Vec(1, 0)),
			geometry.NewTargetPoint(geometry.Vec(1, 2)),
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathLength(geometry.Vec(0, 0), tt.points); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("pathLength = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanGeneratedScenario(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	scenario, err := loadScenario("", 10, rng)
	if err != nil {
		t.Fatal(err)
	}
	physics := scenario.Physics()
	start, goal := scenario.Start.Position(), scenario.Goal.Position()

	cfg := rrtpath.DefaultConfig()
	cfg.SampleArea = physics.Layout().Field
	cfg.Seed = 11
	locator := rrtpath.LocatorFunc(func() geometry.Position { return start })

	r, err := plan(physics, cfg, 0, locator, goal)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.points) == 0 {
		t.Fatal("no waypoints")
	}
	previous := start
	for _, p := range r.points {
		seg := geometry.Segment(previous, p.Location)
		for _, o := range physics.Obstacles() {
			if o.Intersects(seg) {
				t.Errorf("leg %v crosses an obstacle", seg)
			}
		}
		previous = p.Location
	}

	if err := simulate(physics, cfg, start, goal, 10, 2000); err != nil {
		t.Error(err)
	}
}

func TestReportSingleRunHasNoNaN(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	scenario := world.DefaultScenario()
	physics := scenario.Physics()
	start, goal := scenario.Start.Position(), scenario.Goal.Position()
	locator := rrtpath.LocatorFunc(func() geometry.Position { return start })

	r, err := plan(physics, rrtpath.DefaultConfig(), 0, locator, goal)
	if err != nil {
		t.Fatal(err)
	}

	for _, runs := range [][]*run{{r}, {r, r}} {
		buf.Reset()
		report(start, runs)
		if strings.Contains(buf.String(), "NaN") {
			t.Errorf("report with %d runs logged NaN:\n%s", len(runs), buf.String())
		}
		if !strings.Contains(buf.String(), "length:") {
			t.Errorf("report with %d runs has no length line:\n%s", len(runs), buf.String())
		}
	}
}
