package rrtpath

import (
	"errors"
	"testing"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/skelterjohn/geom"
)

type testWorld struct {
	field     *geometry.Polygon
	corners   map[geometry.Corner]*geometry.Polygon
	obstacles []geometry.Obstacle
}

func newTestWorld(min, max geometry.Position, cornerSize float64, obstacles ...geometry.Obstacle) *testWorld {
	c := geometry.Vec(cornerSize, cornerSize)
	return &testWorld{
		field: geometry.NewFieldBoundary(geometry.Rect(min, max)...),
		corners: map[geometry.Corner]*geometry.Polygon{
			geometry.BottomLeft:  geometry.NewCornerZone(geometry.Rect(min, min.Add(c))...),
			geometry.BottomRight: geometry.NewCornerZone(geometry.Rect(geometry.Vec(max.X-cornerSize, min.Y), geometry.Vec(max.X, min.Y+cornerSize))...),
			geometry.TopLeft:     geometry.NewCornerZone(geometry.Rect(geometry.Vec(min.X, max.Y-cornerSize), geometry.Vec(min.X+cornerSize, max.Y))...),
			geometry.TopRight:    geometry.NewCornerZone(geometry.Rect(max.Sub(c), max)...),
		},
		obstacles: obstacles,
	}
}

func defaultTestWorld(obstacles ...geometry.Obstacle) *testWorld {
	return newTestWorld(geometry.Vec(-1.425, -0.880), geometry.Vec(1.385, 0.882), 0.1, obstacles...)
}

func (w *testWorld) FieldShape() geometry.Boundary {
	if w.field == nil {
		return nil
	}
	return w.field
}

func (w *testWorld) CornerShape(c geometry.Corner) geometry.Shape {
	corner, ok := w.corners[c]
	if !ok || corner == nil {
		return nil
	}
	return corner
}

func (w *testWorld) Obstacles() []geometry.Obstacle { return w.obstacles }

// typedNilWorld hands out nil polygons wrapped in non-nil interfaces
type typedNilWorld struct {
	*testWorld
	missing geometry.Corner
	field   bool
}

func (w typedNilWorld) FieldShape() geometry.Boundary {
	if w.field {
		var p *geometry.Polygon
		return p
	}
	return w.testWorld.FieldShape()
}

func (w typedNilWorld) CornerShape(c geometry.Corner) geometry.Shape {
	if !w.field && c == w.missing {
		var p *geometry.Polygon
		return p
	}
	return w.testWorld.CornerShape(c)
}

func fixed(p geometry.Position) Locator {
	return LocatorFunc(func() geometry.Position { return p })
}

func newTestPath(t *testing.T, world World, start geometry.Position, cfg Config) *Path {
	t.Helper()
	p := NewPath(world, 1, fixed(start), cfg)
	if err := p.InitializePath(); err != nil {
		t.Fatalf("InitializePath: %v", err)
	}
	return p
}

// blockedConfig is sized for the 10 unit scenarios below
func blockedConfig() Config {
	cfg := DefaultConfig()
	cfg.StepSize = 0.5
	cfg.Iterations = 5000
	cfg.SampleArea = geom.Rect{Min: geom.Coord{X: -2, Y: -5}, Max: geom.Coord{X: 12, Y: 5}}
	cfg.Seed = 1
	return cfg
}

func blockedWorld() (*testWorld, *geometry.Polygon) {
	obstacle := geometry.NewPolygon(geometry.Rect(geometry.Vec(4, -1), geometry.Vec(6, 1))...)
	return newTestWorld(geometry.Vec(-2, -5), geometry.Vec(12, 5), 0.3, obstacle), obstacle
}

func assertCollisionFree(t *testing.T, points []geometry.TargetPoint, obstacles []geometry.Obstacle) {
	t.Helper()
	for i, point := range points {
		for _, o := range obstacles {
			if o.IsInside(point.Location) {
				t.Errorf("waypoint %d %v inside obstacle", i, point.Location)
			}
			if i > 0 && o.Intersects(geometry.Segment(points[i-1].Location, point.Location)) {
				t.Errorf("segment %d-%d intersects obstacle", i-1, i)
			}
		}
	}
}

func TestComputeBeforeInitialize(t *testing.T) {
	p := NewPath(defaultTestWorld(), 1, fixed(geometry.Vec(0, 0)), DefaultConfig())
	if _, err := p.Compute(geometry.NewTargetPoint(geometry.Vec(0.5, 0))); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
}

func TestInitializePathErrors(t *testing.T) {
	if err := NewPath(nil, 1, fixed(geometry.Vec(0, 0)), DefaultConfig()).InitializePath(); !errors.Is(err, ErrNilWorld) {
		t.Errorf("err = %v, want ErrNilWorld", err)
	}

	cfg := DefaultConfig()
	cfg.StepSize = 0
	if err := NewPath(defaultTestWorld(), 1, fixed(geometry.Vec(0, 0)), cfg).InitializePath(); err == nil {
		t.Error("expected config error")
	}

	w := defaultTestWorld()
	delete(w.corners, geometry.TopLeft)
	if err := NewPath(w, 1, fixed(geometry.Vec(0, 0)), DefaultConfig()).InitializePath(); err == nil {
		t.Error("expected missing corner error")
	}
}

func TestInitializePathRejectsNilShapes(t *testing.T) {
	tests := []struct {
		name  string
		world World
	}{
		{"nil corner pointer", typedNilWorld{testWorld: defaultTestWorld(), missing: geometry.TopLeft}},
		{"nil field pointer", typedNilWorld{testWorld: defaultTestWorld(), field: true}},
		{"missing field", &testWorld{corners: defaultTestWorld().corners}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath(tt.world, 1, fixed(geometry.Vec(0, 0)), DefaultConfig())
			if err := p.InitializePath(); err == nil {
				t.Fatal("InitializePath should fail")
			}
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Compute panicked: %v", r)
				}
			}()
			if _, err := p.Compute(geometry.NewTargetPoint(geometry.Vec(0.8, 0))); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("Compute err = %v, want ErrNotInitialized", err)
			}
		})
	}
}

func TestDirectPath(t *testing.T) {
	p := newTestPath(t, defaultTestWorld(), geometry.Vec(0, 0), DefaultConfig())
	goal := geometry.Vec(0.5, 0.3)

	points, err := p.Compute(geometry.NewTargetPoint(goal))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Location != goal {
		t.Fatalf("points = %v, want [%v]", points, goal)
	}
	if p.Tree() != nil {
		t.Error("direct path should not build a tree")
	}
	if !p.Completed() {
		t.Error("direct path should be complete")
	}
}

func TestValidGoalIsNotCorrected(t *testing.T) {
	obstacle := geometry.NewPolygon(geometry.Rect(geometry.Vec(0.2, -0.2), geometry.Vec(0.4, 0.2))...)
	p := newTestPath(t, defaultTestWorld(obstacle), geometry.Vec(0, 0), DefaultConfig())

	for _, goal := range []geometry.Position{geometry.Vec(0.8, 0), geometry.Vec(-1, 0.5), geometry.Vec(0.3, 0.5)} {
		if _, err := p.Compute(geometry.NewTargetPoint(goal)); err != nil {
			t.Fatal(err)
		}
		if p.Goal() != goal {
			t.Errorf("goal %v corrected to %v", goal, p.Goal())
		}
	}
}

func TestGoalOutsideFieldIsProjected(t *testing.T) {
	w := defaultTestWorld()
	p := newTestPath(t, w, geometry.Vec(0, 0), DefaultConfig())

	points, err := p.Compute(geometry.NewTargetPoint(geometry.Vec(5, 0.001)))
	if err != nil {
		t.Fatal(err)
	}
	goal := p.Goal()
	if !w.field.IsInside(goal) {
		t.Errorf("corrected goal %v outside field", goal)
	}
	if goal.X < 1.385-0.001 || goal.X >= 1.385 {
		t.Errorf("corrected goal %v not at the right edge", goal)
	}
	if len(points) != 1 || points[0].Location != goal {
		t.Errorf("points = %v", points)
	}
}

func TestGoalInsideCornerIsProjected(t *testing.T) {
	w := defaultTestWorld()
	p := newTestPath(t, w, geometry.Vec(0, 0), DefaultConfig())

	requested := geometry.Vec(1.36, 0.86)
	if !w.corners[geometry.TopRight].IsInside(requested) {
		t.Fatal("test goal should start inside the corner")
	}
	if _, err := p.Compute(geometry.NewTargetPoint(requested)); err != nil {
		t.Fatal(err)
	}
	goal := p.Goal()
	if w.corners[geometry.TopRight].IsInside(goal) {
		t.Errorf("corrected goal %v still inside corner", goal)
	}
	if !w.field.IsInside(goal) {
		t.Errorf("corrected goal %v outside field", goal)
	}
}

func TestGoalInsideObstacle(t *testing.T) {
	w, obstacle := blockedWorld()
	p := newTestPath(t, w, geometry.Vec(0, 0), blockedConfig())

	center := geometry.Vec(5, 0)
	points, err := p.Compute(geometry.NewTargetPoint(center))
	if err != nil {
		t.Fatal(err)
	}
	if want := obstacle.ValidPosition(center); p.Goal() != want {
		t.Errorf("goal = %v, want %v", p.Goal(), want)
	}
	if p.Goal() == center {
		t.Error("goal was not corrected")
	}
	if !p.Completed() {
		t.Fatal("search did not reach the corrected goal")
	}
	if last := points[len(points)-1].Location; last.Distance(p.Goal()) >= goalTolerance {
		t.Errorf("last waypoint %v, want within %v of %v", last, goalTolerance, p.Goal())
	}
	assertCollisionFree(t, points, w.obstacles)
}

func TestBlockedStraightLine(t *testing.T) {
	w, _ := blockedWorld()
	p := newTestPath(t, w, geometry.Vec(0, 0), blockedConfig())
	goal := geometry.Vec(10, 0)

	points, err := p.Compute(geometry.NewTargetPoint(goal))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Completed() {
		t.Fatalf("search did not complete in %d iterations", p.Iterations())
	}
	if len(points) < 3 {
		t.Fatalf("points = %v, want at least 3", points)
	}
	if first := points[0].Location; first.Distance(geometry.Vec(0, 0)) > goalTolerance {
		t.Errorf("first waypoint %v, want start", first)
	}
	if last := points[len(points)-1].Location; last.Distance(goal) >= goalTolerance {
		t.Errorf("last waypoint %v, want goal", last)
	}
	assertCollisionFree(t, points, w.obstacles)
	assertValidTree(t, p.Tree())
	if &p.TargetPoints()[0] != &points[0] {
		t.Error("TargetPoints should return the computed list")
	}
}

func TestIterationExhaustion(t *testing.T) {
	maze := []geometry.Obstacle{
		geometry.NewPolygon(geometry.Rect(geometry.Vec(1, -4), geometry.Vec(1.5, 4))...),
		geometry.NewPolygon(geometry.Rect(geometry.Vec(3, -1), geometry.Vec(3.5, 5))...),
		geometry.NewPolygon(geometry.Rect(geometry.Vec(5, -5), geometry.Vec(5.5, 1))...),
		geometry.NewPolygon(geometry.Rect(geometry.Vec(7, -1), geometry.Vec(7.5, 5))...),
	}
	w := newTestWorld(geometry.Vec(-2, -5), geometry.Vec(12, 5), 0.3, maze...)
	cfg := blockedConfig()
	cfg.Iterations = 2
	p := newTestPath(t, w, geometry.Vec(0, 0), cfg)
	goal := geometry.Vec(10, 0)

	points, err := p.Compute(geometry.NewTargetPoint(goal))
	if err != nil {
		t.Fatalf("exhaustion should not be an error: %v", err)
	}
	if p.Iterations() != 1 {
		t.Errorf("Iterations = %d, want 1", p.Iterations())
	}
	if p.Completed() {
		t.Error("search should not complete")
	}
	if len(points) == 0 || len(points) > 2 {
		t.Fatalf("points = %v", points)
	}
	last := points[len(points)-1].Location
	if last.Distance(goal) < goalTolerance {
		t.Error("path should stop short of the goal")
	}
	nearest, _ := p.Tree().Nearest(goal)
	if last != nearest.Position {
		t.Errorf("last waypoint %v, want nearest node %v", last, nearest.Position)
	}
}

func TestComputeOverwritesPreviousResult(t *testing.T) {
	w, _ := blockedWorld()
	p := newTestPath(t, w, geometry.Vec(0, 0), blockedConfig())

	if _, err := p.Compute(geometry.NewTargetPoint(geometry.Vec(10, 0))); err != nil {
		t.Fatal(err)
	}
	points, err := p.Compute(geometry.NewTargetPoint(geometry.Vec(2, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || len(p.TargetPoints()) != 1 {
		t.Errorf("points = %v, want only the direct goal", points)
	}
	if p.Tree() != nil {
		t.Error("tree from the previous call should be dropped")
	}
}

func TestComputeIsReproducible(t *testing.T) {
	w, _ := blockedWorld()
	goal := geometry.NewTargetPoint(geometry.Vec(10, 0))

	a, err := newTestPath(t, w, geometry.Vec(0, 0), blockedConfig()).Compute(goal)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestPath(t, w, geometry.Vec(0, 0), blockedConfig()).Compute(goal)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("len %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("waypoint %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHaltonSamplerPlans(t *testing.T) {
	w, _ := blockedWorld()
	cfg := blockedConfig()
	cfg.Sampler = SamplerHalton
	p := newTestPath(t, w, geometry.Vec(0, 0), cfg)

	points, err := p.Compute(geometry.NewTargetPoint(geometry.Vec(10, 0)))
	if err != nil {
		t.Fatal(err)
	}
	assertCollisionFree(t, points, w.obstacles)
	assertValidTree(t, p.Tree())
}

func TestExtendRejections(t *testing.T) {
	obstacle := geometry.NewPolygon(geometry.Rect(geometry.Vec(0.2, -0.1), geometry.Vec(0.3, 0.1))...)
	w := defaultTestWorld(obstacle)
	p := newTestPath(t, w, geometry.Vec(0, 0), DefaultConfig())
	p.obstacles = w.Obstacles()
	p.tree = NewTree(geometry.Vec(0, 0), false)
	root := p.tree.Root()

	tests := []struct {
		name   string
		from   *Node
		to     geometry.Position
		step   float64
		accept bool
	}{
		{"zero length", root, geometry.Vec(0, 0), 0.1, false},
		{"free", root, geometry.Vec(0, 0.5), 0.1, true},
		{"into obstacle", root, geometry.Vec(0.25, 0), 1, false},
		{"across obstacle", root, geometry.Vec(0.5, 0), 1, false},
		{"outside field", root, geometry.Vec(2, 0), 5, false},
		{"into corner", root, geometry.Vec(1.38, 0.87), 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := p.extend(tt.from, tt.to, tt.step)
			if (node != nil) != tt.accept {
				t.Fatalf("extend accepted = %v, want %v", node != nil, tt.accept)
			}
			if node != nil && node.Distance(tt.from.Position) > tt.step+1e-12 {
				t.Errorf("extended %v, further than step %v", node.Distance(tt.from.Position), tt.step)
			}
		})
	}
}

func TestExtendWithoutEdgeChecks(t *testing.T) {
	obstacle := geometry.NewPolygon(geometry.Rect(geometry.Vec(0.2, -0.1), geometry.Vec(0.3, 0.1))...)
	w := defaultTestWorld(obstacle)
	cfg := DefaultConfig()
	cfg.CheckEdges = false
	p := newTestPath(t, w, geometry.Vec(0, 0), cfg)
	p.obstacles = w.Obstacles()
	p.tree = NewTree(geometry.Vec(0, 0), false)

	if node := p.extend(p.tree.Root(), geometry.Vec(0.5, 0), 1); node == nil {
		t.Error("point-only checks should accept an edge across the obstacle")
	}
	if node := p.extend(p.tree.Root(), geometry.Vec(0.25, 0), 1); node != nil {
		t.Error("a point inside the obstacle is still rejected")
	}
}
