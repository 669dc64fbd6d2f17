package rrtpath

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"reflect"

	"github.com/brychanrobot/rrt-path/geometry"
)

var (
	// ErrNotInitialized is returned by Compute before InitializePath succeeded
	ErrNotInitialized = errors.New("rrtpath: path not initialized")
	// ErrNilWorld is returned by InitializePath without a world model
	ErrNilWorld = errors.New("rrtpath: nil world")
)

// World is the read-only view of the world model the planner needs
type World interface {
	FieldShape() geometry.Boundary
	CornerShape(c geometry.Corner) geometry.Shape
	Obstacles() []geometry.Obstacle
}

// Locator reports the current position of the agent
type Locator interface {
	Position() geometry.Position
}

// LocatorFunc adapts a function to the Locator interface
type LocatorFunc func() geometry.Position

func (f LocatorFunc) Position() geometry.Position {
	return f()
}

// Path plans collision free routes for one agent
type Path struct {
	world   World
	id      int
	locator Locator
	cfg     Config
	rng     *rand.Rand
	sampler Sampler
	logger  *log.Logger

	field     geometry.Boundary
	corners   []geometry.Shape
	obstacles []geometry.Obstacle

	tree         *Tree
	goal         geometry.Position
	targetPoints []geometry.TargetPoint
	iterations   int
	completed    bool
}

// NewPath creates a planner bound to world. InitializePath has to be called
// once the world is ready.
func NewPath(world World, id int, locator Locator, cfg Config) *Path {
	rng := rand.New(rand.NewSource(cfg.Seed))
	p := &Path{
		world:   world,
		id:      id,
		locator: locator,
		cfg:     cfg,
		rng:     rng,
		logger:  log.Default()}

	if cfg.Sampler == SamplerHalton {
		p.sampler = NewHaltonSampler(cfg.SampleArea)
	} else {
		p.sampler = NewUniformSampler(rng, cfg.SampleArea)
	}

	return p
}

// InitializePath binds the field and corner shapes of the world
func (p *Path) InitializePath() error {
	if p.world == nil {
		return ErrNilWorld
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	field := p.world.FieldShape()
	if isNil(field) {
		return fmt.Errorf("rrtpath: path %d: world has no field shape", p.id)
	}
	corners := make([]geometry.Shape, 0, len(geometry.Corners))
	for _, c := range geometry.Corners {
		shape := p.world.CornerShape(c)
		if isNil(shape) {
			return fmt.Errorf("rrtpath: path %d: world has no %v corner", p.id, c)
		}
		corners = append(corners, shape)
	}

	p.field = field
	p.corners = corners
	return nil
}

// isNil also catches nil pointers stored in an interface
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

//Getters
func (p *Path) ID() int {
	return p.id
}

// TargetPoints returns the waypoints of the last Compute call
func (p *Path) TargetPoints() []geometry.TargetPoint {
	return p.targetPoints
}

// Goal returns the corrected goal of the last Compute call
func (p *Path) Goal() geometry.Position {
	return p.goal
}

// Tree returns the tree of the last Compute call, nil when the direct path
// was taken
func (p *Path) Tree() *Tree {
	return p.tree
}

// Iterations returns how many extension attempts the last search made
func (p *Path) Iterations() int {
	return p.iterations
}

// Completed reports whether the last search reached the goal
func (p *Path) Completed() bool {
	return p.completed
}

// SetLogger replaces the logger used for debug output
func (p *Path) SetLogger(logger *log.Logger) {
	p.logger = logger
}

// SetSampler replaces the random state sampler
func (p *Path) SetSampler(s Sampler) {
	p.sampler = s
}

func (p *Path) debugf(format string, args ...interface{}) {
	if p.cfg.Debug && p.logger != nil {
		p.logger.Printf("[path %d] "+format, append([]interface{}{p.id}, args...)...)
	}
}

// Compute plans from the current agent position to requestedEnd. The result
// replaces the waypoints of any earlier call. Running out of iterations is not
// an error: the path then ends at the node closest to the goal.
func (p *Path) Compute(requestedEnd geometry.TargetPoint) ([]geometry.TargetPoint, error) {
	if p.field == nil || p.locator == nil {
		return nil, ErrNotInitialized
	}

	p.targetPoints = nil
	p.tree = nil
	p.iterations = 0
	p.completed = false
	p.obstacles = p.world.Obstacles()

	start := p.locator.Position()
	end := p.correctGoal(requestedEnd.Location)
	p.goal = end

	if !p.intersectsObstacle(geometry.Segment(start, end)) {
		p.targetPoints = []geometry.TargetPoint{geometry.NewTargetPoint(end)}
		p.completed = true
		p.debugf("direct path to %v", end)
		return p.targetPoints, nil
	}

	p.tree = NewTree(start, false)
	stepSize := p.cfg.StepSize

	iteration := 1
	for ; iteration < p.cfg.Iterations && !p.completed; iteration++ {
		var target geometry.Position
		if p.rng.Float64() < p.cfg.GoalBias {
			target = end
		} else {
			target = p.sampler.Sample()
		}

		nearestNode, err := p.tree.Nearest(target)
		if err != nil {
			return nil, err
		}

		extendedNode := p.extend(nearestNode, target, stepSize)
		if extendedNode == nil {
			stepSize += stepSize * stepGrowth
			continue
		}
		stepSize = p.cfg.StepSize

		if extendedNode.Distance(end) < goalTolerance {
			p.completed = true
		}
	}
	p.iterations = iteration - 1

	nearestNode, err := p.tree.Nearest(end)
	if err != nil {
		return nil, err
	}
	for _, position := range p.tree.Chain(nearestNode) {
		p.targetPoints = append(p.targetPoints, geometry.NewTargetPoint(position))
	}

	if !p.completed {
		p.debugf("iteration limit reached after %d attempts, %d nodes, stopped %.4f short of %v",
			p.iterations, p.tree.Len(), nearestNode.Distance(end), end)
	}

	for i := 0; i < p.cfg.PostProcessSteps; i++ {
		p.simplify()
		p.cutCorners()
	}
	p.simplify()

	p.debugf("%d waypoints after %d attempts", len(p.targetPoints), p.iterations)
	return p.targetPoints, nil
}

// correctGoal moves end out of obstacles, into the field and out of the
// corner zones, in that order
func (p *Path) correctGoal(end geometry.Position) geometry.Position {
	for _, obstacle := range p.obstacles {
		if obstacle.IsInside(end) {
			corrected := obstacle.ValidPosition(end)
			p.debugf("goal %v inside %v obstacle, moved to %v", end, obstacle.Kind(), corrected)
			end = corrected
			break
		}
	}

	center := p.field.Center()
	if p.cfg.UseGameField && !p.field.IsInside(end) {
		if corrected, ok := p.projectTowards(p.field, end, center); ok {
			p.debugf("goal %v outside field, moved to %v", end, corrected)
			end = corrected
		}
	}

	for _, corner := range p.corners {
		if corner.IsInside(end) {
			if corrected, ok := p.projectTowards(corner, end, center); ok {
				p.debugf("goal %v inside corner, moved to %v", end, corrected)
				end = corrected
			}
			break
		}
	}

	return end
}

// projectTowards returns the first boundary crossing of shape on the way from
// point to center, nudged BoundaryMargin further towards center
func (p *Path) projectTowards(shape geometry.Shape, point, center geometry.Position) (geometry.Position, bool) {
	hits := shape.Intersection(geometry.Segment(point, center))
	if len(hits) == 0 {
		return point, false
	}
	hit := hits[0]
	return hit.Add(center.Sub(hit).Normalized().Scale(p.cfg.BoundaryMargin)), true
}

// extend grows the tree from fromNode at most stepSize towards to. It returns
// nil when there is nothing to extend or the new position is not valid.
func (p *Path) extend(fromNode *Node, to geometry.Position, stepSize float64) *Node {
	from := p.tree.Position(fromNode)
	d := to.Sub(from)
	l := d.Length()
	if l == 0 {
		return nil
	} else if l > stepSize {
		// not reachable in one step
		d = d.Scale(stepSize / l)
	}
	extended := from.Add(d)

	if p.cfg.UseGameField && !p.field.IsInside(extended) {
		return nil
	}
	for _, corner := range p.corners {
		if corner.IsInside(extended) {
			return nil
		}
	}
	for _, obstacle := range p.obstacles {
		if obstacle.IsInside(extended) {
			return nil
		}
	}
	if p.cfg.CheckEdges && p.intersectsObstacle(geometry.Segment(from, extended)) {
		return nil
	}

	return p.tree.Insert(extended, false, fromNode)
}

func (p *Path) intersectsObstacle(seg geometry.LineSegment) bool {
	for _, obstacle := range p.obstacles {
		if obstacle.Intersects(seg) {
			return true
		}
	}
	return false
}
