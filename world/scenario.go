package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/invopop/jsonschema"
	"github.com/skelterjohn/geom"
)

// ErrInvalidScenario wraps every scenario validation failure
var ErrInvalidScenario = errors.New("world: invalid scenario")

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Position() geometry.Position {
	return geometry.Vec(p.X, p.Y)
}

type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

type CircleSpec struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// ObstacleSpec holds exactly one of Polygon and Circle
type ObstacleSpec struct {
	Polygon []Point     `json:"polygon,omitempty" jsonschema:"description=Vertices in order"`
	Circle  *CircleSpec `json:"circle,omitempty"`
}

// Scenario is a field layout with a planning request, as stored in JSON files
type Scenario struct {
	Field      Bounds         `json:"field"`
	CornerSize float64        `json:"corner_size" jsonschema:"description=Side length of the square corner zones"`
	Start      Point          `json:"start"`
	Goal       Point          `json:"goal"`
	Obstacles  []ObstacleSpec `json:"obstacles,omitempty"`
}

// DefaultScenario is the nominal field without obstacles
func DefaultScenario() *Scenario {
	layout := DefaultLayout()
	return &Scenario{
		Field: Bounds{
			Min: Point{X: layout.Field.Min.X, Y: layout.Field.Min.Y},
			Max: Point{X: layout.Field.Max.X, Y: layout.Field.Max.Y},
		},
		CornerSize: layout.CornerSize,
		Start:      Point{X: -1, Y: 0},
		Goal:       Point{X: 1, Y: 0},
	}
}

func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("world: decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	if s.Field.Max.X <= s.Field.Min.X || s.Field.Max.Y <= s.Field.Min.Y {
		return fmt.Errorf("%w: empty field %v", ErrInvalidScenario, s.Field)
	}
	if s.CornerSize < 0 || 2*s.CornerSize >= s.Field.Max.X-s.Field.Min.X || 2*s.CornerSize >= s.Field.Max.Y-s.Field.Min.Y {
		return fmt.Errorf("%w: corner size %v does not fit the field", ErrInvalidScenario, s.CornerSize)
	}
	for i, o := range s.Obstacles {
		switch {
		case len(o.Polygon) > 0 && o.Circle != nil:
			return fmt.Errorf("%w: obstacle %d is both polygon and circle", ErrInvalidScenario, i)
		case o.Circle != nil:
			if o.Circle.Radius <= 0 {
				return fmt.Errorf("%w: obstacle %d has radius %v", ErrInvalidScenario, i, o.Circle.Radius)
			}
		case len(o.Polygon) < 3:
			return fmt.Errorf("%w: obstacle %d needs at least 3 vertices", ErrInvalidScenario, i)
		}
	}
	return nil
}

func (s *Scenario) Layout() Layout {
	return Layout{
		Field: geom.Rect{
			Min: geom.Coord{X: s.Field.Min.X, Y: s.Field.Min.Y},
			Max: geom.Coord{X: s.Field.Max.X, Y: s.Field.Max.Y},
		},
		CornerSize: s.CornerSize,
	}
}

func (s *Scenario) ObstacleShapes() []geometry.Obstacle {
	obstacles := make([]geometry.Obstacle, 0, len(s.Obstacles))
	for _, o := range s.Obstacles {
		if o.Circle != nil {
			obstacles = append(obstacles, geometry.NewCircle(o.Circle.Center.Position(), o.Circle.Radius))
			continue
		}
		vertices := make([]geometry.Position, len(o.Polygon))
		for i, v := range o.Polygon {
			vertices[i] = v.Position()
		}
		obstacles = append(obstacles, geometry.NewPolygon(vertices...))
	}
	return obstacles
}

// Physics builds the world model described by the scenario
func (s *Scenario) Physics() *Physics {
	return NewPhysics(s.Layout(), s.ObstacleShapes()...)
}

// AddRects appends rectangular obstacles, e.g. from GenerateObstacles
func (s *Scenario) AddRects(rects []*geom.Rect) {
	for _, r := range rects {
		s.Obstacles = append(s.Obstacles, ObstacleSpec{Polygon: []Point{
			{X: r.Min.X, Y: r.Min.Y},
			{X: r.Max.X, Y: r.Min.Y},
			{X: r.Max.X, Y: r.Max.Y},
			{X: r.Min.X, Y: r.Max.Y},
		}})
	}
}

func (s *Scenario) Save(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// ScenarioSchema returns the JSON schema of scenario files
func ScenarioSchema() ([]byte, error) {
	schema := jsonschema.Reflect(&Scenario{})
	return json.MarshalIndent(schema, "", "  ")
}
