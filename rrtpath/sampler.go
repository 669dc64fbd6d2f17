package rrtpath

import (
	"math/rand"

	halton "github.com/brychanrobot/go-halton"
	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/skelterjohn/geom"
)

// DefaultSampleArea covers the nominal extents of the playing field
var DefaultSampleArea = geom.Rect{
	Min: geom.Coord{X: -1.425, Y: -0.880},
	Max: geom.Coord{X: 1.385, Y: 0.882},
}

// Sampler draws random states for the tree to grow towards
type Sampler interface {
	Sample() geometry.Position
}

// UniformSampler samples uniformly inside an area
type UniformSampler struct {
	rng  *rand.Rand
	area geom.Rect
}

func NewUniformSampler(rng *rand.Rand, area geom.Rect) *UniformSampler {
	return &UniformSampler{rng: rng, area: area}
}

func (s *UniformSampler) Sample() geometry.Position {
	x := s.area.Min.X + s.rng.Float64()*s.area.Width()
	y := s.area.Min.Y + s.rng.Float64()*s.area.Height()
	return geometry.Vec(x, y)
}

// HaltonSampler walks a 2D Halton sequence, which covers the area more evenly
// than uniform noise
type HaltonSampler struct {
	haltonX *halton.HaltonSampler
	haltonY *halton.HaltonSampler
	area    geom.Rect
}

func NewHaltonSampler(area geom.Rect) *HaltonSampler {
	return &HaltonSampler{
		haltonX: halton.NewHaltonSampler(19),
		haltonY: halton.NewHaltonSampler(23),
		area:    area}
}

func (s *HaltonSampler) Sample() geometry.Position {
	x := s.area.Min.X + s.haltonX.Next()*s.area.Width()
	y := s.area.Min.Y + s.haltonY.Next()*s.area.Height()
	return geometry.Vec(x, y)
}
