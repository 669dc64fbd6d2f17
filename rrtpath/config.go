package rrtpath

import (
	"fmt"

	"github.com/skelterjohn/geom"
)

const (
	// goalTolerance is how close a node has to get to count as reaching the goal
	goalTolerance = 0.001
	// stepGrowth widens the step after every rejected extension
	stepGrowth = 0.05
	// cutTolerance ends the corner cutting binary search
	cutTolerance = 0.01
)

type SamplerKind string

const (
	SamplerUniform SamplerKind = "uniform"
	SamplerHalton  SamplerKind = "halton"
)

// Config holds the planner parameters
type Config struct {
	StepSize         float64
	GoalBias         float64
	Iterations       int
	PostProcessSteps int
	UseGameField     bool
	// CheckEdges also rejects extensions whose edge to the parent crosses an
	// obstacle. With CheckEdges off only the new point itself is tested.
	CheckEdges bool
	// BoundaryMargin moves field and corner corrections off the boundary
	// towards the field center
	BoundaryMargin float64
	SampleArea     geom.Rect
	Sampler        SamplerKind
	Seed           int64
	Debug          bool
}

func DefaultConfig() Config {
	return Config{
		StepSize:         0.05,
		GoalBias:         0.2,
		Iterations:       2000,
		PostProcessSteps: 3,
		UseGameField:     true,
		CheckEdges:       true,
		BoundaryMargin:   1e-4,
		SampleArea:       DefaultSampleArea,
		Sampler:          SamplerUniform,
	}
}

func (c Config) Validate() error {
	if c.StepSize <= 0 {
		return fmt.Errorf("rrtpath: step size must be positive, got %v", c.StepSize)
	}
	if c.GoalBias < 0 || c.GoalBias > 1 {
		return fmt.Errorf("rrtpath: goal bias must be in [0, 1], got %v", c.GoalBias)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("rrtpath: iterations must be at least 1, got %d", c.Iterations)
	}
	if c.PostProcessSteps < 0 {
		return fmt.Errorf("rrtpath: post-processing steps must not be negative, got %d", c.PostProcessSteps)
	}
	if c.BoundaryMargin < 0 {
		return fmt.Errorf("rrtpath: boundary margin must not be negative, got %v", c.BoundaryMargin)
	}
	if c.SampleArea.Width() <= 0 || c.SampleArea.Height() <= 0 {
		return fmt.Errorf("rrtpath: empty sample area %v", c.SampleArea)
	}
	switch c.Sampler {
	case SamplerUniform, SamplerHalton, "":
	default:
		return fmt.Errorf("rrtpath: unknown sampler %q", c.Sampler)
	}
	return nil
}
