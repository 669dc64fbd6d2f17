// Plan paths across a playing field and report how the planner performs
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brychanrobot/rrt-path/geometry"
	"github.com/brychanrobot/rrt-path/render"
	"github.com/brychanrobot/rrt-path/rrtpath"
	"github.com/brychanrobot/rrt-path/world"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type run struct {
	path     *rrtpath.Path
	points   []geometry.TargetPoint
	duration time.Duration
}

func loadScenario(filename string, numObstacles int, rng *rand.Rand) (*world.Scenario, error) {
	if filename != "" {
		return world.LoadScenarioFile(filename)
	}

	scenario := world.DefaultScenario()
	layout := scenario.Layout()
	rects := world.GenerateObstacles(rng, layout.Field, numObstacles, 0.05, 0.3,
		scenario.Start.Position(), scenario.Goal.Position())
	scenario.AddRects(rects)

	return scenario, scenario.Validate()
}

func plan(physics *world.Physics, cfg rrtpath.Config, id int, locator rrtpath.Locator, goal geometry.Position) (*run, error) {
	path := rrtpath.NewPath(physics, id, locator, cfg)
	if err := path.InitializePath(); err != nil {
		return nil, err
	}

	started := time.Now()
	points, err := path.Compute(geometry.NewTargetPoint(goal))
	if err != nil {
		return nil, err
	}

	return &run{path: path, points: points, duration: time.Since(started)}, nil
}

func report(start geometry.Position, runs []*run) {
	if len(runs) == 0 {
		return
	}
	durations := make([]float64, len(runs))
	lengths := make([]float64, len(runs))
	waypoints := make([]float64, len(runs))
	completed := 0
	for i, r := range runs {
		durations[i] = milliseconds(r.duration)
		lengths[i] = pathLength(start, r.points)
		waypoints[i] = float64(len(r.points))
		if r.path.Completed() {
			completed++
		}
	}

	log.Printf("runs: %d, reached goal: %d", len(runs), completed)
	if len(runs) < 2 {
		log.Printf("length: %.3f, time: %.2fms", lengths[0], durations[0])
	} else {
		meanLength, stdLength := stat.MeanStdDev(lengths, nil)
		meanDuration, stdDuration := stat.MeanStdDev(durations, nil)
		log.Printf("length: mean %.3f, std %.3f, min %.3f, max %.3f",
			meanLength, stdLength, floats.Min(lengths), floats.Max(lengths))
		log.Printf("time: mean %.2fms, std %.2fms, max %.2fms",
			meanDuration, stdDuration, floats.Max(durations))
	}
	log.Printf("waypoints: mean %.1f", stat.Mean(waypoints, nil))
}

// simulate drives a follower along the plan and replans every replanEvery ticks
func simulate(physics *world.Physics, cfg rrtpath.Config, start, goal geometry.Position, replanEvery, maxTicks int) error {
	follower := rrtpath.NewFollower(start, rrtpath.DefaultMaxTravel)
	path := rrtpath.NewPath(physics, 0, follower, cfg)
	if err := path.InitializePath(); err != nil {
		return err
	}

	replans := 0
	for tick := 0; tick < maxTicks; tick++ {
		if tick%replanEvery == 0 {
			points, err := path.Compute(geometry.NewTargetPoint(goal))
			if err != nil {
				return err
			}
			follower.Follow(points)
			replans++
			if len(points) > 0 {
				log.Printf("tick %d: replanned %d waypoints, heading %.2f", tick, len(points),
					angleBetweenPoints(follower.Position(), points[0].Location))
			}
		}

		if follower.Step() && follower.Position().Distance(path.Goal()) < 1e-9 {
			log.Printf("reached %v after %d ticks and %d plans", path.Goal(), tick+1, replans)
			return nil
		}
		if physics.Blocked(follower.Position()) {
			return fmt.Errorf("follower entered a blocked area at %v", follower.Position())
		}
	}

	log.Printf("gave up after %d ticks at %v", maxTicks, follower.Position())
	return nil
}

func main() {
	scenarioFile := flag.String("scenario", "", "loads the field layout from a JSON scenario file")
	numObstacles := flag.Int("obstacles", 15, "sets the number of obstacles generated when no scenario is given")
	seed := flag.Int64("seed", 0, "seeds obstacle generation and sampling. 0 uses the clock")
	runs := flag.Int("runs", 1, "plans this many times with consecutive seeds")
	iterations := flag.Int("i", rrtpath.DefaultConfig().Iterations, "sets the maximum number of iterations")
	stepSize := flag.Float64("step", rrtpath.DefaultConfig().StepSize, "sets the initial step size")
	goalBias := flag.Float64("bias", rrtpath.DefaultConfig().GoalBias, "sets the probability of sampling the goal")
	postProcess := flag.Int("pp", rrtpath.DefaultConfig().PostProcessSteps, "sets the number of simplify and cut corner rounds")
	useHalton := flag.Bool("halton", false, "samples with a halton sequence instead of uniformly")
	out := flag.String("out", "", "renders the field, the tree and the last path to this image")
	width := flag.Int("width", 700, "sets the width of rendered images in pixels")
	clearance := flag.String("clearance", "", "renders the clearance map to this image")
	printSchema := flag.Bool("schema", false, "prints the JSON schema of scenario files and exits")
	saveScenario := flag.String("save", "", "writes the scenario used to this file")
	simulateTicks := flag.Int("simulate", 0, "follows the plan for up to this many ticks, replanning along the way")
	replanEvery := flag.Int("replan", 10, "sets the ticks between replans when simulating")
	debug := flag.Bool("debug", false, "logs every planning step")
	flag.Parse()

	if *printSchema {
		schema, err := world.ScenarioSchema()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(schema))
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	scenario, err := loadScenario(*scenarioFile, *numObstacles, rng)
	if err != nil {
		log.Fatal(err)
	}
	if *saveScenario != "" {
		f, err := os.Create(*saveScenario)
		if err != nil {
			log.Fatal(err)
		}
		err = scenario.Save(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	physics := scenario.Physics()
	start, goal := scenario.Start.Position(), scenario.Goal.Position()
	log.Printf("field %v, %d obstacles, start %v, goal %v, seed %d",
		physics.Layout().Field, len(physics.Obstacles()), start, goal, *seed)

	cfg := rrtpath.DefaultConfig()
	cfg.Iterations = *iterations
	cfg.StepSize = *stepSize
	cfg.GoalBias = *goalBias
	cfg.PostProcessSteps = *postProcess
	cfg.SampleArea = physics.Layout().Field
	cfg.Debug = *debug
	if *useHalton {
		cfg.Sampler = rrtpath.SamplerHalton
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *runs < 1 {
		*runs = 1
	}
	locator := rrtpath.LocatorFunc(func() geometry.Position { return start })
	results := make([]*run, 0, *runs)
	for i := 0; i < *runs; i++ {
		cfg.Seed = *seed + int64(i)
		r, err := plan(physics, cfg, i, locator, goal)
		if err != nil {
			log.Fatal(err)
		}
		results = append(results, r)
	}
	report(start, results)

	last := results[len(results)-1]
	if *out != "" {
		scene := render.NewScene(physics.Layout().Field, *width)
		scene.DrawWorld(physics)
		scene.DrawTree(last.path.Tree(), 250)
		scene.DrawPath(start, last.points, render.PathColor, 3)
		scene.DrawPoint(start, 6, render.StartColor)
		scene.DrawPoint(last.path.Goal(), 6, render.GoalColor)
		if err := scene.Save(*out); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *out)
	}

	if *clearance != "" {
		field := physics.Layout().Field
		cols := *width
		rows := int(float64(cols) * field.Height() / field.Width())
		if rows < 1 {
			rows = 1
		}
		if err := render.SaveClearance(render.ClearanceMap(physics, rows, cols), *clearance); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *clearance)
	}

	if *simulateTicks > 0 {
		if *replanEvery < 1 {
			*replanEvery = 1
		}
		if err := simulate(physics, cfg, start, goal, *replanEvery, *simulateTicks); err != nil {
			log.Fatal(err)
		}
	}
}
