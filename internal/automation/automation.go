// Package automation runs scripted scenarios and parameter sweeps headless.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/arena/internal/config"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/experiment"
	"github.com/san-kum/arena/internal/logging"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single headless run. Zero values keep the preset's.
type ScenarioStep struct {
	Preset   string                 `yaml:"preset"`
	Frames   int                    `yaml:"frames"`
	Bodies   int                    `yaml:"bodies"`
	Gestures []config.GestureConfig `yaml:"gestures"`
	SaveAs   string                 `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the step against its preset ("default" when empty).
func (s ScenarioStep) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "default"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if s.Bodies > 0 {
		cfg.Bodies.Count = s.Bodies
	}
	if s.Gestures != nil {
		cfg.Gestures = s.Gestures
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Results of the steps that ran
// are returned along with the first error.
func RunScenario(ctx context.Context, scenario *Scenario, l *log.Logger) ([]*experiment.Result, error) {
	if l == nil {
		l = logging.Discard()
	}
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		l.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := experiment.New(cfg, dynamo.NopSurface{}, l)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// Sweepable parameters.
var SweepParams = []string{"radius", "gap", "impulse_scale", "bodies"}

// ParameterSweep runs Base once per evenly spaced value of Param.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Bodies     int
	Contacts   float64
	WallHits   float64
	Energy     float64
	Drift      float64
}

func apply(cfg *config.Config, param string, v float64) error {
	switch param {
	case "radius":
		cfg.Bodies.Radius = v
	case "gap":
		cfg.Bodies.Gap = v
	case "impulse_scale":
		cfg.ImpulseScale = v
	case "bodies":
		cfg.Bodies.Count = int(v)
	default:
		return fmt.Errorf("%w: unknown sweep parameter %q", dynamo.ErrParameterBounds, param)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep steps %d", dynamo.ErrParameterBounds, sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := *sweep.Base
		if err := apply(&cfg, sweep.Param, paramVal); err != nil {
			return nil, err
		}
		exp, err := experiment.New(&cfg, dynamo.NopSurface{}, nil, experiment.Live())
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, paramVal, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Bodies:     exp.Scheduler().World().Len(),
			Contacts:   result.Metrics["contacts"],
			WallHits:   result.Metrics["wall_hits"],
			Energy:     result.Metrics["kinetic_energy"],
			Drift:      result.Metrics["energy_drift"],
		})
	}

	return results, nil
}
