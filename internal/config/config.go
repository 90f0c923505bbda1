// Package config loads solver run files.
//
// A run file is YAML:
//
//	seed: 42
//	log_level: info
//	log_format: text
//	solver:
//	  population: 150
//	  generations: 500
//	  crossover_rate: 0.85
//
// Fields left out keep their defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"memeticFlowShop/internal/ga"
)

// Solver mirrors ga.Config with YAML names.
type Solver struct {
	Population      int     `yaml:"population"`
	Generations     int     `yaml:"generations"`
	Elite           int     `yaml:"elite"`
	TournamentSize  int     `yaml:"tournament_size"`
	CrossoverRate   float64 `yaml:"crossover_rate"`
	MutationRate    float64 `yaml:"mutation_rate"`
	LocalSearchRate float64 `yaml:"local_search_rate"`
	Workers         int     `yaml:"workers"`
}

// File models a run file.
type File struct {
	Seed      int64  `yaml:"seed"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Solver    Solver `yaml:"solver"`
}

// Default returns the built-in settings.
func Default() File {
	d := ga.DefaultConfig()
	return File{
		Seed:      1,
		LogLevel:  "info",
		LogFormat: "text",
		Solver: Solver{
			Population:      d.Population,
			Generations:     d.Generations,
			Elite:           d.Elite,
			TournamentSize:  d.TournamentSize,
			CrossoverRate:   d.CrossoverRate,
			MutationRate:    d.MutationRate,
			LocalSearchRate: d.LocalSearchRate,
			Workers:         d.Workers,
		},
	}
}

// Parse decodes a run file on top of the defaults. The solver section is
// not validated here: command-line flags may still override it, so callers
// validate the merged ga.Config (see Validate).
func Parse(data []byte) (File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return f, nil
}

// Validate checks the solver section as written in the file.
func (f File) Validate() error {
	return f.GAConfig().Validate()
}

// Load reads and parses the run file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// GAConfig converts the solver section.
func (f File) GAConfig() ga.Config {
	return ga.Config{
		Population:      f.Solver.Population,
		Generations:     f.Solver.Generations,
		Elite:           f.Solver.Elite,
		TournamentSize:  f.Solver.TournamentSize,
		CrossoverRate:   f.Solver.CrossoverRate,
		MutationRate:    f.Solver.MutationRate,
		LocalSearchRate: f.Solver.LocalSearchRate,
		Workers:         f.Solver.Workers,
	}
}

// Marshal renders f as YAML.
func (f File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
