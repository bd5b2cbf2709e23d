package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/icvm/intcode"
)

// Config describes a pipeline run.
//
//	program: amplifier.txt   # Program text, relative to the config file.
//	phases: [9, 8, 7, 6, 5]  # One machine per phase.
//	feedback: true           # Route the last machine back to the first.
//	signal: 0                # Initial signal to the first machine.
//	search: true             # Try every ordering of phases.
type Config struct {
	Program  string         `yaml:"program"`
	Phases   []intcode.Cell `yaml:"phases"`
	Feedback bool           `yaml:"feedback"`
	Signal   intcode.Cell   `yaml:"signal"`
	Search   bool           `yaml:"search"`
}

// LoadConfig reads and validates a YAML pipeline configuration.
func LoadConfig(r io.Reader) (cfg *Config, err error) {
	cfg = &Config{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() (err error) {
	if len(cfg.Program) == 0 {
		return ErrConfigProgram
	}

	if len(cfg.Phases) == 0 {
		return ErrConfigPhases
	}

	if cfg.Search {
		seen := map[intcode.Cell]bool{}
		for _, phase := range cfg.Phases {
			if seen[phase] {
				return ErrConfigDuplicate
			}
			seen[phase] = true
		}
	}

	return
}

// LoadProgram reads the configured program. A relative program path is
// taken relative to dir.
func (cfg *Config) LoadProgram(dir string) (prog intcode.Program, err error) {
	path := cfg.Program
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return intcode.ParseProgram(inf)
}

// Run executes the configured pipeline, or phase search, over program.
func (cfg *Config) Run(ctx context.Context, program intcode.Program, verbose bool) (best Best, err error) {
	if cfg.Search {
		return Search(ctx, program, cfg.Phases, cfg.Feedback, cfg.Signal)
	}

	p := New(program, cfg.Phases)
	p.Verbose = verbose
	p.Feedback = cfg.Feedback
	p.Reset()

	signal, err := p.RunContext(ctx, cfg.Signal)
	if err != nil {
		return
	}

	best = Best{Signal: signal, Phases: cfg.Phases}
	return
}
