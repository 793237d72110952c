package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schedlab/tsngen/cycle"
	"github.com/schedlab/tsngen/id"
)

// PortConfig describes the cycle to generate for one physical port.
type PortConfig struct {
	Name                string  `yaml:"name"`
	UpperBound          float64 `yaml:"upperBound"`
	LowerBound          float64 `yaml:"lowerBound"`
	FirstStart          float64 `yaml:"firstStart"`
	MaximumSlotDuration float64 `yaml:"maximumSlotDuration"`
	Priorities          int     `yaml:"priorities"`
	SlotBudget          int     `yaml:"slotBudget"`
	Arrangement         string  `yaml:"arrangement"`
	WrapTransmission    bool    `yaml:"wrapTransmission"`
}

// Config is the top-level YAML configuration.
type Config struct {
	Ports []PortConfig `yaml:"ports"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(cfg.Ports) == 0 {
		return cfg, fmt.Errorf("%s defines no ports", path)
	}

	for i := range cfg.Ports {
		applyPortDefaults(&cfg.Ports[i])
	}

	return cfg, nil
}

func applyPortDefaults(p *PortConfig) {
	if p.Priorities == 0 {
		p.Priorities = 8
	}

	if p.SlotBudget == 0 {
		p.SlotBudget = 1
	}

	if p.Arrangement == "" {
		p.Arrangement = cycle.AggressiveDescent.String()
	}
}

// buildCycles creates one cycle per configured port. All cycles share one
// id source so their symbolic names stay unique within a session.
func buildCycles(cfg Config) ([]*cycle.Cycle, error) {
	ids := id.NewSource()

	cycles := make([]*cycle.Cycle, 0, len(cfg.Ports))
	for _, p := range cfg.Ports {
		mode, ok := cycle.ParseArrangementMode(p.Arrangement)
		if !ok {
			return nil, fmt.Errorf("port %s: unknown arrangement mode %q",
				p.Name, p.Arrangement)
		}

		c := cycle.MakeBuilder().
			WithIDSource(ids).
			WithBounds(p.UpperBound, p.LowerBound).
			WithFirstCycleStart(p.FirstStart).
			WithMaximumSlotDuration(p.MaximumSlotDuration).
			WithPortName(p.Name).
			WithPriorityLevels(p.Priorities).
			WithSlotBudget(p.SlotBudget).
			WithArrangement(mode).
			Build()

		if p.WrapTransmission {
			c.UseTransmissionWrapping()
		}

		cycles = append(cycles, c)
	}

	return cycles, nil
}

// databasePath resolves the recording path from the flag, falling back to
// the TSNGEN_DB environment variable.
func databasePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return os.Getenv("TSNGEN_DB")
}
