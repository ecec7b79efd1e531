package config

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// tuningDoc mirrors the globals a tuning file may override. Sections are
// decoded on top of copies of the current values so omitted keys keep their
// defaults.
type tuningDoc struct {
	Suspicion  SuspicionConfig      `yaml:"suspicion"`
	Perception PerceptionConfig     `yaml:"perception"`
	Bus        BusConfig            `yaml:"bus"`
	Sim        SimConfig            `yaml:"sim"`
	Player     PlayerConfig         `yaml:"player"`
	Level      LevelConfig          `yaml:"level"`
	Nav        NavConfig            `yaml:"nav"`
	Agents     map[string]yaml.Node `yaml:"agents"`
}

// LoadTuning reads a YAML overlay from path and applies it to the globals.
func LoadTuning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := ApplyTuning(data); err != nil {
		return fmt.Errorf("tuning %s: %w", path, err)
	}
	return nil
}

// ApplyTuning applies a YAML overlay. Nothing is changed if the document
// fails to decode.
func ApplyTuning(data []byte) error {
	doc := tuningDoc{
		Suspicion:  Suspicion,
		Perception: Perception,
		Bus:        Bus,
		Sim:        Sim,
		Player:     Player,
		Level:      Level,
		Nav:        Nav,
	}
	doc.Bus.Weights = maps.Clone(Bus.Weights)
	doc.Bus.RequiresSight = maps.Clone(Bus.RequiresSight)

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	types := maps.Clone(Agents.Types)
	for name, node := range doc.Agents {
		t, ok := types[name]
		if !ok {
			// New types start from the default type
			t = types[Agents.DefaultType]
			t.Name = name
		}
		if err := node.Decode(&t); err != nil {
			return fmt.Errorf("agent type %s: %w", name, err)
		}
		types[name] = t
	}

	Suspicion = doc.Suspicion
	Perception = doc.Perception
	Bus = doc.Bus
	Sim = doc.Sim
	Player = doc.Player
	Level = doc.Level
	Nav = doc.Nav
	Agents.Types = types
	return nil
}
