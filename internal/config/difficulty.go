package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Difficulty names one of the selectable presets.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// ErrUnknownDifficulty is returned for a difficulty key outside the table.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Profile holds the tunables bound for one playthrough.
// Speeds are in logical pixels per frame.
type Profile struct {
	PlayerSpeed    float64 `yaml:"player_speed"`
	SupplySpeedMin float64 `yaml:"supply_speed_min"`
	SupplySpeedMax float64 `yaml:"supply_speed_max"`
	PlanetSpeedMin float64 `yaml:"planet_speed_min"`
	PlanetSpeedMax float64 `yaml:"planet_speed_max"`
	PlanetCount    int     `yaml:"planet_count"`
}

// Validate reports the first inconsistency in the profile.
func (p Profile) Validate() error {
	switch {
	case p.PlayerSpeed <= 0:
		return fmt.Errorf("player_speed must be positive, got %v", p.PlayerSpeed)
	case p.SupplySpeedMin <= 0 || p.SupplySpeedMax < p.SupplySpeedMin:
		return fmt.Errorf("supply speed range [%v,%v] is invalid", p.SupplySpeedMin, p.SupplySpeedMax)
	case p.PlanetSpeedMin <= 0 || p.PlanetSpeedMax < p.PlanetSpeedMin:
		return fmt.Errorf("planet speed range [%v,%v] is invalid", p.PlanetSpeedMin, p.PlanetSpeedMax)
	case p.PlanetCount < 0:
		return fmt.Errorf("planet_count must not be negative, got %d", p.PlanetCount)
	}
	return nil
}

// Profiles maps each difficulty to its profile.
type Profiles map[Difficulty]Profile

// DefaultProfiles returns the built-in difficulty table.
func DefaultProfiles() Profiles {
	return Profiles{
		Easy:   {PlayerSpeed: 6, SupplySpeedMin: 2, SupplySpeedMax: 5, PlanetSpeedMin: 2, PlanetSpeedMax: 4, PlanetCount: 1},
		Normal: {PlayerSpeed: 9, SupplySpeedMin: 4, SupplySpeedMax: 8, PlanetSpeedMin: 3, PlanetSpeedMax: 7, PlanetCount: 3},
		Hard:   {PlayerSpeed: 12, SupplySpeedMin: 6, SupplySpeedMax: 12, PlanetSpeedMin: 6, PlanetSpeedMax: 10, PlanetCount: 5},
	}
}

// Lookup returns the profile for d.
func (ps Profiles) Lookup(d Difficulty) (Profile, error) {
	p, ok := ps[d]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return p, nil
}

// Names returns the difficulty keys in a stable order.
func (ps Profiles) Names() []Difficulty {
	names := make([]Difficulty, 0, len(ps))
	for d := range ps {
		names = append(names, d)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LoadProfiles reads a YAML file of profile overrides and applies it on top
// of the built-in table. Only the fields present in the file change, e.g.
//
//	hard:
//	  planet_count: 7
//
// An empty path returns the defaults.
func LoadProfiles(path string) (Profiles, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read difficulty file: %w", err)
	}
	return ParseProfiles(data)
}

// ParseProfiles applies YAML overrides in data to the built-in table.
func ParseProfiles(data []byte) (Profiles, error) {
	profiles := DefaultProfiles()

	var overrides map[Difficulty]yaml.Node
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse difficulty file: %w", err)
	}

	for d, node := range overrides {
		p, ok := profiles[d]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
		}
		// Decoding into the existing value keeps fields the file omits.
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("parse %s profile: %w", d, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s profile: %w", d, err)
		}
		profiles[d] = p
	}
	return profiles, nil
}
