package duel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadoutFile represents the top-level YAML structure.
type LoadoutFile struct {
	Profiles []ProfileEntry `yaml:"profiles"`
	Pools    []PoolEntry    `yaml:"pools"`
}

// ProfileEntry is a named attribute distribution in the YAML file.
type ProfileEntry struct {
	Name       string       `yaml:"name"`
	Attributes AttributeSet `yaml:"attributes"`
}

// PoolEntry is a named draft pool in the YAML file.
type PoolEntry struct {
	Name       string   `yaml:"name"`
	Techniques []string `yaml:"techniques"`
}

// ParseLoadoutFile parses a YAML loadout file, validating every profile
// and pool it names.
func ParseLoadoutFile(path string) (*LoadoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseLoadoutYAML(data)
}

func parseLoadoutYAML(data []byte) (*LoadoutFile, error) {
	var lf LoadoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse loadout YAML: %w", err)
	}
	for _, p := range lf.Profiles {
		if err := p.Attributes.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	for _, p := range lf.Pools {
		if err := validatePool(p.Techniques); err != nil {
			return nil, fmt.Errorf("pool %q: %w", p.Name, err)
		}
	}
	return &lf, nil
}

// Profile returns the named attribute profile.
func (lf *LoadoutFile) Profile(name string) (AttributeSet, error) {
	for _, p := range lf.Profiles {
		if p.Name == name {
			return p.Attributes, nil
		}
	}
	return AttributeSet{}, fmt.Errorf("profile %q not found (have %d profiles)", name, len(lf.Profiles))
}

// Pool returns the named draft pool, or the standard pool for "".
func (lf *LoadoutFile) Pool(name string) ([]string, error) {
	if name == "" {
		return DefaultPool(), nil
	}
	for _, p := range lf.Pools {
		if p.Name == name {
			return append([]string(nil), p.Techniques...), nil
		}
	}
	return nil, fmt.Errorf("pool %q not found (have %d pools)", name, len(lf.Pools))
}
