package sim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ValidPlacementPolicies is the set of recognized contiguous placement policy names.
// Empty string defaults to first-fit. Shared by Scenario.Validate and alloc.ParsePlacementPolicy.
var ValidPlacementPolicies = map[string]bool{"": true, "first-fit": true, "best-fit": true, "worst-fit": true}

// ValidReplacementPolicies is the set of recognized page replacement policy names.
// Empty string defaults to fifo.
var ValidReplacementPolicies = map[string]bool{"": true, "fifo": true, "lru": true, "optimal": true}

// IsValidPlacementPolicy returns true if name is a recognized placement policy.
func IsValidPlacementPolicy(name string) bool {
	return ValidPlacementPolicies[name]
}

// IsValidReplacementPolicy returns true if name is a recognized replacement policy.
func IsValidReplacementPolicy(name string) bool {
	return ValidReplacementPolicies[name]
}

// Scenario is the on-disk description of one or both simulations.
// Nil sections mean "not set in the file".
type Scenario struct {
	Contiguous *ContiguousConfig `yaml:"contiguous,omitempty" toml:"contiguous,omitempty"`
	Paging     *PagingConfig     `yaml:"paging,omitempty" toml:"paging,omitempty"`
}

// ContiguousConfig holds the inputs of a contiguous allocation run.
type ContiguousConfig struct {
	Regions  []int  `yaml:"regions" toml:"regions"`
	Requests []int  `yaml:"requests" toml:"requests"`
	Policy   string `yaml:"policy,omitempty" toml:"policy,omitempty"`
}

// PagingConfig holds the inputs of a paging replay.
type PagingConfig struct {
	References []int  `yaml:"references" toml:"references"`
	Frames     int    `yaml:"frames" toml:"frames"`
	Policy     string `yaml:"policy,omitempty" toml:"policy,omitempty"`
}

// LoadScenario reads a scenario file. Files ending in .toml are decoded as
// TOML, everything else as YAML. Both decoders reject unknown fields so
// typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
		}
	}
	return &sc, nil
}

// Validate checks policy names and value ranges of every section present.
func (s *Scenario) Validate() error {
	if s.Contiguous != nil {
		if err := s.Contiguous.Validate(); err != nil {
			return err
		}
	}
	if s.Paging != nil {
		if err := s.Paging.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a contiguous section.
func (c *ContiguousConfig) Validate() error {
	if !IsValidPlacementPolicy(c.Policy) {
		return &ValidationError{Field: "contiguous.policy", Index: -1, Value: c.Policy, Reason: "unknown placement policy"}
	}
	if err := ValidatePositive("regions", c.Regions); err != nil {
		return err
	}
	return ValidatePositive("requests", c.Requests)
}

// Validate checks a paging section.
func (p *PagingConfig) Validate() error {
	if !IsValidReplacementPolicy(p.Policy) {
		return &ValidationError{Field: "paging.policy", Index: -1, Value: p.Policy, Reason: "unknown replacement policy"}
	}
	return ValidateFrames(p.Frames)
}

var contiguousPresets = map[string]ContiguousConfig{
	"default": {Regions: []int{80, 30, 60, 120, 20}, Requests: []int{15, 20, 90, 10, 35, 50}},
}

var pagingPresets = map[string]PagingConfig{
	"small":  {References: []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2}, Frames: 3},
	"medium": {References: []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}, Frames: 4},
}

// ContiguousPreset returns a copy of the named contiguous preset.
func ContiguousPreset(name string) (ContiguousConfig, bool) {
	p, ok := contiguousPresets[name]
	if !ok {
		return ContiguousConfig{}, false
	}
	return ContiguousConfig{
		Regions:  append([]int(nil), p.Regions...),
		Requests: append([]int(nil), p.Requests...),
		Policy:   p.Policy,
	}, true
}

// PagingPreset returns a copy of the named paging preset.
func PagingPreset(name string) (PagingConfig, bool) {
	p, ok := pagingPresets[name]
	if !ok {
		return PagingConfig{}, false
	}
	return PagingConfig{
		References: append([]int(nil), p.References...),
		Frames:     p.Frames,
		Policy:     p.Policy,
	}, true
}
