// Package workload generates reproducible synthetic scenarios for the
// engines. It is a boundary collaborator: the engines never call it.
package workload

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/memsim/sim"
)

// Bounds limits how many values are generated and their range (inclusive).
type Bounds struct {
	MinCount int
	MaxCount int
	MinValue int
	MaxValue int
}

var (
	// RegionBounds: 1–12 regions of capacity 10–150.
	RegionBounds = Bounds{MinCount: 1, MaxCount: 12, MinValue: 10, MaxValue: 150}
	// RequestBounds: 1–16 requests of size 5–130.
	RequestBounds = Bounds{MinCount: 1, MaxCount: 16, MinValue: 5, MaxValue: 130}
	// ReferenceBounds: 1–64 references over pages 0–9.
	ReferenceBounds = Bounds{MinCount: 1, MaxCount: 64, MinValue: 0, MaxValue: 9}
	// FrameBounds: 1–8 slots.
	FrameBounds = Bounds{MinCount: 1, MaxCount: 8}
)

// GenerateConfig selects what to generate. Counts are clamped into their
// Bounds. Zero Regions skips the contiguous section; zero References skips
// the paging section.
type GenerateConfig struct {
	Seed        int64
	Regions     int
	Requests    int
	References  int
	Frames      int
	Placement   string
	Replacement string
}

// Clamp limits n to [b.MinCount, b.MaxCount].
func (b Bounds) Clamp(n int) int {
	return max(b.MinCount, min(b.MaxCount, n))
}

// Values draws n values uniformly from [b.MinValue, b.MaxValue], with n clamped first.
func (b Bounds) Values(rng *rand.Rand, n int) []int {
	n = b.Clamp(n)
	out := make([]int, n)
	for i := range out {
		out[i] = b.MinValue + rng.Intn(b.MaxValue-b.MinValue+1)
	}
	return out
}

// Generate builds a scenario from cfg. Deterministic given the same config.
func Generate(cfg GenerateConfig) (*sim.Scenario, error) {
	rng := NewPartitionedRNG(cfg.Seed)
	sc := &sim.Scenario{}

	if cfg.Regions > 0 {
		sc.Contiguous = &sim.ContiguousConfig{
			Regions:  RegionBounds.Values(rng.ForSubsystem(SubsystemRegions), cfg.Regions),
			Requests: RequestBounds.Values(rng.ForSubsystem(SubsystemRequests), cfg.Requests),
			Policy:   cfg.Placement,
		}
	}
	if cfg.References > 0 {
		sc.Paging = &sim.PagingConfig{
			References: ReferenceBounds.Values(rng.ForSubsystem(SubsystemReferences), cfg.References),
			Frames:     FrameBounds.Clamp(cfg.Frames),
			Policy:     cfg.Replacement,
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	logrus.Debugf("generated scenario with seed %d", cfg.Seed)
	return sc, nil
}
