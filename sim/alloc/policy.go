package alloc

import (
	"fmt"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

// PlacementPolicy names how a region is chosen from the candidate set.
type PlacementPolicy string

const (
	// FirstFit chooses the lowest-index candidate.
	FirstFit PlacementPolicy = "first-fit"
	// BestFit chooses the candidate with the smallest leftover.
	BestFit PlacementPolicy = "best-fit"
	// WorstFit chooses the candidate with the largest leftover.
	WorstFit PlacementPolicy = "worst-fit"
)

// Policies lists every placement policy in display order.
func Policies() []PlacementPolicy {
	return []PlacementPolicy{FirstFit, BestFit, WorstFit}
}

// selectFunc returns the position of the chosen entry in a non-empty,
// region-ordered candidate list.
type selectFunc func(candidates []trace.Candidate) int

var selectors = map[PlacementPolicy]selectFunc{
	FirstFit: selectFirst,
	BestFit:  selectBest,
	WorstFit: selectWorst,
}

func selectFirst(_ []trace.Candidate) int {
	return 0
}

// selectBest keeps the first minimum, so ties go to the lowest region index.
func selectBest(candidates []trace.Candidate) int {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Leftover < candidates[best].Leftover {
			best = i
		}
	}
	return best
}

// selectWorst keeps the first maximum, so ties go to the lowest region index.
func selectWorst(candidates []trace.Candidate) int {
	worst := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Leftover > candidates[worst].Leftover {
			worst = i
		}
	}
	return worst
}

// ParsePlacementPolicy maps a policy name to its PlacementPolicy.
// Empty string defaults to FirstFit (for CLI flag default compatibility).
func ParsePlacementPolicy(name string) (PlacementPolicy, error) {
	if !sim.IsValidPlacementPolicy(name) {
		return "", &sim.ValidationError{Field: "policy", Index: -1, Value: name, Reason: "unknown placement policy"}
	}
	if name == "" {
		return FirstFit, nil
	}
	return PlacementPolicy(name), nil
}

// explain renders the human-readable reason for choosing c.
func (p PlacementPolicy) explain(c trace.Candidate, candidates int) string {
	switch p {
	case BestFit:
		return fmt.Sprintf("best-fit: region %d leaves the smallest leftover (%d) of %d candidates", c.RegionIndex, c.Leftover, candidates)
	case WorstFit:
		return fmt.Sprintf("worst-fit: region %d leaves the largest leftover (%d) of %d candidates", c.RegionIndex, c.Leftover, candidates)
	default:
		return fmt.Sprintf("first-fit: region %d is the lowest-index fit of %d candidates (leftover %d)", c.RegionIndex, candidates, c.Leftover)
	}
}
