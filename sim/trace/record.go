// Package trace provides step-trace recording for the allocation and paging engines.
// This package has no dependencies on sim/ or its engines — it stores pure data types.
package trace

// NoRegion marks an allocation step whose request could not be placed.
const NoRegion = -1

// Candidate captures one region that was free and large enough when a
// request was evaluated.
type Candidate struct {
	RegionIndex int `json:"region_index"`
	Capacity    int `json:"capacity"`
	Leftover    int `json:"leftover"`
}

// AllocationStep captures a single placement decision.
type AllocationStep struct {
	RequestIndex int         `json:"request_index"`
	RequestSize  int         `json:"request_size"`
	Candidates   []Candidate `json:"candidates"`    // region index order; empty when nothing fits
	ChosenRegion int         `json:"chosen_region"` // NoRegion when unplaced
	Leftover     int         `json:"leftover"`      // 0 when unplaced
	Reason       string      `json:"reason"`
}

// Placed reports whether the request received a region.
func (s AllocationStep) Placed() bool {
	return s.ChosenRegion != NoRegion
}

// Outcome is the result of a single page reference.
type Outcome string

const (
	// OutcomeHit means the page was already resident.
	OutcomeHit Outcome = "hit"
	// OutcomeFault means the page had to be loaded into a slot.
	OutcomeFault Outcome = "fault"
)

// VictimCandidate captures a resident page weighed for eviction. Metric is
// policy specific: queue position for fifo (0 = filled longest ago), last
// reference index for lru, references until next use for optimal.
type VictimCandidate struct {
	Slot   int  `json:"slot"`
	Metric int  `json:"metric"`
	Never  bool `json:"never,omitempty"` // optimal: page is not referenced again
}

// ReplayStep captures the state after one page reference.
type ReplayStep[P comparable] struct {
	Index      int               `json:"index"`
	Page       P                 `json:"page"`
	Outcome    Outcome           `json:"outcome"`
	Slot       int               `json:"slot"`        // slot holding Page after the step
	SlotsAfter []*P              `json:"slots_after"` // nil entries are empty slots
	Evicted    *P                `json:"evicted"`     // nil unless a resident page was displaced
	Considered []VictimCandidate `json:"considered,omitempty"`
	Reason     string            `json:"reason"`
}

// Hit reports whether the reference was a hit.
func (s ReplayStep[P]) Hit() bool {
	return s.Outcome == OutcomeHit
}
