// Package alloc implements whole-region contiguous allocation.
//
// Each request consumes an entire free region; leftover capacity is
// internal fragmentation and is never split off into a new region.
// Placed regions stay occupied for the rest of the run.
package alloc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

// Assignment records a request placed into a region.
type Assignment struct {
	RequestIndex int `json:"request_index"`
	RegionIndex  int `json:"region_index"`
	Leftover     int `json:"leftover"`
}

// Result is the outcome of a single allocation run.
type Result struct {
	Policy                     PlacementPolicy        `json:"policy"`
	Assignments                []Assignment           `json:"assignments"`
	UsedCount                  int                    `json:"used_count"`
	TotalInternalFragmentation int                    `json:"total_internal_fragmentation"`
	Trace                      *trace.AllocationTrace `json:"trace"`
}

// AssignmentFor returns the assignment of the given request, if it was placed.
func (r *Result) AssignmentFor(requestIndex int) (Assignment, bool) {
	for _, a := range r.Assignments {
		if a.RequestIndex == requestIndex {
			return a, true
		}
	}
	return Assignment{}, false
}

// Allocate places requests into regions in input order under policy.
// Inputs are validated before any work; a request that fits nowhere is
// recorded in the trace and is not an error.
func Allocate(regions, requests []int, policy PlacementPolicy) (*Result, error) {
	selectFn, ok := selectors[policy]
	if !ok {
		return nil, &sim.ValidationError{Field: "policy", Index: -1, Value: string(policy), Reason: "unknown placement policy"}
	}
	if err := sim.ValidatePositive("regions", regions); err != nil {
		return nil, err
	}
	if err := sim.ValidatePositive("requests", requests); err != nil {
		return nil, err
	}

	occupied := make([]bool, len(regions))
	result := &Result{
		Policy:      policy,
		Assignments: make([]Assignment, 0, len(requests)),
		Trace:       trace.NewAllocationTrace(len(requests)),
	}

	for ri, size := range requests {
		candidates := candidateSet(regions, occupied, size)
		step := trace.AllocationStep{
			RequestIndex: ri,
			RequestSize:  size,
			Candidates:   candidates,
			ChosenRegion: trace.NoRegion,
		}

		if len(candidates) == 0 {
			step.Reason = fmt.Sprintf("no free region can hold %d", size)
			logrus.Debugf("[req %03d] %s: unplaced (size=%d)", ri, policy, size)
		} else {
			chosen := candidates[selectFn(candidates)]
			occupied[chosen.RegionIndex] = true
			step.ChosenRegion = chosen.RegionIndex
			step.Leftover = chosen.Leftover
			step.Reason = policy.explain(chosen, len(candidates))

			result.Assignments = append(result.Assignments, Assignment{
				RequestIndex: ri,
				RegionIndex:  chosen.RegionIndex,
				Leftover:     chosen.Leftover,
			})
			result.TotalInternalFragmentation += chosen.Leftover
			logrus.Debugf("[req %03d] %s chose region %d (leftover %d)", ri, policy, chosen.RegionIndex, chosen.Leftover)
		}
		result.Trace.Record(step)
	}

	result.UsedCount = len(result.Assignments)
	return result, nil
}

// candidateSet returns the free regions with capacity >= size, in region index order.
func candidateSet(regions []int, occupied []bool, size int) []trace.Candidate {
	candidates := make([]trace.Candidate, 0, len(regions))
	for i, capacity := range regions {
		if occupied[i] || capacity < size {
			continue
		}
		candidates = append(candidates, trace.Candidate{RegionIndex: i, Capacity: capacity, Leftover: capacity - size})
	}
	return candidates
}

// Compare allocates once per policy, each run independent of the others.
func Compare(regions, requests []int) (map[PlacementPolicy]*Result, error) {
	results := make(map[PlacementPolicy]*Result, len(Policies()))
	for _, policy := range Policies() {
		r, err := Allocate(regions, requests, policy)
		if err != nil {
			return nil, err
		}
		results[policy] = r
	}
	return results, nil
}
