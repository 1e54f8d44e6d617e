// Package paging replays a page-reference string against a fixed number of
// resident slots under a replacement policy.
package paging

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

// Result is the outcome of a single replay.
type Result[P comparable] struct {
	Policy     ReplacementPolicy     `json:"policy"`
	Frames     int                   `json:"frames"`
	HitCount   int                   `json:"hit_count"`
	FaultCount int                   `json:"fault_count"`
	Trace      *trace.PagingTrace[P] `json:"trace"`
}

// Steps returns the recorded replay steps in reference order.
func (r *Result[P]) Steps() []trace.ReplayStep[P] {
	return r.Trace.Steps
}

// Replay simulates refs against frames slots under policy. Slots start
// empty; a fault fills the lowest-index empty slot before any eviction.
// One step is recorded per reference.
func Replay[P comparable](refs []P, frames int, policy ReplacementPolicy) (*Result[P], error) {
	if err := sim.ValidateFrames(frames); err != nil {
		return nil, err
	}
	selector := newVictimSelector(policy, refs, frames)
	if selector == nil {
		return nil, &sim.ValidationError{Field: "policy", Index: -1, Value: string(policy), Reason: "unknown replacement policy"}
	}

	slots := make([]P, frames)
	occupied := make([]bool, frames)
	resident := make(map[P]int, frames) // page -> slot
	result := &Result[P]{
		Policy: policy,
		Frames: frames,
		Trace:  trace.NewPagingTrace[P](len(refs)),
	}

	for t, page := range refs {
		step := trace.ReplayStep[P]{Index: t, Page: page}

		if slot, ok := resident[page]; ok {
			selector.touched(slot, t)
			result.HitCount++
			step.Outcome = trace.OutcomeHit
			step.Slot = slot
			step.Reason = fmt.Sprintf("hit: %v is resident in slot %d", page, slot)
			logrus.Debugf("[ref %03d] %s hit %v (slot %d)", t, policy, page, slot)
		} else {
			result.FaultCount++
			step.Outcome = trace.OutcomeFault

			slot := firstEmpty(occupied)
			if slot >= 0 {
				step.Reason = fmt.Sprintf("fault: %v loaded into empty slot %d", page, slot)
				logrus.Debugf("[ref %03d] %s fault %v into empty slot %d", t, policy, page, slot)
			} else {
				var why string
				slot, step.Considered, why = selector.victim(slots, t)
				evicted := slots[slot]
				delete(resident, evicted)
				step.Evicted = &evicted
				step.Reason = fmt.Sprintf("fault: %v replaces %v in slot %d; %s", page, evicted, slot, why)
				logrus.Debugf("[ref %03d] %s fault %v: evicted %v from slot %d", t, policy, page, evicted, slot)
			}

			slots[slot] = page
			occupied[slot] = true
			resident[page] = slot
			selector.filled(slot, t)
			step.Slot = slot
		}

		step.SlotsAfter = snapshot(slots, occupied)
		result.Trace.Record(step)
	}

	return result, nil
}

// Compare replays refs once per policy, each run independent of the others.
func Compare[P comparable](refs []P, frames int) (map[ReplacementPolicy]*Result[P], error) {
	results := make(map[ReplacementPolicy]*Result[P], len(Policies()))
	for _, policy := range Policies() {
		r, err := Replay(refs, frames, policy)
		if err != nil {
			return nil, err
		}
		results[policy] = r
	}
	return results, nil
}

func firstEmpty(occupied []bool) int {
	for i, used := range occupied {
		if !used {
			return i
		}
	}
	return -1
}

// snapshot copies slot contents; empty slots are nil.
func snapshot[P comparable](slots []P, occupied []bool) []*P {
	out := make([]*P, len(slots))
	for i := range slots {
		if occupied[i] {
			page := slots[i]
			out[i] = &page
		}
	}
	return out
}
