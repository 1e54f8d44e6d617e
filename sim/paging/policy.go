package paging

import (
	"fmt"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

// ReplacementPolicy names how a victim slot is chosen when every slot is occupied.
type ReplacementPolicy string

const (
	// FIFO evicts the slot filled longest ago; hits do not reorder it.
	FIFO ReplacementPolicy = "fifo"
	// LRU evicts the page with the oldest last reference.
	LRU ReplacementPolicy = "lru"
	// Optimal evicts the page whose next reference is farthest away.
	Optimal ReplacementPolicy = "optimal"
)

// Policies lists every replacement policy in display order.
func Policies() []ReplacementPolicy {
	return []ReplacementPolicy{FIFO, LRU, Optimal}
}

// ParseReplacementPolicy maps a policy name to its ReplacementPolicy.
// Empty string defaults to FIFO.
func ParseReplacementPolicy(name string) (ReplacementPolicy, error) {
	if !sim.IsValidReplacementPolicy(name) {
		return "", &sim.ValidationError{Field: "policy", Index: -1, Value: name, Reason: "unknown replacement policy"}
	}
	if name == "" {
		return FIFO, nil
	}
	return ReplacementPolicy(name), nil
}

// victimSelector holds the private per-run state of a replacement policy.
// A fresh selector is built for every Replay call.
type victimSelector[P comparable] interface {
	// filled is called after a page is loaded into slot at reference t.
	filled(slot, t int)
	// touched is called when the page in slot is hit at reference t.
	touched(slot, t int)
	// victim picks the slot to overwrite at reference t; all slots are occupied.
	victim(slots []P, t int) (slot int, considered []trace.VictimCandidate, reason string)
}

// newVictimSelector creates the selector for policy, or nil if the policy is unknown.
func newVictimSelector[P comparable](policy ReplacementPolicy, refs []P, frames int) victimSelector[P] {
	switch policy {
	case FIFO:
		return &fifoSelector[P]{queue: make([]int, 0, frames)}
	case LRU:
		return &lruSelector[P]{lastUse: make([]int, frames)}
	case Optimal:
		return &optimalSelector[P]{refs: refs}
	default:
		return nil
	}
}

// fifoSelector keeps slot positions in fill order. The front is the victim;
// a refilled slot rotates to the back.
type fifoSelector[P comparable] struct {
	queue []int
}

func (f *fifoSelector[P]) filled(slot, _ int) {
	for i, s := range f.queue {
		if s == slot {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			break
		}
	}
	f.queue = append(f.queue, slot)
}

func (f *fifoSelector[P]) touched(_, _ int) {}

func (f *fifoSelector[P]) victim(_ []P, _ int) (int, []trace.VictimCandidate, string) {
	considered := make([]trace.VictimCandidate, len(f.queue))
	for i, s := range f.queue {
		considered[i] = trace.VictimCandidate{Slot: s, Metric: i}
	}
	return f.queue[0], considered, fmt.Sprintf("fifo: slot %d was filled longest ago", f.queue[0])
}

// lruSelector tracks the last reference index of the page held by each slot.
type lruSelector[P comparable] struct {
	lastUse []int
}

func (l *lruSelector[P]) filled(slot, t int)  { l.lastUse[slot] = t }
func (l *lruSelector[P]) touched(slot, t int) { l.lastUse[slot] = t }

func (l *lruSelector[P]) victim(_ []P, _ int) (int, []trace.VictimCandidate, string) {
	considered := make([]trace.VictimCandidate, len(l.lastUse))
	oldest := 0
	for s, used := range l.lastUse {
		considered[s] = trace.VictimCandidate{Slot: s, Metric: used}
		if used < l.lastUse[oldest] {
			oldest = s
		}
	}
	return oldest, considered, fmt.Sprintf("lru: slot %d was last used at reference %d", oldest, l.lastUse[oldest])
}

// optimalSelector looks ahead in the reference string.
type optimalSelector[P comparable] struct {
	refs []P
}

func (o *optimalSelector[P]) filled(_, _ int)  {}
func (o *optimalSelector[P]) touched(_, _ int) {}

// victim keeps the first slot reaching the current maximum distance and
// replaces it only on a strict improvement, so ties go to the lowest slot.
func (o *optimalSelector[P]) victim(slots []P, t int) (int, []trace.VictimCandidate, string) {
	considered := make([]trace.VictimCandidate, len(slots))
	best := -1
	for s, page := range slots {
		c := trace.VictimCandidate{Slot: s, Never: true}
		for j := t + 1; j < len(o.refs); j++ {
			if o.refs[j] == page {
				c.Metric = j - t
				c.Never = false
				break
			}
		}
		considered[s] = c
		if best < 0 || farther(c, considered[best]) {
			best = s
		}
	}
	if considered[best].Never {
		return best, considered, fmt.Sprintf("optimal: page in slot %d is never referenced again", best)
	}
	return best, considered, fmt.Sprintf("optimal: page in slot %d is next used %d references ahead", best, considered[best].Metric)
}

// farther reports whether a is strictly farther in the future than b.
func farther(a, b trace.VictimCandidate) bool {
	switch {
	case b.Never:
		return false
	case a.Never:
		return true
	default:
		return a.Metric > b.Metric
	}
}
