package paging

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/trace"
)

var lectureRefs = []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2}

// hitPositions returns the 1-based reference positions that were hits.
func hitPositions[P comparable](r *Result[P]) []int {
	var out []int
	for _, s := range r.Steps() {
		if s.Hit() {
			out = append(out, s.Index+1)
		}
	}
	return out
}

// evictions returns the evicted pages in order.
func evictions(r *Result[int]) []int {
	var out []int
	for _, s := range r.Steps() {
		if s.Evicted != nil {
			out = append(out, *s.Evicted)
		}
	}
	return out
}

// slotValues flattens a snapshot, using -1 for empty slots.
func slotValues(slots []*int) []int {
	out := make([]int, len(slots))
	for i, p := range slots {
		out[i] = -1
		if p != nil {
			out[i] = *p
		}
	}
	return out
}

func TestReplay_FIFO_LectureScenario(t *testing.T) {
	// GIVEN the lecture reference string with 3 frames
	// WHEN replayed under FIFO
	result, err := Replay(lectureRefs, 3, FIFO)
	require.NoError(t, err)

	// THEN hits occur exactly at the 5th, 12th and 13th references
	assert.Equal(t, 3, result.HitCount)
	assert.Equal(t, 10, result.FaultCount)
	assert.Equal(t, []int{5, 12, 13}, hitPositions(result))

	// THEN pages leave in fill order, independent of the hit on 0
	assert.Equal(t, []int{7, 0, 1, 2, 3, 0, 4}, evictions(result))
	assert.Equal(t, []int{0, 2, 3}, slotValues(result.Steps()[12].SlotsAfter))
}

func TestReplay_LRU_LectureScenario(t *testing.T) {
	result, err := Replay(lectureRefs, 3, LRU)
	require.NoError(t, err)

	assert.Equal(t, 4, result.HitCount)
	assert.Equal(t, 9, result.FaultCount)
	assert.Equal(t, []int{5, 7, 12, 13}, hitPositions(result))
	assert.Equal(t, []int{7, 1, 2, 3, 0, 4}, evictions(result))
}

func TestReplay_Optimal_LectureScenario(t *testing.T) {
	result, err := Replay(lectureRefs, 3, Optimal)
	require.NoError(t, err)

	assert.Equal(t, 6, result.HitCount)
	assert.Equal(t, 7, result.FaultCount)
	assert.Equal(t, []int{7, 1, 0, 4}, evictions(result))
	assert.Equal(t, []int{2, 0, 3}, slotValues(result.Steps()[12].SlotsAfter))
}

func TestReplay_FIFO_BeladyAnomaly(t *testing.T) {
	// GIVEN the classic anomaly string
	refs := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

	// WHEN replayed under FIFO with 3 and then 4 frames
	three, err := Replay(refs, 3, FIFO)
	require.NoError(t, err)
	four, err := Replay(refs, 4, FIFO)
	require.NoError(t, err)

	// THEN more frames produce more faults
	assert.Equal(t, 9, three.FaultCount)
	assert.Equal(t, 10, four.FaultCount)
}

func TestReplay_MediumPreset_AllPolicies(t *testing.T) {
	refs := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
	tests := []struct {
		policy     ReplacementPolicy
		wantFaults int
	}{
		{FIFO, 10},
		{LRU, 8},
		{Optimal, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			result, err := Replay(refs, 4, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFaults, result.FaultCount)
		})
	}
}

func TestReplay_Optimal_TieBreakByLowestSlot(t *testing.T) {
	// GIVEN three resident pages none of which is referenced again
	refs := []int{1, 2, 3, 4}

	// WHEN page 4 faults
	result, err := Replay(refs, 3, Optimal)
	require.NoError(t, err)

	// THEN slot 0 is the victim
	last := result.Steps()[3]
	require.NotNil(t, last.Evicted)
	assert.Equal(t, 1, *last.Evicted)
	assert.Equal(t, 0, last.Slot)
	for _, c := range last.Considered {
		assert.True(t, c.Never, "slot %d should never be referenced again", c.Slot)
	}
}

func TestReplay_Optimal_NeverBeatsFarthest(t *testing.T) {
	// GIVEN slot 1 holds a page referenced far ahead and slot 2 one never used again
	refs := []int{1, 2, 3, 4, 1, 1, 1, 2}

	result, err := Replay(refs, 3, Optimal)
	require.NoError(t, err)

	// THEN page 3 (never again) is evicted rather than page 2 (4 ahead)
	step := result.Steps()[3]
	require.NotNil(t, step.Evicted)
	assert.Equal(t, 3, *step.Evicted)
	assert.Equal(t, []trace.VictimCandidate{
		{Slot: 0, Metric: 1},
		{Slot: 1, Metric: 4},
		{Slot: 2, Never: true},
	}, step.Considered)
}

func TestReplay_LRU_HitRefreshesRecency(t *testing.T) {
	// GIVEN page 1 is hit after pages 2 and 3 are loaded
	refs := []int{1, 2, 3, 1, 4}

	// WHEN 4 faults under LRU and FIFO
	lru, err := Replay(refs, 3, LRU)
	require.NoError(t, err)
	fifo, err := Replay(refs, 3, FIFO)
	require.NoError(t, err)

	// THEN LRU evicts 2 while FIFO ignores the hit and evicts 1
	assert.Equal(t, 2, *lru.Steps()[4].Evicted)
	assert.Equal(t, 1, *fifo.Steps()[4].Evicted)
}

func TestReplay_FaultFillsLowestEmptySlot(t *testing.T) {
	result, err := Replay([]int{5, 6}, 4, FIFO)
	require.NoError(t, err)

	assert.Equal(t, []int{5, -1, -1, -1}, slotValues(result.Steps()[0].SlotsAfter))
	assert.Equal(t, []int{5, 6, -1, -1}, slotValues(result.Steps()[1].SlotsAfter))
	for _, s := range result.Steps() {
		assert.Nil(t, s.Evicted)
		assert.Empty(t, s.Considered)
	}
}

func TestReplay_StringPages(t *testing.T) {
	refs := []string{"a", "b", "a", "c", "b"}
	result, err := Replay(refs, 2, LRU)
	require.NoError(t, err)

	assert.Equal(t, 1, result.HitCount)
	assert.Equal(t, 4, result.FaultCount)
	require.NotNil(t, result.Steps()[3].Evicted)
	assert.Equal(t, "b", *result.Steps()[3].Evicted)
}

func TestReplay_SingleFrame(t *testing.T) {
	result, err := Replay([]int{1, 1, 2, 2, 1}, 1, Optimal)
	require.NoError(t, err)
	assert.Equal(t, 2, result.HitCount)
	assert.Equal(t, 3, result.FaultCount)
}

func TestReplay_EmptyReferences(t *testing.T) {
	for _, policy := range Policies() {
		result, err := Replay([]int{}, 3, policy)
		require.NoError(t, err)
		assert.Zero(t, result.HitCount)
		assert.Zero(t, result.FaultCount)
		assert.Zero(t, result.Trace.Len())
	}
}

func TestReplay_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		frames    int
		policy    ReplacementPolicy
		wantField string
	}{
		{"zero frames", 0, FIFO, "frames"},
		{"negative frames", -2, LRU, "frames"},
		{"unknown policy", 3, ReplacementPolicy("clock"), "policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Replay(lectureRefs, tt.frames, tt.policy)
			assert.Nil(t, result)
			var verr *sim.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

// randomRefs builds a reproducible reference string over a small page alphabet.
func randomRefs(rng *rand.Rand, n, pages int) []int {
	refs := make([]int, n)
	for i := range refs {
		refs[i] = rng.Intn(pages)
	}
	return refs
}

func TestReplay_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		refs := randomRefs(rng, 40, 8)
		frames := 1 + rng.Intn(5)
		for _, policy := range Policies() {
			result, err := Replay(refs, frames, policy)
			require.NoError(t, err)

			// Trace length and hit/fault conservation
			require.Equal(t, len(refs), result.Trace.Len())
			require.Equal(t, len(refs), result.HitCount+result.FaultCount)

			prev := make([]*int, frames)
			for _, s := range result.Steps() {
				require.Len(t, s.SlotsAfter, frames)

				// A hit means the page was already in the same slot before the step
				wasResident := prev[s.Slot] != nil && *prev[s.Slot] == s.Page
				assert.Equal(t, wasResident, s.Hit(), "%s ref %d", policy, s.Index)
				if s.Hit() {
					assert.Equal(t, slotValues(prev), slotValues(s.SlotsAfter))
				}

				// A page occupies at most one slot
				seen := make(map[int]bool)
				for _, p := range s.SlotsAfter {
					if p != nil {
						assert.False(t, seen[*p], "page %d resident twice", *p)
						seen[*p] = true
					}
				}
				prev = s.SlotsAfter
			}
		}
	}
}

func TestReplay_OptimalNeverWorse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		refs := randomRefs(rng, 30, 7)
		frames := 1 + rng.Intn(4)

		results, err := Compare(refs, frames)
		require.NoError(t, err)

		opt := results[Optimal].FaultCount
		assert.LessOrEqual(t, opt, results[LRU].FaultCount, "refs=%v frames=%d", refs, frames)
		assert.LessOrEqual(t, opt, results[FIFO].FaultCount, "refs=%v frames=%d", refs, frames)
	}
}

func TestReplay_Deterministic(t *testing.T) {
	for _, policy := range Policies() {
		a, err := Replay(lectureRefs, 3, policy)
		require.NoError(t, err)
		b, err := Replay(lectureRefs, 3, policy)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestReplay_SnapshotsAreIndependent(t *testing.T) {
	result, err := Replay(lectureRefs, 3, FIFO)
	require.NoError(t, err)

	// Mutating one snapshot must not leak into the next
	*result.Steps()[3].SlotsAfter[0] = 99
	assert.Equal(t, 2, *result.Steps()[4].SlotsAfter[0])
}

func TestCompare_ReturnsEveryPolicy(t *testing.T) {
	results, err := Compare(lectureRefs, 3)
	require.NoError(t, err)
	require.Len(t, results, len(Policies()))
	for _, p := range Policies() {
		assert.Equal(t, p, results[p].Policy)
	}

	_, err = Compare(lectureRefs, 0)
	assert.Error(t, err)
}

func TestParseReplacementPolicy(t *testing.T) {
	tests := []struct {
		name    string
		want    ReplacementPolicy
		wantErr bool
	}{
		{"", FIFO, false},
		{"fifo", FIFO, false},
		{"lru", LRU, false},
		{"optimal", Optimal, false},
		{"clock", "", true},
		{"LRU", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReplacementPolicy(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
