package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestSummarizeAllocation_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	tr := NewAllocationTrace(0)

	// WHEN summarized
	summary := SummarizeAllocation(tr)

	// THEN all counts are zero
	assert.Equal(t, AllocationSummary{}, *summary)
}

func TestSummarizeAllocation_NilTrace_ZeroValues(t *testing.T) {
	assert.Equal(t, AllocationSummary{}, *SummarizeAllocation(nil))
}

func TestSummarizeAllocation_MixedSteps_CorrectCounts(t *testing.T) {
	// GIVEN two placed requests and one unplaced
	tr := NewAllocationTrace(3)
	tr.Record(AllocationStep{RequestIndex: 0, RequestSize: 15, ChosenRegion: 4, Leftover: 5})
	tr.Record(AllocationStep{RequestIndex: 1, RequestSize: 20, ChosenRegion: 1, Leftover: 10})
	tr.Record(AllocationStep{RequestIndex: 2, RequestSize: 200, ChosenRegion: NoRegion})

	// WHEN summarized
	summary := SummarizeAllocation(tr)

	// THEN counts and fragmentation match
	assert.Equal(t, 3, summary.Requests)
	assert.Equal(t, 2, summary.Placed)
	assert.Equal(t, 1, summary.Unplaced)
	assert.Equal(t, 15, summary.TotalInternalFragmentation)
	assert.InDelta(t, 7.5, summary.MeanLeftover, 1e-9)

	// THEN utilization = (15 + 20) / (20 + 30)
	assert.InDelta(t, 35.0/50.0, summary.Utilization, 1e-9)
}

func TestSummarizePaging_EmptyTrace_ZeroValues(t *testing.T) {
	assert.Equal(t, PagingSummary{}, *SummarizePaging(NewPagingTrace[int](0)))
	assert.Equal(t, PagingSummary{}, *SummarizePaging[int](nil))
}

func TestSummarizePaging_PopulatedTrace_CorrectRatios(t *testing.T) {
	// GIVEN two cold faults, one hit and one evicting fault
	tr := NewPagingTrace[int](4)
	tr.Record(ReplayStep[int]{Index: 0, Page: 1, Outcome: OutcomeFault})
	tr.Record(ReplayStep[int]{Index: 1, Page: 2, Outcome: OutcomeFault})
	tr.Record(ReplayStep[int]{Index: 2, Page: 1, Outcome: OutcomeHit})
	tr.Record(ReplayStep[int]{Index: 3, Page: 3, Outcome: OutcomeFault, Evicted: intPtr(2)})

	// WHEN summarized
	summary := SummarizePaging(tr)

	// THEN counts and ratios match
	assert.Equal(t, 4, summary.References)
	assert.Equal(t, 1, summary.Hits)
	assert.Equal(t, 3, summary.Faults)
	assert.Equal(t, 1, summary.Evictions)
	assert.InDelta(t, 0.25, summary.HitRatio, 1e-9)
	assert.InDelta(t, 0.75, summary.FaultRatio, 1e-9)
}
