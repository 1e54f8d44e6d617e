package trace

// AllocationSummary aggregates statistics from an AllocationTrace.
type AllocationSummary struct {
	Requests                   int     `json:"requests"`
	Placed                     int     `json:"placed"`
	Unplaced                   int     `json:"unplaced"`
	TotalInternalFragmentation int     `json:"total_internal_fragmentation"`
	MeanLeftover               float64 `json:"mean_leftover"` // over placed requests
	Utilization                float64 `json:"utilization"`   // placed size / capacity of occupied regions
}

// SummarizeAllocation computes aggregate statistics from an AllocationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func SummarizeAllocation(t *AllocationTrace) *AllocationSummary {
	summary := &AllocationSummary{}
	if t == nil {
		return summary
	}

	summary.Requests = len(t.Steps)
	usedSize, usedCapacity := 0, 0
	for _, s := range t.Steps {
		if !s.Placed() {
			summary.Unplaced++
			continue
		}
		summary.Placed++
		summary.TotalInternalFragmentation += s.Leftover
		usedSize += s.RequestSize
		usedCapacity += s.RequestSize + s.Leftover
	}

	if summary.Placed > 0 {
		summary.MeanLeftover = float64(summary.TotalInternalFragmentation) / float64(summary.Placed)
	}
	if usedCapacity > 0 {
		summary.Utilization = float64(usedSize) / float64(usedCapacity)
	}
	return summary
}

// PagingSummary aggregates statistics from a PagingTrace.
type PagingSummary struct {
	References int     `json:"references"`
	Hits       int     `json:"hits"`
	Faults     int     `json:"faults"`
	Evictions  int     `json:"evictions"` // faults that displaced a resident page
	HitRatio   float64 `json:"hit_ratio"`
	FaultRatio float64 `json:"fault_ratio"`
}

// SummarizePaging computes aggregate statistics from a PagingTrace.
// Safe for nil or empty traces (returns zero-value fields).
func SummarizePaging[P comparable](t *PagingTrace[P]) *PagingSummary {
	summary := &PagingSummary{}
	if t == nil {
		return summary
	}

	summary.References = len(t.Steps)
	for _, s := range t.Steps {
		if s.Hit() {
			summary.Hits++
			continue
		}
		summary.Faults++
		if s.Evicted != nil {
			summary.Evictions++
		}
	}

	if summary.References > 0 {
		summary.HitRatio = float64(summary.Hits) / float64(summary.References)
		summary.FaultRatio = float64(summary.Faults) / float64(summary.References)
	}
	return summary
}
