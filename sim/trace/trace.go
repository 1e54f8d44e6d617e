package trace

// AllocationTrace collects allocation steps in request order.
// Steps are append-only; readers must not modify them.
type AllocationTrace struct {
	Steps []AllocationStep `json:"steps"`
}

// NewAllocationTrace creates an AllocationTrace ready for recording.
func NewAllocationTrace(capacity int) *AllocationTrace {
	return &AllocationTrace{Steps: make([]AllocationStep, 0, capacity)}
}

// Record appends an allocation step.
func (t *AllocationTrace) Record(step AllocationStep) {
	t.Steps = append(t.Steps, step)
}

// Len returns the number of recorded steps. Safe on a nil trace.
func (t *AllocationTrace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}

// PagingTrace collects replay steps in reference order.
// Steps are append-only; readers must not modify them.
type PagingTrace[P comparable] struct {
	Steps []ReplayStep[P] `json:"steps"`
}

// NewPagingTrace creates a PagingTrace ready for recording.
func NewPagingTrace[P comparable](capacity int) *PagingTrace[P] {
	return &PagingTrace[P]{Steps: make([]ReplayStep[P], 0, capacity)}
}

// Record appends a replay step.
func (t *PagingTrace[P]) Record(step ReplayStep[P]) {
	t.Steps = append(t.Steps, step)
}

// Len returns the number of recorded steps. Safe on a nil trace.
func (t *PagingTrace[P]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}
