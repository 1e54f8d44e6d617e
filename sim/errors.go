package sim

import "fmt"

// ValidationError reports an input contract violation detected before any
// simulation work begins. Index is -1 when the offending field is not a
// sequence element.
type ValidationError struct {
	Field  string
	Index  int
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid %s[%d] = %v: %s", e.Field, e.Index, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s = %v: %s", e.Field, e.Value, e.Reason)
}

// ValidatePositive returns a ValidationError for the first non-positive
// element of values.
func ValidatePositive(field string, values []int) error {
	for i, v := range values {
		if v <= 0 {
			return &ValidationError{Field: field, Index: i, Value: v, Reason: "must be a positive integer"}
		}
	}
	return nil
}

// ValidateFrames checks the slot count of a paging replay.
func ValidateFrames(frames int) error {
	if frames < 1 {
		return &ValidationError{Field: "frames", Index: -1, Value: frames, Reason: "must be at least 1"}
	}
	return nil
}
