package simplex

import (
	"fmt"
)

// DimensionError reports inconsistent input shapes. Solve returns it before
// doing any work.
type DimensionError struct {
	// Operand is "A", "b" or "c".
	Operand string
	Reason  string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("simplex: bad dimensions for %s: %s", e.Operand, e.Reason)
}

func dimensionErrorf(operand, format string, args ...interface{}) *DimensionError {
	return &DimensionError{Operand: operand, Reason: fmt.Sprintf(format, args...)}
}
