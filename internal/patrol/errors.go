package patrol

import (
	"errors"
	"fmt"
)

// StepsExceededError is returned when a run under revisit detection takes
// more steps than there are (cell, facing) states. The revisit check makes
// this unreachable; seeing it means the trail and the walk disagree.
type StepsExceededError struct {
	Steps int // Number of steps taken
	Limit int // Maximum allowed steps
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("patrol exceeded step budget: %d steps > %d limit", e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
