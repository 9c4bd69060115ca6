package grid

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes grid errors.
type ErrorCode string

const (
	// ErrCodeNoGuard indicates the grid carries no guard marker.
	ErrCodeNoGuard ErrorCode = "NO_GUARD_FOUND"

	// ErrCodeMultipleGuards indicates more than one guard marker was found.
	ErrCodeMultipleGuards ErrorCode = "MULTIPLE_GUARDS"

	// ErrCodeOutOfBounds indicates direct cell access outside the grid.
	ErrCodeOutOfBounds ErrorCode = "OUT_OF_BOUNDS"

	// ErrCodeEmpty indicates the input held no rows.
	ErrCodeEmpty ErrorCode = "EMPTY_GRID"

	// ErrCodeRaggedRow indicates a row whose width differs from the first row.
	ErrCodeRaggedRow ErrorCode = "RAGGED_ROW"

	// ErrCodeInvalidSymbol indicates a character outside the map alphabet.
	ErrCodeInvalidSymbol ErrorCode = "INVALID_SYMBOL"
)

// Error is returned by grid construction and checked cell access.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Pos is the offending coordinate, when one applies.
	Pos *Point
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoGuardError returns true if err is a NO_GUARD_FOUND error.
// Uses errors.As to handle wrapped errors.
func IsNoGuardError(err error) bool {
	return hasCode(err, ErrCodeNoGuard)
}

// IsOutOfBoundsError returns true if err is an OUT_OF_BOUNDS error.
func IsOutOfBoundsError(err error) bool {
	return hasCode(err, ErrCodeOutOfBounds)
}

// CodeOf returns the error code carried by err, or "" if err is not a grid error.
func CodeOf(err error) ErrorCode {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func newOutOfBounds(p Point, width, height int) *Error {
	return &Error{
		Code:    ErrCodeOutOfBounds,
		Message: fmt.Sprintf("coordinate outside %dx%d grid", width, height),
		Pos:     &p,
	}
}
