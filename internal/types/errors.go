// Package types provides shared types and errors for the application.
package types

import "errors"

// Sentinel errors for consistent error handling across the application.
// These errors can be checked with errors.Is() for type-safe error handling.
var (
	// Target errors
	ErrTargetRequired   = errors.New("target param is required")
	ErrInvalidTarget    = errors.New("target param should be an element, a selector or a position formatted as {x, y}")
	ErrSelectorNoMatch  = errors.New("selector did not match any element inside the scrolling box")
	ErrElementOutside   = errors.New("scrolling box does not contain element")
	ErrInvalidEdge      = errors.New("invalid edge")
	ErrNoScrollingBox   = errors.New("no scrolling box available")
	ErrUnknownEasing    = errors.New("unknown easing function")
	ErrUnknownPreset    = errors.New("unknown scroll preset")
	ErrInvalidScript    = errors.New("invalid scroll script")
	ErrAnimationAborted = errors.New("animation was cancelled before completion")

	// Browser errors
	ErrBrowserLaunch = errors.New("failed to launch browser")
	ErrPageLoad      = errors.New("failed to load page")
)

// TargetError describes why a scroll target could not be resolved.
// It implements the error interface and supports error unwrapping.
type TargetError struct {
	Op      string // Operation: "scrollTo", "scrollToElement", ...
	Target  string // Description of the offending target
	Message string // Human-readable error message
	Err     error  // Underlying error (for unwrapping)
}

// Error implements the error interface.
func (e *TargetError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *TargetError) Unwrap() error {
	return e.Err
}

// NewTargetRequiredError creates an error for a missing target.
func NewTargetRequiredError(op string) *TargetError {
	return &TargetError{
		Op:      op,
		Message: ErrTargetRequired.Error(),
		Err:     ErrTargetRequired,
	}
}

// NewInvalidTargetError creates an error for a target of an unsupported type.
func NewInvalidTargetError(op, target string) *TargetError {
	return &TargetError{
		Op:      op,
		Target:  target,
		Message: ErrInvalidTarget.Error(),
		Err:     ErrInvalidTarget,
	}
}

// NewSelectorNoMatchError creates an error for a selector that matched nothing.
func NewSelectorNoMatchError(op, selector string) *TargetError {
	return &TargetError{
		Op:      op,
		Target:  selector,
		Message: "no element matches selector " + selector,
		Err:     ErrSelectorNoMatch,
	}
}

// NewElementOutsideError creates an error for an element that is not a
// descendant of the scrolling box.
func NewElementOutsideError(op, target string) *TargetError {
	return &TargetError{
		Op:      op,
		Target:  target,
		Message: ErrElementOutside.Error(),
		Err:     ErrElementOutside,
	}
}
