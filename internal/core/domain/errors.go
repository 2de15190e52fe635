package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("lesson not found")
	ErrInvalidID        = errors.New("invalid lesson id")
	ErrDuplicateRequest = errors.New("duplicate request")
)

// ValidationError reports a malformed or missing input field together with
// the rule it violated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// SpaceShortfall describes one lesson that cannot cover a requested quantity.
type SpaceShortfall struct {
	LessonID  string
	Subject   string
	Requested int
	Available int
}

// InsufficientSpaceError rejects an order whose items exceed available
// space on one or more lessons. The order as a whole is refused; no lesson
// is left decremented.
type InsufficientSpaceError struct {
	Shortfalls []SpaceShortfall
}

func (e *InsufficientSpaceError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s: %d requested, %d available", s.Subject, s.Requested, s.Available))
	}
	return "insufficient space: " + strings.Join(parts, "; ")
}
