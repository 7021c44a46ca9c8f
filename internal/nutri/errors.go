package nutri

import "errors"

var (
	// ErrPersistence wraps any failure reported by the Store during a
	// mutation. The in-memory state has been rolled back when it is returned.
	ErrPersistence = errors.New("persisting state failed")

	// ErrInvalidInput is returned for records that violate the data model
	// (negative calories, empty name, non-positive amounts).
	ErrInvalidInput = errors.New("invalid input")

	// ErrMealNotFound is returned when editing or deleting an unknown meal.
	ErrMealNotFound = errors.New("meal not found")

	// ErrNoState is returned by a Store when nothing has been saved yet.
	ErrNoState = errors.New("no saved state")
)
