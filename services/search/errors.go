package search

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every error caused by bad caller input.
var ErrValidation = errors.New("invalid request")

type MissingQueryError struct{}

type InvalidModeError struct {
	Mode string
}

func (e *MissingQueryError) Error() string {
	return "missing query"
}

func (e *MissingQueryError) Is(target error) bool {
	return target == ErrValidation
}

func (e *InvalidModeError) Error() string {
	if e.Mode == "" {
		return "missing mode"
	}
	return fmt.Sprintf("invalid mode %q", e.Mode)
}

func (e *InvalidModeError) Is(target error) bool {
	return target == ErrValidation
}
