package searchdb

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUpdate      = errors.New("document update failed")
	ErrInvalidMode = errors.New("invalid search mode")
)

type NotFoundError struct {
	ID string
}

type UpdateError struct {
	ID  string
	Err error
}

type BulkError struct {
	Failed int
	Total  int
	Reason string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("could not update document %s: %s", e.ID, e.Err)
}

func (e *UpdateError) Is(target error) bool {
	return target == ErrUpdate
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk write rejected %d/%d documents: %s", e.Failed, e.Total, e.Reason)
}
