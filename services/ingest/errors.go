package ingest

import (
	"errors"
	"fmt"
)

var ErrIngestion = errors.New("ingestion failed")

const (
	StageOpen   = "open"
	StageHeader = "header"
	StageRead   = "read"
	StageWrite  = "write"
)

// IngestionError reports which stage of loading a CSV file failed. A failure in
// StageWrite may have been partially applied by the engine.
type IngestionError struct {
	Path  string
	Stage string
	Err   error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("could not load %s (%s): %s", e.Path, e.Stage, e.Err)
}

func (e *IngestionError) Is(target error) bool {
	return target == ErrIngestion
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
