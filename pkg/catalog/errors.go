package catalog

import (
	"errors"
	"fmt"

	"robi-be/pkg/llm"
)

// ErrIngestion indicates a document never reached the active state.
var ErrIngestion = errors.New("document ingestion failed")

// IngestionError reports which document failed and in what state it ended.
type IngestionError struct {
	Document string
	State    llm.FileState
	Err      error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file %s failed to process (state %s): %v", e.Document, e.State, e.Err)
	}
	return fmt.Sprintf("file %s failed to process (state %s)", e.Document, e.State)
}

func (e *IngestionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrIngestion, e.Err}
	}
	return []error{ErrIngestion}
}
