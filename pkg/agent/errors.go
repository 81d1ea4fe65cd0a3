package agent

import (
	"errors"
	"fmt"

	"robi-be/pkg/intent"
)

var (
	// ErrNotLoaded means a query arrived before any resource load completed.
	ErrNotLoaded = errors.New("resources not loaded yet")
	// ErrModelInvocation wraps every downstream model failure.
	ErrModelInvocation = errors.New("model invocation failed")
	ErrEmptyQuery      = errors.New("query must not be empty")
)

type ModelInvocationError struct {
	Category intent.Category
	Err      error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("%s agent: %v", e.Category, e.Err)
}

func (e *ModelInvocationError) Unwrap() []error {
	return []error{ErrModelInvocation, e.Err}
}

// errorText is what the user sees when a query degrades.
func errorText(err error) string {
	var mie *ModelInvocationError
	if errors.As(err, &mie) {
		err = mie.Err
	}
	return fmt.Sprintf("An error occurred: %v", err)
}
