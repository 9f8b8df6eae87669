package listing

import (
	"errors"
	"fmt"
)

// ErrMalformedOutput is returned when the model's reply is not a JSON
// object. It is a client-facing failure and is never retried.
var ErrMalformedOutput = errors.New("malformed model output")

// GenerationError reports that every model invocation failed.
type GenerationError struct {
	Attempts int
	Last     error
}

func (e GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e GenerationError) Unwrap() error {
	return e.Last
}
