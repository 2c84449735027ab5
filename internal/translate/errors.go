package translate

import (
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
)

var ErrMissingParameters = errors.New("missing parameters")

// ShapeError means the provider answered but the payload was not JSON or
// lacked the expected field.
type ShapeError struct {
	Provider string
	Status   int
	Reason   string
	Body     string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: unexpected payload (status %d): %s", e.Provider, e.Status, e.Reason)
}

// BothProvidersFailedError is terminal: the primary failed and the fallback
// answered with an unusable payload.
type BothProvidersFailedError struct {
	Err error
}

func (e *BothProvidersFailedError) Error() string {
	return "both translation providers failed: " + e.Err.Error()
}

func (e *BothProvidersFailedError) Unwrap() []error {
	return multierr.Errors(e.Err)
}

// FallbackTransportError is terminal: the fallback could not be reached.
type FallbackTransportError struct {
	Provider string
	Primary  error
	Err      error
}

func (e *FallbackTransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *FallbackTransportError) Unwrap() error {
	return e.Err
}

func failureKind(err error) string {
	var shape *ShapeError
	if errors.As(err, &shape) {
		return "shape"
	}
	return "transport"
}
