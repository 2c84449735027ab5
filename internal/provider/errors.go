package provider

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	ErrInvalidURL    = errors.New("invalid youtube url")
	ErrInvalidFormat = errors.New("invalid format token")
	ErrUnknownFormat = errors.New("format not offered upstream")
)

// ResolutionError reports that the upstream metadata source could not
// resolve a URL. It is never retried.
type ResolutionError struct {
	Provider string
	URL      string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: resolve %q: %v", e.Provider, e.URL, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
