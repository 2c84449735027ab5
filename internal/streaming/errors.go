package streaming

import (
	"github.com/go-faster/errors"
)

var (
	// ErrNotStarted means the upstream failed before any byte reached the
	// client, so a normal error response is still possible.
	ErrNotStarted = errors.New("stream failed before start")
	// ErrInterrupted means the upstream failed after headers were sent.
	ErrInterrupted = errors.New("stream interrupted")
	// ErrClientGone means the client disconnected or could not be written to.
	ErrClientGone = errors.New("client went away")
)

type relayError struct {
	kind error
	err  error
}

func (e *relayError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *relayError) Unwrap() []error {
	return []error{e.kind, e.err}
}
