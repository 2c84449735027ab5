package streaming

import (
	"io"
)

// StreamInput is an already opened upstream body. Size is -1 or 0 when the
// upstream did not announce a length.
type StreamInput struct {
	Body io.ReadCloser
	Size int64
}

// Output is the client side of a relay. Begin is called exactly once, after
// the first upstream read succeeded and before the first Write.
type Output interface {
	Begin(size int64)
	Write(p []byte) (int, error)
	Flush()
}
