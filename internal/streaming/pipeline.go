package streaming

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"github.com/pavelc4/aether-gateway/pkg/buffer"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

// Pipeline relays an upstream body to an Output chunk by chunk using pooled
// buffers. Nothing is held in memory beyond one chunk.
type Pipeline struct {
	pool *buffer.Pool
}

func NewPipeline(pool *buffer.Pool) *Pipeline {
	if pool == nil {
		pool = buffer.Default
	}
	return &Pipeline{pool: pool}
}

// Start reads the first chunk before calling out.Begin, then copies the rest.
// It returns the number of bytes written to out. The upstream body is always
// closed, including when ctx is cancelled mid-read.
func (p *Pipeline) Start(ctx context.Context, input StreamInput, out Output) (int64, error) {
	body := input.Body
	defer body.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = body.Close()
	})
	defer stop()

	buf := p.pool.Get()
	defer p.pool.Put(buf)

	n, err := readChunk(body, buf)
	if err != nil && !errors.Is(err, io.EOF) {
		if ctx.Err() != nil {
			return 0, &relayError{kind: ErrClientGone, err: ctx.Err()}
		}
		return 0, &relayError{kind: ErrNotStarted, err: err}
	}

	out.Begin(input.Size)

	var written int64
	for {
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return written, &relayError{kind: ErrClientGone, err: werr}
			}
			out.Flush()
			written += int64(n)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("Stream complete", "bytes", written)
				return written, nil
			}
			if ctx.Err() != nil {
				return written, &relayError{kind: ErrClientGone, err: ctx.Err()}
			}
			return written, &relayError{kind: ErrInterrupted, err: err}
		}

		n, err = readChunk(body, buf)
	}
}

// readChunk returns once it has at least one byte or an error.
func readChunk(r io.Reader, buf []byte) (int, error) {
	for {
		n, err := r.Read(buf)
		if n > 0 || err != nil {
			return n, err
		}
	}
}
