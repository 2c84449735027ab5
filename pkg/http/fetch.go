package http

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
)

const (
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// MaxBodySize caps how much of a provider response is read into memory.
	MaxBodySize = 2 << 20
)

// Response is a fully read upstream reply. Body is the raw text; callers
// decide whether it is JSON.
type Response struct {
	Status int
	Body   []byte
}

// ReadBody sends req and returns the raw body regardless of status code.
// Only transport failures are reported as errors.
func ReadBody(client *http.Client, req *http.Request) (*Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read response failed")
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Snippet returns at most n bytes of the body for log lines.
func (r *Response) Snippet(n int) string {
	if len(r.Body) <= n {
		return string(r.Body)
	}
	return string(r.Body[:n]) + "..."
}
