package provider

import (
	"context"
	"io"
)

// VideoRef is derived once per request and never mutated.
type VideoRef struct {
	RawURL        string
	NormalizedURL string
	ID            string
}

type ThumbnailSet struct {
	MaxRes string `json:"maxres"`
	Medium string `json:"medium"`
}

// FormatVariant is one upstream rendition carrying both audio and video.
type FormatVariant struct {
	Quality string `json:"quality"`
	Itag    int    `json:"itag"`
}

type VideoInfo struct {
	ID      string          `json:"-"`
	Title   string          `json:"title"`
	Formats []FormatVariant `json:"formats"`
}

// Stream is an opened upstream media body. The caller owns Body and must
// close it.
type Stream struct {
	Body     io.ReadCloser
	Size     int64 // 0 if unknown
	MimeType string
	Itag     int
}

type Provider interface {
	Name() string
	ListFormats(ctx context.Context, rawURL string) (*VideoInfo, error)
	OpenStream(ctx context.Context, rawURL string, itag int) (*Stream, error)
}
