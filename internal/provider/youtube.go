package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/kkdai/youtube/v2"

	"github.com/pavelc4/aether-gateway/pkg/logger"
)

const defaultMetadataTimeout = 20 * time.Second

// YouTubeProvider resolves metadata and opens media streams through the
// kkdai/youtube client. Identifier parsing is left to that client, which
// accepts more URL shapes than ExtractVideoID.
type YouTubeProvider struct {
	client          *youtube.Client
	metadataTimeout time.Duration
}

func NewYouTube(httpClient *http.Client, metadataTimeout time.Duration) *YouTubeProvider {
	if metadataTimeout <= 0 {
		metadataTimeout = defaultMetadataTimeout
	}
	return &YouTubeProvider{
		client:          &youtube.Client{HTTPClient: httpClient},
		metadataTimeout: metadataTimeout,
	}
}

func (yp *YouTubeProvider) Name() string {
	return "YouTube"
}

func (yp *YouTubeProvider) ListFormats(ctx context.Context, rawURL string) (*VideoInfo, error) {
	video, err := yp.fetchVideo(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	formats := CombinedFormats(video.Formats)
	logger.Info("YouTube info resolved",
		"id", video.ID,
		"title", video.Title,
		"formats", len(formats),
		"total_formats", len(video.Formats),
	)

	return &VideoInfo{
		ID:      video.ID,
		Title:   video.Title,
		Formats: formats,
	}, nil
}

func (yp *YouTubeProvider) OpenStream(ctx context.Context, rawURL string, itag int) (*Stream, error) {
	if itag <= 0 {
		return nil, ErrInvalidFormat
	}

	video, err := yp.fetchVideo(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	format, err := findFormat(video.Formats, itag)
	if err != nil {
		return nil, errors.Wrapf(err, "video %s", video.ID)
	}

	// The stream outlives the metadata timeout, so it runs on the caller's
	// context and is cancelled when the client goes away.
	body, size, err := yp.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, &ResolutionError{Provider: yp.Name(), URL: rawURL, Err: errors.Wrap(err, "open stream")}
	}

	logger.Info("YouTube stream opened",
		"id", video.ID,
		"itag", itag,
		"quality", format.QualityLabel,
		"size", size,
	)

	return &Stream{
		Body:     body,
		Size:     size,
		MimeType: format.MimeType,
		Itag:     itag,
	}, nil
}

func (yp *YouTubeProvider) fetchVideo(ctx context.Context, rawURL string) (*youtube.Video, error) {
	normalized := NormalizeURL(rawURL)

	ctx, cancel := context.WithTimeout(ctx, yp.metadataTimeout)
	defer cancel()

	video, err := yp.client.GetVideoContext(ctx, normalized)
	if err != nil {
		return nil, &ResolutionError{Provider: yp.Name(), URL: normalized, Err: err}
	}
	return video, nil
}

// CombinedFormats keeps formats that carry both a video track and audio
// channels, preserving upstream order.
func CombinedFormats(list youtube.FormatList) []FormatVariant {
	combined := list.WithAudioChannels().Select(hasVideo)
	out := make([]FormatVariant, 0, len(combined))
	for _, f := range combined {
		out = append(out, FormatVariant{
			Quality: f.QualityLabel,
			Itag:    f.ItagNo,
		})
	}
	return out
}

// findFormat returns the first upstream format with the given itag.
func findFormat(list youtube.FormatList, itag int) (*youtube.Format, error) {
	matches := list.Itag(itag)
	if len(matches) == 0 {
		return nil, errors.Wrapf(ErrUnknownFormat, "itag %d", itag)
	}
	return &matches[0], nil
}

func hasVideo(f youtube.Format) bool {
	return strings.HasPrefix(f.MimeType, "video/") || f.QualityLabel != ""
}
