package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/pavelc4/aether-gateway/internal/middleware"
	"github.com/pavelc4/aether-gateway/internal/provider"
	"github.com/pavelc4/aether-gateway/internal/streaming"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

const downloadFilename = "video.mp4"

// Streamer relays an opened upstream body to the client.
type Streamer interface {
	Stream(ctx context.Context, requestID string, input streaming.StreamInput, out streaming.Output) (int64, error)
}

type MediaHandler struct {
	provider provider.Provider
	streamer Streamer
}

func NewMediaHandler(p provider.Provider, s Streamer) *MediaHandler {
	return &MediaHandler{provider: p, streamer: s}
}

type urlRequest struct {
	URL string `json:"url"`
}

type thumbnailResponse struct {
	VideoID    string                `json:"videoId"`
	Thumbnails provider.ThumbnailSet `json:"thumbnails"`
}

type videoInfoResponse struct {
	Title   string                   `json:"title"`
	Formats []provider.FormatVariant `json:"formats"`
}

func (h *MediaHandler) HandleThumbnail(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidURL)
		return
	}

	ref, err := provider.NewVideoRef(req.URL)
	if err != nil {
		logger.Debug("Thumbnail rejected", "url", req.URL)
		fail(c, http.StatusBadRequest, MsgInvalidURL)
		return
	}

	c.JSON(http.StatusOK, thumbnailResponse{
		VideoID:    ref.ID,
		Thumbnails: provider.Thumbnails(ref.ID),
	})
}

func (h *MediaHandler) HandleVideoInfo(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		fail(c, http.StatusBadRequest, MsgVideoUnavailable)
		return
	}

	info, err := h.provider.ListFormats(c.Request.Context(), req.URL)
	if err != nil {
		logger.Error("Video info failed", "url", req.URL, "error", err, "request_id", middleware.GetRequestID(c))
		fail(c, http.StatusBadRequest, MsgVideoUnavailable)
		return
	}

	c.JSON(http.StatusOK, videoInfoResponse{
		Title:   info.Title,
		Formats: info.Formats,
	})
}

func (h *MediaHandler) HandleDownload(c *gin.Context) {
	rawURL := c.Query("url")
	itag, err := strconv.Atoi(c.Query("itag"))
	if rawURL == "" || err != nil || itag <= 0 {
		fail(c, http.StatusBadRequest, MsgDownloadFailed)
		return
	}

	ctx := c.Request.Context()
	id := middleware.GetRequestID(c)

	stream, err := h.provider.OpenStream(ctx, rawURL, itag)
	if err != nil {
		logger.Error("Download open failed", "url", rawURL, "itag", itag, "error", err, "request_id", id)
		fail(c, http.StatusBadRequest, MsgDownloadFailed)
		return
	}

	_, err = h.streamer.Stream(ctx, id, streaming.StreamInput{Body: stream.Body, Size: stream.Size}, &attachment{c: c})
	switch {
	case err == nil:
	case errors.Is(err, streaming.ErrNotStarted):
		fail(c, http.StatusBadRequest, MsgDownloadFailed)
	case errors.Is(err, streaming.ErrClientGone):
		c.Abort()
	default:
		// Headers are out; drop the connection so the client sees truncation.
		panic(http.ErrAbortHandler)
	}
}

// attachment writes the relay as a video.mp4 download.
type attachment struct {
	c *gin.Context
}

func (a *attachment) Begin(size int64) {
	h := a.c.Writer.Header()
	h.Set("Content-Type", "video/mp4")
	h.Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	if size > 0 {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
	}
	a.c.Status(http.StatusOK)
	a.c.Writer.WriteHeaderNow()
}

func (a *attachment) Write(p []byte) (int, error) {
	return a.c.Writer.Write(p)
}

func (a *attachment) Flush() {
	a.c.Writer.Flush()
}
