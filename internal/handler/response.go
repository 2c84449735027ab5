package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/pavelc4/aether-gateway/internal/translate"
)

const (
	MsgInvalidURL        = "Invalid YouTube URL"
	MsgVideoUnavailable  = "Invalid URL or video not available"
	MsgDownloadFailed    = "Download failed"
	MsgMissingParameters = "Missing parameters"
	MsgBothFailed        = "Both translation APIs failed. Please try again later."
	MsgTranslationFailed = "Translation failed completely."
	MsgStatusUnavailable = "Status unavailable"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

// translateFailure maps a translation gateway error to its response.
func translateFailure(err error) (int, errorResponse) {
	var (
		both      *translate.BothProvidersFailedError
		transport *translate.FallbackTransportError
	)
	switch {
	case errors.Is(err, translate.ErrMissingParameters):
		return http.StatusBadRequest, errorResponse{Error: MsgMissingParameters}
	case errors.As(err, &both):
		return http.StatusInternalServerError, errorResponse{Error: MsgBothFailed}
	case errors.As(err, &transport):
		return http.StatusInternalServerError, errorResponse{Error: MsgTranslationFailed, Details: transport.Err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: MsgTranslationFailed}
	}
}
