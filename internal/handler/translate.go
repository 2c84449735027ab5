package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-gateway/internal/middleware"
	"github.com/pavelc4/aether-gateway/internal/translate"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

type Translator interface {
	Translate(ctx context.Context, req translate.Request) (*translate.Result, error)
}

type TranslateHandler struct {
	translator Translator
}

func NewTranslateHandler(t Translator) *TranslateHandler {
	return &TranslateHandler{translator: t}
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Source         string `json:"source,omitempty"`
}

func (h *TranslateHandler) HandleTranslate(c *gin.Context) {
	var req translate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgMissingParameters)
		return
	}

	res, err := h.translator.Translate(c.Request.Context(), req)
	if err != nil {
		status, body := translateFailure(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Translate request failed", "error", err, "request_id", middleware.GetRequestID(c))
		}
		c.AbortWithStatusJSON(status, body)
		return
	}

	resp := translateResponse{TranslatedText: res.TranslatedText}
	if res.Tier == translate.TierFallback {
		resp.Source = res.Provider + " Fallback"
	}
	c.JSON(http.StatusOK, resp)
}
