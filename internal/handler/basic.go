package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const livenessMessage = "✅ YouTube Thumbnail Downloader API is running..."

type BasicHandler struct{}

func NewBasicHandler() *BasicHandler {
	return &BasicHandler{}
}

func (h *BasicHandler) HandleRoot(c *gin.Context) {
	c.String(http.StatusOK, livenessMessage)
}
