package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-gateway/internal/stats"
	"github.com/pavelc4/aether-gateway/internal/streaming"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

// SystemProbe gathers host metrics for the status report.
type SystemProbe func(ctx context.Context) (*stats.SystemInfo, error)

type AdminHandler struct {
	stats     *stats.Stats
	streamMgr *streaming.Manager
	probe     SystemProbe
}

func NewAdminHandler(st *stats.Stats, sm *streaming.Manager, probe SystemProbe) *AdminHandler {
	if probe == nil {
		probe = stats.CollectSystemInfo
	}
	return &AdminHandler{stats: st, streamMgr: sm, probe: probe}
}

type statusResponse struct {
	Service       stats.Snapshot           `json:"service"`
	ActiveStreams []streaming.ActiveStream `json:"active_streams"`
	System        *stats.SystemInfo        `json:"system"`
}

func (h *AdminHandler) HandleStatus(c *gin.Context) {
	sys, err := h.probe(c.Request.Context())
	if err != nil {
		logger.Error("Failed to collect system info", "error", err)
		fail(c, http.StatusInternalServerError, MsgStatusUnavailable)
		return
	}

	resp := statusResponse{
		Service:       h.stats.Snapshot(),
		ActiveStreams: []streaming.ActiveStream{},
		System:        sys,
	}
	if h.streamMgr != nil {
		resp.ActiveStreams = h.streamMgr.Active()
	}
	c.JSON(http.StatusOK, resp)
}
