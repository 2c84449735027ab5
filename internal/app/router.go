package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-gateway/internal/handler"
	"github.com/pavelc4/aether-gateway/internal/middleware"
	"github.com/pavelc4/aether-gateway/internal/stats"
)

type Handlers struct {
	Basic     *handler.BasicHandler
	Media     *handler.MediaHandler
	Translate *handler.TranslateHandler
	Admin     *handler.AdminHandler
}

func NewRouter(allowOrigins []string, st *stats.Stats, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(middleware.DefaultSlowThreshold),
		middleware.Recover(),
		middleware.Metrics(st),
		cors.New(corsConfig(allowOrigins)),
	)

	r.GET("/", h.Basic.HandleRoot)

	api := r.Group("/api")
	api.POST("/get-thumbnail", h.Media.HandleThumbnail)
	api.POST("/video-info", h.Media.HandleVideoInfo)
	api.GET("/download", h.Media.HandleDownload)
	api.POST("/translate", h.Translate.HandleTranslate)
	api.GET("/status", h.Admin.HandleStatus)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", "Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
