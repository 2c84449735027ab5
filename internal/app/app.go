package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/pavelc4/aether-gateway/config"
	"github.com/pavelc4/aether-gateway/internal/handler"
	"github.com/pavelc4/aether-gateway/internal/provider"
	"github.com/pavelc4/aether-gateway/internal/stats"
	"github.com/pavelc4/aether-gateway/internal/streaming"
	"github.com/pavelc4/aether-gateway/internal/translate"
	"github.com/pavelc4/aether-gateway/pkg/buffer"
	"github.com/pavelc4/aether-gateway/pkg/client"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

type App struct {
	Cfg    *config.Config
	Server *http.Server
	Stats  *stats.Stats
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	gin.SetMode(gin.ReleaseMode)

	st := stats.New()

	apiClient := client.NewAPIClient(cfg.RequestTimeout())
	streamClient := client.NewStreamClient(cfg.StreamHeaderTimeout())

	yt := provider.NewYouTube(streamClient, cfg.MetadataTimeout())
	gateway := translate.NewGateway(
		translate.NewLibreTranslate(cfg.PrimaryEndpoint, cfg.PrimaryAPIKey, apiClient),
		translate.NewMyMemory(cfg.FallbackEndpoint, cfg.FallbackEmail, apiClient),
		st,
	)
	streamMgr := streaming.NewManager(buffer.NewPool(cfg.StreamChunkSize), st)

	router := NewRouter(cfg.AllowOrigins, st, Handlers{
		Basic:     handler.NewBasicHandler(),
		Media:     handler.NewMediaHandler(yt, streamMgr),
		Translate: handler.NewTranslateHandler(gateway),
		Admin:     handler.NewAdminHandler(st, streamMgr, nil),
	})

	logger.Info("Application initialized successfully",
		"addr", cfg.Addr(),
		"primary", cfg.PrimaryEndpoint,
		"fallback", cfg.FallbackEndpoint,
		"request_timeout", cfg.RequestTimeout(),
	)

	return &App{
		Cfg: cfg,
		Server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		Stats: st,
	}, nil
}

// Start serves until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (a *App) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Backend running", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout())
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	return g.Wait()
}
