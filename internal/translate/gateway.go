package translate

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"

	"github.com/pavelc4/aether-gateway/internal/stats"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

// Gateway tries the primary provider once and, on any failure, the fallback
// once. The two are never called concurrently.
type Gateway struct {
	primary  Provider
	fallback Provider
	stats    *stats.Stats
}

func NewGateway(primary, fallback Provider, st *stats.Stats) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		stats:    st,
	}
}

func (g *Gateway) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	text, primaryErr := g.primary.Translate(ctx, req)
	if primaryErr == nil {
		g.recordSuccess(TierPrimary)
		logger.InfoWithDuration("Translated", start,
			"provider", g.primary.Name(),
			"source", req.Source,
			"target", req.Target,
		)
		return &Result{TranslatedText: text, Tier: TierPrimary, Provider: g.primary.Name()}, nil
	}

	kind := failureKind(primaryErr)
	logger.Warn("Primary translation failed, trying fallback",
		"provider", g.primary.Name(),
		"kind", kind,
		"error", primaryErr,
	)
	if g.stats != nil {
		g.stats.RecordPrimaryFailure(kind)
	}

	text, fallbackErr := g.fallback.Translate(ctx, req)
	if fallbackErr == nil {
		g.recordSuccess(TierFallback)
		logger.InfoWithDuration("Translated", start,
			"provider", g.fallback.Name(),
			"source", req.Source,
			"target", req.Target,
		)
		return &Result{TranslatedText: text, Tier: TierFallback, Provider: g.fallback.Name()}, nil
	}

	if g.stats != nil {
		g.stats.RecordTranslationFailure()
	}

	var shape *ShapeError
	if errors.As(fallbackErr, &shape) {
		err := &BothProvidersFailedError{Err: multierr.Append(primaryErr, fallbackErr)}
		logger.ErrorWithDuration("Translation failed", start, "error", err, "body", shape.Body)
		return nil, err
	}

	logger.ErrorWithDuration("Fallback unreachable", start,
		"provider", g.fallback.Name(),
		"error", fallbackErr,
	)
	return nil, &FallbackTransportError{
		Provider: g.fallback.Name(),
		Primary:  primaryErr,
		Err:      fallbackErr,
	}
}

func (g *Gateway) recordSuccess(tier Tier) {
	if g.stats != nil {
		g.stats.RecordTranslation(string(tier))
	}
}
