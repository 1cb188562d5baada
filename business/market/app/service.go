package app

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	calcDomain "github.com/p2ppro/p2p-calc/business/calc/domain"
	"github.com/p2ppro/p2p-calc/business/market/domain"
	"github.com/p2ppro/p2p-calc/internal/apm"
	"github.com/p2ppro/p2p-calc/internal/logger"
)

// Snapshot is one refresh cycle's worth of market data.
type Snapshot struct {
	Selection domain.Selection
	Rates     domain.Rates
	Offers    []domain.Offer
	FetchedAt time.Time
}

// Service fetches market data, degrading to reference fallbacks per data
// kind: a provider failure for one kind never discards the other. Only a
// cancelled context aborts a cycle.
type Service struct {
	provider DataProvider
	log      logger.LoggerInterface
	tracer   apm.Tracer

	fallbackCounter metric.Int64Counter
	refreshCounter  metric.Int64Counter
}

// NewService creates a market data Service over the given provider.
func NewService(provider DataProvider, log logger.LoggerInterface) (*Service, error) {
	meter := otel.GetMeterProvider().Meter("market_service")

	fallbackCounter, err := meter.Int64Counter(
		"market_fallbacks_total",
		metric.WithDescription("Refreshes that degraded to fallback data, by kind"),
	)
	if err != nil {
		return nil, err
	}

	refreshCounter, err := meter.Int64Counter(
		"market_refreshes_total",
		metric.WithDescription("Completed refresh cycles"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		provider:        provider,
		log:             log,
		tracer:          apm.NewTracer("market_service"),
		fallbackCounter: fallbackCounter,
		refreshCounter:  refreshCounter,
	}, nil
}

// Rates fetches current rates, falling back to reference rates on failure.
func (s *Service) Rates(ctx context.Context, sel domain.Selection) (domain.Rates, error) {
	rates, err := s.provider.FetchRates(ctx, sel)
	if err != nil {
		if ctxErr := cancelled(ctx, err); ctxErr != nil {
			return domain.Rates{}, ctxErr
		}
		s.degrade(ctx, "rates", sel, err)
		return domain.FallbackRates(sel.Coin, sel.Fiat, time.Now()), nil
	}

	if !rates.Valid() {
		s.degrade(ctx, "rates", sel, errors.New("provider returned non-positive rates"))
		return domain.FallbackRates(sel.Coin, sel.Fiat, time.Now()), nil
	}

	rates.Source = domain.SourceLive
	return rates, nil
}

// Offers fetches current offers, falling back to reference offers on failure.
func (s *Service) Offers(ctx context.Context, sel domain.Selection) ([]domain.Offer, error) {
	offers, err := s.provider.FetchOffers(ctx, sel)
	if err != nil {
		if ctxErr := cancelled(ctx, err); ctxErr != nil {
			return nil, ctxErr
		}
		s.degrade(ctx, "offers", sel, err)
		return domain.FallbackOffers(sel.Exchange, sel.Fiat), nil
	}

	if len(offers) == 0 {
		s.degrade(ctx, "offers", sel, errors.New("provider returned no offers"))
		return domain.FallbackOffers(sel.Exchange, sel.Fiat), nil
	}

	return offers, nil
}

// Insight fetches an analysis of the calculation, falling back to generic
// advice on failure.
func (s *Service) Insight(ctx context.Context, sel domain.Selection, r calcDomain.Result) (domain.Insight, error) {
	insight, err := s.provider.FetchInsight(ctx, sel, r)
	if err != nil {
		if ctxErr := cancelled(ctx, err); ctxErr != nil {
			return domain.Insight{}, ctxErr
		}
		s.degrade(ctx, "insight", sel, err)
		return domain.FallbackInsight(), nil
	}

	insight.Source = domain.SourceLive
	return insight, nil
}

// Refresh fetches rates and offers concurrently and assembles a snapshot.
// It fails only when the context is cancelled mid-cycle.
func (s *Service) Refresh(ctx context.Context, sel domain.Selection) (Snapshot, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "market.refresh")
	defer span.End()

	span.SetAttributes(
		attribute.String("exchange", sel.Exchange),
		attribute.String("coin", sel.Coin),
		attribute.String("fiat", sel.Fiat),
	)

	var (
		rates  domain.Rates
		offers []domain.Offer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rates, err = s.Rates(gctx, sel)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = s.Offers(gctx, sel)
		return err
	})

	if err := g.Wait(); err != nil {
		span.NoticeError(err)
		return Snapshot{}, err
	}

	s.refreshCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("fiat", sel.Fiat),
		attribute.String("source", string(rates.Source)),
	))

	return Snapshot{
		Selection: sel,
		Rates:     rates,
		Offers:    offers,
		FetchedAt: time.Now(),
	}, nil
}

// cancelled returns the context error if the failure was caused by the
// context ending, nil otherwise.
func cancelled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (s *Service) degrade(ctx context.Context, kind string, sel domain.Selection, err error) {
	s.log.Warn(ctx, "market data degraded to fallback",
		"kind", kind,
		"fiat", sel.Fiat,
		"exchange", sel.Exchange,
		"error", err)

	s.fallbackCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("fiat", sel.Fiat),
	))
}
