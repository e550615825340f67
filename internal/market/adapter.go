// Package market resolves position names to tickers and turns daily price
// histories into point-in-time closes and year-over-year figures.
package market

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// Adapter composes ticker resolution and history lookup.
type Adapter struct {
	resolver       *Resolver
	history        HistoryFetcher
	logger         *logging.Logger
	maxConcurrency int
}

// NewAdapter creates an Adapter. maxConcurrency bounds how many positions are
// enriched at once; values below 1 mean no bound.
func NewAdapter(resolver *Resolver, history HistoryFetcher, logger *logging.Logger, maxConcurrency int) *Adapter {
	return &Adapter{
		resolver:       resolver,
		history:        history,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// PriceOn returns the close on or before date for the symbol that input resolves to.
// Errors are ErrSymbolNotFound or ErrNoPriceData, possibly wrapped.
func (a *Adapter) PriceOn(ctx context.Context, input string, date time.Time) (model.PriceQuote, error) {
	symbol := a.resolver.Resolve(ctx, input)

	series, err := a.history.FetchDaily(ctx, symbol)
	if err != nil {
		return model.PriceQuote{}, err
	}

	point, ok := CloseOnOrBefore(series.Points, date)
	if !ok {
		return model.PriceQuote{}, fmt.Errorf("%s: %w", symbol, apperrors.ErrNoPriceData)
	}

	return model.PriceQuote{
		Close:  point.Close,
		Date:   point.Date.Format("2006-01-02"),
		Symbol: symbol,
	}, nil
}

// Enrich gathers the latest close, the close one year before asOf and the
// resulting YoY for a single position name. Failures are logged and leave
// the price fields nil; Enrich itself never fails.
func (a *Adapter) Enrich(ctx context.Context, name string, asOf time.Time) model.Enrichment {
	symbol := a.resolver.Resolve(ctx, name)
	enrichment := model.Enrichment{Symbol: symbol}

	series, err := a.history.FetchDaily(ctx, symbol)
	if err != nil {
		a.logger.Warn().Err(err).Str("name", name).Str("symbol", symbol).Msg("price history unavailable, position left unenriched")
		return enrichment
	}

	latest, ok := CloseOnOrBefore(series.Points, asOf)
	if !ok {
		a.logger.Warn().Str("symbol", symbol).Msg("price history is empty")
		return enrichment
	}
	lastYear, _ := CloseOnOrBefore(series.Points, asOf.AddDate(-1, 0, 0))

	enrichment.Latest = &latest.Close
	enrichment.LastYear = &lastYear.Close
	enrichment.YoY = YoY(enrichment.Latest, enrichment.LastYear)

	return enrichment
}

// EnrichAll enriches every position concurrently and returns the results keyed
// by position ID. One position's failure never affects another.
func (a *Adapter) EnrichAll(ctx context.Context, positions []model.Position, asOf time.Time) map[string]model.Enrichment {
	results := make([]model.Enrichment, len(positions))

	var g errgroup.Group
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	for i, p := range positions {
		g.Go(func() error {
			results[i] = a.Enrich(ctx, p.Name, asOf)
			return nil
		})
	}
	_ = g.Wait()

	byPosition := make(map[string]model.Enrichment, len(positions))
	for i, p := range positions {
		byPosition[p.ID] = results[i]
	}
	return byPosition
}
