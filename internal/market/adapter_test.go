package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/testutil"
)

func newAdapter(searcher *testutil.MockSymbolSearcher, fetcher *testutil.MockHistoryFetcher) *market.Adapter {
	logger := logging.NewSilentLogger()
	return market.NewAdapter(market.NewResolver(searcher, logger), fetcher, logger, 4)
}

func TestAdapter_PriceOn(t *testing.T) {
	ctx := context.Background()
	fetcher := testutil.NewMockHistoryFetcher().WithSeries("AAPL",
		testutil.Point("2024-01-01", 10),
		testutil.Point("2024-01-03", 12),
	)
	adapter := newAdapter(testutil.NewMockSymbolSearcher(), fetcher)

	t.Run("returns close on or before date", func(t *testing.T) {
		quote, err := adapter.PriceOn(ctx, "aapl", testutil.Date("2024-01-02"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if quote.Close != 10 || quote.Date != "2024-01-01" || quote.Symbol != "AAPL" {
			t.Errorf("Unexpected quote: %+v", quote)
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := adapter.PriceOn(ctx, "ZZZZ", testutil.Date("2024-01-02"))
		if !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("Expected ErrSymbolNotFound, got %v", err)
		}
	})

	t.Run("empty series", func(t *testing.T) {
		fetcher.WithSeries("EMPTY")
		_, err := adapter.PriceOn(ctx, "EMPTY", testutil.Date("2024-01-02"))
		if !errors.Is(err, apperrors.ErrNoPriceData) {
			t.Errorf("Expected ErrNoPriceData, got %v", err)
		}
	})
}

func TestAdapter_Enrich(t *testing.T) {
	ctx := context.Background()

	t.Run("computes latest, last year and yoy", func(t *testing.T) {
		fetcher := testutil.NewMockHistoryFetcher().WithSeries("AAPL",
			testutil.Point("2023-06-14", 90),
			testutil.Point("2023-06-15", 100),
			testutil.Point("2024-06-14", 110),
		)
		adapter := newAdapter(testutil.NewMockSymbolSearcher(), fetcher)

		e := adapter.Enrich(ctx, "AAPL", testutil.Date("2024-06-15"))
		if e.Latest == nil || *e.Latest != 110 {
			t.Fatalf("Expected latest 110, got %v", e.Latest)
		}
		if e.LastYear == nil || *e.LastYear != 100 {
			t.Fatalf("Expected last year 100, got %v", e.LastYear)
		}
		if e.YoY == nil || !almostEqual(*e.YoY, 10) {
			t.Errorf("Expected yoy 10, got %v", e.YoY)
		}
	})

	t.Run("failure leaves nil fields with resolved symbol", func(t *testing.T) {
		searcher := testutil.NewMockSymbolSearcher().WithSymbol("Acme Widgets", "ACME")
		adapter := newAdapter(searcher, testutil.NewMockHistoryFetcher())

		e := adapter.Enrich(ctx, "Acme Widgets", testutil.Date("2024-06-15"))
		if e.Symbol != "ACME" {
			t.Errorf("Expected symbol ACME, got %s", e.Symbol)
		}
		if e.Latest != nil || e.LastYear != nil || e.YoY != nil {
			t.Errorf("Expected nil prices, got %+v", e)
		}
	})
}

// TestAdapter_EnrichAll tests concurrent enrichment with failure isolation.
//
// WHY: One unknown symbol must not take down the whole report.
func TestAdapter_EnrichAll(t *testing.T) {
	fetcher := testutil.NewMockHistoryFetcher().
		WithSeries("AAPL", testutil.Point("2024-01-02", 100)).
		WithError("BOOM", errors.New("upstream exploded")).
		WithSeries("MSFT", testutil.Point("2024-01-02", 300))
	adapter := newAdapter(testutil.NewMockSymbolSearcher(), fetcher)

	positions := []model.Position{
		{ID: "p1", Name: "AAPL"},
		{ID: "p2", Name: "BOOM"},
		{ID: "p3", Name: "MSFT"},
	}

	results := adapter.EnrichAll(context.Background(), positions, testutil.Date("2024-01-05"))

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results["p1"].Latest == nil || *results["p1"].Latest != 100 {
		t.Errorf("Expected p1 latest 100, got %v", results["p1"].Latest)
	}
	if results["p2"].Latest != nil {
		t.Errorf("Expected p2 unenriched, got %v", *results["p2"].Latest)
	}
	if results["p3"].Latest == nil || *results["p3"].Latest != 300 {
		t.Errorf("Expected p3 latest 300, got %v", results["p3"].Latest)
	}
}
