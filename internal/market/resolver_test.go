package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/testutil"
)

// TestResolver_Resolve tests the two-step ticker resolution.
//
// WHY: Resolution must never fail. A ticker-shaped input skips the network,
// anything else is searched, and every failure degrades to the uppercased input.
func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewSilentLogger()

	t.Run("ticker-shaped input is uppercased without search", func(t *testing.T) {
		searcher := testutil.NewMockSymbolSearcher()
		r := market.NewResolver(searcher, logger)

		for input, want := range map[string]string{"aapl": "AAPL", " brk.b ": "BRK.B", "ABCDEFGH": "ABCDEFGH"} {
			if got := r.Resolve(ctx, input); got != want {
				t.Errorf("Resolve(%q): expected %s, got %s", input, want, got)
			}
		}
		if searcher.CallCount() != 0 {
			t.Errorf("Expected no searches, got %d", searcher.CallCount())
		}
	})

	t.Run("company name goes through search", func(t *testing.T) {
		searcher := testutil.NewMockSymbolSearcher().WithSymbol("Apple Inc", "AAPL")
		r := market.NewResolver(searcher, logger)

		if got := r.Resolve(ctx, "Apple Inc"); got != "AAPL" {
			t.Errorf("Expected AAPL, got %s", got)
		}
	})

	t.Run("nine letters is not ticker-shaped", func(t *testing.T) {
		searcher := testutil.NewMockSymbolSearcher().WithSymbol("berkshire", "BRK-B")
		r := market.NewResolver(searcher, logger)

		if got := r.Resolve(ctx, "berkshire"); got != "BRK-B" {
			t.Errorf("Expected BRK-B, got %s", got)
		}
	})

	t.Run("search failure falls back to uppercased input", func(t *testing.T) {
		searcher := testutil.NewMockSymbolSearcher().WithError(errors.New("network down"))
		r := market.NewResolver(searcher, logger)

		if got := r.Resolve(ctx, "tata motors"); got != "TATA MOTORS" {
			t.Errorf("Expected TATA MOTORS, got %s", got)
		}
	})

	t.Run("empty search result falls back", func(t *testing.T) {
		searcher := testutil.NewMockSymbolSearcher().WithSymbol("acme corp", "  ")
		r := market.NewResolver(searcher, logger)

		if got := r.Resolve(ctx, "acme corp"); got != "ACME CORP" {
			t.Errorf("Expected ACME CORP, got %s", got)
		}
	})

	t.Run("nil searcher", func(t *testing.T) {
		r := market.NewResolver(nil, logger)
		if got := r.Resolve(ctx, "some company 1"); got != "SOME COMPANY 1" {
			t.Errorf("Expected identity fallback, got %s", got)
		}
	})
}
