package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// MockSymbolSearcher is a mock implementation of market.SymbolSearcher for testing.
// It answers from a fixed query -> symbol table instead of calling Yahoo.
type MockSymbolSearcher struct {
	mu sync.Mutex
	// Symbols maps a search query to the symbol returned for it
	Symbols map[string]string
	// MockError is returned for every query when set
	MockError error
	calls     int
}

// NewMockSymbolSearcher creates a searcher that knows no queries.
func NewMockSymbolSearcher() *MockSymbolSearcher {
	return &MockSymbolSearcher{Symbols: make(map[string]string)}
}

// WithSymbol registers the answer for a query.
func (m *MockSymbolSearcher) WithSymbol(query, symbol string) *MockSymbolSearcher {
	m.Symbols[query] = symbol
	return m
}

// WithError configures the mock to fail every search.
func (m *MockSymbolSearcher) WithError(err error) *MockSymbolSearcher {
	m.MockError = err
	return m
}

// SearchSymbol returns the registered symbol, or an error for unknown queries.
func (m *MockSymbolSearcher) SearchSymbol(_ context.Context, query string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.MockError != nil {
		return "", m.MockError
	}
	symbol, ok := m.Symbols[query]
	if !ok {
		return "", fmt.Errorf("no symbol found for %q", query)
	}
	return symbol, nil
}

// CallCount returns how many searches were made.
func (m *MockSymbolSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockHistoryFetcher is a mock implementation of market.HistoryFetcher for testing.
// Unknown symbols fail with ErrSymbolNotFound.
type MockHistoryFetcher struct {
	mu     sync.Mutex
	series map[string][]model.PricePoint
	errs   map[string]error
	calls  map[string]int
	// Delay is slept before answering, to widen concurrency windows in tests
	Delay time.Duration
}

// NewMockHistoryFetcher creates a fetcher that knows no symbols.
func NewMockHistoryFetcher() *MockHistoryFetcher {
	return &MockHistoryFetcher{
		series: make(map[string][]model.PricePoint),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// WithSeries registers the history returned for symbol.
func (m *MockHistoryFetcher) WithSeries(symbol string, points ...model.PricePoint) *MockHistoryFetcher {
	m.series[strings.ToUpper(symbol)] = points
	return m
}

// WithError makes fetches of symbol fail with err.
func (m *MockHistoryFetcher) WithError(symbol string, err error) *MockHistoryFetcher {
	m.errs[strings.ToUpper(symbol)] = err
	return m
}

// FetchDaily returns the registered series for symbol.
func (m *MockHistoryFetcher) FetchDaily(ctx context.Context, symbol string) (model.PriceSeries, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return model.PriceSeries{}, ctx.Err()
		}
	}

	key := strings.ToUpper(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[key]++
	if err, ok := m.errs[key]; ok {
		return model.PriceSeries{}, err
	}
	points, ok := m.series[key]
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("%s: %w", symbol, apperrors.ErrSymbolNotFound)
	}
	return model.PriceSeries{Symbol: key, Points: points}, nil
}

// CallCount returns how many fetches were made for symbol.
func (m *MockHistoryFetcher) CallCount(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[strings.ToUpper(symbol)]
}

// Point builds a price point from a YYYY-MM-DD date. It panics on a bad date,
// which only ever happens in a broken test.
func Point(date string, closePrice float64) model.PricePoint {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.PricePoint{Date: d, Close: closePrice}
}

// Date parses a YYYY-MM-DD date, panicking on error.
func Date(date string) time.Time {
	return Point(date, 0).Date
}
