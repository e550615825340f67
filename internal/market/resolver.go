package market

import (
	"context"
	"regexp"
	"strings"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
)

// tickerPattern matches inputs that already look like a ticker, such as "AAPL" or "BRK.B".
var tickerPattern = regexp.MustCompile(`^[A-Za-z.]{1,8}$`)

// SymbolSearcher finds the ticker best matching a free-text query.
type SymbolSearcher interface {
	SearchSymbol(ctx context.Context, query string) (string, error)
}

// Resolver turns a position name into a ticker symbol.
type Resolver struct {
	searcher SymbolSearcher
	logger   *logging.Logger
}

// NewResolver creates a Resolver. searcher may be nil, in which case only the
// ticker-shaped shortcut and the identity fallback apply.
func NewResolver(searcher SymbolSearcher, logger *logging.Logger) *Resolver {
	return &Resolver{searcher: searcher, logger: logger}
}

// Resolve never fails. Ticker-shaped input is uppercased and used as is;
// anything else goes to the symbol search, and when that fails the
// uppercased input is returned as a best effort.
func (r *Resolver) Resolve(ctx context.Context, input string) string {
	trimmed := strings.TrimSpace(input)
	fallback := strings.ToUpper(trimmed)

	if tickerPattern.MatchString(trimmed) {
		return fallback
	}
	if r.searcher == nil || trimmed == "" {
		return fallback
	}

	symbol, err := r.searcher.SearchSymbol(ctx, trimmed)
	if err != nil {
		r.logger.Warn().Err(err).Str("input", trimmed).Msg("symbol search failed, using input as symbol")
		return fallback
	}

	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fallback
	}
	return symbol
}
