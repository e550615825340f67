package service

import (
	"context"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// PriceLookup answers point-in-time price questions.
type PriceLookup interface {
	PriceOn(ctx context.Context, input string, date time.Time) (model.PriceQuote, error)
}

// PriceService serves single closes for a symbol or company name.
type PriceService struct {
	lookup PriceLookup
}

// NewPriceService creates a new PriceService.
func NewPriceService(lookup PriceLookup) *PriceService {
	return &PriceService{lookup: lookup}
}

// GetPrice returns the close on or before date (YYYY-MM-DD) for symbol.
//
// Returns ErrInvalidSymbol or ErrInvalidDate for bad input and
// ErrSymbolNotFound or ErrNoPriceData when the market has no answer.
func (s *PriceService) GetPrice(ctx context.Context, symbol, date string) (model.PriceQuote, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return model.PriceQuote{}, apperrors.ErrInvalidSymbol
	}

	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return model.PriceQuote{}, apperrors.ErrInvalidDate
	}

	return s.lookup.PriceOn(ctx, symbol, day)
}
