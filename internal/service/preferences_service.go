package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/preferences"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/secrets"
)

// PreferencesService reads and writes user preferences and valuation snapshots.
// The default share password is sealed with box before it reaches the store.
type PreferencesService struct {
	store      *preferences.Store
	portfolios *PortfolioService
	box        *secrets.Box
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(store *preferences.Store, portfolios *PortfolioService, box *secrets.Box) *PreferencesService {
	return &PreferencesService{store: store, portfolios: portfolios, box: box}
}

func (s *PreferencesService) GetCalcPreferences() model.CalculationPreferences {
	return s.store.LoadCalc()
}

// UpdateCalcPreferences merges the provided fields into the stored preferences.
func (s *PreferencesService) UpdateCalcPreferences(req request.UpdateCalcPreferencesRequest) (model.CalculationPreferences, error) {
	prefs := s.store.LoadCalc()
	if req.CurrencySymbol != nil {
		prefs.CurrencySymbol = strings.TrimSpace(*req.CurrencySymbol)
	}
	if req.ExpectedAnnualReturnPct != nil {
		prefs.ExpectedAnnualReturnPct = *req.ExpectedAnnualReturnPct
	}

	if err := s.store.SaveCalc(prefs); err != nil {
		return model.CalculationPreferences{}, err
	}
	return prefs, nil
}

// GetSharePreferences returns the share defaults with the password opened.
// A password sealed under a different key is dropped rather than returned.
func (s *PreferencesService) GetSharePreferences() model.SharePreferences {
	prefs := s.store.LoadShare()
	if prefs.Password == "" {
		return prefs
	}

	plain, err := s.box.Open(prefs.Password)
	if err != nil {
		prefs.Password = ""
		return prefs
	}
	prefs.Password = plain
	return prefs
}

// UpdateSharePreferences replaces the stored share defaults.
func (s *PreferencesService) UpdateSharePreferences(req request.UpdateSharePreferencesRequest) (model.SharePreferences, error) {
	stored := model.SharePreferences{ExpireInMinutes: req.ExpireInMinutes}
	if req.Password != "" {
		sealed, err := s.box.Seal(req.Password)
		if err != nil {
			return model.SharePreferences{}, fmt.Errorf("failed to protect default share password: %w", err)
		}
		stored.Password = sealed
	}

	if err := s.store.SaveShare(stored); err != nil {
		return model.SharePreferences{}, err
	}
	return model.SharePreferences{
		Password:        req.Password,
		ExpireInMinutes: req.ExpireInMinutes,
	}, nil
}

// GetSnapshot returns the last saved snapshot, or nil.
func (s *PreferencesService) GetSnapshot() *model.CalculationSnapshot {
	return s.store.LoadSnapshot()
}

// SaveSnapshot computes the metrics of a portfolio and stores them as the snapshot.
func (s *PreferencesService) SaveSnapshot(ctx context.Context, portfolioID string) (*model.CalculationSnapshot, error) {
	metrics, err := s.portfolios.GetPortfolioMetrics(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	snapshot := model.CalculationSnapshot{
		TotalValue:    metrics.TotalValue,
		AvgBuyPrice:   metrics.AvgBuyPrice,
		TotalQuantity: metrics.TotalQuantity,
		SavedAt:       time.Now().UTC(),
	}
	if err := s.store.SaveSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return &snapshot, nil
}
