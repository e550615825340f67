package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
)

const allPortfoliosTitle = "Portfolio Summary"

// Enricher attaches market data to positions.
type Enricher interface {
	EnrichAll(ctx context.Context, positions []model.Position, asOf time.Time) map[string]model.Enrichment
}

// CalcPreferences supplies the stored calculation preferences.
type CalcPreferences interface {
	LoadCalc() model.CalculationPreferences
}

// AssembleReport builds report rows from positions and their enrichment.
//
// Each row is valued at latest × quantity, or at buyPrice × quantity when no
// latest close is known. Totals stay on the buy-price basis, so the report
// shows both bases side by side.
func AssembleReport(positions []model.Position, enrichment map[string]model.Enrichment) model.Report {
	rows := make([]model.ReportRow, 0, len(positions))
	total := decimal.Zero

	for _, p := range positions {
		e, ok := enrichment[p.ID]
		if !ok || e.Symbol == "" {
			e.Symbol = strings.ToUpper(strings.TrimSpace(p.Name))
		}

		qty := decimal.NewFromFloat(p.Quantity)
		cost := qty.Mul(decimal.NewFromFloat(p.BuyPrice))
		latestValue := cost
		if e.Latest != nil {
			latestValue = qty.Mul(decimal.NewFromFloat(*e.Latest))
		}
		total = total.Add(latestValue)

		rows = append(rows, model.ReportRow{
			PositionID:  p.ID,
			Name:        p.Name,
			Symbol:      e.Symbol,
			Quantity:    p.Quantity,
			BuyPrice:    p.BuyPrice,
			CostValue:   cost.InexactFloat64(),
			Latest:      e.Latest,
			LastYear:    e.LastYear,
			YoY:         e.YoY,
			LatestValue: latestValue.InexactFloat64(),
		})
	}

	return model.Report{
		Totals:           ComputeMetrics(positions),
		Rows:             rows,
		TotalLatestValue: total.InexactFloat64(),
		WeightedYoY:      market.WeightedYoY(rows),
	}
}

// ReportService gathers positions, enriches them and assembles reports.
type ReportService struct {
	portfolioRepo *repository.PortfolioRepository
	positionRepo  *repository.PositionRepository
	enricher      Enricher
	prefs         CalcPreferences
	currency      string
	now           func() time.Time
}

// NewReportService creates a new ReportService. currency is the ISO code
// monetary values are formatted in.
func NewReportService(
	portfolioRepo *repository.PortfolioRepository,
	positionRepo *repository.PositionRepository,
	enricher Enricher,
	prefs CalcPreferences,
	currency string,
) *ReportService {
	return &ReportService{
		portfolioRepo: portfolioRepo,
		positionRepo:  positionRepo,
		enricher:      enricher,
		prefs:         prefs,
		currency:      currency,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for the report date.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// BuildReport assembles the summary of one portfolio, or of every position
// when portfolioID is empty. Enrichment failures never fail the report.
func (s *ReportService) BuildReport(ctx context.Context, portfolioID string) (model.Report, error) {
	title := allPortfoliosTitle
	if portfolioID != "" {
		portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
		if err != nil {
			return model.Report{}, err
		}
		title = portfolio.Name
	}

	positions, err := s.positionRepo.GetPositions(ctx, portfolioID)
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to load report positions: %w", err)
	}

	now := s.now().UTC()
	enrichment := s.enricher.EnrichAll(ctx, positions, now)

	report := AssembleReport(positions, enrichment)
	report.Title = title
	report.PortfolioID = portfolioID
	report.GeneratedAt = now
	report.AsOf = now
	report.Currency = s.currency

	calc := s.prefs.LoadCalc()
	report.ExpectedAnnualReturnPct = calc.ExpectedAnnualReturnPct
	report.ProjectedValue = Project(report.TotalLatestValue, calc.ExpectedAnnualReturnPct)

	return report, nil
}
