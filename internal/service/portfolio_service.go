package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	positionRepo  *repository.PositionRepository
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	positionRepo *repository.PositionRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		positionRepo:  positionRepo,
	}
}

// GetAllPortfolios retrieves all portfolios, oldest first.
func (s *PortfolioService) GetAllPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(ctx)
}

// GetPortfolio retrieves a single portfolio.
// Returns ErrPortfolioNotFound if it does not exist.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
}

// CreatePortfolio stores a new portfolio under the trimmed name.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	portfolio := &model.Portfolio{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// DeletePortfolio removes a portfolio together with its positions.
// Share links that pointed at it are kept with their portfolio reference cleared.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}

// GetPortfolioMetrics computes the valuation metrics of one portfolio.
func (s *PortfolioService) GetPortfolioMetrics(ctx context.Context, portfolioID string) (model.Metrics, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return model.Metrics{}, err
	}

	positions, err := s.positionRepo.GetPositions(ctx, portfolioID)
	if err != nil {
		return model.Metrics{}, err
	}

	return ComputeMetrics(positions), nil
}
