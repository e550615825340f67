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

// PositionService handles position CRUD scoped to portfolios.
type PositionService struct {
	positionRepo  *repository.PositionRepository
	portfolioRepo *repository.PortfolioRepository
}

// NewPositionService creates a new PositionService.
func NewPositionService(
	positionRepo *repository.PositionRepository,
	portfolioRepo *repository.PortfolioRepository,
) *PositionService {
	return &PositionService{
		positionRepo:  positionRepo,
		portfolioRepo: portfolioRepo,
	}
}

// GetPositions lists the positions of one portfolio, or of all portfolios when
// portfolioID is empty. A non-empty portfolioID must exist.
func (s *PositionService) GetPositions(ctx context.Context, portfolioID string) ([]model.Position, error) {
	if portfolioID != "" {
		if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
			return nil, err
		}
	}
	return s.positionRepo.GetPositions(ctx, portfolioID)
}

// CreatePosition adds a position to an existing portfolio.
func (s *PositionService) CreatePosition(ctx context.Context, req request.CreatePositionRequest) (*model.Position, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, req.PortfolioID); err != nil {
		return nil, err
	}

	position := &model.Position{
		ID:          uuid.New().String(),
		PortfolioID: req.PortfolioID,
		Name:        strings.TrimSpace(req.Name),
		Quantity:    req.Quantity,
		BuyPrice:    req.BuyPrice,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.positionRepo.InsertPosition(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return position, nil
}

// UpdatePosition applies the provided fields; omitted fields remain unchanged.
func (s *PositionService) UpdatePosition(ctx context.Context, id string, req request.UpdatePositionRequest) (*model.Position, error) {
	position, err := s.positionRepo.GetPosition(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		position.Name = strings.TrimSpace(*req.Name)
	}
	if req.Quantity != nil {
		position.Quantity = *req.Quantity
	}
	if req.BuyPrice != nil {
		position.BuyPrice = *req.BuyPrice
	}

	if err := s.positionRepo.UpdatePosition(ctx, &position); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}

	return &position, nil
}

// DeletePosition removes a position. Returns ErrPositionNotFound if it does not exist.
func (s *PositionService) DeletePosition(ctx context.Context, id string) error {
	return s.positionRepo.DeletePosition(ctx, id)
}
