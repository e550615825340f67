package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/testutil"
)

func TestPositionService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPositionService(t, db)
	portfolio := testutil.CreatePortfolio(t, db, "Holdings")

	t.Run("create requires an existing portfolio", func(t *testing.T) {
		_, err := svc.CreatePosition(ctx, request.CreatePositionRequest{
			PortfolioID: testutil.MakeID(), Name: "AAPL", Quantity: 1, BuyPrice: 1,
		})
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	var positionID string
	t.Run("create stores trimmed name", func(t *testing.T) {
		p, err := svc.CreatePosition(ctx, request.CreatePositionRequest{
			PortfolioID: portfolio.ID, Name: " Apple Inc ", Quantity: 3, BuyPrice: 120,
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.Name != "Apple Inc" {
			t.Errorf("Expected trimmed name, got %q", p.Name)
		}
		positionID = p.ID
	})

	t.Run("update applies only provided fields", func(t *testing.T) {
		qty := 5.0
		p, err := svc.UpdatePosition(ctx, positionID, request.UpdatePositionRequest{Quantity: &qty})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.Quantity != 5 || p.BuyPrice != 120 || p.Name != "Apple Inc" {
			t.Errorf("Unexpected position: %+v", p)
		}
	})

	t.Run("list by unknown portfolio", func(t *testing.T) {
		if _, err := svc.GetPositions(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("update unknown position", func(t *testing.T) {
		if _, err := svc.UpdatePosition(ctx, testutil.MakeID(), request.UpdatePositionRequest{}); !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected ErrPositionNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := svc.DeletePosition(ctx, positionID); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		positions, _ := svc.GetPositions(ctx, portfolio.ID)
		if len(positions) != 0 {
			t.Errorf("Expected no positions, got %d", len(positions))
		}
	})
}
