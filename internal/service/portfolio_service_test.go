package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/testutil"
)

// TestPortfolioService_GetAllPortfolios tests the GetAllPortfolios method.
//
// WHY: Portfolio retrieval is a fundamental operation. This ensures the service
// returns every portfolio in creation order, including the empty case.
func TestPortfolioService_GetAllPortfolios(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice when no portfolios exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolios, err := svc.GetAllPortfolios(ctx)
		if err != nil {
			t.Fatalf("GetAllPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 0 {
			t.Errorf("Expected empty slice, got %d portfolios", len(portfolios))
		}
	})

	t.Run("returns portfolios in creation order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		created := testutil.CreatePortfolios(t, db, 5)

		portfolios, err := svc.GetAllPortfolios(ctx)
		if err != nil {
			t.Fatalf("GetAllPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 5 {
			t.Fatalf("Expected 5 portfolios, got %d", len(portfolios))
		}
		for i := range created {
			if portfolios[i].ID != created[i].ID {
				t.Errorf("Expected %s at position %d, got %s", created[i].ID, i, portfolios[i].ID)
			}
		}
	})
}

func TestPortfolioService_CreatePortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	p, err := svc.CreatePortfolio(context.Background(), request.CreatePortfolioRequest{Name: "  Retirement  "})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Name != "Retirement" {
		t.Errorf("Expected trimmed name, got %q", p.Name)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Errorf("Expected id and createdAt to be set, got %+v", p)
	}
	testutil.AssertRowCount(t, db, "portfolio", 1)
}

func TestPortfolioService_GetPortfolioMetrics(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	p := testutil.CreatePortfolio(t, db, "Metrics")
	testutil.NewPosition(p.ID).WithQuantity(10).WithBuyPrice(100).Build(t, db)
	testutil.NewPosition(p.ID).WithQuantity(10).WithBuyPrice(50).Build(t, db)

	m, err := svc.GetPortfolioMetrics(ctx, p.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.TotalValue != 1500 || m.TotalQuantity != 20 || m.AvgBuyPrice != 75 {
		t.Errorf("Unexpected metrics: %+v", m)
	}

	if _, err := svc.GetPortfolioMetrics(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
	}
}
