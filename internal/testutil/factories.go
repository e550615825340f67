package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/secrets"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Custom Portfolio").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:        MakeID(),
		Name:      MakePortfolioName("Test Portfolio"),
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithCreatedAt sets the creation time, which decides list order.
func (b *PortfolioBuilder) WithCreatedAt(createdAt time.Time) *PortfolioBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	p := model.Portfolio{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
	if err := repository.NewPortfolioRepository(db).InsertPortfolio(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return p
}

// Convenience functions

// CreatePortfolio creates a portfolio with the given name and default values.
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// CreatePortfolios creates multiple portfolios with increasing creation times.
func CreatePortfolios(t *testing.T, db *sql.DB, count int) []model.Portfolio {
	t.Helper()

	base := time.Now().UTC().Add(-time.Hour)
	portfolios := make([]model.Portfolio, count)
	for i := 0; i < count; i++ {
		portfolios[i] = NewPortfolio().WithCreatedAt(base.Add(time.Duration(i) * time.Second)).Build(t, db)
	}
	return portfolios
}

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	position := testutil.NewPosition(portfolio.ID).
//	    WithName("AAPL").
//	    WithQuantity(10).
//	    WithBuyPrice(150).
//	    Build(t, db)
type PositionBuilder struct {
	ID          string
	PortfolioID string
	Name        string
	Quantity    float64
	BuyPrice    float64
	CreatedAt   time.Time
}

// NewPosition creates a PositionBuilder for the given portfolio.
func NewPosition(portfolioID string) *PositionBuilder {
	return &PositionBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Name:        "AAPL",
		Quantity:    10,
		BuyPrice:    100,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithName sets the position name.
func (b *PositionBuilder) WithName(name string) *PositionBuilder {
	b.Name = name
	return b
}

// WithQuantity sets the quantity.
func (b *PositionBuilder) WithQuantity(quantity float64) *PositionBuilder {
	b.Quantity = quantity
	return b
}

// WithBuyPrice sets the buy price.
func (b *PositionBuilder) WithBuyPrice(price float64) *PositionBuilder {
	b.BuyPrice = price
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	p := model.Position{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		Name:        b.Name,
		Quantity:    b.Quantity,
		BuyPrice:    b.BuyPrice,
		CreatedAt:   b.CreatedAt,
	}
	if err := repository.NewPositionRepository(db).InsertPosition(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return p
}

// ShareLinkBuilder provides a fluent interface for creating test share links.
//
// Example usage:
//
//	link := testutil.NewShareLink().
//	    WithPassword(box, "secret").
//	    WithMaxViews(1).
//	    Build(t, db)
type ShareLinkBuilder struct {
	link model.ShareLink
}

// NewShareLink creates an unrestricted link with a random token.
func NewShareLink() *ShareLinkBuilder {
	return &ShareLinkBuilder{link: model.ShareLink{
		ID:        MakeID(),
		Token:     MakeToken(),
		ReportID:  model.DefaultReportID,
		CreatedAt: time.Now().UTC(),
	}}
}

// WithToken sets a custom token.
func (b *ShareLinkBuilder) WithToken(token string) *ShareLinkBuilder {
	b.link.Token = token
	return b
}

// WithPassword seals password with box and stores it on the link.
func (b *ShareLinkBuilder) WithPassword(box *secrets.Box, password string) *ShareLinkBuilder {
	sealed, err := box.Seal(password)
	if err != nil {
		panic(err)
	}
	b.link.Password = &sealed
	return b
}

// WithExpiresAt sets the expiry time.
func (b *ShareLinkBuilder) WithExpiresAt(expiresAt time.Time) *ShareLinkBuilder {
	b.link.ExpiresAt = &expiresAt
	return b
}

// WithMaxViews sets the view ceiling.
func (b *ShareLinkBuilder) WithMaxViews(maxViews int) *ShareLinkBuilder {
	b.link.MaxViews = &maxViews
	return b
}

// WithViews sets the views already consumed.
func (b *ShareLinkBuilder) WithViews(views int) *ShareLinkBuilder {
	b.link.Views = views
	return b
}

// WithPortfolio links the share to a portfolio.
func (b *ShareLinkBuilder) WithPortfolio(portfolioID string) *ShareLinkBuilder {
	b.link.PortfolioID = &portfolioID
	return b
}

// Build creates the share link in the database and returns it.
func (b *ShareLinkBuilder) Build(t *testing.T, db *sql.DB) model.ShareLink {
	t.Helper()

	link := b.link
	if err := repository.NewShareLinkRepository(db).InsertShareLink(context.Background(), &link); err != nil {
		t.Fatalf("Failed to create test share link: %v", err)
	}
	return link
}
