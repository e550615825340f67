package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios ordered by creation time, oldest first.
// Returns an empty slice if there are none.
func (s *PortfolioRepository) GetPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	query := `
		SELECT id, name, created_at
		FROM portfolio
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var createdAtStr string

		if err := rows.Scan(&p.ID, &p.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio.
// Returns ErrPortfolioNotFound if no portfolio has the given ID.
func (s *PortfolioRepository) GetPortfolioOnID(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, name, created_at
		FROM portfolio
		WHERE id = ?
	`

	var p model.Portfolio
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, portfolioID).Scan(&p.ID, &p.Name, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// InsertPortfolio stores a new portfolio.
func (s *PortfolioRepository) InsertPortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, name, created_at)
		VALUES (?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, p.ID, p.Name, FormatTime(p.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// DeletePortfolio removes a portfolio. Its positions are removed by the
// foreign key cascade and share links pointing at it are detached.
// Returns ErrPortfolioNotFound if no portfolio has the given ID.
func (s *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}
