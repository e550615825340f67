package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// GetPositions retrieves positions ordered by creation time.
// An empty portfolioID returns the positions of every portfolio.
func (s *PositionRepository) GetPositions(ctx context.Context, portfolioID string) ([]model.Position, error) {
	query := `
		SELECT id, portfolio_id, name, quantity, buy_price, created_at
		FROM position
	`
	var args []any
	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}

	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPosition retrieves a single position.
// Returns ErrPositionNotFound if no position has the given ID.
func (s *PositionRepository) GetPosition(ctx context.Context, positionID string) (model.Position, error) {
	query := `
		SELECT id, portfolio_id, name, quantity, buy_price, created_at
		FROM position
		WHERE id = ?
	`

	p, err := scanPosition(s.db.QueryRowContext(ctx, query, positionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, err
	}
	return p, nil
}

// InsertPosition stores a new position.
func (s *PositionRepository) InsertPosition(ctx context.Context, p *model.Position) error {
	query := `
		INSERT INTO position (id, portfolio_id, name, quantity, buy_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.PortfolioID,
		p.Name,
		p.Quantity,
		p.BuyPrice,
		FormatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	return nil
}

// UpdatePosition overwrites the mutable fields of a position.
// Returns ErrPositionNotFound if no position has the given ID.
func (s *PositionRepository) UpdatePosition(ctx context.Context, p *model.Position) error {
	query := `
		UPDATE position
		SET name = ?, quantity = ?, buy_price = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, p.Name, p.Quantity, p.BuyPrice, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

// DeletePosition removes a position.
// Returns ErrPositionNotFound if no position has the given ID.
func (s *PositionRepository) DeletePosition(ctx context.Context, positionID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM position WHERE id = ?`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (model.Position, error) {
	var p model.Position
	var createdAtStr string

	err := row.Scan(
		&p.ID,
		&p.PortfolioID,
		&p.Name,
		&p.Quantity,
		&p.BuyPrice,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, err
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}
