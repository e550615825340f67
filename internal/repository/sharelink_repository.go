package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// ShareLinkRepository provides data access methods for the share_link table.
// Rows are never deleted; an expired or exhausted link stays as a record of the grant.
type ShareLinkRepository struct {
	db *sql.DB
}

// NewShareLinkRepository creates a new ShareLinkRepository with the provided database connection.
func NewShareLinkRepository(db *sql.DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

// InsertShareLink stores a new share link.
func (s *ShareLinkRepository) InsertShareLink(ctx context.Context, link *model.ShareLink) error {
	query := `
		INSERT INTO share_link (id, token, password, expires_at, max_views, views, portfolio_id, report_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		link.ID,
		link.Token,
		nullableString(link.Password),
		nullableTime(link.ExpiresAt),
		nullableInt(link.MaxViews),
		link.Views,
		nullableString(link.PortfolioID),
		link.ReportID,
		FormatTime(link.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert share link: %w", err)
	}

	return nil
}

// GetShareLinkByToken looks a link up by its token.
// Returns ErrShareLinkNotFound if no link carries the token.
func (s *ShareLinkRepository) GetShareLinkByToken(ctx context.Context, token string) (model.ShareLink, error) {
	query := `
		SELECT id, token, password, expires_at, max_views, views, portfolio_id, report_id, created_at
		FROM share_link
		WHERE token = ?
	`

	var link model.ShareLink
	var password, expiresAt, portfolioID sql.NullString
	var maxViews sql.NullInt64
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&link.ID,
		&link.Token,
		&password,
		&expiresAt,
		&maxViews,
		&link.Views,
		&portfolioID,
		&link.ReportID,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ShareLink{}, apperrors.ErrShareLinkNotFound
	}
	if err != nil {
		return model.ShareLink{}, fmt.Errorf("failed to query share link: %w", err)
	}

	if password.Valid {
		link.Password = &password.String
	}
	if portfolioID.Valid {
		link.PortfolioID = &portfolioID.String
	}
	if maxViews.Valid {
		n := int(maxViews.Int64)
		link.MaxViews = &n
	}
	if expiresAt.Valid {
		t, err := ParseTime(expiresAt.String)
		if err != nil {
			return model.ShareLink{}, err
		}
		link.ExpiresAt = &t
	}

	link.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.ShareLink{}, err
	}

	return link, nil
}

// ConsumeView increments the view counter by one unless the link is already
// at its view ceiling. The check and the increment are a single statement, so
// concurrent callers can never push views past max_views.
// Returns false when the ceiling was reached and nothing changed.
func (s *ShareLinkRepository) ConsumeView(ctx context.Context, linkID string) (bool, error) {
	query := `
		UPDATE share_link
		SET views = views + 1
		WHERE id = ?
		AND (max_views IS NULL OR views < max_views)
	`

	result, err := s.db.ExecContext(ctx, query, linkID)
	if err != nil {
		return false, fmt.Errorf("failed to increment share link views: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// ShareLinkStats counts links by state at the given instant.
type ShareLinkStats struct {
	Total     int
	Expired   int
	Exhausted int
}

// GetShareLinkStats summarises the grant log.
func (s *ShareLinkRepository) GetShareLinkStats(ctx context.Context, now time.Time) (ShareLinkStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN expires_at IS NOT NULL AND expires_at <= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN max_views IS NOT NULL AND views >= max_views THEN 1 ELSE 0 END), 0)
		FROM share_link
	`

	var stats ShareLinkStats
	err := s.db.QueryRowContext(ctx, query, FormatTime(now)).Scan(&stats.Total, &stats.Expired, &stats.Exhausted)
	if err != nil {
		return ShareLinkStats{}, fmt.Errorf("failed to query share link stats: %w", err)
	}

	return stats, nil
}
