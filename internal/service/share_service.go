package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/secrets"
)

const tokenBytes = 32

// ShareService creates and validates share links.
//
// Validation runs a fixed sequence of checks and stops at the first failure:
//
//	lookup      -> ErrShareLinkNotFound
//	expiry      -> ErrShareLinkExpired
//	password    -> ErrSharePasswordRequired
//	view limit  -> ErrShareViewLimitReached
//	consume     -> ErrShareViewLimitReached when a concurrent viewer took the last view
//
// Only the consume step writes. It is a single conditional UPDATE, so a link
// with maxViews = n is never validated successfully more than n times.
type ShareService struct {
	linkRepo      *repository.ShareLinkRepository
	portfolioRepo *repository.PortfolioRepository
	box           *secrets.Box
	now           func() time.Time
}

// NewShareService creates a new ShareService. Passwords are sealed with box.
func NewShareService(
	linkRepo *repository.ShareLinkRepository,
	portfolioRepo *repository.PortfolioRepository,
	box *secrets.Box,
) *ShareService {
	return &ShareService{
		linkRepo:      linkRepo,
		portfolioRepo: portfolioRepo,
		box:           box,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for expiry.
func (s *ShareService) WithClock(now func() time.Time) *ShareService {
	s.now = now
	return s
}

// CreateShareLink stores a new link for the portfolio summary report.
//
// expiresAt is now + expireInMinutes whenever expireInMinutes is given, so a
// zero or negative value creates a link that is already expired. A given
// portfolioId must exist.
func (s *ShareService) CreateShareLink(ctx context.Context, req request.CreateShareLinkRequest) (*model.ShareLink, error) {
	now := s.now().UTC()

	link := &model.ShareLink{
		ID:        uuid.New().String(),
		MaxViews:  req.MaxViews,
		ReportID:  model.DefaultReportID,
		CreatedAt: now,
	}

	if req.PortfolioID != nil && *req.PortfolioID != "" {
		if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, *req.PortfolioID); err != nil {
			return nil, err
		}
		portfolioID := *req.PortfolioID
		link.PortfolioID = &portfolioID
	}

	if req.ExpireInMinutes != nil {
		expiresAt := now.Add(time.Duration(*req.ExpireInMinutes) * time.Minute)
		link.ExpiresAt = &expiresAt
	}

	if req.Password != "" {
		sealed, err := s.box.Seal(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to protect share link password: %w", err)
		}
		link.Password = &sealed
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	link.Token = token

	if err := s.linkRepo.InsertShareLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create share link: %w", err)
	}

	return link, nil
}

type linkCheck struct {
	name  string
	check func(link model.ShareLink, password string, now time.Time) error
}

// linkChecks are evaluated in order; the first failure decides the outcome.
func (s *ShareService) linkChecks() []linkCheck {
	return []linkCheck{
		{"expiry", func(link model.ShareLink, _ string, now time.Time) error {
			if link.ExpiresAt != nil && !now.Before(*link.ExpiresAt) {
				return apperrors.ErrShareLinkExpired
			}
			return nil
		}},
		{"password", func(link model.ShareLink, password string, _ time.Time) error {
			// Missing and wrong passwords are deliberately indistinguishable.
			if link.HasPassword() && (password == "" || !s.box.Matches(*link.Password, password)) {
				return apperrors.ErrSharePasswordRequired
			}
			return nil
		}},
		{"view limit", func(link model.ShareLink, _ string, _ time.Time) error {
			if link.MaxViews != nil && link.Views >= *link.MaxViews {
				return apperrors.ErrShareViewLimitReached
			}
			return nil
		}},
	}
}

// ValidateShareLink checks token and password and, when every check passes,
// records one view. The returned link carries the incremented view count.
func (s *ShareService) ValidateShareLink(ctx context.Context, token, password string) (*model.ShareLink, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}

	link, err := s.linkRepo.GetShareLinkByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, c := range s.linkChecks() {
		if err := c.check(link, password, now); err != nil {
			return nil, err
		}
	}

	consumed, err := s.linkRepo.ConsumeView(ctx, link.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record share link view: %w", err)
	}
	if !consumed {
		return nil, apperrors.ErrShareViewLimitReached
	}

	link.Views++
	return &link, nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
