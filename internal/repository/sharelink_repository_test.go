package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/testutil"
)

func TestShareLinkRepository_GetShareLinkByToken(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewShareLinkRepository(db)
	box := testutil.NewTestSecretBox(t)

	expires := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	created := testutil.NewShareLink().
		WithPassword(box, "pw").
		WithExpiresAt(expires).
		WithMaxViews(3).
		Build(t, db)

	got, err := repo.GetShareLinkByToken(ctx, created.Token)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.ID != created.ID || got.Views != 0 || got.ReportID != "portfolio-summary" {
		t.Errorf("Unexpected link: %+v", got)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) {
		t.Errorf("Expected expiry %s, got %v", expires, got.ExpiresAt)
	}
	if got.MaxViews == nil || *got.MaxViews != 3 {
		t.Errorf("Expected maxViews 3, got %v", got.MaxViews)
	}
	if !got.HasPassword() || !box.Matches(*got.Password, "pw") {
		t.Error("Expected sealed password to round-trip")
	}

	if _, err := repo.GetShareLinkByToken(ctx, "unknown"); !errors.Is(err, apperrors.ErrShareLinkNotFound) {
		t.Errorf("Expected ErrShareLinkNotFound, got %v", err)
	}
}

func TestShareLinkRepository_ConsumeView(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewShareLinkRepository(db)

	t.Run("stops at max views", func(t *testing.T) {
		link := testutil.NewShareLink().WithMaxViews(2).Build(t, db)

		for i, want := range []bool{true, true, false, false} {
			ok, err := repo.ConsumeView(ctx, link.ID)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ok != want {
				t.Errorf("Consume %d: expected %v, got %v", i+1, want, ok)
			}
		}

		stored, _ := repo.GetShareLinkByToken(ctx, link.Token)
		if stored.Views != 2 {
			t.Errorf("Expected 2 views, got %d", stored.Views)
		}
	})

	t.Run("unlimited link always consumes", func(t *testing.T) {
		link := testutil.NewShareLink().Build(t, db)
		for i := 0; i < 5; i++ {
			if ok, _ := repo.ConsumeView(ctx, link.ID); !ok {
				t.Fatalf("Consume %d: expected success", i+1)
			}
		}
	})

	t.Run("unknown id consumes nothing", func(t *testing.T) {
		ok, err := repo.ConsumeView(ctx, testutil.MakeID())
		if err != nil || ok {
			t.Errorf("Expected (false, nil), got (%v, %v)", ok, err)
		}
	})
}

func TestShareLinkRepository_GetShareLinkStats(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	testutil.NewShareLink().Build(t, db)
	testutil.NewShareLink().WithExpiresAt(now.Add(-time.Minute)).Build(t, db)
	testutil.NewShareLink().WithExpiresAt(now.Add(time.Minute)).Build(t, db)
	testutil.NewShareLink().WithMaxViews(1).WithViews(1).Build(t, db)

	stats, err := repository.NewShareLinkRepository(db).GetShareLinkStats(ctx, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Total != 4 || stats.Expired != 1 || stats.Exhausted != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
