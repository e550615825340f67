package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/preferences"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/testutil"
)

func TestPreferencesService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPreferencesService(t, db, testutil.NewTestPreferenceStore(t))

	t.Run("calc update merges fields", func(t *testing.T) {
		pct := 12.5
		prefs, err := svc.UpdateCalcPreferences(request.UpdateCalcPreferencesRequest{ExpectedAnnualReturnPct: &pct})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if prefs.CurrencySymbol != "₹" || prefs.ExpectedAnnualReturnPct != 12.5 {
			t.Errorf("Unexpected prefs: %+v", prefs)
		}
		if got := svc.GetCalcPreferences(); got != prefs {
			t.Errorf("Expected stored prefs %+v, got %+v", prefs, got)
		}
	})

	t.Run("share update replaces defaults", func(t *testing.T) {
		minutes := 60
		if _, err := svc.UpdateSharePreferences(request.UpdateSharePreferencesRequest{Password: "pw", ExpireInMinutes: &minutes}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got := svc.GetSharePreferences()
		if got.Password != "pw" || got.ExpireInMinutes == nil || *got.ExpireInMinutes != 60 {
			t.Errorf("Unexpected share prefs: %+v", got)
		}
	})

	t.Run("snapshot", func(t *testing.T) {
		if snap := svc.GetSnapshot(); snap != nil {
			t.Fatalf("Expected no snapshot yet, got %+v", snap)
		}

		p := testutil.CreatePortfolio(t, db, "Snap")
		testutil.NewPosition(p.ID).WithQuantity(4).WithBuyPrice(25).Build(t, db)

		snap, err := svc.SaveSnapshot(ctx, p.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if snap.TotalValue != 100 || snap.TotalQuantity != 4 || snap.AvgBuyPrice != 25 {
			t.Errorf("Unexpected snapshot: %+v", snap)
		}
		if stored := svc.GetSnapshot(); stored == nil || stored.TotalValue != 100 {
			t.Errorf("Expected stored snapshot, got %+v", stored)
		}

		if _, err := svc.SaveSnapshot(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

// TestPreferencesService_SharePassword tests that the default share password
// is sealed in the preference file.
//
// WHY: The preference file sits next to the database. A copy of it must not
// reveal the password that new share links are protected with.
func TestPreferencesService_SharePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := testutil.NewTestPreferenceStore(t)
	svc := testutil.NewTestPreferencesServiceWithBox(t, db, store, testutil.NewTestSecretBox(t))

	prefs, err := svc.UpdateSharePreferences(request.UpdateSharePreferencesRequest{Password: "correct horse"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if prefs.Password != "correct horse" {
		t.Errorf("Expected plaintext password in response, got %q", prefs.Password)
	}

	t.Run("stored sealed", func(t *testing.T) {
		raw := string(store.Raw(preferences.KeyShare))
		if raw == "" {
			t.Fatal("Expected share preferences to be stored")
		}
		if strings.Contains(raw, "correct horse") {
			t.Errorf("Expected password sealed at rest, got %s", raw)
		}
	})

	t.Run("opened on read", func(t *testing.T) {
		if got := svc.GetSharePreferences().Password; got != "correct horse" {
			t.Errorf("Expected 'correct horse', got %q", got)
		}
	})

	t.Run("dropped under another key", func(t *testing.T) {
		other := testutil.NewTestPreferencesServiceWithBox(t, db, store, testutil.NewTestSecretBox(t))
		if got := other.GetSharePreferences().Password; got != "" {
			t.Errorf("Expected password dropped, got %q", got)
		}
	})

	t.Run("empty password stays empty", func(t *testing.T) {
		if _, err := svc.UpdateSharePreferences(request.UpdateSharePreferencesRequest{}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got := svc.GetSharePreferences().Password; got != "" {
			t.Errorf("Expected empty password, got %q", got)
		}
	})
}
