package preferences

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prefs.db"), logging.NewSilentLogger())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Defaults(t *testing.T) {
	store := openTestStore(t)

	calc := store.LoadCalc()
	if calc.CurrencySymbol != "₹" || calc.ExpectedAnnualReturnPct != 8 {
		t.Errorf("Unexpected calc defaults: %+v", calc)
	}

	share := store.LoadShare()
	if share.Password != "" || share.ExpireInMinutes != nil {
		t.Errorf("Unexpected share defaults: %+v", share)
	}

	if snap := store.LoadSnapshot(); snap != nil {
		t.Errorf("Expected no snapshot, got %+v", snap)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveCalc(model.CalculationPreferences{CurrencySymbol: "$", ExpectedAnnualReturnPct: 5.5}); err != nil {
		t.Fatalf("SaveCalc: %v", err)
	}
	minutes := 30
	if err := store.SaveShare(model.SharePreferences{Password: "pw", ExpireInMinutes: &minutes}); err != nil {
		t.Fatalf("SaveShare: %v", err)
	}
	saved := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveSnapshot(model.CalculationSnapshot{TotalValue: 100, AvgBuyPrice: 10, TotalQuantity: 10, SavedAt: saved}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	if calc := store.LoadCalc(); calc.CurrencySymbol != "$" || calc.ExpectedAnnualReturnPct != 5.5 {
		t.Errorf("Unexpected calc: %+v", calc)
	}
	if share := store.LoadShare(); share.ExpireInMinutes == nil || *share.ExpireInMinutes != 30 {
		t.Errorf("Unexpected share: %+v", share)
	}
	snap := store.LoadSnapshot()
	if snap == nil || snap.TotalValue != 100 || !snap.SavedAt.Equal(saved) {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
}

// TestStore_CorruptValues tests that unreadable stored values fall back to defaults.
//
// WHY: Nothing in the core depends on preferences being valid. A hand-edited
// or truncated file must never break the app.
func TestStore_CorruptValues(t *testing.T) {
	store := openTestStore(t)

	for _, key := range []string{KeyCalc, KeyShare, KeySnapshot} {
		if err := store.PutRaw(key, []byte("{not json")); err != nil {
			t.Fatalf("PutRaw: %v", err)
		}
	}

	if calc := store.LoadCalc(); calc != DefaultCalc() {
		t.Errorf("Expected calc defaults, got %+v", calc)
	}
	if share := store.LoadShare(); share.Password != "" || share.ExpireInMinutes != nil {
		t.Errorf("Expected share defaults, got %+v", share)
	}
	if snap := store.LoadSnapshot(); snap != nil {
		t.Errorf("Expected nil snapshot, got %+v", snap)
	}
}

// TestStore_PartialValues tests that stored documents are merged over the defaults.
//
// WHY: An older or hand-edited file may hold only some fields, or a bare null.
// A missing expected return must stay 8%, not turn into a 0% projection.
func TestStore_PartialValues(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   model.CalculationPreferences
	}{
		{"only currency symbol", `{"currencySymbol":"$"}`, model.CalculationPreferences{CurrencySymbol: "$", ExpectedAnnualReturnPct: 8}},
		{"only expected return", `{"expectedAnnualReturnPct":4}`, model.CalculationPreferences{CurrencySymbol: "₹", ExpectedAnnualReturnPct: 4}},
		{"null field", `{"currencySymbol":"€","expectedAnnualReturnPct":null}`, model.CalculationPreferences{CurrencySymbol: "€", ExpectedAnnualReturnPct: 8}},
		{"empty object", `{}`, DefaultCalc()},
		{"null document", `null`, DefaultCalc()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			if err := store.PutRaw(KeyCalc, []byte(tt.stored)); err != nil {
				t.Fatalf("PutRaw: %v", err)
			}

			if got := store.LoadCalc(); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}

	t.Run("null share and snapshot documents", func(t *testing.T) {
		store := openTestStore(t)
		for _, key := range []string{KeyShare, KeySnapshot} {
			if err := store.PutRaw(key, []byte("null")); err != nil {
				t.Fatalf("PutRaw: %v", err)
			}
		}

		if share := store.LoadShare(); share.Password != "" || share.ExpireInMinutes != nil {
			t.Errorf("Expected share defaults, got %+v", share)
		}
		if snap := store.LoadSnapshot(); snap != nil {
			t.Errorf("Expected nil snapshot, got %+v", snap)
		}
	})
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	store, err := Open(path, logging.NewSilentLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SaveCalc(model.CalculationPreferences{CurrencySymbol: "€", ExpectedAnnualReturnPct: 3}); err != nil {
		t.Fatalf("SaveCalc: %v", err)
	}
	store.Close()

	reopened, err := Open(path, logging.NewSilentLogger())
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer reopened.Close()

	if calc := reopened.LoadCalc(); calc.CurrencySymbol != "€" {
		t.Errorf("Expected €, got %s", calc.CurrencySymbol)
	}
	if err := reopened.HealthCheck(); err != nil {
		t.Errorf("Expected healthy store, got %v", err)
	}
}
