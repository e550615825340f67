package testutil

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	mathrand "math/rand"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/market"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/preferences"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/secrets"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
)

// NewTestPortfolioService creates a PortfolioService backed by db.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db),
		repository.NewPositionRepository(db),
	)
}

// NewTestPositionService creates a PositionService backed by db.
func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()
	return service.NewPositionService(
		repository.NewPositionRepository(db),
		repository.NewPortfolioRepository(db),
	)
}

// NewTestSecretBox creates a Box with a fresh key.
func NewTestSecretBox(t *testing.T) *secrets.Box {
	t.Helper()
	key, err := secrets.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate secret key: %v", err)
	}
	box, err := secrets.NewBox(key)
	if err != nil {
		t.Fatalf("Failed to create secret box: %v", err)
	}
	return box
}

// NewTestShareService creates a ShareService backed by db, sealing passwords with box.
func NewTestShareService(t *testing.T, db *sql.DB, box *secrets.Box) *service.ShareService {
	t.Helper()
	return service.NewShareService(
		repository.NewShareLinkRepository(db),
		repository.NewPortfolioRepository(db),
		box,
	)
}

// NewTestPreferenceStore opens a preference store in a temp dir.
func NewTestPreferenceStore(t *testing.T) *preferences.Store {
	t.Helper()
	store, err := preferences.Open(filepath.Join(t.TempDir(), "prefs.db"), logging.NewSilentLogger())
	if err != nil {
		t.Fatalf("Failed to open preference store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// NewTestPreferencesService creates a PreferencesService over store and db
// with a fresh secret box.
func NewTestPreferencesService(t *testing.T, db *sql.DB, store *preferences.Store) *service.PreferencesService {
	t.Helper()
	return NewTestPreferencesServiceWithBox(t, db, store, NewTestSecretBox(t))
}

// NewTestPreferencesServiceWithBox creates a PreferencesService that seals
// the default share password with box.
func NewTestPreferencesServiceWithBox(t *testing.T, db *sql.DB, store *preferences.Store, box *secrets.Box) *service.PreferencesService {
	t.Helper()
	return service.NewPreferencesService(store, NewTestPortfolioService(t, db), box)
}

// NewTestAdapter creates a market Adapter over the given mocks.
func NewTestAdapter(searcher *MockSymbolSearcher, fetcher *MockHistoryFetcher) *market.Adapter {
	logger := logging.NewSilentLogger()
	return market.NewAdapter(market.NewResolver(searcher, logger), fetcher, logger, 4)
}

// NewTestPriceService creates a PriceService over the given history mock.
func NewTestPriceService(t *testing.T, fetcher *MockHistoryFetcher) *service.PriceService {
	t.Helper()
	return service.NewPriceService(NewTestAdapter(NewMockSymbolSearcher(), fetcher))
}

// NewTestReportService creates a ReportService backed by db, the history mock and store.
func NewTestReportService(t *testing.T, db *sql.DB, fetcher *MockHistoryFetcher, store *preferences.Store) *service.ReportService {
	t.Helper()
	return service.NewReportService(
		repository.NewPortfolioRepository(db),
		repository.NewPositionRepository(db),
		NewTestAdapter(NewMockSymbolSearcher(), fetcher),
		store,
		"USD",
	)
}

// NewTestSystemService creates a SystemService backed by db and store.
func NewTestSystemService(t *testing.T, db *sql.DB, store *preferences.Store) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, store)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeToken generates a share token shaped like the real ones.
func MakeToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[mathrand.Intn(len(charset))]
	}
	return string(result)
}

// PreferencesFixture bundles the stores behind a PreferencesService.
type PreferencesFixture struct {
	DB    *sql.DB
	Store *preferences.Store
}
