package service

import (
	"database/sql"
	"fmt"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/preferences"
)

// SystemService handles system-related operations
type SystemService struct {
	db    *sql.DB
	prefs *preferences.Store
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, prefs *preferences.Store) *SystemService {
	return &SystemService{
		db:    db,
		prefs: prefs,
	}
}

// CheckHealth checks the database and the preference store.
func (s *SystemService) CheckHealth() error {
	if err := database.HealthCheck(s.db); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if s.prefs != nil {
		if err := s.prefs.HealthCheck(); err != nil {
			return fmt.Errorf("preferences: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the applied migration version.
func (s *SystemService) SchemaVersion() (int64, error) {
	return database.SchemaVersion(s.db)
}
