package database

import (
	"path/filepath"
	"testing"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"portfolio", "position", "share_link"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected schema version 1, got %d", version)
	}
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fk.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO position (id, portfolio_id, name, quantity, buy_price, created_at)
		VALUES ('p1', 'missing', 'AAPL', 1, 1, '2024-01-01T00:00:00Z')`)
	if err == nil {
		t.Error("Expected foreign key violation for unknown portfolio")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "twice.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Errorf("Second migrate should be a no-op, got %v", err)
	}
	if err := HealthCheck(db); err != nil {
		t.Errorf("Expected healthy database, got %v", err)
	}
}
