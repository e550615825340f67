// Package preferences keeps per-installation user preferences in a bbolt file.
//
// Values are JSON documents under fixed keys. Reads never fail on bad data:
// a missing, empty or corrupt value yields the documented default, and a
// field absent from a stored document keeps its default.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

const (
	KeyCalc     = "portfolio_calc_prefs"
	KeyShare    = "portfolio_share_preferences"
	KeySnapshot = "portfolio_calc_snapshot"
)

var bucketName = []byte("preferences")

// DefaultCalc returns the calculation preferences used when none are stored.
func DefaultCalc() model.CalculationPreferences {
	return model.CalculationPreferences{
		CurrencySymbol:          "₹",
		ExpectedAnnualReturnPct: 8,
	}
}

// DefaultShare returns the share preferences used when none are stored.
func DefaultShare() model.SharePreferences {
	return model.SharePreferences{}
}

// Store is a bbolt backed preference store.
type Store struct {
	db     *bolt.DB
	logger *logging.Logger
}

// Open opens or creates the preference file at path.
func Open(path string, logger *logging.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create preference bucket: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.db.Close()
}

// HealthCheck verifies the store can serve a read transaction.
func (s *Store) HealthCheck() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return errors.New("preference bucket missing")
		}
		return nil
	})
}

// LoadCalc returns the stored calculation preferences or the defaults.
func (s *Store) LoadCalc() model.CalculationPreferences {
	return load(s, KeyCalc, DefaultCalc())
}

// SaveCalc stores calculation preferences.
func (s *Store) SaveCalc(prefs model.CalculationPreferences) error {
	return s.save(KeyCalc, prefs)
}

// LoadShare returns the stored share preferences or the defaults.
func (s *Store) LoadShare() model.SharePreferences {
	return load(s, KeyShare, DefaultShare())
}

// SaveShare stores share preferences.
func (s *Store) SaveShare(prefs model.SharePreferences) error {
	return s.save(KeyShare, prefs)
}

// LoadSnapshot returns the saved valuation snapshot, or nil if there is none.
func (s *Store) LoadSnapshot() *model.CalculationSnapshot {
	return load[*model.CalculationSnapshot](s, KeySnapshot, nil)
}

// SaveSnapshot stores a valuation snapshot.
func (s *Store) SaveSnapshot(snapshot model.CalculationSnapshot) error {
	return s.save(KeySnapshot, snapshot)
}

// Raw returns the stored bytes for key, or nil.
func (s *Store) Raw(key string) []byte {
	var out []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out
}

// PutRaw stores bytes under key without validation.
func (s *Store) PutRaw(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
}

func (s *Store) save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.PutRaw(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func load[T any](s *Store, key string, fallback T) T {
	data := s.Raw(key)
	if len(data) == 0 {
		return fallback
	}

	// Decoding over the fallback keeps the default for every field the
	// stored document leaves out, and a JSON null leaves it untouched.
	value := fallback
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt preference value, using defaults")
		return fallback
	}
	return value
}
