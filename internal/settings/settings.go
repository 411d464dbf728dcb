// Package settings persists user preferences across restarts. Business
// records are deliberately in-memory only; the theme is the one durable
// client preference.
package settings

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName = "settings"
	themeKey   = "app-theme"
)

// Theme holds the saved accent colors.
type Theme struct {
	Primary string `json:"primary"`
	DarkBg  string `json:"darkBg"`
}

// DefaultTheme is used until the user saves their own colors.
var DefaultTheme = Theme{
	Primary: "#22c55e",
	DarkBg:  "#111827",
}

// Store is a bbolt-backed key/value store for preferences.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the settings database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening settings db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating settings bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Theme returns the saved theme, or the default when nothing was saved yet.
func (s *Store) Theme() (Theme, error) {
	theme := DefaultTheme
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(themeKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &theme)
	})
	if err != nil {
		return DefaultTheme, fmt.Errorf("reading theme: %w", err)
	}
	if theme.Primary == "" {
		theme.Primary = DefaultTheme.Primary
	}
	if theme.DarkBg == "" {
		theme.DarkBg = DefaultTheme.DarkBg
	}
	return theme, nil
}

// SaveTheme persists the theme for the next startup.
func (s *Store) SaveTheme(theme Theme) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshaling theme: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(themeKey), data)
	})
	if err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
