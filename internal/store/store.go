// Package store persists fetched feed snapshots in SQLite so the dashboard
// keeps serving history across restarts and feed outages.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mbraun/dropdash/internal/models"
)

const schemaVersion = 1

type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens (or creates) the database
// and applies migrations.
func Open(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(basePath, "dropdash.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory store, used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	if version < 1 {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS events (
				t INTEGER PRIMARY KEY,
				ai INTEGER NOT NULL DEFAULT 0,
				last_chance INTEGER NOT NULL DEFAULT 0,
				zero_etv INTEGER NOT NULL DEFAULT 0
			);

			CREATE TABLE IF NOT EXISTS meta (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`)
		if err != nil {
			return err
		}
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// SaveSnapshot upserts the snapshot's events (keyed by timestamp) and records
// the feed metadata in one transaction.
func (s *Store) SaveSnapshot(events []models.Event, updatedAt *time.Time, totalItems int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO events (t, ai, last_chance, zero_etv) VALUES (?, ?, ?, ?)
		ON CONFLICT(t) DO UPDATE SET ai=excluded.ai, last_chance=excluded.last_chance, zero_etv=excluded.zero_etv
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.T, e.AI, e.LastChance, e.ZeroETV); err != nil {
			return err
		}
	}

	if err := setMetaTx(tx, "total_items", strconv.Itoa(totalItems)); err != nil {
		return err
	}
	if updatedAt != nil {
		if err := setMetaTx(tx, "updated_at", updatedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func setMetaTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
		key, value,
	)
	return err
}

// LoadSnapshot returns all stored events sorted ascending by timestamp plus
// the stored feed metadata. A fresh database yields an empty slice and a nil
// updatedAt.
func (s *Store) LoadSnapshot() ([]models.Event, *time.Time, int, error) {
	rows, err := s.db.Query("SELECT t, ai, last_chance, zero_etv FROM events ORDER BY t ASC")
	if err != nil {
		return nil, nil, 0, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.T, &e.AI, &e.LastChance, &e.ZeroETV); err != nil {
			return nil, nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, 0, err
	}

	var updatedAt *time.Time
	if v, ok, err := s.getMeta("updated_at"); err != nil {
		return nil, nil, 0, err
	} else if ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			updatedAt = &t
		}
	}

	totalItems := len(events)
	if v, ok, err := s.getMeta("total_items"); err != nil {
		return nil, nil, 0, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			totalItems = n
		}
	}

	return events, updatedAt, totalItems, nil
}

func (s *Store) getMeta(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
