package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/tommv/lbman/pkg/api"
	"github.com/tommv/lbman/pkg/logging"
)

// SQLiteStore keeps profiles and caches in a single database file.
type SQLiteStore struct {
	db     *sql.DB
	mutex  sync.RWMutex
	dbPath string
}

// NewSQLiteStore opens (and initializes if needed) the store. An empty
// dbPath means the default location under ~/.lbman.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(homeDir, ".lbman")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		dbPath = filepath.Join(configDir, "lbman.db")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.LogDebug("SQLite store initialized at: %s", dbPath)
	return store, nil
}

func (cs *SQLiteStore) initializeSchema() error {
	schema := `
	-- API profiles
	CREATE TABLE IF NOT EXISTS profiles (
		name TEXT PRIMARY KEY,
		endpoint TEXT NOT NULL,
		token TEXT NOT NULL,
		feed_url TEXT NOT NULL DEFAULT '',
		is_default INTEGER NOT NULL DEFAULT 0
	);

	-- Offline invoice cache, replaced wholesale per profile on refresh
	CREATE TABLE IF NOT EXISTS invoice_cache (
		profile TEXT NOT NULL,
		invoice_id INTEGER NOT NULL,
		label TEXT NOT NULL,
		date TEXT NOT NULL,
		total REAL NOT NULL,
		PRIMARY KEY (profile, invoice_id),
		FOREIGN KEY (profile) REFERENCES profiles(name) ON DELETE CASCADE
	);
	`

	if _, err := cs.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (cs *SQLiteStore) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}

// Profile Operations

func (cs *SQLiteStore) AddProfile(p Profile) error {
	if err := p.Verify(); err != nil {
		return err
	}

	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	query := `
		INSERT INTO profiles (name, endpoint, token, feed_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			endpoint = excluded.endpoint,
			token = excluded.token,
			feed_url = excluded.feed_url
	`
	if _, err := cs.db.Exec(query, p.Name, p.Endpoint, p.Token, p.FeedURL); err != nil {
		return fmt.Errorf("failed to add profile: %w", err)
	}

	logging.LogDebug("Stored profile: %s", p.Name)
	return nil
}

func (cs *SQLiteStore) GetProfile(name string) (Profile, bool) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	query := `SELECT name, endpoint, token, feed_url FROM profiles WHERE name = ?`

	var p Profile
	err := cs.db.QueryRow(query, name).Scan(&p.Name, &p.Endpoint, &p.Token, &p.FeedURL)
	if err != nil {
		if err != sql.ErrNoRows {
			logging.LogError("Failed to query profile %s: %v", name, err)
		}
		return Profile{}, false
	}
	return p, true
}

func (cs *SQLiteStore) ListProfiles() []Profile {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	query := `SELECT name, endpoint, token, feed_url FROM profiles ORDER BY name`

	rows, err := cs.db.Query(query)
	if err != nil {
		logging.LogError("Failed to query profiles: %v", err)
		return []Profile{}
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Name, &p.Endpoint, &p.Token, &p.FeedURL); err != nil {
			logging.LogError("Failed to scan profile row: %v", err)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func (cs *SQLiteStore) DeleteProfile(name string) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	result, err := cs.db.Exec(`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	logging.LogDebug("Deleted profile: %s", name)
	return nil
}

// Default profile management

func (cs *SQLiteStore) SetDefaultProfile(name string) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	tx, err := cs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE profiles SET is_default = 0`); err != nil {
		return fmt.Errorf("failed to clear default profile: %w", err)
	}

	result, err := tx.Exec(`UPDATE profiles SET is_default = 1 WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to set default profile: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	return tx.Commit()
}

func (cs *SQLiteStore) GetDefaultProfile() (Profile, bool) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	query := `SELECT name, endpoint, token, feed_url FROM profiles WHERE is_default = 1`

	var p Profile
	err := cs.db.QueryRow(query).Scan(&p.Name, &p.Endpoint, &p.Token, &p.FeedURL)
	if err == nil {
		return p, true
	}
	if err != sql.ErrNoRows {
		logging.LogError("Failed to query default profile: %v", err)
		return Profile{}, false
	}

	// No explicit default; a lone profile serves as one.
	profiles := cs.listProfilesLocked()
	if len(profiles) == 1 {
		return profiles[0], true
	}
	return Profile{}, false
}

// listProfilesLocked assumes the caller holds at least the read lock.
func (cs *SQLiteStore) listProfilesLocked() []Profile {
	rows, err := cs.db.Query(`SELECT name, endpoint, token, feed_url FROM profiles ORDER BY name`)
	if err != nil {
		logging.LogError("Failed to query profiles: %v", err)
		return nil
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Name, &p.Endpoint, &p.Token, &p.FeedURL); err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// Invoice cache

func (cs *SQLiteStore) CacheInvoices(profile string, invoices []api.Invoice) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	tx, err := cs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM invoice_cache WHERE profile = ?`, profile); err != nil {
		return fmt.Errorf("failed to clear invoice cache: %w", err)
	}

	stmt := `INSERT INTO invoice_cache (profile, invoice_id, label, date, total) VALUES (?, ?, ?, ?, ?)`
	for _, inv := range invoices {
		if _, err := tx.Exec(stmt, profile, inv.ID, inv.Label, inv.Date, inv.Total); err != nil {
			return fmt.Errorf("failed to cache invoice %d: %w", inv.ID, err)
		}
	}

	return tx.Commit()
}

func (cs *SQLiteStore) CachedInvoices(profile string) ([]api.Invoice, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	query := `SELECT invoice_id, label, date, total FROM invoice_cache WHERE profile = ? ORDER BY invoice_id DESC`

	rows, err := cs.db.Query(query, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice cache: %w", err)
	}
	defer rows.Close()

	var invoices []api.Invoice
	for rows.Next() {
		var inv api.Invoice
		if err := rows.Scan(&inv.ID, &inv.Label, &inv.Date, &inv.Total); err != nil {
			return nil, fmt.Errorf("failed to scan cached invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
