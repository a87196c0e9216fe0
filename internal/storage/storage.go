package storage

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Stores bundles the two independently lifecycled databases: the primary
// store (subscribers, regions) and the broadcast log store. They are never
// joined or transacted together.
type Stores struct {
	Primary *sqlx.DB
	Log     *sqlx.DB
}

// Open opens both stores, creating schemas and applying migrations
func Open(primaryPath, broadcastPath string) (*Stores, error) {
	primary, err := OpenPrimary(primaryPath)
	if err != nil {
		return nil, err
	}

	logDB, err := OpenLog(broadcastPath)
	if err != nil {
		primary.Close()
		return nil, err
	}

	return &Stores{Primary: primary, Log: logDB}, nil
}

// Close closes both stores
func (s *Stores) Close() {
	s.Primary.Close()
	s.Log.Close()
}

// OpenPrimary opens the primary store and ensures its schema
func OpenPrimary(path string) (*sqlx.DB, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}

	schema := `
		CREATE TABLE IF NOT EXISTS regions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS subscribers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER UNIQUE,
			first_name TEXT,
			username TEXT,
			comment TEXT,
			region_id INTEGER,
			subscribe_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(region_id) REFERENCES regions(id)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating primary schema: %w", err)
	}

	if err := migratePrimary(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating primary store: %w", err)
	}

	return db, nil
}

// OpenLog opens the broadcast log store and ensures its schema
func OpenLog(path string) (*sqlx.DB, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}

	schema := `
		CREATE TABLE IF NOT EXISTS broadcast_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT,
			recipient_type TEXT,
			user_ids TEXT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating broadcast log schema: %w", err)
	}

	return db, nil
}

// open connects to a SQLite file. Foreign keys stay unenforced on purpose:
// subscribers.region_id is a weak reference and regions may be deleted out
// from under it; reads tolerate the dangling id.
func open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return db, nil
}

// migratePrimary applies additive schema migrations for databases created by
// older deployments. These are idempotent - safe to run multiple times.
// Earlier versions shipped a subscribers table without region_id; the column
// is added in place so existing rows survive the upgrade.
func migratePrimary(db *sqlx.DB) error {
	var exists int
	err := db.QueryRow(`SELECT 1 FROM pragma_table_info('subscribers') WHERE name = 'region_id'`).Scan(&exists)
	if err == nil {
		return nil
	}

	if _, err := db.Exec(`ALTER TABLE subscribers ADD COLUMN region_id INTEGER REFERENCES regions(id)`); err != nil {
		return fmt.Errorf("adding region_id column to subscribers: %w", err)
	}
	log.Printf("applied migration: added region_id column to subscribers")
	return nil
}
