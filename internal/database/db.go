package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate() error {
	return Migrate(db.conn)
}

// Migrate applies the schema to an arbitrary connection. Split out so
// tests can run against an in-memory database.
func Migrate(conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS instruments (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker         TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		class          TEXT NOT NULL,
		price_then     REAL NOT NULL DEFAULT 0,
		price_now      REAL NOT NULL DEFAULT 0,
		expected_yield REAL NOT NULL DEFAULT 0,
		volatility     REAL NOT NULL DEFAULT 0,
		updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_instruments_class ON instruments(class)`,

	`CREATE TABLE IF NOT EXISTS inflation_observations (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		observed_on DATE NOT NULL UNIQUE,
		value      REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS portfolios (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		name               TEXT NOT NULL,
		target_amount      REAL NOT NULL,
		initial_capital    REAL NOT NULL,
		term_months        INTEGER NOT NULL,
		inflation_rate     REAL NOT NULL,
		future_value       REAL NOT NULL,
		risk_profile       TEXT NOT NULL,
		time_horizon       TEXT NOT NULL,
		smart_goal         TEXT,
		total_investment   REAL NOT NULL,
		expected_return    REAL NOT NULL,
		monthly_payment    REAL NOT NULL,
		future_capital     REAL NOT NULL,
		total_months       INTEGER NOT NULL,
		monthly_rate       REAL NOT NULL,
		annuity_factor     REAL NOT NULL,
		created_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_portfolios_user ON portfolios(user_id)`,

	`CREATE TABLE IF NOT EXISTS portfolio_compositions (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		portfolio_id  TEXT NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
		asset_class   TEXT NOT NULL,
		target_weight REAL NOT NULL,
		actual_weight REAL NOT NULL,
		amount        REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS asset_allocations (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		composition_id INTEGER NOT NULL REFERENCES portfolio_compositions(id) ON DELETE CASCADE,
		ticker         TEXT NOT NULL,
		class          TEXT NOT NULL,
		name           TEXT NOT NULL,
		quantity       INTEGER NOT NULL,
		price          REAL NOT NULL,
		weight         REAL NOT NULL,
		amount         REAL NOT NULL,
		expected_return REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_steps (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		portfolio_id TEXT NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
		step_number  INTEGER NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		actions      TEXT NOT NULL
	)`,
}
