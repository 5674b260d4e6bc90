package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps sql.DB for either Postgres (pgx) or SQLite.
type DB struct {
	Client *sql.DB
	Driver string
}

// Open creates a connection for the configured driver with sane pool defaults.
// driver is "sqlite" or "postgres"; dsn is a file path for sqlite and a
// connection string for postgres.
func Open(driver, dsn string) (*DB, error) {
	var db *sql.DB
	var err error

	switch driver {
	case "sqlite", "sqlite3":
		if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			os.MkdirAll(dir, 0o755)
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_busy_timeout=5000"
		}
		db, err = sql.Open("sqlite3", dsn)
		driver = "sqlite"
	case "postgres", "pgx":
		db, err = sql.Open("pgx", dsn)
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db, Driver: driver}, nil
}

// Connect opens the database and pings it with bounded retries, then runs the
// idempotent schema migration. After the last failed attempt it gives up for good.
func Connect(driver, dsn string, attempts int, delay time.Duration) (*DB, error) {
	db, err := Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if attempts <= 0 {
		attempts = 1
	}

	for i := 1; ; i++ {
		err = db.Client.PingContext(context.Background())
		if err == nil {
			break
		}
		if i >= attempts {
			db.Close()
			return nil, fmt.Errorf("ping db after %d attempts: %w", attempts, err)
		}
		log.Printf("db not reachable (attempt %d/%d): %v", i, attempts, err)
		time.Sleep(delay)
	}

	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// migrate creates the attendance table if it does not exist. There is no further
// migration machinery; the schema is a single table.
func (d *DB) migrate() error {
	var idCol string
	if d.Driver == "postgres" {
		idCol = "id BIGSERIAL PRIMARY KEY"
	} else {
		idCol = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS attendance (
		%s,
		student_name TEXT NOT NULL DEFAULT '',
		role         TEXT NOT NULL DEFAULT '',
		date         TEXT NOT NULL DEFAULT '',
		time_in      TEXT NOT NULL DEFAULT '',
		time_out     TEXT NOT NULL DEFAULT '',
		total_hours  TEXT NOT NULL DEFAULT '',
		image_url    TEXT,
		created_at   BIGINT NOT NULL DEFAULT 0
	)`, idCol)
	_, err := d.Client.Exec(schema)
	return err
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
