// Package db opens the SQL database shared by the recipe, weight and
// shopping stores and creates their tables.
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database and makes sure the schema exists.
func Open(ctx context.Context, driver, dataSourceName string) (*sqlx.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		// One connection keeps :memory: databases alive and serialises writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	idColumn := "BIGSERIAL PRIMARY KEY"
	realType := "DOUBLE PRECISION"
	if db.DriverName() == DriverSQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
		realType = "REAL"
	}

	schema := []struct {
		table string
		ddl   string
	}{
		{"ricette", `
	CREATE TABLE IF NOT EXISTS ricette (
		id ` + idColumn + `,
		nome TEXT NOT NULL,
		categoria TEXT NOT NULL,
		porzione_g INTEGER,
		foto_base64 TEXT,
		note TEXT,
		user_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`},
		{"ingredienti", `
	CREATE TABLE IF NOT EXISTS ingredienti (
		id ` + idColumn + `,
		ricetta_id BIGINT NOT NULL,
		ingrediente TEXT NOT NULL,
		quantita_g ` + realType + ` NOT NULL,
		ordine INTEGER NOT NULL
	);`},
		{"pesate", `
	CREATE TABLE IF NOT EXISTS pesate (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		peso ` + realType + ` NOT NULL,
		note TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	);`},
		{"shopping_lists", `
	CREATE TABLE IF NOT EXISTS shopping_lists (
		user_id TEXT PRIMARY KEY,
		list_key TEXT NOT NULL,
		selection TEXT NOT NULL,
		items TEXT NOT NULL,
		checked TEXT NOT NULL,
		tab TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`},
	}

	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.table, err)
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_ingredienti_ricetta_id ON ingredienti (ricetta_id)`); err != nil {
		return fmt.Errorf("failed to create ingredienti index: %w", err)
	}
	return nil
}
