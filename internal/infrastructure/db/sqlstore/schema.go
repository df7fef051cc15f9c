package sqlstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrClientNameNotUnique reports a clients table created without the unique
// name index that idempotent seeding and duplicate detection rely on.
var ErrClientNameNotUnique = errors.New("clients.name has no unique index")

const sqliteClientNameIndex = `
	SELECT COUNT(*)
	FROM pragma_index_list('clients') AS il
	WHERE il."unique" = 1
	  AND (SELECT COUNT(*) FROM pragma_index_info(il.name)) = 1
	  AND (SELECT name FROM pragma_index_info(il.name)) = 'name'`

const postgresClientNameIndex = `
	SELECT COUNT(*)
	FROM pg_index i
	JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = i.indkey[0]
	WHERE i.indrelid = 'clients'::regclass
	  AND i.indisunique
	  AND i.indnatts = 1
	  AND a.attname = 'name'`

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email         TEXT,
		is_active     BOOLEAN NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id                       INTEGER PRIMARY KEY AUTOINCREMENT,
		name                     TEXT NOT NULL UNIQUE,
		email                    TEXT,
		phone                    TEXT,
		address                  TEXT,
		special_inspection_value DECIMAL(10,2) CHECK (special_inspection_value IS NULL OR special_inspection_value >= 0),
		created_at               TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id      INTEGER REFERENCES clients (id) ON DELETE SET NULL,
		service_name   TEXT NOT NULL,
		original_value DECIMAL(10,2) NOT NULL CHECK (original_value >= 0),
		discount_value DECIMAL(10,2) NOT NULL DEFAULT 0 CHECK (discount_value >= 0),
		final_value    DECIMAL(10,2) NOT NULL CHECK (final_value >= 0),
		sale_date      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email         TEXT,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id                       BIGSERIAL PRIMARY KEY,
		name                     TEXT NOT NULL UNIQUE,
		email                    TEXT,
		phone                    TEXT,
		address                  TEXT,
		special_inspection_value NUMERIC(10,2) CHECK (special_inspection_value IS NULL OR special_inspection_value >= 0),
		created_at               TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             BIGSERIAL PRIMARY KEY,
		client_id      BIGINT REFERENCES clients (id) ON DELETE SET NULL,
		service_name   TEXT NOT NULL,
		original_value NUMERIC(10,2) NOT NULL CHECK (original_value >= 0),
		discount_value NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (discount_value >= 0),
		final_value    NUMERIC(10,2) NOT NULL CHECK (final_value >= 0),
		sale_date      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date)`,
}

// createSchema creates the tables when absent. There is no migration
// history; existing tables are left untouched.
func (s *Store) createSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if s.driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return wrapErr("create schema", err)
		}
	}
	return nil
}

// checkSchema catches tables that CREATE IF NOT EXISTS left in an older
// shape. Nothing is migrated; the error names the manual fix.
func (s *Store) checkSchema(ctx context.Context) error {
	q := sqliteClientNameIndex
	if s.driver == DriverPostgres {
		q = postgresClientNameIndex
	}
	var n int
	if err := s.db.GetContext(ctx, &n, q); err != nil {
		return wrapErr("check schema", err)
	}
	if n == 0 {
		return fmt.Errorf("check schema: %w; remove duplicate client names and run "+
			"CREATE UNIQUE INDEX clients_name_key ON clients (name)", ErrClientNameNotUnique)
	}
	return nil
}
