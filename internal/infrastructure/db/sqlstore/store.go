// Package sqlstore persists users, clients and sales in a relational database.
//
// SQLite (a single file, the default) and PostgreSQL are supported. Queries
// are written once with '?' placeholders and rebound for the active driver.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultTimeout = 5 * time.Second
	defaultSQLite  = "gestao_empresarial.db"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Config captures the settings required to open the store.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

// Store is the shared handle every repository is built on.
type Store struct {
	db     *sqlx.DB
	driver string
	log    zerolog.Logger
}

// Open connects to the configured database and verifies it with a ping.
// Failures to reach the database wrap domain.ErrStoreUnavailable.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	drv := cfg.Driver
	if drv == "" {
		drv = DriverSQLite
	}

	dsn := cfg.DSN
	switch drv {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", drv)
	}

	db, err := sqlx.Open(drv, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore open: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if drv == DriverSQLite {
		// one connection serializes writers on the single database file
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore ping: %w: %w", domain.ErrStoreUnavailable, err)
	}

	log.Info().Str("driver", drv).Msg("database connected")
	return New(db, log), nil
}

// New wraps an already opened database.
func New(db *sqlx.DB, log zerolog.Logger) *Store {
	return &Store{db: db, driver: db.DriverName(), log: log}
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}

// monthOf renders a YYYY-MM expression for a timestamp column stored in UTC.
func (s *Store) monthOf(col string) string {
	if s.driver == DriverPostgres {
		return "to_char(" + col + " AT TIME ZONE 'UTC', 'YYYY-MM')"
	}
	return "substr(" + col + ", 1, 7)"
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = defaultSQLite
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// wrapErr annotates err with op. Connectivity failures are marked as
// domain.ErrStoreUnavailable and out of range numbers as domain.ErrValidation.
func wrapErr(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "22003" {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrValidation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return constraintFailed(sqliteErr, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return constraintFailed(sqliteErr, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}

// constraintFailed matches the extended result code, or the primary code plus
// message when extended codes are not reported.
func constraintFailed(err *sqlite.Error, extended int, kind string) bool {
	code := err.Code()
	if code == extended {
		return true
	}
	return code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), kind)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
