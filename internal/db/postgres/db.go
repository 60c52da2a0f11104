package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// Supported database/sql drivers
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// MaxBatchSize bounds the number of IDs accepted by batch queries
const MaxBatchSize = 1000

// Options configures the connection pool
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// Open opens a *sql.DB for the configured driver, applies the pool settings
// and pings the server once before returning.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	db, err := openDriver(opts)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	pingCtx := ctx
	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func openDriver(opts Options) (*sql.DB, error) {
	switch opts.Driver {
	case "", DriverPQ:
		db, err := sql.Open(DriverPQ, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, nil
	case DriverPGX:
		cfg, err := pgx.ParseConfig(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database url: %w", err)
		}
		if opts.ConnectTimeout > 0 {
			cfg.ConnectTimeout = opts.ConnectTimeout
		}
		return stdlib.OpenDB(*cfg), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}
