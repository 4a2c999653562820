package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/neotech-labs/auth-core/internal/config"
)

//go:embed schema.sql
var schema string

// DB is the postgres pool backing the credential store
type DB struct {
	*sql.DB
}

// Connect opens a pool sized from cfg and checks the server answers.
// The schema is applied separately by InitSchema.
func Connect(ctx context.Context, cfg config.Database) (*DB, error) {
	pool, err := open(cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	return &DB{DB: pool}, nil
}

// open builds the pool without dialing; lib/pq connects lazily
func open(cfg config.Database) (*sql.DB, error) {
	pool, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return pool, nil
}

// InitSchema creates the users table when missing. Replicas starting
// together apply it one at a time.
func (db *DB) InitSchema(ctx context.Context) error {
	return db.withXactLock(ctx, schemaLock, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		return nil
	})
}

// Ping backs the readiness check
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}
