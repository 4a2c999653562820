package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// schemaLock names the advisory lock held while the schema is applied
const schemaLock = "schema"

// lockKey converts a lock name to the 64-bit key PostgreSQL advisory locks take.
// FNV-1a keeps the mapping stable across processes.
func lockKey(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte("auth-core:lock:" + name))
	return int64(h.Sum64())
}

// withXactLock runs fn in a transaction that holds the named advisory lock.
// The lock is transaction-scoped, so it is released on commit or rollback
// regardless of which pooled connection served the transaction.
func (db *DB) withXactLock(ctx context.Context, name string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey(name)); err != nil {
		return fmt.Errorf("acquire %s lock: %w", name, err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
