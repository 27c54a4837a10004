package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

var (
	sharedMu sync.Mutex
	sharedDB *sql.DB
)

// Open opens a Postgres pool and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Shared returns the process-wide pool, opening it on first use. Concurrent first
// callers share one connection attempt. A failed attempt is not cached, so the
// next call retries.
func Shared(ctx context.Context, dsn string) (*sql.DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedDB != nil {
		return sharedDB, nil
	}
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	sharedDB = db
	return sharedDB, nil
}

// ResetShared closes and forgets the shared pool.
func ResetShared() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedDB == nil {
		return nil
	}
	err := sharedDB.Close()
	sharedDB = nil
	return err
}
