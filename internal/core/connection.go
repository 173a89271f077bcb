// File: internal/core/connection.go
package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Connect opens a pool limited to one connection and pins that connection,
// so every statement of a run sees the same session.
func Connect(ctx context.Context, driver, dsn string) (*sql.DB, *sql.Conn, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	conn, err := Pin(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, conn, nil
}

// Pin limits db to a single connection and reserves it.
func Pin(ctx context.Context, db *sql.DB) (*sql.Conn, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

// Close releases the pinned connection and then the pool.
func Close(db *sql.DB, conn *sql.Conn) error {
	var errs []error
	if conn != nil {
		if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			errs = append(errs, fmt.Errorf("release connection: %w", err))
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
