package runtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TechXTT/sqlpipe/internal/core"
)

// ErrConnClosed is returned by every SQLConn method after Close.
var ErrConnClosed = errors.New("connection is closed")

// Conn is the capability a pipeline needs from a database session.
type Conn interface {
	// Exec runs one or more statements and discards any result.
	Exec(ctx context.Context, script string) error

	// Query runs a statement and materializes every row.
	Query(ctx context.Context, script string) (*ResultSet, error)

	// Close releases the session.
	Close() error
}

// BulkInserter appends rows into an existing table in one transaction.
type BulkInserter interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// SQLConn is a Conn over a single pinned database/sql connection.
type SQLConn struct {
	engine Engine
	db     *sql.DB
	conn   *sql.Conn
	closed bool
}

// Engine returns the engine the connection was opened with.
func (c *SQLConn) Engine() Engine { return c.engine }

func (c *SQLConn) Exec(ctx context.Context, script string) error {
	if c.closed {
		return ErrConnClosed
	}
	_, err := c.conn.ExecContext(ctx, script)
	return err
}

func (c *SQLConn) Query(ctx context.Context, script string) (*ResultSet, error) {
	if c.closed {
		return nil, ErrConnClosed
	}
	rows, err := c.conn.QueryContext(ctx, script)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	rs := &ResultSet{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return rs, nil
}

// Insert prepares one INSERT for the table and executes it per row. Nothing
// is kept unless every row succeeds.
func (c *SQLConn) Insert(ctx context.Context, table string, columns []string, rows [][]any) (n int64, err error) {
	if c.closed {
		return 0, ErrConnClosed
	}
	query, err := core.NewInsertBuilder(c.engine.Placeholder).
		Into(table).
		Columns(columns...).
		Build()
	if err != nil {
		return 0, err
	}

	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, &ResultShapeError{Row: i, Want: len(columns), Got: len(row)}
		}
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("insert row %d into %s: %w", i+1, table, err)
		}
		n++
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// Close releases the connection. Only the first call reaches the driver.
func (c *SQLConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return core.Close(c.db, c.conn)
}
