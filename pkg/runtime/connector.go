package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TechXTT/sqlpipe/internal/core"
)

// Engine adapts one embedded or remote SQL engine to the runner.
type Engine interface {
	// Name is the engine key used in configuration.
	Name() string
	// Driver is the database/sql driver name.
	Driver() string
	// DSN normalizes a configured data source name for the driver.
	DSN(raw string) (string, error)
	// Placeholder renders the n-th bind parameter.
	Placeholder(n int) string
}

var engines = map[string]Engine{}

func register(e Engine) {
	engines[e.Name()] = e
}

// LookupEngine returns the engine registered under name.
func LookupEngine(name string) (Engine, error) {
	e, ok := engines[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %s)", name, strings.Join(Engines(), ", "))
	}
	return e, nil
}

// Engines lists the registered engine names in sorted order.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for n := range engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Connect opens exactly one connection to the named engine.
func Connect(ctx context.Context, engineName, dsn string) (*SQLConn, error) {
	engine, err := LookupEngine(engineName)
	if err != nil {
		return nil, err
	}
	normalized, err := engine.DSN(dsn)
	if err != nil {
		return nil, err
	}
	db, conn, err := core.Connect(ctx, engine.Driver(), normalized)
	if err != nil {
		return nil, err
	}
	return &SQLConn{engine: engine, db: db, conn: conn}, nil
}

// NewSQLConn pins a connection of an already opened pool.
func NewSQLConn(ctx context.Context, engine Engine, db *sql.DB) (*SQLConn, error) {
	conn, err := core.Pin(ctx, db)
	if err != nil {
		return nil, err
	}
	return &SQLConn{engine: engine, db: db, conn: conn}, nil
}

// isMemory reports whether dsn names an in-memory database.
func isMemory(dsn string) bool {
	return dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, ":memory:?")
}

// ensureParentDir creates the directory holding a file database.
func ensureParentDir(dsn string) error {
	if isMemory(dsn) {
		return nil
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	return nil
}
