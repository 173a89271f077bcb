package runtime

import (
	"github.com/TechXTT/sqlpipe/internal/core"

	_ "github.com/marcboeker/go-duckdb/v2" // DuckDB driver
)

func init() { register(DuckDB{}) }

// DuckDB runs pipelines on an embedded DuckDB database. Bootstrap scripts may
// ingest CSV natively with COPY ... FROM or read_csv_auto.
type DuckDB struct{}

func (DuckDB) Name() string   { return "duckdb" }
func (DuckDB) Driver() string { return "duckdb" }

// DSN maps ":memory:" to the empty DSN the driver expects for in-memory use.
func (DuckDB) DSN(raw string) (string, error) {
	if isMemory(raw) {
		return "", nil
	}
	if err := ensureParentDir(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func (DuckDB) Placeholder(n int) string { return core.QuestionMark(n) }
