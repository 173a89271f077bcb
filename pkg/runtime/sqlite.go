package runtime

import (
	"github.com/TechXTT/sqlpipe/internal/core"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func init() { register(SQLite{}) }

// SQLite runs pipelines on modernc.org/sqlite. Exec accepts multi-statement
// scripts, so bootstrap files can carry DROP/CREATE/INSERT sequences.
type SQLite struct{}

func (SQLite) Name() string   { return "sqlite" }
func (SQLite) Driver() string { return "sqlite" }

func (SQLite) DSN(raw string) (string, error) {
	if raw == "" {
		raw = ":memory:"
	}
	if err := ensureParentDir(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func (SQLite) Placeholder(n int) string { return core.QuestionMark(n) }
