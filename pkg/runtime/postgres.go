package runtime

import (
	"fmt"
	"strings"

	"github.com/TechXTT/sqlpipe/internal/core"

	_ "github.com/lib/pq"
)

func init() { register(Postgres{}) }

// Postgres runs pipelines against a PostgreSQL server through lib/pq.
type Postgres struct{}

func (Postgres) Name() string   { return "postgres" }
func (Postgres) Driver() string { return "postgres" }

func (Postgres) DSN(dsn string) (string, error) {
	// If the DSN is empty, throw an error.
	if dsn == "" {
		return "", fmt.Errorf("DSN is empty")
	}
	// Ensure SSL mode is disabled by default if not specified.
	if strings.HasPrefix(dsn, "postgres://") && !strings.Contains(dsn, "sslmode=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + "sslmode=disable"
	}
	return dsn, nil
}

func (Postgres) Placeholder(n int) string { return core.Dollar(n) }
