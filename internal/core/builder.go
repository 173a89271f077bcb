// File: internal/core/builder.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder renders the n-th (1-based) bind parameter of a dialect.
type Placeholder func(n int) string

// QuestionMark is the placeholder style of SQLite and DuckDB.
func QuestionMark(int) string { return "?" }

// Dollar is the placeholder style of PostgreSQL.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// InsertBuilder is a fluent builder for single-row INSERT statements
type InsertBuilder struct {
	table       string
	columns     []string
	placeholder Placeholder
}

func NewInsertBuilder(placeholder Placeholder) *InsertBuilder {
	if placeholder == nil {
		placeholder = QuestionMark
	}
	return &InsertBuilder{placeholder: placeholder}
}

func (ib *InsertBuilder) Into(table string) *InsertBuilder {
	ib.table = table
	return ib
}

func (ib *InsertBuilder) Columns(cols ...string) *InsertBuilder {
	ib.columns = cols
	return ib
}

// Build assembles the INSERT statement with one placeholder per column
func (ib *InsertBuilder) Build() (string, error) {
	if ib.table == "" {
		return "", errors.New("insert: table is empty")
	}
	if len(ib.columns) == 0 {
		return "", errors.New("insert: no columns")
	}
	cols := make([]string, len(ib.columns))
	params := make([]string, len(ib.columns))
	for i, c := range ib.columns {
		cols[i] = QuoteIdent(c)
		params[i] = ib.placeholder(i + 1)
	}
	parts := []string{
		"INSERT INTO", quoteQualified(ib.table),
		"(" + strings.Join(cols, ", ") + ")",
		"VALUES", "(" + strings.Join(params, ", ") + ")",
	}
	return strings.Join(parts, " "), nil
}

// QuoteIdent double-quotes an identifier, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteQualified quotes each part of a schema-qualified name
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = QuoteIdent(p)
	}
	return strings.Join(parts, ".")
}
