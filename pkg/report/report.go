package report

import (
	"strings"

	"github.com/TechXTT/sqlpipe/pkg/internal/typeconv"
	"github.com/TechXTT/sqlpipe/pkg/runtime"
)

const (
	DefaultDelimiter = ", "
	DefaultNull      = "None"
	Banner           = "===================================="
)

// Formatter renders a ResultSet as delimited text lines.
type Formatter struct {
	Delimiter string
	Null      string
}

// New returns a Formatter with the default delimiter and null literal.
func New() Formatter {
	return Formatter{Delimiter: DefaultDelimiter, Null: DefaultNull}
}

// Header joins the column names.
func (f Formatter) Header(rs *runtime.ResultSet) string {
	return strings.Join(rs.Columns, f.Delimiter)
}

// Row joins one row's values in their textual form.
func (f Formatter) Row(row []any) string {
	fields := make([]string, len(row))
	for i, v := range row {
		fields[i] = typeconv.ToText(v, f.Null)
	}
	return strings.Join(fields, f.Delimiter)
}

// Lines returns the column line followed by one line per row.
func (f Formatter) Lines(rs *runtime.ResultSet) []string {
	lines := make([]string, 0, len(rs.Rows)+1)
	lines = append(lines, f.Header(rs))
	for _, row := range rs.Rows {
		lines = append(lines, f.Row(row))
	}
	return lines
}

// Format returns Lines joined by newlines.
func (f Formatter) Format(rs *runtime.ResultSet) string {
	return strings.Join(f.Lines(rs), "\n")
}
