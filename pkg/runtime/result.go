package runtime

import "fmt"

// ResultSet holds every row of one query, in engine order.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// ResultShapeError reports a row whose width differs from the column count.
type ResultShapeError struct {
	Row  int
	Want int
	Got  int
}

func (e *ResultShapeError) Error() string {
	return fmt.Sprintf("row %d has %d values, want %d", e.Row, e.Got, e.Want)
}

// Validate checks that every row matches the column count.
func (rs *ResultSet) Validate() error {
	for i, row := range rs.Rows {
		if len(row) != len(rs.Columns) {
			return &ResultShapeError{Row: i, Want: len(rs.Columns), Got: len(row)}
		}
	}
	return nil
}
