package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/TechXTT/sqlpipe/pkg/internal/typeconv"
	"github.com/TechXTT/sqlpipe/pkg/runtime"
)

// ErrNoBulkInsert is returned when the connection cannot append rows.
var ErrNoBulkInsert = errors.New("connection does not support bulk insert")

// CSV appends header-first CSV files into existing tables. Field types are
// inferred per value: empty fields become NULL, integers and reals are bound
// as numbers, everything else as text.
type CSV struct {
	fsys fs.FS
}

// NewCSV reads CSV files from fsys.
func NewCSV(fsys fs.FS) *CSV {
	return &CSV{fsys: fsys}
}

// NewCSVDir reads CSV files below dir.
func NewCSVDir(dir string) *CSV {
	return NewCSV(os.DirFS(dir))
}

// Load appends every record of file into table and returns the row count.
func (l *CSV) Load(ctx context.Context, conn runtime.Conn, table, file string) (int64, error) {
	inserter, ok := conn.(runtime.BulkInserter)
	if !ok {
		return 0, ErrNoBulkInsert
	}

	f, err := l.fsys.Open(file)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	columns, rows, err := readCSV(f)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", file, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return inserter.Insert(ctx, table, columns, rows)
}

func readCSV(r io.Reader) ([]string, [][]any, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.New("missing header")
	}
	if err != nil {
		return nil, nil, err
	}
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			return nil, nil, fmt.Errorf("column %d has an empty name", i+1)
		}
		columns[i] = h
	}

	var rows [][]any
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make([]any, len(record))
		for i, field := range record {
			row[i] = typeconv.ParseField(field)
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}
