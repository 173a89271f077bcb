package loader

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechXTT/sqlpipe/pkg/runtime"
)

const eventCSV = "\ufeffevent_id,name,event_type,budget\n" +
	"1,Town Hall,Meeting,150.5\n" +
	"2,\"Park Cleanup, North\",Volunteer,\n" +
	"3,Library Fair,Festival,900\n"

func TestReadCSV_InfersTypes(t *testing.T) {
	columns, rows, err := readCSV(strings.NewReader(eventCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"event_id", "name", "event_type", "budget"}, columns)
	assert.Equal(t, [][]any{
		{int64(1), "Town Hall", "Meeting", 150.5},
		{int64(2), "Park Cleanup, North", "Volunteer", nil},
		{int64(3), "Library Fair", "Festival", int64(900)},
	}, rows)
}

func TestReadCSV_Errors(t *testing.T) {
	_, _, err := readCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header")

	_, _, err = readCSV(strings.NewReader("a,,c\n1,2,3\n"))
	assert.ErrorContains(t, err, "empty name")

	_, _, err = readCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

func TestLoad_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := runtime.Connect(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Exec(ctx, `CREATE TABLE civic_event (
		event_id INTEGER PRIMARY KEY, name TEXT, event_type TEXT, budget REAL)`))

	l := NewCSV(fstest.MapFS{"civic_event.csv": {Data: []byte(eventCSV)}})
	n, err := l.Load(ctx, conn, "civic_event", "civic_event.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	rs, err := conn.Query(ctx, "SELECT name, budget FROM civic_event ORDER BY event_id")
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"Town Hall", 150.5},
		{"Park Cleanup, North", nil},
		{"Library Fair", 900.0},
	}, rs.Rows)
}

func TestLoad_RollsBackOnConstraintViolation(t *testing.T) {
	ctx := context.Background()
	conn, err := runtime.Connect(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY)`))
	l := NewCSV(fstest.MapFS{"t.csv": {Data: []byte("id\n1\n2\n1\n")}})

	_, err = l.Load(ctx, conn, "t", "t.csv")
	require.Error(t, err)

	rs, err := conn.Query(ctx, "SELECT COUNT(*) FROM t")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(0)}}, rs.Rows)
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := context.Background()
	conn, err := runtime.Connect(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	_, err = NewCSV(fstest.MapFS{}).Load(ctx, conn, "t", "missing.csv")
	assert.ErrorContains(t, err, "open missing.csv")
}

type plainConn struct{ runtime.Conn }

func TestLoad_RequiresBulkInserter(t *testing.T) {
	_, err := NewCSV(fstest.MapFS{}).Load(context.Background(), plainConn{}, "t", "t.csv")
	assert.ErrorIs(t, err, ErrNoBulkInsert)
}
