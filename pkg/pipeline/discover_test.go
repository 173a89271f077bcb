package pipeline

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_OrdersCleanBootstrapQueries(t *testing.T) {
	fsys := fstest.MapFS{
		"civic_event_query_kpi_contributions.sql":    {Data: []byte("SELECT 1")},
		"civic_event_bootstrap.sql":                  {Data: []byte("CREATE TABLE x (a INT)")},
		"civic_event_query_attendance_count.sql":     {Data: []byte("SELECT 1")},
		"civic_event_clean.sql":                      {Data: []byte("DROP TABLE IF EXISTS x")},
		"civic_event_query_attendance_aggregate.sql": {Data: []byte("SELECT 1")},

		"README.md":               {Data: []byte("notes")},
		"scratch.sql":             {Data: []byte("SELECT 2")},
		"archive/old_query_a.sql": {Data: []byte("SELECT 3")},
	}

	steps, err := Discover(fsys)
	require.NoError(t, err)
	assert.Equal(t, []Step{
		Action("civic_event_clean.sql"),
		Action("civic_event_bootstrap.sql"),
		Query("civic_event_query_attendance_aggregate.sql"),
		Query("civic_event_query_attendance_count.sql"),
		Query("civic_event_query_kpi_contributions.sql"),
	}, steps)
}

func TestDiscover_NoScripts(t *testing.T) {
	_, err := Discover(fstest.MapFS{"notes.txt": {Data: []byte("x")}})
	assert.ErrorIs(t, err, ErrNoScripts)
}

func TestStep_ValidateAndString(t *testing.T) {
	assert.NoError(t, Action("a.sql").Validate())
	assert.NoError(t, Load("t", "t.csv").Validate())
	assert.Error(t, Query("").Validate())
	assert.Error(t, Load("t", "").Validate())
	assert.Error(t, Step{}.Validate())

	assert.Equal(t, "query(q.sql)", Query("q.sql").String())
	assert.Equal(t, "load(t <- t.csv)", Load("t", "t.csv").String())
	assert.Equal(t, "t.csv", Load("t", "t.csv").Target())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
