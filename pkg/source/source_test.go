package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReturnsTextVerbatim(t *testing.T) {
	body := "DROP TABLE IF EXISTS t;\nCREATE TABLE t (id INTEGER);\n-- trailing comment\n"
	src := NewFS(fstest.MapFS{
		"bootstrap.sql": {Data: []byte(body)},
	})

	got, err := src.Load(context.Background(), "bootstrap.sql")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestLoad_NotFound(t *testing.T) {
	src := NewFS(fstest.MapFS{})

	_, err := src.Load(context.Background(), "missing.sql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, ScriptID("missing.sql"), nf.ScriptID)
	assert.Contains(t, err.Error(), "missing.sql")
}

func TestLoad_RejectsEscapingPath(t *testing.T) {
	src := NewFS(fstest.MapFS{})

	_, err := src.Load(context.Background(), "../secret.sql")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_InvalidUTF8(t *testing.T) {
	src := NewFS(fstest.MapFS{
		"bad.sql": {Data: []byte{0xff, 0xfe, 'x'}},
	})

	_, err := src.Load(context.Background(), "bad.sql")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestLoad_CanceledContext(t *testing.T) {
	src := NewFS(fstest.MapFS{"a.sql": {Data: []byte("SELECT 1")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Load(ctx, "a.sql")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "duckdb"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "duckdb", "q.sql"), []byte("SELECT 42;"), 0o644))

	got, err := NewDir(dir).Load(context.Background(), "duckdb/q.sql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 42;", got)
}
