package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TechXTT/sqlpipe/pkg/runtime"
)

// fakeConn records every script it receives. Scripts listed in fail are
// rejected with the mapped error.
type fakeConn struct {
	execs    []string
	queries  []string
	fail     map[string]error
	results  map[string]*runtime.ResultSet
	closes   int
	closeErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		fail:    map[string]error{},
		results: map[string]*runtime.ResultSet{},
	}
}

func (c *fakeConn) Exec(_ context.Context, script string) error {
	c.execs = append(c.execs, script)
	return c.fail[script]
}

func (c *fakeConn) Query(_ context.Context, script string) (*runtime.ResultSet, error) {
	c.queries = append(c.queries, script)
	if err := c.fail[script]; err != nil {
		return nil, err
	}
	rs, ok := c.results[script]
	if !ok {
		return nil, errors.New("no such table")
	}
	return rs, nil
}

func (c *fakeConn) Close() error {
	c.closes++
	return c.closeErr
}

type fakeLoader struct {
	calls []string
	err   error
}

func (l *fakeLoader) Load(_ context.Context, _ runtime.Conn, table, file string) (int64, error) {
	l.calls = append(l.calls, table+"<-"+file)
	if l.err != nil {
		return 0, l.err
	}
	return 2, nil
}

// logCapture collects the messages of a JSON slog logger.
type logCapture struct {
	buf bytes.Buffer
}

func (lc *logCapture) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&lc.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (lc *logCapture) messages(t *testing.T) []string {
	t.Helper()
	var msgs []string
	sc := bufio.NewScanner(bytes.NewReader(lc.buf.Bytes()))
	for sc.Scan() {
		var rec struct {
			Msg string `json:"msg"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		msgs = append(msgs, rec.Msg)
	}
	return msgs
}
