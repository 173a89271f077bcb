package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/TechXTT/sqlpipe/pkg/logging"
	"github.com/TechXTT/sqlpipe/pkg/report"
	"github.com/TechXTT/sqlpipe/pkg/runtime"
	"github.com/TechXTT/sqlpipe/pkg/source"
)

// Loader appends an external data file into a table of conn.
type Loader interface {
	Load(ctx context.Context, conn runtime.Conn, table, file string) (int64, error)
}

// Runner executes SQL scripts against the one connection it owns.
// A Runner is not safe for concurrent use.
type Runner struct {
	conn      runtime.Conn
	src       source.Source
	log       *slog.Logger
	formatter report.Formatter
	loader    Loader
	hooks     []Hooks
	closed    bool
}

// NewRunner takes ownership of conn; the runner closes it.
func NewRunner(conn runtime.Conn, src source.Source, opts ...Option) *Runner {
	r := &Runner{
		conn:      conn,
		src:       src,
		log:       logging.Discard(),
		formatter: report.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAction executes a script whose result, if any, is discarded.
func (r *Runner) RunAction(ctx context.Context, id source.ScriptID) error {
	if r.closed {
		return ErrClosed
	}
	r.log.Info("RUN SQL script", "script", id)
	text, err := r.src.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := r.conn.Exec(ctx, text); err != nil {
		return &ExecutionError{ScriptID: id, Cause: err}
	}
	r.log.Info("DONE SQL script", "script", id)
	return nil
}

// RunQuery executes a script, logs a report of its rows and returns them.
func (r *Runner) RunQuery(ctx context.Context, id source.ScriptID) (*runtime.ResultSet, error) {
	if r.closed {
		return nil, ErrClosed
	}
	r.log.Info("RUN SQL query", "script", id)
	text, err := r.src.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	rs, err := r.conn.Query(ctx, text)
	if err != nil {
		return nil, &ExecutionError{ScriptID: id, Cause: err}
	}
	if err := rs.Validate(); err != nil {
		return nil, &ExecutionError{ScriptID: id, Cause: err}
	}

	r.log.Info(report.Banner)
	r.log.Info(path.Base(string(id)))
	r.log.Info(report.Banner)
	for _, line := range r.formatter.Lines(rs) {
		r.log.Info(line, "script", id)
	}
	return rs, nil
}

// RunLoad appends the CSV file into table through the configured Loader.
func (r *Runner) RunLoad(ctx context.Context, table, file string) error {
	if r.closed {
		return ErrClosed
	}
	if r.loader == nil {
		return ErrNoLoader
	}
	r.log.Info("LOAD CSV", "table", table, "file", file)
	n, err := r.loader.Load(ctx, r.conn, table, file)
	if err != nil {
		return &ExecutionError{ScriptID: source.ScriptID(file), Cause: err}
	}
	r.log.Info("DONE CSV", "table", table, "file", file, "rows", n)
	return nil
}

// Run executes steps in order and stops at the first failure. The
// connection is closed when Run returns, whatever the outcome.
func (r *Runner) Run(ctx context.Context, steps []Step) (err error) {
	if r.closed {
		return ErrClosed
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	r.log.Info("START pipeline", "steps", len(steps))
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runStep(ctx, i, step); err != nil {
			r.log.Error("pipeline aborted", "step", i+1, "target", step.Target(), "error", err)
			return err
		}
	}
	r.log.Info("END pipeline")
	return nil
}

func (r *Runner) runStep(ctx context.Context, index int, step Step) error {
	if err := step.Validate(); err != nil {
		return err
	}
	for _, h := range r.hooks {
		h.BeforeStep(ctx, index, step)
	}

	start := time.Now()
	var err error
	switch step.Kind {
	case KindAction:
		err = r.RunAction(ctx, step.Script)
	case KindQuery:
		_, err = r.RunQuery(ctx, step.Script)
	case KindLoad:
		err = r.RunLoad(ctx, step.Table, step.File)
	}
	elapsed := time.Since(start)

	for _, h := range r.hooks {
		h.AfterStep(ctx, index, step, elapsed, err)
	}
	return err
}

// Close releases the connection. Only the first call reaches it.
func (r *Runner) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	r.log.Debug("connection closed")
	return nil
}

// Opener acquires the connection for one pipeline run.
type Opener func(ctx context.Context) (runtime.Conn, error)

// Execute opens a connection, runs steps on it and closes it on every path.
func Execute(ctx context.Context, open Opener, src source.Source, steps []Step, opts ...Option) error {
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	conn, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open connection: %w", err)
	}
	return NewRunner(conn, src, opts...).Run(ctx, steps)
}
