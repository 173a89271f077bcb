// Package sqlpipe runs an ordered list of SQL scripts against one database
// connection and logs a report for every query.
package sqlpipe

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/TechXTT/sqlpipe/pkg/config"
	"github.com/TechXTT/sqlpipe/pkg/loader"
	"github.com/TechXTT/sqlpipe/pkg/logging"
	"github.com/TechXTT/sqlpipe/pkg/pipeline"
	"github.com/TechXTT/sqlpipe/pkg/runtime"
	"github.com/TechXTT/sqlpipe/pkg/source"
)

// Steps returns the configured steps, or the steps discovered in the SQL
// directory when none are configured.
func Steps(cfg *config.Config) ([]pipeline.Step, error) {
	if len(cfg.Steps) > 0 {
		return cfg.Steps, nil
	}
	return pipeline.Discover(os.DirFS(cfg.SQLDir))
}

// Run executes the pipeline described by cfg. The connection is opened once
// and closed before Run returns. Extra options are applied after the ones
// derived from cfg.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...pipeline.Option) error {
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("run_id", uuid.NewString())

	steps, err := Steps(cfg)
	if err != nil {
		return err
	}

	log.Info("START main()",
		"engine", cfg.Engine,
		"sql_dir", cfg.SQLDir,
		"data_dir", cfg.DataDir,
		"dsn", cfg.DSN,
	)

	open := func(ctx context.Context) (runtime.Conn, error) {
		return runtime.Connect(ctx, cfg.Engine, cfg.DSN)
	}
	runOpts := append([]pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithFormatter(cfg.Formatter()),
		pipeline.WithLoader(loader.NewCSVDir(cfg.DataDir)),
	}, opts...)

	if err := pipeline.Execute(ctx, open, source.NewDir(cfg.SQLDir), steps, runOpts...); err != nil {
		return err
	}
	log.Info("END main()")
	return nil
}
