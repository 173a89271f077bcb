package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/TechXTT/sqlpipe"
	"github.com/TechXTT/sqlpipe/pkg/config"
	"github.com/TechXTT/sqlpipe/pkg/logging"
	"github.com/TechXTT/sqlpipe/pkg/pipeline"
)

const stepsHelp = `Steps come from the "steps" list of --config when it is set. Otherwise they
are discovered in --sql-dir: *clean.sql, then *bootstrap.sql, then every
*query_*.sql in file-name order. Discovery never adds CSV load steps; list
"load" steps in a config file to append CSV data after bootstrap.`

type flags struct {
	configFile string
	engine     string
	dsn        string
	sqlDir     string
	dataDir    string
	logLevel   string
}

func (f *flags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "Pipeline YAML file")
	cmd.Flags().StringVar(&f.engine, "engine", "", "Database engine (sqlite, duckdb, postgres)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "Data source name or database file")
	cmd.Flags().StringVar(&f.sqlDir, "sql-dir", "", "Directory holding the SQL scripts")
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "Directory holding CSV files for load steps")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
}

// load reads the config file and applies command-line overrides on top.
func (f *flags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.engine != "" {
		cfg.Engine = f.engine
	}
	if f.dsn != "" {
		cfg.DSN = f.dsn
	}
	if f.sqlDir != "" {
		cfg.SQLDir = f.sqlDir
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if f.logLevel != "" {
		cfg.Log.Level = logging.LogLevel(f.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewRunCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline",
		Long:  "Run the pipeline.\n\n" + stepsHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			log, closeLog, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()

			rec := &pipeline.Recorder{}
			runErr := sqlpipe.Run(cmd.Context(), cfg, log, pipeline.WithHooks(rec))
			printSummary(cmd.OutOrStdout(), rec)
			return runErr
		},
	}
	f.register(cmd)
	return cmd
}

func NewStepsCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Print the resolved pipeline steps",
		Long:  stepsHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			steps, err := sqlpipe.Steps(cfg)
			if err != nil {
				return err
			}
			for i, s := range steps {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-6s  %s\n", i+1, s.Kind, describe(s))
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func describe(s pipeline.Step) string {
	if s.Kind == pipeline.KindLoad {
		return s.File + " -> " + s.Table
	}
	return string(s.Script)
}

func printSummary(w io.Writer, rec *pipeline.Recorder) {
	if len(rec.Records) == 0 {
		return
	}
	ok := color.New(color.FgGreen)
	failed := color.New(color.FgRed, color.Bold)
	for _, r := range rec.Records {
		status := ok.Sprint("ok")
		if r.Err != nil {
			status = failed.Sprint("FAILED")
		}
		fmt.Fprintf(w, "%2d  %-6s  %-50s  %10s  %s\n",
			r.Index+1, r.Step.Kind, describe(r.Step), r.Elapsed.Round(100*time.Microsecond), status)
	}
}
