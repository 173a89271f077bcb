package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/TechXTT/sqlpipe/pkg/runtime"
)

func version() string {
	return "v0.3.0"
}

func help() string {
	return `sqlpipe runs an ordered list of SQL scripts against one database connection.
Cleanup and bootstrap scripts run as actions; query scripts are executed and
their rows are logged as a delimited report.
Usage:
  sqlpipe <command> [flags]
Available Commands:
  run         Run the pipeline
  steps       Print the resolved pipeline steps
  version     Print the version number
Flags:
  -h, --help   help for sqlpipe
Steps:
  Listed in the config file, or discovered from --sql-dir (clean, bootstrap,
  then queries by file name). CSV load steps need a config file.
Engines:
  ` + strings.Join(runtime.Engines(), ", ") + `
Use "sqlpipe [command] --help" for more information about a command.
Examples:
  sqlpipe run --config pipeline.yaml
  sqlpipe run --engine duckdb --dsn artifacts/duckdb/civic_event.duckdb --sql-dir sql/duckdb
  sqlpipe steps --sql-dir sql/sqlite`
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version())
		},
	}
}

// NewHelpCmd builds the `help` command.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print help information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(help())
		},
	}
}

// NewRootCmd builds the top–level `sqlpipe` command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sqlpipe",
		Short:         "sqlpipe — ordered SQL script runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewRunCmd())
	root.AddCommand(NewStepsCmd())
	root.AddCommand(NewVersionCmd())
	root.SetHelpCommand(NewHelpCmd())
	return root
}
