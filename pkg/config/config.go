package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/TechXTT/sqlpipe/pkg/logging"
	"github.com/TechXTT/sqlpipe/pkg/pipeline"
	"github.com/TechXTT/sqlpipe/pkg/report"
	"github.com/TechXTT/sqlpipe/pkg/runtime"
	"github.com/TechXTT/sqlpipe/pkg/source"
)

// Config holds all settings for one pipeline run.
type Config struct {
	Engine      string
	DSN         string
	SQLDir      string
	DataDir     string
	Delimiter   string
	NullLiteral string
	Log         logging.Config
	Steps       []pipeline.Step
}

type fileConfig struct {
	Engine      string     `yaml:"engine"`
	DSN         string     `yaml:"dsn"`
	SQLDir      string     `yaml:"sql_dir"`
	DataDir     string     `yaml:"data_dir"`
	Delimiter   *string    `yaml:"delimiter"`
	NullLiteral *string    `yaml:"null_literal"`
	Log         fileLog    `yaml:"log"`
	Steps       []fileStep `yaml:"steps"`
}

type fileLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type fileStep struct {
	Action string    `yaml:"action"`
	Query  string    `yaml:"query"`
	Load   *fileLoad `yaml:"load"`
}

type fileLoad struct {
	Table string `yaml:"table"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Engine:      "sqlite",
		DSN:         ":memory:",
		SQLDir:      "sql",
		DataDir:     "data",
		Delimiter:   report.DefaultDelimiter,
		NullLiteral: report.DefaultNull,
		Log: logging.Config{
			Level:  logging.LevelInfo,
			Format: "text",
		},
	}
}

// Load reads .env, the optional pipeline file at path and SQLPIPE_*
// environment overrides, in that order of precedence (lowest first). Step
// entries are checked while parsing; call Validate once every override has
// been applied.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.apply(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.DSN = os.ExpandEnv(cfg.DSN)
	return cfg, nil
}

func (c *Config) apply(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	setIf(&c.Engine, fc.Engine)
	setIf(&c.DSN, fc.DSN)
	setIf(&c.SQLDir, fc.SQLDir)
	setIf(&c.DataDir, fc.DataDir)
	if fc.Delimiter != nil {
		c.Delimiter = *fc.Delimiter
	}
	if fc.NullLiteral != nil {
		c.NullLiteral = *fc.NullLiteral
	}
	if fc.Log.Level != "" {
		c.Log.Level = logging.LogLevel(fc.Log.Level)
	}
	setIf(&c.Log.Format, fc.Log.Format)
	setIf(&c.Log.OutputPath, fc.Log.Output)

	for i, fs := range fc.Steps {
		step, err := fs.step()
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		c.Steps = append(c.Steps, step)
	}
	return nil
}

func (c *Config) applyEnv() {
	setIf(&c.Engine, os.Getenv("SQLPIPE_ENGINE"))
	setIf(&c.DSN, os.Getenv("SQLPIPE_DSN"))
	setIf(&c.SQLDir, os.Getenv("SQLPIPE_SQL_DIR"))
	setIf(&c.DataDir, os.Getenv("SQLPIPE_DATA_DIR"))
	if lvl := os.Getenv("SQLPIPE_LOG_LEVEL"); lvl != "" {
		c.Log.Level = logging.LogLevel(lvl)
	}
	setIf(&c.Log.Format, os.Getenv("SQLPIPE_LOG_FORMAT"))
	setIf(&c.Log.OutputPath, os.Getenv("SQLPIPE_LOG_OUTPUT"))
}

// Validate checks the engine name and every configured step.
func (c *Config) Validate() error {
	if _, err := runtime.LookupEngine(c.Engine); err != nil {
		return err
	}
	if c.SQLDir == "" {
		return errors.New("sql_dir is empty")
	}
	for i, s := range c.Steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Formatter returns the report formatter described by the config.
func (c *Config) Formatter() report.Formatter {
	return report.Formatter{Delimiter: c.Delimiter, Null: c.NullLiteral}
}

func (fs fileStep) step() (pipeline.Step, error) {
	set := 0
	var step pipeline.Step
	if fs.Action != "" {
		set++
		step = pipeline.Action(source.ScriptID(fs.Action))
	}
	if fs.Query != "" {
		set++
		step = pipeline.Query(source.ScriptID(fs.Query))
	}
	if fs.Load != nil {
		set++
		step = pipeline.Load(fs.Load.Table, fs.Load.File)
	}
	if set != 1 {
		return pipeline.Step{}, errors.New("exactly one of action, query or load is required")
	}
	return step, step.Validate()
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
