package pipeline

import (
	"log/slog"

	"github.com/TechXTT/sqlpipe/pkg/report"
)

type Option func(r *Runner)

func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

func WithFormatter(f report.Formatter) Option {
	return func(r *Runner) {
		r.formatter = f
	}
}

func WithLoader(l Loader) Option {
	return func(r *Runner) {
		r.loader = l
	}
}

func WithHooks(hooks ...Hooks) Option {
	return func(r *Runner) {
		r.hooks = append(r.hooks, hooks...)
	}
}
