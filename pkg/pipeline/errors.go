package pipeline

import (
	"errors"
	"fmt"

	"github.com/TechXTT/sqlpipe/pkg/source"
)

var (
	// ErrClosed is returned once the runner has released its connection.
	ErrClosed = errors.New("pipeline: connection already closed")

	// ErrNoLoader is returned for a load step when no Loader was configured.
	ErrNoLoader = errors.New("pipeline: no loader configured")

	// ErrNoScripts is returned by Discover when no pipeline scripts are found.
	ErrNoScripts = errors.New("pipeline: no clean, bootstrap or query scripts found")
)

// ExecutionError reports a step the database rejected. ScriptID names the
// script (or CSV file for load steps) that failed.
type ExecutionError struct {
	ScriptID source.ScriptID
	Cause    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute %s: %v", e.ScriptID, e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }
