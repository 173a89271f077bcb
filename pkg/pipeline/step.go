package pipeline

import (
	"errors"
	"fmt"

	"github.com/TechXTT/sqlpipe/pkg/source"
)

// Kind tags the variant of a Step.
type Kind int

const (
	// KindAction runs a script for its side effects only.
	KindAction Kind = iota + 1
	// KindQuery runs a script that returns rows and reports them.
	KindQuery
	// KindLoad appends a CSV file into an existing table.
	KindLoad
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindQuery:
		return "query"
	case KindLoad:
		return "load"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Step is one entry of a pipeline. Script is set for actions and queries,
// Table and File for loads.
type Step struct {
	Kind   Kind
	Script source.ScriptID
	Table  string
	File   string
}

func Action(id source.ScriptID) Step { return Step{Kind: KindAction, Script: id} }

func Query(id source.ScriptID) Step { return Step{Kind: KindQuery, Script: id} }

func Load(table, file string) Step { return Step{Kind: KindLoad, Table: table, File: file} }

// Target names what the step operates on: the script, or the CSV file.
func (s Step) Target() string {
	if s.Kind == KindLoad {
		return s.File
	}
	return string(s.Script)
}

func (s Step) String() string {
	if s.Kind == KindLoad {
		return fmt.Sprintf("load(%s <- %s)", s.Table, s.File)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Script)
}

// Validate checks that the fields required by the step's kind are set.
func (s Step) Validate() error {
	switch s.Kind {
	case KindAction, KindQuery:
		if s.Script == "" {
			return fmt.Errorf("%s step: script is empty", s.Kind)
		}
	case KindLoad:
		if s.Table == "" || s.File == "" {
			return errors.New("load step: table and file are required")
		}
	default:
		return fmt.Errorf("unknown step %s", s.Kind)
	}
	return nil
}
