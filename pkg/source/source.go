package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// ScriptID names a SQL script, usually a path relative to the SQL directory.
type ScriptID string

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("script not found")

	// ErrInvalidEncoding indicates a script that is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("script is not valid UTF-8")
)

// NotFoundError reports a script identifier that could not be resolved or read.
type NotFoundError struct {
	ScriptID ScriptID
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("script %s: %s", e.ScriptID, ErrNotFound)
	}
	return fmt.Sprintf("script %s: %s: %v", e.ScriptID, ErrNotFound, e.Err)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// Source loads raw SQL text. It never interprets the text.
type Source interface {
	Load(ctx context.Context, id ScriptID) (string, error)
}

// FS loads scripts from a file system.
type FS struct {
	fsys fs.FS
}

// NewFS returns a Source reading scripts from fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// NewDir returns a Source reading scripts below dir.
func NewDir(dir string) *FS {
	return NewFS(os.DirFS(dir))
}

// Load reads the whole script as UTF-8 text. Multi-statement scripts are
// returned verbatim.
func (s *FS) Load(ctx context.Context, id ScriptID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !fs.ValidPath(string(id)) {
		return "", &NotFoundError{ScriptID: id, Err: fs.ErrInvalid}
	}
	data, err := fs.ReadFile(s.fsys, string(id))
	if err != nil {
		return "", &NotFoundError{ScriptID: id, Err: err}
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("script %s: %w", id, ErrInvalidEncoding)
	}
	return string(data), nil
}
