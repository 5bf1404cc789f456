package terraform

import (
	"errors"
	"fmt"
)

// ErrBinaryNotFound indicates the terraform executable could not be located
// or is not runnable.
var ErrBinaryNotFound = errors.New("terraform binary not found")

// Warning reports a recoverable tool condition, e.g. a project without named
// workspaces or a state that cannot be read yet. Callers decide per call site
// whether to substitute a default or skip the affected project path.
type Warning struct {
	Msg string
}

func (w *Warning) Error() string { return w.Msg }

// IsWarning reports whether err is (or wraps) a recoverable Warning.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}

// CommandError is a hard failure from the terraform binary: the run aborts.
type CommandError struct {
	Command string
	Msg     string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("terraform %s: %s", e.Command, e.Msg)
}

// WorkspaceError reports a requested workspace that does not exist for a
// project path.
type WorkspaceError struct {
	Path      string
	Workspace string
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("workspace %q does not exist in %s", e.Workspace, e.Path)
}
