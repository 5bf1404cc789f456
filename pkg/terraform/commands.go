// Package terraform shells out to the terraform binary and decodes its
// machine-readable state output into typed inventory records.
package terraform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RunCommandFunc executes an argument vector in dir and returns the exit
// code, stdout and stderr. When checkRC is set a non-zero exit is returned
// as an error; otherwise it is left to the caller to interpret. Tests inject
// fakes through this type.
type RunCommandFunc func(args []string, dir string, checkRC bool) (int, string, string, error)

// RunCommand is the default RunCommandFunc, backed by os/exec.
func RunCommand(args []string, dir string, checkRC bool) (int, string, string, error) {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return -1, stdout.String(), stderr.String(), fmt.Errorf("running %s: %w", args[0], err)
		}
	}
	rc := cmd.ProcessState.ExitCode()
	if checkRC && rc != 0 {
		return rc, stdout.String(), stderr.String(), &CommandError{
			Command: strings.Join(args[1:], " "),
			Msg:     strings.TrimSpace(stderr.String()),
		}
	}
	return rc, stdout.String(), stderr.String(), nil
}

// WorkspaceContext describes the workspaces of one project path: the active
// one and the rest of the known set.
type WorkspaceContext struct {
	Current string
	All     []string
}

// Commands issues terraform CLI operations against one project path.
type Commands struct {
	run         RunCommandFunc
	projectPath string
	binary      string
	checkRC     bool
}

func NewCommands(run RunCommandFunc, projectPath, binary string, checkRC bool) *Commands {
	return &Commands{run: run, projectPath: projectPath, binary: binary, checkRC: checkRC}
}

// WorkspaceList queries `terraform workspace list`. A non-zero exit is a
// recoverable Warning: the project may not use named workspaces at all.
func (c *Commands) WorkspaceList() (WorkspaceContext, error) {
	rc, stdout, stderr, err := c.run([]string{c.binary, "workspace", "list"}, c.projectPath, c.checkRC)
	if err != nil {
		return WorkspaceContext{}, err
	}
	if rc != 0 {
		return WorkspaceContext{}, &Warning{
			Msg: fmt.Sprintf("could not list workspaces in %s: %s", c.projectPath, strings.TrimSpace(stderr)),
		}
	}

	// One workspace per line, the active one prefixed with "*".
	ctx := WorkspaceContext{}
	for _, line := range strings.Split(stdout, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "*") {
			ctx.Current = strings.TrimSpace(strings.TrimPrefix(name, "*"))
		} else {
			ctx.All = append(ctx.All, name)
		}
	}
	return ctx, nil
}

// WorkspaceSelect switches the project's active workspace. This mutates the
// on-disk workspace pointer; a failure is fatal for the run.
func (c *Commands) WorkspaceSelect(name string) error {
	rc, _, stderr, err := c.run([]string{c.binary, "workspace", "select", name}, c.projectPath, c.checkRC)
	if err != nil {
		return err
	}
	if rc != 0 {
		return &CommandError{
			Command: "workspace select " + name,
			Msg:     strings.TrimSpace(stderr),
		}
	}
	return nil
}

// Show runs `terraform show -json`, optionally against an explicit state
// file, and decodes the snapshot. A non-zero exit is a recoverable Warning
// (the path is skipped); output that cannot be decoded is a hard failure.
func (c *Commands) Show(stateFile string) (*State, error) {
	args := []string{c.binary, "show", "-json"}
	command := "show -json"
	if stateFile != "" {
		args = append(args, stateFile)
		command += " " + stateFile
	}
	rc, stdout, stderr, err := c.run(args, c.projectPath, c.checkRC)
	if err != nil {
		return nil, err
	}
	if rc != 0 {
		return nil, &Warning{
			Msg: fmt.Sprintf("could not read state in %s: %s", c.projectPath, strings.TrimSpace(stderr)),
		}
	}

	var state State
	if err := json.Unmarshal([]byte(stdout), &state); err != nil {
		return nil, &CommandError{Command: command, Msg: fmt.Sprintf("undecodable state output: %v", err)}
	}
	return &state, nil
}

// LookupBinary resolves the terraform executable. An explicit path is
// validated; otherwise $PATH is searched for "terraform".
func LookupBinary(path string) (string, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrBinaryNotFound, err)
		}
		if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
			return "", fmt.Errorf("%w: %s is not executable", ErrBinaryNotFound, path)
		}
		return path, nil
	}
	bin, err := exec.LookPath("terraform")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBinaryNotFound, err)
	}
	return bin, nil
}
