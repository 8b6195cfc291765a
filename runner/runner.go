// Package runner executes external commands with per-command output and
// failure policies.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Spec describes a single external command invocation.
type Spec struct {
	// Args is the program followed by its arguments. Must be non-empty.
	Args []string
	// IgnoreFailure treats a non-zero exit as non-fatal. It does not
	// apply to commands that fail to launch at all.
	IgnoreFailure bool
	// Quiet captures the command's combined output instead of streaming
	// it to the console.
	Quiet bool
}

// Command returns the command line as a single string.
func (s Spec) Command() string {
	return strings.Join(s.Args, " ")
}

// Result holds the outcome of one command invocation.
type Result struct {
	ExitCode int
	// Output is the combined stdout+stderr, captured only for quiet
	// specs. Empty otherwise.
	Output []byte
}

// Success reports whether the command exited with code 0.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Runner executes commands. Implementations return an error only when
// the command could not be launched; a process that ran and exited
// non-zero is reported through Result, and classifying that as a
// failure is the caller's job (see Check).
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
}

// Check classifies a result under the spec's failure policy. It returns
// an *ExitError for a non-zero exit unless the spec ignores failures.
func Check(spec Spec, res Result) error {
	if res.Success() || spec.IgnoreFailure {
		return nil
	}
	return &ExitError{Command: spec.Command(), ExitCode: res.ExitCode}
}

// ExecRunner runs commands as real subprocesses via os/exec.
type ExecRunner struct {
	// Out receives the ">>" command echo and, for non-quiet specs, the
	// child's combined output. Defaults to os.Stdout.
	Out io.Writer
}

// Run launches the command and blocks until it exits. A ">> <command>"
// line is echoed before launch regardless of the quiet flag. Stderr is
// always merged into the same channel as stdout.
func (e *ExecRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	if len(spec.Args) == 0 {
		return Result{}, errors.New("empty command")
	}

	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, ">> %s\n", spec.Command())

	cmd := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)

	var buf bytes.Buffer
	if spec.Quiet {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	} else {
		cmd.Stdout = out
		cmd.Stderr = out
	}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("starting %q: %w", spec.Command(), err)
		}
		return Result{ExitCode: exitErr.ExitCode(), Output: buf.Bytes()}, nil
	}
	return Result{ExitCode: 0, Output: buf.Bytes()}, nil
}
