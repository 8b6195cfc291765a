package runner

import (
	"context"
	"slices"
)

// Fake is a Runner for tests. It records every spec it is asked to run
// and returns scripted results keyed by the full command line. Commands
// with no scripted entry succeed with exit code 0 and no output.
type Fake struct {
	// Results maps a command line to the result it should produce.
	Results map[string]Result
	// Errs maps a command line to a launch error, simulating a command
	// that could not be started.
	Errs map[string]error
	// Calls holds every spec passed to Run, in order.
	Calls []Spec
}

var _ Runner = &Fake{}

func (f *Fake) Run(_ context.Context, spec Spec) (Result, error) {
	f.Calls = append(f.Calls, spec)
	if err, ok := f.Errs[spec.Command()]; ok {
		return Result{}, err
	}
	return f.Results[spec.Command()], nil
}

// Commands returns the command lines run so far, in order.
func (f *Fake) Commands() []string {
	cmds := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		cmds[i] = c.Command()
	}
	return cmds
}

// Ran reports whether any recorded command line equals the given one.
func (f *Fake) Ran(command string) bool {
	return slices.Contains(f.Commands(), command)
}
