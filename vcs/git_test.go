package vcs

import (
	"context"
	"errors"
	"testing"

	"github.com/tanium/octobot/runner"
)

const revParse = "git rev-parse --short HEAD"

func TestShortRevision(t *testing.T) {
	fake := &runner.Fake{
		Results: map[string]runner.Result{
			revParse: {Output: []byte("abc1234\n")},
		},
	}

	rev, err := ShortRevision(context.Background(), fake)
	if err != nil {
		t.Fatalf("ShortRevision() error: %v", err)
	}
	// Bytes pass through verbatim, newline and all.
	if string(rev) != "abc1234\n" {
		t.Errorf("rev = %q, want %q", rev, "abc1234\n")
	}

	if len(fake.Calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(fake.Calls))
	}
	spec := fake.Calls[0]
	if spec.Command() != revParse {
		t.Errorf("command = %q, want %q", spec.Command(), revParse)
	}
	if !spec.Quiet {
		t.Error("revision lookup must capture output, not stream it")
	}
	if spec.IgnoreFailure {
		t.Error("revision lookup failures are fatal")
	}
}

func TestShortRevision_NonZeroExit(t *testing.T) {
	fake := &runner.Fake{
		Results: map[string]runner.Result{
			revParse: {ExitCode: 128},
		},
	}

	_, err := ShortRevision(context.Background(), fake)
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *runner.ExitError", err)
	}
	if exitErr.ExitCode != 128 {
		t.Errorf("ExitCode = %d, want 128", exitErr.ExitCode)
	}
}

func TestShortRevision_LaunchFailure(t *testing.T) {
	launchErr := errors.New("git not installed")
	fake := &runner.Fake{
		Errs: map[string]error{revParse: launchErr},
	}

	if _, err := ShortRevision(context.Background(), fake); !errors.Is(err, launchErr) {
		t.Fatalf("error = %v, want launch failure to propagate", err)
	}
}
