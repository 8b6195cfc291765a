// Package vcs reads version information from the git CLI.
package vcs

import (
	"context"

	"github.com/tanium/octobot/runner"
)

// ShortRevision returns the abbreviated hash of the working tree's
// HEAD, exactly as git printed it (trailing newline included). The
// bytes are suitable for stamping into a version file verbatim.
func ShortRevision(ctx context.Context, r runner.Runner) ([]byte, error) {
	spec := runner.Spec{
		Args:  []string{"git", "rev-parse", "--short", "HEAD"},
		Quiet: true,
	}
	res, err := r.Run(ctx, spec)
	if err != nil {
		return nil, err
	}
	if err := runner.Check(spec, res); err != nil {
		return nil, err
	}
	return res.Output, nil
}
