package pipeline

import (
	"fmt"
	"io"
	"strings"
)

// Reporter prints stage entry and exit markers. When Fold is set it
// additionally emits travis_fold markers around each stage so CI log
// viewers can collapse the stage's output.
type Reporter struct {
	Out  io.Writer
	Fold bool
}

// Begin marks entry into the named stage.
func (r *Reporter) Begin(title string) {
	if r.Fold {
		fmt.Fprintf(r.Out, "travis_fold:start:%s\n", foldID(title))
	}
	fmt.Fprintf(r.Out, "Starting %s\n", title)
}

// End marks exit from the named stage.
func (r *Reporter) End(title string) {
	fmt.Fprintf(r.Out, "Ending %s\n", title)
	if r.Fold {
		fmt.Fprintf(r.Out, "travis_fold:end:%s\n", foldID(title))
	}
}

// foldID converts a human-readable title into a marker identifier.
// Fold names may not contain spaces.
func foldID(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
