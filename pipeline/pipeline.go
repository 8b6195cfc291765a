// Package pipeline provides a sequential stage-based execution pipeline
// with CI-foldable progress reporting.
package pipeline

import (
	"context"
	"fmt"

	"github.com/tanium/octobot/config"
	"github.com/tanium/octobot/container"
	"github.com/tanium/octobot/runner"
)

// Stage is a single unit of work in a build pipeline.
type Stage interface {
	Title() string
	Execute(ctx context.Context, bc *BuildContext) error
}

// BuildContext carries shared state through the build pipeline.
type BuildContext struct {
	Cfg    *config.Config
	Runner runner.Runner
	Engine container.Engine

	// Version is the revision identifier stamped into the output
	// directory. Written exactly once, during artifact extraction.
	Version []byte
}

// Pipeline executes a sequence of stages in order.
type Pipeline struct {
	reporter *Reporter
	stages   []Stage
}

// New creates a Pipeline that reports stage progress through rep.
func New(rep *Reporter, stages ...Stage) *Pipeline {
	return &Pipeline{reporter: rep, stages: stages}
}

// Run executes each stage sequentially and stops on the first error,
// wrapped with the failing stage's title. Entry and exit markers stay
// paired on every path: the exit marker is emitted even when the stage
// body fails.
func (p *Pipeline) Run(ctx context.Context, bc *BuildContext) error {
	for _, s := range p.stages {
		if err := p.runStage(ctx, s, bc); err != nil {
			return fmt.Errorf("stage %s: %w", s.Title(), err)
		}
	}
	return nil
}

func (p *Pipeline) runStage(ctx context.Context, s Stage, bc *BuildContext) error {
	p.reporter.Begin(s.Title())
	defer p.reporter.End(s.Title())
	return s.Execute(ctx, bc)
}
