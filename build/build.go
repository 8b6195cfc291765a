package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tanium/octobot/config"
	"github.com/tanium/octobot/container"
	"github.com/tanium/octobot/pipeline"
	"github.com/tanium/octobot/runner"
)

// Stages returns the fixed stage sequence of one build, in order.
func Stages() []pipeline.Stage {
	return []pipeline.Stage{
		&BuilderImageStage{},
		&TestStage{},
		&ExtractStage{},
		&FinalImageStage{},
	}
}

// Run executes the whole build pipeline: workspace reset, then the
// fixed stages. Progress and command output go to out. The first fatal
// command failure aborts the remaining stages.
func Run(ctx context.Context, cfg *config.Config, r runner.Runner, out io.Writer) error {
	if err := ResetWorkspace(cfg.Workspace, cfg.OutputDir); err != nil {
		return err
	}

	bc := &pipeline.BuildContext{
		Cfg:    cfg,
		Runner: r,
		Engine: container.New(cfg.Engine, r),
	}
	p := pipeline.New(&pipeline.Reporter{Out: out, Fold: cfg.FoldOutput}, Stages()...)
	return p.Run(ctx, bc)
}

// ResetWorkspace removes any workspace left by a previous run and
// recreates the output directory empty. Runs before the first stage so
// repeated builds start from the same state.
func ResetWorkspace(workspace, outputDir string) error {
	if err := os.RemoveAll(workspace); err != nil {
		return fmt.Errorf("removing workspace %s: %w", workspace, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	return nil
}
