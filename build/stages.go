// Package build implements the fixed stage sequence of the octobot
// container build: builder image, test run, artifact extraction, final
// image.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tanium/octobot/pipeline"
	"github.com/tanium/octobot/vcs"
)

// extractContainer is the name of the throwaway container artifacts are
// copied out of. The run owns this name exclusively; a stale one from a
// previous run is removed first.
const extractContainer = "extract"

// versionFile is the output-directory file stamped with the revision.
const versionFile = "version"

// BuilderImageStage builds the image that compiles the project and
// carries its test environment.
type BuilderImageStage struct{}

func (s *BuilderImageStage) Title() string { return "builder image" }

func (s *BuilderImageStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	cfg := bc.Cfg
	return bc.Engine.BuildImage(ctx, cfg.ContextDir, cfg.Builder.Dockerfile, cfg.Builder.Tag)
}

// TestStage runs the test suite inside a throwaway container from the
// builder image.
type TestStage struct{}

func (s *TestStage) Title() string { return "tests" }

func (s *TestStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	cfg := bc.Cfg
	return bc.Engine.RunImage(ctx, cfg.Builder.Tag, cfg.Test.Flags...)
}

// ExtractStage copies the compiled artifacts out of the builder image
// into the output directory and stamps it with the current revision.
type ExtractStage struct{}

func (s *ExtractStage) Title() string { return "extract artifacts" }

func (s *ExtractStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	cfg := bc.Cfg
	eng := bc.Engine

	if err := eng.RemoveContainerIfExists(ctx, extractContainer); err != nil {
		return err
	}
	if err := eng.CreateContainer(ctx, extractContainer, cfg.Builder.Tag); err != nil {
		return err
	}
	for _, path := range cfg.Artifacts {
		if err := eng.CopyFrom(ctx, extractContainer, path, cfg.OutputDir); err != nil {
			return err
		}
	}
	// The name must be free for the next run.
	if err := eng.RemoveContainer(ctx, extractContainer); err != nil {
		return err
	}

	rev, err := vcs.ShortRevision(ctx, bc.Runner)
	if err != nil {
		return err
	}
	bc.Version = rev

	dest := filepath.Join(cfg.OutputDir, versionFile)
	if err := os.WriteFile(dest, rev, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// FinalImageStage builds the runtime image from the default build
// description, picking up the extracted artifacts.
type FinalImageStage struct{}

func (s *FinalImageStage) Title() string { return "final image" }

func (s *FinalImageStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	cfg := bc.Cfg
	return bc.Engine.BuildImage(ctx, cfg.ContextDir, cfg.Final.Dockerfile, cfg.Final.Tag)
}
