// Package container drives a container engine through its CLI.
package container

import (
	"context"

	"github.com/tanium/octobot/runner"
)

// Engine invokes a container-engine binary (docker, podman, ...)
// through a runner. It is a value type; copies share the runner.
type Engine struct {
	Binary string
	Runner runner.Runner
}

// New returns an Engine that shells out to the given binary.
func New(binary string, r runner.Runner) Engine {
	return Engine{Binary: binary, Runner: r}
}

// BuildImage runs `<engine> build <contextDir> [-f <dockerfile>] -t <tag>`.
// An empty dockerfile uses the engine's default build description.
func (e Engine) BuildImage(ctx context.Context, contextDir, dockerfile, tag string) error {
	args := []string{e.Binary, "build", contextDir}
	if dockerfile != "" {
		args = append(args, "-f", dockerfile)
	}
	args = append(args, "-t", tag)
	return e.exec(ctx, runner.Spec{Args: args})
}

// RunImage runs a container from the image with the given engine flags,
// e.g. --privileged --rm for a throwaway test run.
func (e Engine) RunImage(ctx context.Context, image string, flags ...string) error {
	args := append([]string{e.Binary, "run"}, flags...)
	args = append(args, image)
	return e.exec(ctx, runner.Spec{Args: args})
}

// CreateContainer creates a named, stopped container from the image.
func (e Engine) CreateContainer(ctx context.Context, name, image string) error {
	return e.exec(ctx, runner.Spec{
		Args: []string{e.Binary, "create", "--name", name, image},
	})
}

// RemoveContainer force-removes the named container.
func (e Engine) RemoveContainer(ctx context.Context, name string) error {
	return e.exec(ctx, runner.Spec{
		Args: []string{e.Binary, "rm", "-f", name},
	})
}

// RemoveContainerIfExists force-removes the named container, quietly
// tolerating a non-zero exit (the container may legitimately not
// exist). A launch failure of the engine binary is still reported.
func (e Engine) RemoveContainerIfExists(ctx context.Context, name string) error {
	return e.exec(ctx, runner.Spec{
		Args:          []string{e.Binary, "rm", "-f", name},
		IgnoreFailure: true,
		Quiet:         true,
	})
}

// CopyFrom copies a path out of the named container into destDir.
func (e Engine) CopyFrom(ctx context.Context, name, path, destDir string) error {
	return e.exec(ctx, runner.Spec{
		Args: []string{e.Binary, "cp", name + ":" + path, destDir},
	})
}

func (e Engine) exec(ctx context.Context, spec runner.Spec) error {
	res, err := e.Runner.Run(ctx, spec)
	if err != nil {
		return err
	}
	return runner.Check(spec, res)
}
