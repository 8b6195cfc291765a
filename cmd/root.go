// Package cmd implements the octobuild CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanium/octobot/config"
	"github.com/tanium/octobot/runner"
)

var (
	cfgFile string
	verbose bool

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "octobuild",
	Short: "octobuild — build, test, and package octobot container images",
	Long: "octobuild drives a fixed container build pipeline: build the builder\n" +
		"image, run the test suite inside it, extract the compiled artifacts,\n" +
		"stamp the version, and build the runtime image.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(buildCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("octobuild %s (commit: %s)\n", version, commit))
}

// Execute runs the root command. On failure the process exits non-zero,
// propagating the failing command's exit code when one is known.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode > 0 {
			os.Exit(exitErr.ExitCode)
		}
		os.Exit(1)
	}
}
