package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanium/octobot/build"
	"github.com/tanium/octobot/config"
	"github.com/tanium/octobot/runner"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the container build pipeline",
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if verbose {
		fmt.Fprintf(os.Stderr, "engine: %s\n", cfg.Engine)
		fmt.Fprintf(os.Stderr, "output: %s\n", cfg.OutputDir)
	}

	r := &runner.ExecRunner{Out: os.Stdout}
	if err := build.Run(context.Background(), cfg, r, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, render(errorStyle, "build failed: "+err.Error()))
		return err
	}

	fmt.Println(render(successStyle, "Build complete. Output: "+cfg.OutputDir))
	return nil
}

// loadConfig reads the configured file, falling back to the built-in
// defaults when the default path does not exist. An explicitly given
// --config path must exist.
func loadConfig() (*config.Config, error) {
	if !rootCmd.PersistentFlags().Changed("config") {
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(cfgFile)
}
