// Package config resolves the build pipeline's configuration from an
// optional octobuild.yaml, built-in defaults, and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EngineEnv names the environment variable overriding the
	// container-engine binary.
	EngineEnv = "CONTAINER_ENGINE"
	// FoldEnv enables travis_fold markers when present in the
	// environment. Its value is irrelevant.
	FoldEnv = "TRAVIS"

	// DefaultPath is the config file looked up when --config is not
	// given.
	DefaultPath = "octobuild.yaml"
)

// Config is the resolved pipeline configuration. It is constructed once
// at startup and read-only afterwards.
type Config struct {
	// Engine is the container-engine binary name.
	Engine string `yaml:"engine"`
	// ContextDir is the build context passed to the engine.
	ContextDir string `yaml:"context"`
	// Workspace is removed recursively before each run.
	Workspace string `yaml:"workspace"`
	// OutputDir receives extracted artifacts and the version file. It
	// must live inside Workspace for the pre-run cleanup to cover it.
	OutputDir string `yaml:"output_dir"`

	Builder ImageConfig `yaml:"builder"`
	Final   ImageConfig `yaml:"final"`
	Test    TestConfig  `yaml:"test"`

	// Artifacts are the in-container paths copied into OutputDir.
	Artifacts []string `yaml:"artifacts"`

	// FoldOutput emits travis_fold markers around each stage. Resolved
	// from the environment, not the config file.
	FoldOutput bool `yaml:"-"`
}

// ImageConfig names an image to build.
type ImageConfig struct {
	// Dockerfile overrides the engine's default build description.
	// Empty means no -f flag.
	Dockerfile string `yaml:"dockerfile"`
	Tag        string `yaml:"tag"`
}

// TestConfig configures the in-builder test run.
type TestConfig struct {
	// Flags are engine `run` flags preceding the image name.
	Flags []string `yaml:"flags"`
}

// Default returns the configuration used when no config file exists:
// the octobot build as shipped.
func Default() *Config {
	return &Config{
		Engine:     "docker",
		ContextDir: ".",
		Workspace:  ".docker-tmp",
		OutputDir:  ".docker-tmp/bin",
		Builder: ImageConfig{
			Dockerfile: "Dockerfile.build",
			Tag:        "octobot:build",
		},
		Final: ImageConfig{
			Tag: "octobot:latest",
		},
		Test: TestConfig{
			Flags: []string{"--privileged", "--rm"},
		},
		Artifacts: []string{
			"/usr/src/app/target/release/octobot",
			"/usr/src/app/target/release/octobot-passwd",
			"/usr/src/app/target/release/octobot-ask-pass",
		},
	}
}

// Load reads and parses a config file, overlaying it onto the defaults.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses raw YAML config bytes, validating them against the
// embedded schema before decoding.
func Parse(data []byte) (*Config, error) {
	errs, err := validateYAML(data)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays process-environment settings onto the config.
func (c *Config) ApplyEnv() {
	if engine := os.Getenv(EngineEnv); engine != "" {
		c.Engine = engine
	}
	if _, ok := os.LookupEnv(FoldEnv); ok {
		c.FoldOutput = true
	}
}
