package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/yamlify/internal/render"
)

// DefaultMaxDepth bounds how deeply nested the decoded input may be. Each
// level of mapping nesting adds two spaces to every line below it, so output
// size grows with the square of the depth.
const DefaultMaxDepth = 1000

// Config represents the complete configuration for yamlify
type Config struct {
	Output OutputConfig `yaml:"output"`
	Input  InputConfig  `yaml:"input"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls how YAML is rendered and checked
type OutputConfig struct {
	DocumentStart bool   `yaml:"document_start"`
	KeyCase       string `yaml:"key_case"`
	Format        bool   `yaml:"format"`
	Verify        bool   `yaml:"verify"`
}

// InputConfig controls JSON decoding
type InputConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides holds values passed on the command line. An empty KeyCase and a
// nil MaxDepth mean the flag was not given.
type Overrides struct {
	DocumentStart bool
	KeyCase       string
	Format        bool
	Verify        bool
	MaxDepth      *int
	Debug         bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			DocumentStart: false,
			KeyCase:       string(render.KeyCaseNone),
			Format:        false,
			Verify:        false,
		},
		Input: InputConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	return LoadConfigFS(afero.NewOsFs(), path)
}

// LoadConfigFS loads configuration from a YAML file on fs
func LoadConfigFS(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	fs := afero.NewOsFs()
	currentDir, err := filepath.Abs(".")
	if err != nil {
		return ""
	}
	return FindConfigFileFS(fs, currentDir)
}

// FindConfigFileFS searches fs for a config file starting at dir and walking up
func FindConfigFileFS(fs afero.Fs, dir string) string {
	configNames := []string{".yamlify.yml", ".yamlify.yaml", "yamlify.yml", "yamlify.yaml"}

	currentDir := dir
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := fs.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that all values are usable
func (c *Config) Validate() error {
	if _, err := render.ParseKeyCase(c.Output.KeyCase); err != nil {
		return err
	}
	if c.Input.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.Input.MaxDepth)
	}
	return nil
}

// RenderOptions returns the renderer options described by the config
func (c *Config) RenderOptions() render.Options {
	// Validate has already rejected unknown names.
	keyCase, _ := render.ParseKeyCase(c.Output.KeyCase)
	return render.Options{
		DocumentStart: c.Output.DocumentStart,
		KeyCase:       keyCase,
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Boolean flags can only switch features on since kong cannot tell an
// explicit false from the default.
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	return LoadConfigWithCLIFS(afero.NewOsFs(), configPath, cli)
}

// LoadConfigWithCLIFS is LoadConfigWithCLI reading the config file from fs
func LoadConfigWithCLIFS(fs afero.Fs, configPath string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfigFS(fs, configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.DocumentStart {
		cfg.Output.DocumentStart = true
	}
	if cli.Format {
		cfg.Output.Format = true
	}
	if cli.Verify {
		cfg.Output.Verify = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if cli.KeyCase != "" {
		cfg.Output.KeyCase = cli.KeyCase
	}
	if cli.MaxDepth != nil {
		cfg.Input.MaxDepth = *cli.MaxDepth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
