package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

// DefaultPath is where Load looks when no path is given
const DefaultPath = "bmp-editor.yml"

// Config represents the configuration file structure
type Config struct {
	LogLevel   string      `yaml:"log_level"`
	Transforms []string    `yaml:"transforms"` // applied before any given on the command line
	Save       SaveConfig  `yaml:"save"`
	Print      PrintConfig `yaml:"print"`
}

type SaveConfig struct {
	// Copy the source file verbatim when nothing was changed
	CopyUnmodified bool `yaml:"copy_unmodified"`
}

type PrintConfig struct {
	Block string `yaml:"block"` // text drawn for each pixel
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Save:     SaveConfig{CopyUnmodified: true},
		Print:    PrintConfig{Block: "  "},
	}
}

// Load loads configuration from a YAML file. A missing file yields Default();
// keys present in the file override the defaults and unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Return default config if file doesn't exist
		return Default(), nil
	} else if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration on top of Default()
func Parse(data []byte) (*Config, error) {
	var raw map[interface{}]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
