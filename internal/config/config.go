package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is looked up in the project root.
const DefaultFilename = ".readmesync.yaml"

// Config holds the optional per-project tool settings. Every field may be
// empty; CLI flags take precedence over environment variables, which take
// precedence over the file.
type Config struct {
	Readme         string `yaml:"readme"`          // README path relative to the project root
	Entrypoint     string `yaml:"entrypoint"`      // lib | bin | bin:<name>
	LineTerminator string `yaml:"line-terminator"` // auto | lf | crlf
}

// Load reads the config file at path, if it exists, and applies environment
// overrides. A missing file is not an error; an unparsable one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Optional file.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %q: %v", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %v", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("READMESYNC_README"); v != "" {
		cfg.Readme = v
	}
	if v := os.Getenv("READMESYNC_ENTRYPOINT"); v != "" {
		cfg.Entrypoint = v
	}
	if v := os.Getenv("READMESYNC_LINE_TERMINATOR"); v != "" {
		cfg.LineTerminator = v
	}
}
