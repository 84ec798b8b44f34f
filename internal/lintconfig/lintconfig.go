// Package lintconfig loads the optional .msglint.yml file from the target
// repository root. Flags given on the command line take precedence over file
// values; a missing file means a zero config.
package lintconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the target repository root.
const FileName = ".msglint.yml"

// Config holds the file-configurable defaults for a lint run.
type Config struct {
	// Refspec selects the commits to inspect, e.g. "main..HEAD". Empty means
	// the single most recent commit.
	Refspec string `yaml:"refspec"`
	// Target is the repository path to inspect. Empty means the enclosing
	// git worktree.
	Target string `yaml:"target"`
	// CommentChar overrides the comment leader instead of asking git for
	// core.commentchar. Must be a single character when set.
	CommentChar string `yaml:"comment_char"`
}

// Load reads and validates the config file in dir. A missing file is not an
// error and yields a zero Config.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if c.CommentChar != "" && len(c.CommentChar) != 1 {
		return fmt.Errorf("comment_char must be a single character, got %q", c.CommentChar)
	}
	return nil
}
