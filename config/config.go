package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/expand"
	"github.com/k1LoW/slidefmt/extract"
	"github.com/k1LoW/slidefmt/md"
	"github.com/k1LoW/slidefmt/version"
)

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// Deck defaults for convert. Command line flags take precedence.
	Theme      string `yaml:"theme,omitempty" json:"theme,omitempty"`
	Title      string `yaml:"title,omitempty" json:"title,omitempty"`
	Author     string `yaml:"author,omitempty" json:"author,omitempty"`
	Transition string `yaml:"transition,omitempty" json:"transition,omitempty"`
	// Layout rules evaluated before the built-in layout heuristic
	Rules []md.Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
	// Sentinels delimiting slides in an assistant reply
	Sentinel extract.Options `yaml:"sentinel,omitempty" json:"sentinel,omitempty"`

	path string
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/slidefmt/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/slidefmt/config.yml
// Environment variables in the file are expanded.
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			b, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config %s: %w", p, err)
			}
			cfg.path = p
			return cfg, nil
		}
	}
	// If no config file is found, return an empty config
	return cfg, nil
}

// Path returns the path of the loaded config file, or "" when none was found.
func (c *Config) Path() string {
	return c.path
}

// ConvertOptions merges the config defaults below the given options.
func (c *Config) ConvertOptions(opts md.Options) md.Options {
	if opts.Theme == "" {
		opts.Theme = c.Theme
	}
	if opts.Title == "" {
		opts.Title = c.Title
	}
	if opts.Author == "" {
		opts.Author = c.Author
	}
	if opts.Transition == "" {
		opts.Transition = c.Transition
	}
	return opts
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, version.Name)
	} else {
		configHomePath = filepath.Join(homePath, ".config", version.Name)
	}
	return configHomePath
}

// StateHomePath returns the path to the state home directory.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, version.Name)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", version.Name)
	}
	return stateHomePath
}
