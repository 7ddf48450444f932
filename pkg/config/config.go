// Package config loads logbook settings from .logbook.yaml, LOGBOOK_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyPath              = "path"
	KeyPublishDir        = "publish_dir"
	KeyPerPage           = "per_page"
	KeyNewOnTop          = "new_on_top"
	KeyShowDayIndex      = "show_day_index"
	KeyIncrementalBuilds = "incremental_builds"
	KeyScriptFragments   = "script_fragments"

	// EnvConfigPath names a directory searched first for .logbook.yaml.
	EnvConfigPath = "LOGBOOK_CONFIG_PATH"
)

// Config is the resolved logbook configuration.
type Config struct {
	Path              string `mapstructure:"path" json:"path"`
	PublishDir        string `mapstructure:"publish_dir" json:"publish_dir"`
	PerPage           int    `mapstructure:"per_page" json:"per_page"`
	NewOnTop          bool   `mapstructure:"new_on_top" json:"new_on_top"`
	ShowDayIndex      bool   `mapstructure:"show_day_index" json:"show_day_index"`
	IncrementalBuilds bool   `mapstructure:"incremental_builds" json:"incremental_builds"`
	ScriptFragments   bool   `mapstructure:"script_fragments" json:"script_fragments"`

	// File is the config file that was read, empty if none was found.
	File string `mapstructure:"-" json:"file,omitempty"`
}

// BasePath is the archive store directory.
func (c *Config) BasePath() string {
	return c.Path
}

// Validate checks settings that would otherwise fail deep inside a build.
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.New("config: path is required")
	}
	if c.PublishDir == "" {
		return errors.New("config: publish_dir is required")
	}
	if c.PerPage < 1 {
		return fmt.Errorf("config: per_page must be positive, got %d", c.PerPage)
	}
	return nil
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPath, "~/.logbook")
	v.SetDefault(KeyPublishDir, "site")
	v.SetDefault(KeyPerPage, 500)
	v.SetDefault(KeyNewOnTop, false)
	v.SetDefault(KeyShowDayIndex, true)
	v.SetDefault(KeyIncrementalBuilds, false)
	v.SetDefault(KeyScriptFragments, true)
}

// New returns a viper instance that reads .logbook.yaml from
// $LOGBOOK_CONFIG_PATH and the working directory, and LOGBOOK_* env vars.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName(".logbook") // .yaml is implicit
	v.SetEnvPrefix("LOGBOOK")
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file, if any, and resolves v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = New()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	path, err := homedir.Expand(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
