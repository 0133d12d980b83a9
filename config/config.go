// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

const (
	// ConfigFileEnv names the environment variable holding the config file path.
	ConfigFileEnv = "HTMLLOC_CONFIGFILE"

	// DefaultConfigFile is used when neither a flag nor ConfigFileEnv is set.
	DefaultConfigFile = "./htmlloc.yaml"

	fallbackConfigFile = "./htmlloc.yml"
)

// Config holds the application configuration.
type Config struct {
	Build BuildInfo `yaml:"-"`

	Resources struct {
		// Path is a directory of <locale>/<baseName>.<ext> catalogues.
		// When empty, the embedded sample resources are used.
		Path            string       `env:"HTMLLOC_RESOURCES_PATH,overwrite" yaml:"path"`
		ApplicationName string       `env:"HTMLLOC_APPLICATION_NAME,overwrite" yaml:"applicationName"`
		BaseLocale      string       `env:"HTMLLOC_BASE_LOCALE,overwrite" yaml:"baseLocale"`
		BaseLocaleTag   language.Tag `yaml:"-"`
	} `yaml:"resources"`

	Encoding struct {
		// Encoder is one of "html", "sanitize" or "none".
		Encoder string         `env:"HTMLLOC_ENCODER,overwrite" yaml:"encoder"`
		Encode  format.Encoder `yaml:"-"`
	} `yaml:"encoding"`

	Cache struct {
		Enabled bool `env:"HTMLLOC_CACHE,overwrite" yaml:"enabled"`
		Size    int  `env:"HTMLLOC_CACHE_SIZE,overwrite" yaml:"cacheSize"`
	} `yaml:"cache"`

	Log struct {
		Level   string   `env:"HTMLLOC_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"HTMLLOC_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"HTMLLOC_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"HTMLLOC_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadOptions controls where LoadConfig looks for a configuration file.
type LoadOptions struct {
	// ConfigFile is the value of the --config flag.
	ConfigFile string
	// ConfigFileSet reports whether the flag was given explicitly.
	ConfigFileSet bool
	// SkipDotEnv disables reading a .env file.
	SkipDotEnv bool
}

// LoadConfig loads the configuration from defaults, a YAML file, a .env file
// and the environment, in that order, then validates it and configures logging.
func (cfg *Config) LoadConfig(opts LoadOptions) error {
	configFilePath := resolveConfigFile(opts)

	cfg.SetDefaults()

	cfg.Build = ReadBuildInfo()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if !opts.SkipDotEnv {
		if err := useDotEnv(); err != nil {
			return fmt.Errorf("error using .env file: %w", err)
		}
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// resolveConfigFile determines the config file path with the following precedence:
// 1. Command-line flag (--config)
// 2. Environment variable (HTMLLOC_CONFIGFILE)
// 3. Default path, falling back to the .yml spelling when only that exists
func resolveConfigFile(opts LoadOptions) string {
	if opts.ConfigFileSet {
		return opts.ConfigFile
	}

	if envVar := os.Getenv(ConfigFileEnv); envVar != "" {
		return envVar
	}

	path := opts.ConfigFile
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, statErr := os.Stat(fallbackConfigFile); statErr == nil {
			return fallbackConfigFile
		}
	}

	return path
}
