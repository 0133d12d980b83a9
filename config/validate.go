// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"codeberg.org/htmlloc/htmlloc/i18n"
)

// validation errors.
var (
	errEmptyApplicationName = errors.New("resources.applicationName cannot be empty")
	errInvalidBaseLocale    = errors.New("invalid resources.baseLocale")
	errResourcesPathNotDir  = errors.New("resources.path is not a directory")
	errInvalidEncoder       = errors.New("invalid encoding.encoder")
	errInvalidCacheSize     = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errInvalidLogLevel      = errors.New("invalid log.logLevel")
	errInvalidLogFormat     = errors.New("invalid log.logFormat")
)

// validateAndSet validates the configuration and populates derived fields.
func (cfg *Config) validateAndSet() error {
	cfg.Resources.ApplicationName = strings.TrimSpace(cfg.Resources.ApplicationName)
	if cfg.Resources.ApplicationName == "" {
		return errEmptyApplicationName
	}

	if cfg.Resources.BaseLocale == "" {
		cfg.Resources.BaseLocale = i18n.BaseLocale
	}

	tag, err := i18n.ParseLocale(cfg.Resources.BaseLocale)
	if err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidBaseLocale, cfg.Resources.BaseLocale, err)
	}

	cfg.Resources.BaseLocaleTag = tag

	if cfg.Resources.Path != "" {
		info, err := os.Stat(cfg.Resources.Path)
		if err != nil {
			return fmt.Errorf("invalid resources.path: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("%w: %s", errResourcesPathNotDir, cfg.Resources.Path)
		}
	}

	encode, err := i18n.EncoderByName(cfg.Encoding.Encoder)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidEncoder, err)
	}

	cfg.Encoding.Encode = encode

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error":
		cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
