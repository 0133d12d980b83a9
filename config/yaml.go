// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// readYAML decodes the configuration file at path over cfg. A missing file
// or one holding no YAML document (blank, comments only, or null) leaves cfg
// untouched. Unknown keys are rejected so that misspelled settings do not
// silently fall back to defaults.
func (cfg *Config) readYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- Only loading a config file
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().
			Str("path", path).
			Msg("No YAML configuration file found, skipping")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	// The decoder zeroes its target on an empty document.
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return yamlError(path, err)
	}

	if document == nil {
		log.Debug().
			Str("path", path).
			Msg("Configuration file is empty")

		return nil
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return yamlError(path, err)
	}

	log.Debug().
		Str("path", path).
		Msg("Loaded configuration file")

	return nil
}

func yamlError(path string, err error) error {
	log.Error().
		Str("path", path).
		Msg("Invalid configuration file:\n" + yaml.FormatError(err, false, true))

	return fmt.Errorf("failed to parse YAML from %s: %w", path, err)
}
