// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/htmlloc/htmlloc/i18n"

// Default size of the compiled template cache.
const defaultCacheSize = 256

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Resources.Path = ""
	cfg.Resources.ApplicationName = "App"
	cfg.Resources.BaseLocale = i18n.BaseLocale

	cfg.Encoding.Encoder = i18n.EncoderHTML

	cfg.Cache.Enabled = true
	cfg.Cache.Size = defaultCacheSize

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Internationalization.StrictMissingKeys = false
}
