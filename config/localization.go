// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io/fs"
	"os"

	"codeberg.org/htmlloc/htmlloc/core/format"
	"codeberg.org/htmlloc/htmlloc/core/lrucache"
	"codeberg.org/htmlloc/htmlloc/i18n"
)

// ResourceFS returns the directory named by resources.path, or embedded
// when no path is configured.
func (cfg *Config) ResourceFS(embedded fs.FS) fs.FS {
	if cfg.Resources.Path == "" {
		return embedded
	}

	return os.DirFS(cfg.Resources.Path)
}

// CatalogOptions returns the catalogue options derived from the configuration.
func (cfg *Config) CatalogOptions() i18n.CatalogOptions {
	return i18n.CatalogOptions{
		BaseLocale:        cfg.Resources.BaseLocale,
		StrictMissingKeys: cfg.Internationalization.StrictMissingKeys,
	}
}

// LoadCatalog loads the configured resources. embedded is used when
// resources.path is empty.
func (cfg *Config) LoadCatalog(embedded fs.FS) (*i18n.Catalog, error) {
	cat, err := i18n.LoadCatalog(cfg.ResourceFS(embedded), cfg.CatalogOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}

	return cat, nil
}

// HTMLOptions returns localizer options for the cache section. All
// localizers built from the same options share one template cache.
func (cfg *Config) HTMLOptions() ([]i18n.HTMLOption, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	cache, err := lrucache.New[*format.Template](cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create template cache: %w", err)
	}

	return []i18n.HTMLOption{i18n.WithTemplateCache(cache)}, nil
}
