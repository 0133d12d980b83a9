// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// CatalogOptions configures [LoadCatalog].
type CatalogOptions struct {
	// Root is the directory within the file system that holds one
	// subdirectory per locale. Defaults to ".".
	Root string
	// BaseLocale is the fallback locale. Defaults to [BaseLocale].
	BaseLocale string
	// StrictMissingKeys logs missing keys once and wraps them as "⟦key⟧".
	StrictMissingKeys bool
	// Logger receives catalogue diagnostics. Defaults to the global logger.
	Logger *zerolog.Logger
}

// Catalog holds every resource set loaded from a resource tree and acts as
// the [LocalizerFactory] for them. It is safe for concurrent use.
type Catalog struct {
	base    language.Tag
	tags    []language.Tag
	matcher language.Matcher
	locales map[string]*localeResources
	strict  bool
	logger  zerolog.Logger

	// missingKeyOnce ensures a missing key is only logged once per
	// (locale, base name, key).
	missingKeyOnce sync.Map
}

// localeResources maps base names to resource sets for one locale.
type localeResources struct {
	tag  language.Tag
	sets map[string]resourceSet
}

var _ LocalizerFactory = (*Catalog)(nil)

// LoadCatalog reads every locale directory under opts.Root in fsys.
//
// Files are named <baseName>.po, <baseName>.po.zst, <baseName>.yaml or
// <baseName>.yml. Locale directories may use either "_" or "-" as separator.
// Directories whose names are not valid BCP 47 tags are skipped with a warning.
// The base locale is always available, even when it has no directory.
func LoadCatalog(fsys fs.FS, opts CatalogOptions) (*Catalog, error) {
	if opts.Root == "" {
		opts.Root = "."
	}

	if opts.BaseLocale == "" {
		opts.BaseLocale = BaseLocale
	}

	base, err := parseLocaleName(opts.BaseLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid base locale %q: %w", opts.BaseLocale, err)
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &Catalog{
		base:    base,
		locales: make(map[string]*localeResources),
		strict:  opts.StrictMissingKeys,
		logger:  logger.With().Str("sys", "i18n").Logger(),
	}

	entries, err := fs.ReadDir(fsys, opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource directory %q: %w", opts.Root, err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()

		tag, err := parseLocaleName(name)
		if err != nil {
			c.logger.Warn().Str("dir", name).Err(err).Msg("Skipping invalid locale directory")

			continue
		}

		g.Go(func() error {
			res, err := loadLocale(fsys, path.Join(opts.Root, name), tag, dec, c.logger)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()

			if existing, ok := c.locales[tag.String()]; ok {
				for baseName, set := range res.sets {
					if _, dup := existing.sets[baseName]; !dup {
						existing.sets[baseName] = set
					}
				}

				return nil
			}

			c.locales[tag.String()] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if _, ok := c.locales[base.String()]; !ok {
		c.locales[base.String()] = &localeResources{tag: base, sets: make(map[string]resourceSet)}
	}

	// Build the list of supported tags, with the base tag first so that the
	// matcher uses it as the default.
	c.tags = []language.Tag{base}

	others := make([]language.Tag, 0, len(c.locales))
	for key, res := range c.locales {
		if key != base.String() {
			others = append(others, res.tag)
		}
	}

	sortTags(others)
	c.tags = append(c.tags, others...)
	c.matcher = language.NewMatcher(c.tags)

	c.logger.Debug().
		Int("locales", len(c.tags)).
		Str("base", base.String()).
		Msg("Loaded resource catalog")

	return c, nil
}

func loadLocale(fsys fs.FS, dir string, tag language.Tag, dec *zstd.Decoder, logger zerolog.Logger) (*localeResources, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory %q: %w", dir, err)
	}

	res := &localeResources{tag: tag, sets: make(map[string]resourceSet)}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		baseName, kind, ok := splitResourceName(entry.Name())
		if !ok {
			continue
		}

		file := path.Join(dir, entry.Name())

		if _, dup := res.sets[baseName]; dup {
			logger.Warn().Str("file", file).Msg("Duplicate resource set, ignoring")

			continue
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", file, err)
		}

		set, err := parseResourceSet(kind, data, dec)
		if err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", file, err)
		}

		res.sets[baseName] = set
	}

	return res, nil
}

// Base returns the base locale.
func (c *Catalog) Base() language.Tag {
	return c.base
}

// Languages returns the loaded locales, base locale first.
func (c *Catalog) Languages() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)

	return out
}

// BaseNames returns every resource set name found in any locale, sorted.
func (c *Catalog) BaseNames() []string {
	seen := make(map[string]struct{})

	for _, res := range c.locales {
		for name := range res.sets {
			seen[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// Resolve returns the loaded locale that best matches t, or the base locale.
func (c *Catalog) Resolve(t language.Tag) language.Tag {
	_, index, conf := c.matcher.Match(t)
	if conf == language.No {
		return c.base
	}

	return c.tags[index]
}

// Create returns a localizer for baseName in the base locale.
func (c *Catalog) Create(baseName, location string) (StringLocalizer, error) {
	if c == nil {
		return nil, ErrNoCatalog
	}

	if location != "" {
		baseName = strings.TrimPrefix(baseName, location+".")
	}

	if baseName == "" {
		return nil, ErrEmptyBaseName
	}

	return c.newLocalizer(baseName, c.base), nil
}

// CreateFor returns a localizer whose base name is the package name of t
// followed by its type name, e.g. "views.HomePage". Pointer types are
// dereferenced.
func (c *Catalog) CreateFor(t reflect.Type) (StringLocalizer, error) {
	if t == nil {
		return nil, ErrEmptyBaseName
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if pkg := path.Base(t.PkgPath()); pkg != "." && pkg != "/" && pkg != "" {
		name = pkg + "." + name
	}

	return c.Create(name, "")
}

func (c *Catalog) newLocalizer(baseName string, tag language.Tag) *catalogLocalizer {
	resolved := c.Resolve(tag)

	return &catalogLocalizer{
		catalog:  c,
		baseName: baseName,
		tag:      resolved,
		printer:  format.NewPrinter(resolved),
	}
}

// lookup finds key in tag, then in its parent locales, then in the base locale.
func (c *Catalog) lookup(tag language.Tag, baseName, key string) (string, bool) {
	for _, t := range append(ancestors(tag), c.base) {
		res, ok := c.locales[t.String()]
		if !ok {
			continue
		}

		if set, ok := res.sets[baseName]; ok {
			if v, ok := set.lookup(key); ok {
				return v, true
			}
		}
	}

	return "", false
}

// keysIn returns the keys of baseName in the exact locale t.
func (c *Catalog) keysIn(t language.Tag, baseName string) []string {
	res, ok := c.locales[t.String()]
	if !ok {
		return nil
	}

	set, ok := res.sets[baseName]
	if !ok {
		return nil
	}

	return set.keys()
}

// lookupIn finds key in the exact locale t without fallback.
func (c *Catalog) lookupIn(t language.Tag, baseName, key string) (string, bool) {
	res, ok := c.locales[t.String()]
	if !ok {
		return "", false
	}

	set, ok := res.sets[baseName]
	if !ok {
		return "", false
	}

	return set.lookup(key)
}
