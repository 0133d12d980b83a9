// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// catalogLocalizer is the [StringLocalizer] returned by [Catalog].
type catalogLocalizer struct {
	catalog  *Catalog
	baseName string
	tag      language.Tag
	printer  *format.Printer
}

func (l *catalogLocalizer) Get(key string, args ...any) (LocalizedString, error) {
	value, found := l.catalog.lookup(l.tag, l.baseName, key)
	if !found {
		l.catalog.logMissingOnce(l.tag, l.baseName, key)

		value = key
		if l.catalog.strict {
			value = missingOpen + key + missingClose
		}
	}

	if len(args) > 0 {
		formatted, err := l.printer.Format(value, args, nil)
		if err != nil {
			return LocalizedString{}, fmt.Errorf("failed to format %q: %w", key, err)
		}

		value = formatted
	}

	return LocalizedString{
		Name:             key,
		Value:            value,
		ResourceNotFound: !found,
		SearchedLocation: l.baseName,
	}, nil
}

func (l *catalogLocalizer) AllStrings(includeParentCultures bool) []LocalizedString {
	chain := []language.Tag{l.tag}
	if includeParentCultures {
		chain = append(ancestors(l.tag), l.catalog.base)
	}

	seen := make(map[string]struct{})

	var out []LocalizedString

	for _, t := range chain {
		for _, key := range l.catalog.keysIn(t, l.baseName) {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			value, _ := l.catalog.lookupIn(t, l.baseName, key)
			out = append(out, LocalizedString{
				Name:             key,
				Value:            value,
				SearchedLocation: l.baseName,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

func (l *catalogLocalizer) WithCulture(tag language.Tag) StringLocalizer {
	return l.catalog.newLocalizer(l.baseName, tag)
}

func (l *catalogLocalizer) Culture() language.Tag {
	return l.tag
}
