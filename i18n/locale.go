// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the default locale used when no specific locale is set.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// parseLocaleName converts a directory name such as "pt_BR" into a canonical tag.
func parseLocaleName(name string) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(name, "_", "-"))
}

// sortTags sorts tags by their canonical string.
func sortTags(tags []language.Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
}

// ancestors returns t followed by its parents, excluding the root tag.
// For example "fr-CA" yields "fr-CA", "fr".
func ancestors(t language.Tag) []language.Tag {
	var out []language.Tag

	for cur := t; cur != language.Und; cur = cur.Parent() {
		out = append(out, cur)
	}

	return out
}

// ParseLocale parses a locale name such as "pt_BR" or "pt-BR".
func ParseLocale(name string) (language.Tag, error) {
	return parseLocaleName(name)
}
