// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"golang.org/x/text/language"
)

const (
	missingOpen  = "⟦"
	missingClose = "⟧"
)

// logMissingOnce logs a missing translation warning once per
// (locale, base name, key) when strict mode is enabled.
func (c *Catalog) logMissingOnce(tag language.Tag, baseName, key string) {
	if !c.strict {
		return
	}

	locale := strippedTagString(tag)

	id := locale + "\x00" + baseName + "\x00" + key
	if _, loaded := c.missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		c.logger.Warn().
			Str("locale", locale).
			Str("base", baseName).
			Str("key", key).
			Msg("Missing i18n translation")
	}
}

// strippedTagString removes variants to form a stable key using base, script and region only.
func strippedTagString(tag language.Tag) string {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped.String()
}
