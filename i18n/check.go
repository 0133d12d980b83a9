// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// Issue describes a problem with one resource string.
type Issue struct {
	Locale   language.Tag
	BaseName string
	Key      string
	Problem  string
	// Err is set for malformed templates.
	Err error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s/%s: %q: %s", i.Locale, i.BaseName, i.Key, i.Problem)
}

// Check compiles every resource string in every locale and compares
// placeholder counts against the base locale. Issues are ordered by locale,
// base name and key.
func (c *Catalog) Check() []Issue {
	var issues []Issue

	for _, tag := range c.tags {
		res := c.locales[tag.String()]

		names := make([]string, 0, len(res.sets))
		for name := range res.sets {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			set := res.sets[name]

			for _, key := range set.keys() {
				value, _ := set.lookup(key)
				if issue, ok := c.checkString(tag, name, key, value); ok {
					issues = append(issues, issue)
				}
			}
		}
	}

	return issues
}

func (c *Catalog) checkString(tag language.Tag, baseName, key, value string) (Issue, bool) {
	issue := Issue{Locale: tag, BaseName: baseName, Key: key}

	tmpl, err := format.Compile(value)
	if err != nil {
		issue.Problem = err.Error()
		issue.Err = err

		return issue, true
	}

	if tag == c.base {
		return Issue{}, false
	}

	baseValue, ok := c.lookupIn(c.base, baseName, key)
	if !ok {
		issue.Problem = "key not present in base locale"

		return issue, true
	}

	baseTmpl, err := format.Compile(baseValue)
	if err != nil {
		// Reported when the base locale itself is checked.
		return Issue{}, false
	}

	if got, want := tmpl.ArgCount(), baseTmpl.ArgCount(); got != want {
		issue.Problem = fmt.Sprintf("uses %d argument(s), base locale uses %d", got, want)

		return issue, true
	}

	return Issue{}, false
}
