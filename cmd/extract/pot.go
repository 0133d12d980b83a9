// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// renderPOT emits a gettext template with one entry per key, sorted by key,
// with source references sorted and deduplicated.
func renderPOT(refs map[string][]ref, version string) string {
	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder
	writeHeader(&b, version)

	for i, k := range keys {
		rs := refs[k]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		fmt.Fprint(&b, "#:")

		var last ref
		for _, r := range rs {
			if r != last {
				fmt.Fprintf(&b, " %s:%d", r.file, r.line)

				last = r
			}
		}

		fmt.Fprintln(&b)

		if strings.Contains(k, "{") {
			fmt.Fprintln(&b, "#, csharp-format")
		}

		fmt.Fprintf(&b, "msgid %q\n", k)
		fmt.Fprintf(&b, "msgstr \"\"\n")

		if i < len(keys)-1 {
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder, version string) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: htmlloc %s\\n\"\n", version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", time.Now().UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b)
}
