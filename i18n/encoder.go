// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// Encoder names accepted by [EncoderByName].
const (
	EncoderHTML     = "html"
	EncoderSanitize = "sanitize"
	EncoderNone     = "none"
)

var (
	ugcPolicy     *bluemonday.Policy
	ugcPolicyOnce sync.Once
)

// EscapeHTML escapes s for inclusion in HTML text or attribute values.
func EscapeHTML(s string) string {
	return templ.EscapeString(s)
}

// SanitizeHTML keeps safe user-generated markup in s and strips the rest.
// Links are forced to rel="nofollow".
func SanitizeHTML(s string) string {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})

	return ugcPolicy.Sanitize(s)
}

// Identity returns s unchanged.
func Identity(s string) string {
	return s
}

// EncoderByName returns the encoder registered under name. The empty name
// selects [EncoderHTML].
func EncoderByName(name string) (format.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncoderHTML:
		return EscapeHTML, nil
	case EncoderSanitize:
		return SanitizeHTML, nil
	case EncoderNone:
		return Identity, nil
	default:
		return nil, fmt.Errorf("unknown encoder %q (expected %q, %q or %q)", name, EncoderHTML, EncoderSanitize, EncoderNone)
	}
}
