// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
)

// Trusted is implemented by values that already hold safe markup.
// Their text is substituted as-is and never passed to an [Encoder].
//
// Implementations with pointer receivers must handle a nil receiver.
type Trusted interface {
	TrustedHTML() string
}

// HTML is a string of trusted markup.
type HTML string

// TrustedHTML implements [Trusted].
func (h HTML) TrustedHTML() string {
	return string(h)
}

// SpecFormatter is implemented by values that render themselves according to
// a format specifier, such as "{0:short}". The result is still encoded.
type SpecFormatter interface {
	FormatSpec(spec string, tag language.Tag) string
}

// convert renders arg for a placeholder with the given specifier and reports
// whether the result is trusted markup. Components render with ctx.
func (p *Printer) convert(ctx context.Context, arg any, spec string) (string, bool, error) {
	switch v := arg.(type) {
	case nil:
		return "", false, nil
	case Trusted:
		return v.TrustedHTML(), true, nil
	case templ.Component:
		var sb strings.Builder
		if err := v.Render(ctx, &sb); err != nil {
			return "", false, fmt.Errorf("failed to render component argument: %w", err)
		}

		return sb.String(), true, nil
	case SpecFormatter:
		return v.FormatSpec(spec, p.tag), false, nil
	case time.Time:
		if spec == "" {
			spec = "G"
		}

		return formatTime(v, spec), false, nil
	case *time.Time:
		if v == nil {
			return "", false, nil
		}

		return p.convert(ctx, *v, spec)
	}

	if spec != "" {
		if s, ok := p.formatNumber(arg, spec); ok {
			return s, false, nil
		}
	}

	return fmt.Sprint(arg), false, nil
}
