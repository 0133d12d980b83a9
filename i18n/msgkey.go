// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Translatable is a value that can translate itself using a context.
// Types such as [MsgKey] implement Translatable.
type Translatable interface {
	Tr(ctx context.Context) string
}

// MsgKey is a resource key that renders as localized HTML.
//
// The localizer is taken from ctx (see [WithLocalizer]). When ctx also
// carries a tag (see [WithTag]) and the localizer is an [*HTMLLocalizer], the
// lookup uses that culture. The key itself is written HTML-escaped when ctx
// has no localizer or the resource is missing.
type MsgKey string

// localizer returns the localizer from ctx, moved to the culture in ctx when
// one is set.
func (s MsgKey) localizer(ctx context.Context) (Localizer, bool) {
	l, ok := LocalizerFrom(ctx)
	if !ok {
		return nil, false
	}

	if h, isHTML := l.(*HTMLLocalizer); isHTML {
		if t, set := tagIn(ctx); set && t != h.Culture() {
			return h.WithCulture(t), true
		}
	}

	return l, true
}

// Tr returns the plain localized text for this key. Lookup failures fall back
// to the key.
func (s MsgKey) Tr(ctx context.Context) string {
	l, ok := s.localizer(ctx)
	if !ok {
		return string(s)
	}

	ls, err := l.Get(string(s))
	if err != nil {
		return string(s)
	}

	return ls.Value
}

// Render writes the localized resource string verbatim. Resource strings are
// trusted markup; a missing resource falls back to the escaped key.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	l, ok := s.localizer(ctx)
	if !ok {
		_, err := io.WriteString(w, templ.EscapeString(string(s)))

		return err
	}

	h, err := l.HTML(string(s))
	if err != nil {
		return err
	}

	value := h.Value
	if h.ResourceNotFound {
		value = templ.EscapeString(value)
	}

	_, err = io.WriteString(w, value)

	return err
}
