// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"

	"golang.org/x/text/language"
)

type contextKeyType int

const (
	tagKey contextKeyType = iota
	localizerKey
)

// WithTag stores t in ctx and returns a derived context that carries it.
//
// The returned context should be passed to downstream code that performs
// translations, such as [HTMLLocalizer.ForContext]. Passing the zero value of
// [language.Tag] clears any existing value.
//
// The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the tag for [BaseLocale]
// if none is present. It never returns the zero value of [language.Tag].
//
// TagFrom does not panic and simply returns the base language tag when no tag
// is found in ctx or ctx is nil.
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// tagIn returns the tag stored in ctx by [WithTag], if any.
func tagIn(ctx context.Context) (language.Tag, bool) {
	if ctx == nil {
		return language.Tag{}, false
	}

	t, _ := ctx.Value(tagKey).(language.Tag)

	return t, t != (language.Tag{})
}

// WithLocalizer stores l in ctx so that [MsgKey] components and
// [NewUserError] can resolve messages during rendering.
func WithLocalizer(ctx context.Context, l Localizer) context.Context {
	return context.WithValue(ctx, localizerKey, l)
}

// LocalizerFrom returns the localizer stored in ctx by [WithLocalizer].
func LocalizerFrom(ctx context.Context) (Localizer, bool) {
	if ctx == nil {
		return nil, false
	}

	l, ok := ctx.Value(localizerKey).(Localizer)

	return l, ok && l != nil
}
