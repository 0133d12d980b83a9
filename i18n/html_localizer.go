// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/core/format"
	"codeberg.org/htmlloc/htmlloc/core/lrucache"
)

// HTMLLocalizer produces HTML-safe localized strings. Resource strings are
// treated as trusted markup; arguments are encoded before substitution.
//
// An HTMLLocalizer is immutable and safe for concurrent use.
type HTMLLocalizer struct {
	strings StringLocalizer
	encode  format.Encoder
	printer *format.Printer
	cache   *lrucache.LRUCache[*format.Template]
}

// HTMLOption configures an [HTMLLocalizer].
type HTMLOption func(*HTMLLocalizer)

// WithTemplateCache caches compiled resource templates by their text.
// The cache may be shared between localizers.
func WithTemplateCache(cache *lrucache.LRUCache[*format.Template]) HTMLOption {
	return func(l *HTMLLocalizer) {
		l.cache = cache
	}
}

// NewHTMLLocalizer wraps strings. A nil encode defaults to [EscapeHTML].
func NewHTMLLocalizer(strings StringLocalizer, encode format.Encoder, opts ...HTMLOption) *HTMLLocalizer {
	if encode == nil {
		encode = EscapeHTML
	}

	l := &HTMLLocalizer{
		strings: strings,
		encode:  encode,
		printer: format.NewPrinter(strings.Culture()),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Get returns the plain string for key, formatted with args but not encoded.
func (l *HTMLLocalizer) Get(key string, args ...any) (LocalizedString, error) {
	return l.strings.Get(key, args...)
}

// AllStrings returns every plain string of the underlying resource set.
func (l *HTMLLocalizer) AllStrings(includeParentCultures bool) []LocalizedString {
	return l.strings.AllStrings(includeParentCultures)
}

// Culture returns the culture used for lookups and number or date formatting.
func (l *HTMLLocalizer) Culture() language.Tag {
	return l.strings.Culture()
}

// WithCulture returns a localizer for the same resource set in tag, keeping
// the encoder and template cache.
func (l *HTMLLocalizer) WithCulture(tag language.Tag) *HTMLLocalizer {
	strs := l.strings.WithCulture(tag)

	return &HTMLLocalizer{
		strings: strs,
		encode:  l.encode,
		printer: format.NewPrinter(strs.Culture()),
		cache:   l.cache,
	}
}

// ForContext returns a localizer for the culture stored in ctx by [WithTag].
func (l *HTMLLocalizer) ForContext(ctx context.Context) *HTMLLocalizer {
	return l.WithCulture(TagFrom(ctx))
}

// HTML returns the resource for key as markup. Without args the resource is
// returned verbatim. Otherwise it is formatted with each argument encoded,
// except for trusted values such as [LocalizedHTML] and templ components.
// Component arguments render with this localizer and its culture in their
// context, so a [MsgKey] argument is translated too.
func (l *HTMLLocalizer) HTML(key string, args ...any) (LocalizedHTML, error) {
	ls, err := l.strings.Get(key)
	if err != nil {
		return LocalizedHTML{}, err
	}

	out := LocalizedHTML{
		Name:             ls.Name,
		Value:            ls.Value,
		ResourceNotFound: ls.ResourceNotFound,
		SearchedLocation: ls.SearchedLocation,
	}

	if len(args) == 0 {
		return out, nil
	}

	tmpl, err := l.compile(ls.Value)
	if err != nil {
		return LocalizedHTML{}, fmt.Errorf("failed to format %q: %w", key, err)
	}

	ctx := WithTag(WithLocalizer(context.Background(), l), l.Culture())

	out.Value, err = tmpl.ExecuteContext(ctx, l.printer, args, l.encode)
	if err != nil {
		return LocalizedHTML{}, fmt.Errorf("failed to format %q: %w", key, err)
	}

	return out, nil
}

func (l *HTMLLocalizer) compile(text string) (*format.Template, error) {
	if l.cache == nil {
		return format.Compile(text)
	}

	if tmpl, ok := l.cache.Get(text); ok {
		return tmpl, nil
	}

	tmpl, err := format.Compile(text)
	if err != nil {
		return nil, err
	}

	l.cache.Add(text, tmpl)

	return tmpl, nil
}
