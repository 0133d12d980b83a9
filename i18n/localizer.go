// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"errors"
	"io"
	"reflect"

	"golang.org/x/text/language"
)

var (
	// ErrNotContextualized is returned by [ViewLocalizer] lookups made before
	// [ViewLocalizer.Contextualize].
	ErrNotContextualized = errors.New("view localizer has not been contextualized")

	// ErrEmptyBaseName is returned when a localizer is requested for an empty base name.
	ErrEmptyBaseName = errors.New("resource base name must not be empty")

	// ErrNoCatalog is returned when a localizer is requested without a catalogue.
	ErrNoCatalog = errors.New("no resource catalog configured")
)

// LocalizedString is the result of a plain resource lookup.
type LocalizedString struct {
	// Name is the key that was looked up.
	Name string
	// Value is the resolved text, or the key itself when not found.
	Value string
	// ResourceNotFound reports whether the key was missing.
	ResourceNotFound bool
	// SearchedLocation names the resource set that was consulted.
	SearchedLocation string
}

func (s LocalizedString) String() string {
	return s.Value
}

// LocalizedHTML is a resource string with its arguments encoded and
// substituted. Its value is trusted markup: it renders verbatim and is never
// re-encoded when passed as an argument to another format operation.
type LocalizedHTML struct {
	Name             string
	Value            string
	ResourceNotFound bool
	SearchedLocation string
}

// TrustedHTML returns the raw markup. A nil receiver yields "".
func (h *LocalizedHTML) TrustedHTML() string {
	if h == nil {
		return ""
	}

	return h.Value
}

// Render writes the markup verbatim, implementing templ.Component.
func (h LocalizedHTML) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, h.Value)

	return err
}

func (h LocalizedHTML) String() string {
	return h.Value
}

// StringLocalizer looks up plain resource strings for one resource set and culture.
type StringLocalizer interface {
	// Get returns the string for key. With args, the resource is treated as a
	// composite format template and formatted without encoding.
	Get(key string, args ...any) (LocalizedString, error)
	// AllStrings returns every string in the resource set sorted by name.
	// When includeParentCultures is set, keys missing from the culture are
	// filled in from its parent cultures and finally the base locale.
	AllStrings(includeParentCultures bool) []LocalizedString
	// WithCulture returns a localizer for the same resource set in another culture.
	WithCulture(tag language.Tag) StringLocalizer
	// Culture returns the culture the localizer resolves against.
	Culture() language.Tag
}

// LocalizerFactory creates string localizers.
type LocalizerFactory interface {
	// Create returns a localizer for the named resource set. A non-empty
	// location is treated as the root namespace and stripped from baseName.
	Create(baseName, location string) (StringLocalizer, error)
	// CreateFor returns a localizer whose base name is derived from t.
	CreateFor(t reflect.Type) (StringLocalizer, error)
}

// Localizer is the lookup surface shared by [*HTMLLocalizer] and [*ViewLocalizer].
type Localizer interface {
	Get(key string, args ...any) (LocalizedString, error)
	HTML(key string, args ...any) (LocalizedHTML, error)
	AllStrings(includeParentCultures bool) []LocalizedString
}

var (
	_ Localizer = (*HTMLLocalizer)(nil)
	_ Localizer = (*ViewLocalizer)(nil)
)
