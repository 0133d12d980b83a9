// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// ViewLocalizer is an HTML localizer bound to a view by its path.
//
// It must be contextualized before use and is not safe for concurrent
// contextualization; create one per view render.
type ViewLocalizer struct {
	factory         LocalizerFactory
	encode          format.Encoder
	applicationName string
	opts            []HTMLOption
	baseName        string
	html            *HTMLLocalizer
}

// NewViewLocalizer returns a view localizer for views of applicationName.
func NewViewLocalizer(factory LocalizerFactory, encode format.Encoder, applicationName string, opts ...HTMLOption) *ViewLocalizer {
	return &ViewLocalizer{
		factory:         factory,
		encode:          encode,
		applicationName: applicationName,
		opts:            opts,
	}
}

// ViewBaseName derives the resource base name of a view: path separators
// become dots, a leading dot is dropped and the application name is
// prefixed. "Views/Home/Index" in "App" yields "App.Views.Home.Index".
func ViewBaseName(applicationName, viewPath string) string {
	name := strings.NewReplacer("/", ".", `\`, ".").Replace(viewPath)
	name = strings.TrimPrefix(name, ".")

	return applicationName + "." + name
}

// Contextualize binds the localizer to viewPath. It may be called again to
// rebind to another view.
func (v *ViewLocalizer) Contextualize(viewPath string) error {
	if v.factory == nil {
		return ErrNoCatalog
	}

	baseName := ViewBaseName(v.applicationName, viewPath)

	strs, err := v.factory.Create(baseName, v.applicationName)
	if err != nil {
		return err
	}

	v.baseName = baseName
	v.html = NewHTMLLocalizer(strs, v.encode, v.opts...)

	return nil
}

// BaseName returns the base name derived by the last Contextualize call.
func (v *ViewLocalizer) BaseName() string {
	return v.baseName
}

func (v *ViewLocalizer) Get(key string, args ...any) (LocalizedString, error) {
	if v.html == nil {
		return LocalizedString{}, ErrNotContextualized
	}

	return v.html.Get(key, args...)
}

func (v *ViewLocalizer) HTML(key string, args ...any) (LocalizedHTML, error) {
	if v.html == nil {
		return LocalizedHTML{}, ErrNotContextualized
	}

	return v.html.HTML(key, args...)
}

// AllStrings returns nil when the localizer has not been contextualized.
func (v *ViewLocalizer) AllStrings(includeParentCultures bool) []LocalizedString {
	if v.html == nil {
		return nil
	}

	return v.html.AllStrings(includeParentCultures)
}

// WithCulture returns an HTML localizer for the bound view in tag.
func (v *ViewLocalizer) WithCulture(tag language.Tag) (*HTMLLocalizer, error) {
	if v.html == nil {
		return nil, ErrNotContextualized
	}

	return v.html.WithCulture(tag), nil
}
