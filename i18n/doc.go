// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n provides HTML-safe localization of resource strings backed by
GNU gettext .po catalogues and flat YAML maps.

# Quick start

Load a catalogue tree laid out as <root>/<locale>/<baseName>.<ext>, where ext
is "po", "po.zst" or "yaml":

	cat, err := i18n.LoadCatalog(os.DirFS("resources"), i18n.CatalogOptions{})
	strs, err := cat.Create("Views.Home.Index", "")
	loc := i18n.NewHTMLLocalizer(strs, i18n.EscapeHTML).WithCulture(language.French)

	html, err := loc.HTML("Welcome, <b>{0}</b>!", user.Name)

Resource strings use composite format placeholders ("{0}", "{1,-8}",
"{2:yyyy-MM-dd}"); see package core/format. Only the interpolated arguments are
encoded, so translators can keep markup in the resource string itself.

Localized HTML can be used directly in templ templates:

	@html

# View localizers

[ViewLocalizer] derives its resource base name from the view path:

	v := i18n.NewViewLocalizer(cat, i18n.EscapeHTML, "App")
	err := v.Contextualize("Views/Home/Index")
	// looks up resources in "Views.Home.Index"

# Missing translations

By default, missing keys return the key unchanged with ResourceNotFound set.
When StrictMissingKeys is enabled, missing lookups are logged once
per locale+key and the returned text is visibly wrapped as "⟦...⟧".
*/
package i18n
