// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"reflect"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// NewHTMLLocalizerFor returns an HTML localizer whose resource base name is
// derived from T (see [Catalog.CreateFor]).
func NewHTMLLocalizerFor[T any](factory LocalizerFactory, encode format.Encoder, opts ...HTMLOption) (*HTMLLocalizer, error) {
	if factory == nil {
		return nil, ErrNoCatalog
	}

	strs, err := factory.CreateFor(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	return NewHTMLLocalizer(strs, encode, opts...), nil
}
