// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var (
	_ templ.Component = MsgKey("foo")
	_ templ.Component = LocalizedHTML{}
	_ Translatable    = MsgKey("foo")
)

func TestMsgKey(t *testing.T) {
	t.Parallel()

	loc := newIndexLocalizer(t, EscapeHTML).WithCulture(language.French)

	tests := []struct {
		name   string
		ctx    context.Context
		key    MsgKey
		render string
		tr     string
	}{
		{name: "no localizer", ctx: context.Background(), key: "<title>", render: "&lt;title&gt;", tr: "<title>"},
		{name: "translated", ctx: WithLocalizer(context.Background(), loc), key: "count", render: "{0} éléments", tr: "{0} éléments"},
		{name: "markup resource", ctx: WithLocalizer(context.Background(), loc), key: "title", render: "<h1>Home</h1>", tr: "<h1>Home</h1>"},
		{name: "missing key is escaped", ctx: WithLocalizer(context.Background(), loc), key: "<nope>", render: "&lt;nope&gt;", tr: "<nope>"},
		{
			name:   "culture from context",
			ctx:    WithTag(WithLocalizer(context.Background(), loc), language.English),
			key:    "count",
			render: "{0} items",
			tr:     "{0} items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, tt.key.Render(tt.ctx, &buf))
			assert.Equal(t, tt.render, buf.String())
			assert.Equal(t, tt.tr, tt.key.Tr(tt.ctx))
		})
	}
}

func TestMsgKey_ViewNotContextualized(t *testing.T) {
	t.Parallel()

	v := NewViewLocalizer(loadTestCatalog(t, CatalogOptions{}), EscapeHTML, "App")
	ctx := WithLocalizer(context.Background(), v)

	var buf bytes.Buffer
	require.ErrorIs(t, MsgKey("greeting").Render(ctx, &buf), ErrNotContextualized)
	assert.Equal(t, "greeting", MsgKey("greeting").Tr(ctx))
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, language.English, TagFrom(context.Background()))
	assert.Equal(t, language.English, TagFrom(nil)) //nolint:staticcheck
	assert.Equal(t, language.Japanese, TagFrom(WithTag(context.Background(), language.Japanese)))
	assert.Equal(t, language.English, TagFrom(WithTag(context.Background(), language.Tag{})))

	_, ok := LocalizerFrom(context.Background())
	assert.False(t, ok)

	_, ok = LocalizerFrom(nil) //nolint:staticcheck
	assert.False(t, ok)

	loc := newIndexLocalizer(t, EscapeHTML)

	got, ok := LocalizerFrom(WithLocalizer(context.Background(), loc))
	require.True(t, ok)
	assert.Same(t, loc, got)
}

func TestNewUserError(t *testing.T) {
	t.Parallel()

	err := NewUserError(context.Background(), "greeting", "x")
	assert.Equal(t, "greeting", err.Error())

	ctx := WithLocalizer(context.Background(), newIndexLocalizer(t, EscapeHTML))

	err = NewUserError(ctx, "greeting", "<x>")
	assert.Equal(t, "Hello, <x>!", err.Error())
	assert.Equal(t, "greeting", err.Key)
}
