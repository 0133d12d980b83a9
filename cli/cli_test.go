// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

/*
Commands load configuration, which reads the environment and replaces the
global logger, so these tests do not run in parallel.
*/

var testResources = fstest.MapFS{
	"en/Shared.yaml": {Data: []byte(`"Welcome, {0}!": "Welcome, <strong>{0}</strong>!"
sign_out: "Sign out"
`)},
	"fr/Shared.yaml": {Data: []byte(`"Welcome, {0}!": "Bienvenue, <strong>{0}</strong> !"
`)},
	"en/Views.Home.Index.yaml": {Data: []byte(`title: "<h1>Home</h1>"
greeting: "Hello, <em>{0}</em>!"
`)},
	"fr/Views.Home.Index.yaml": {Data: []byte(`greeting: "Bonjour, <em>{0}</em> !"
`)},
}

func execute(t *testing.T, resources fs.FS, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HTMLLOC_LOG_OUTPUTS", filepath.Join(dir, "htmlloc.log"))

	var out bytes.Buffer

	root := NewRootCommand(resources)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.yaml")}, args...))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestFormatCommand(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "escapes arguments only",
			args: []string{"format", "Hello, <b>{0}</b>!", "<World>"},
			want: "Hello, <b>&lt;World&gt;</b>!\n",
		},
		{
			name: "identity encoder",
			args: []string{"format", "--encoder", "none", "{0}", "<b>"},
			want: "<b>\n",
		},
		{
			name: "typed arguments and culture",
			args: []string{"format", "--typed", "--locale", "de", "{0:N2}|{1,-4}|{2:D3}", "1234.5", "ab", "7"},
			want: "1.234,50|ab  |007\n",
		},
		{
			name: "typed time",
			args: []string{"format", "--typed", "{0:yyyy-MM-dd}", "2024-03-05T14:07:09Z"},
			want: "2024-03-05\n",
		},
		{
			name: "trusted argument",
			args: []string{"format", "--trusted", "0", "{0} {1}", "<em>x</em>", "<y>"},
			want: "<em>x</em> &lt;y&gt;\n",
		},
		{
			name: "escaped braces",
			args: []string{"format", "{{{0}}}", "&"},
			want: "{&amp;}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, testResources, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCommand_Errors(t *testing.T) { //nolint:paralleltest
	_, err := execute(t, testResources, "format", "{0")
	require.ErrorIs(t, err, format.ErrMalformedTemplate)

	_, err = execute(t, testResources, "format", "--trusted", "3", "{0}", "x")
	require.Error(t, err)

	_, err = execute(t, testResources, "format", "--encoder", "xml", "{0}", "x")
	require.Error(t, err)

	_, err = execute(t, testResources, "format", "--locale", "!!", "{0}", "x")
	require.Error(t, err)

	_, err = execute(t, testResources, "format")
	require.Error(t, err)
}

func TestHTMLCommand(t *testing.T) { //nolint:paralleltest
	out, err := execute(t, testResources, "html", "--base", "Shared", "--locale", "fr", "Welcome, {0}!", "<Léa>")
	require.NoError(t, err)
	assert.Equal(t, "Bienvenue, <strong>&lt;Léa&gt;</strong> !\n", out)

	out, err = execute(t, testResources, "html", "--base", "Shared", "--locale", "fr-CA", "sign_out")
	require.NoError(t, err)
	assert.Equal(t, "Sign out\n", out)

	out, err = execute(t, testResources, "html", "--base", "Shared", "Missing {0}", "&")
	require.NoError(t, err)
	assert.Equal(t, "Missing &amp;\n", out)

	_, err = execute(t, testResources, "html", "sign_out")
	require.Error(t, err, "--base is required")
}

func TestHTMLCommand_EncoderFromEnvironment(t *testing.T) { //nolint:paralleltest
	t.Setenv("HTMLLOC_ENCODER", "sanitize")

	out, err := execute(t, testResources, "html", "--base", "Shared", "Welcome, {0}!", `<i onclick="x">Léa</i><script>y</script>`)
	require.NoError(t, err)
	assert.Equal(t, "Welcome, <strong><i>Léa</i></strong>!\n", out)
}

func TestViewCommand(t *testing.T) { //nolint:paralleltest
	out, err := execute(t, testResources, "view", "Views/Home/Index", "title")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Home</h1>\n", out)

	out, err = execute(t, testResources, "view", "--locale", "fr", "/Views/Home/Index", "greeting", "<x>")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour, <em>&lt;x&gt;</em> !\n", out)

	t.Setenv("HTMLLOC_APPLICATION_NAME", "Views")

	out, err = execute(t, testResources, "view", "Home/Index", "title")
	require.NoError(t, err)
	assert.Equal(t, "title\n", out, "resources are looked up under Home.Index")
}

func TestListCommand(t *testing.T) { //nolint:paralleltest
	out, err := execute(t, testResources, "list", "--base", "Shared", "--locale", "fr")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Welcome, {0}!"))
	assert.True(t, strings.HasSuffix(lines[0], "Bienvenue, <strong>{0}</strong> !"))

	out, err = execute(t, testResources, "list", "--base", "Shared", "--locale", "fr", "--ancestors", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{
		"Welcome, {0}!": "Bienvenue, <strong>{0}</strong> !",
		"sign_out":      "Sign out",
	}, got)

	_, err = execute(t, testResources, "list", "--base", "Shared", "-o", "csv")
	require.Error(t, err)
}

func TestLocalesCommand(t *testing.T) { //nolint:paralleltest
	out, err := execute(t, testResources, "locales")
	require.NoError(t, err)
	assert.Equal(t, "en (base)\nfr\n\nShared\nViews.Home.Index\n", out)

	t.Setenv("HTMLLOC_BASE_LOCALE", "fr")

	out, err = execute(t, testResources, "locales")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fr (base)\nen\n"))
}

func TestCheckCommand(t *testing.T) { //nolint:paralleltest
	_, err := execute(t, testResources, "check")
	require.NoError(t, err)

	broken := fstest.MapFS{
		"en/App.yaml": {Data: []byte("a: \"{0} {1}\"\n")},
		"fr/App.yaml": {Data: []byte("a: \"{0}\"\nb: \"{\"\n")},
	}

	out, err := execute(t, broken, "check")
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, `fr/App: "a": uses 1 argument(s), base locale uses 2`)
	assert.Contains(t, out, `fr/App: "b":`)
}

func TestVersionCommand(t *testing.T) { //nolint:paralleltest
	out, err := execute(t, testResources, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "htmlloc v"))
}

func TestParseTyped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"1.5", 1.5},
		{"2024-03-05T14:07:09Z", time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, parseTyped(tt.in))
		})
	}
}

func TestArgFlagsConvert(t *testing.T) {
	t.Parallel()

	f := argFlags{typed: true, trusted: []int{1}}

	got, err := f.convert([]string{"3", "<b>", "x"})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3), format.HTML("<b>"), "x"}, got)

	f.trusted = []int{-1}
	_, err = f.convert([]string{"x"})
	require.Error(t, err)
}
