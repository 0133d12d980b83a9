// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/i18n"
)

/*
Tests in this file set environment variables and replace the global logger,
so they do not run in parallel.
*/

func loadOptions(t *testing.T) LoadOptions {
	t.Helper()

	return LoadOptions{
		ConfigFile:    filepath.Join(t.TempDir(), "missing.yaml"),
		ConfigFileSet: true,
		SkipDotEnv:    true,
	}
}

func TestLoadConfig(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name    string            // Description of the test case
		env     map[string]string // Name of the environment variable and its value
		wantErr error             // Expected sentinel, if any
		anyErr  bool              // Whether any error is expected
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "Defaults",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "App", cfg.Resources.ApplicationName)
				assert.Equal(t, language.English, cfg.Resources.BaseLocaleTag)
				assert.Equal(t, "&lt;b&gt;", cfg.Encoding.Encode("<b>"))
				assert.True(t, cfg.Cache.Enabled)
				assert.Equal(t, defaultCacheSize, cfg.Cache.Size)
			},
		},
		{
			name: "Sanitizing encoder",
			env:  map[string]string{"HTMLLOC_ENCODER": "sanitize"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "<b>x</b>", cfg.Encoding.Encode(`<b onclick="y">x</b>`))
			},
		},
		{
			name: "Underscore base locale",
			env:  map[string]string{"HTMLLOC_BASE_LOCALE": "pt_BR", "HTMLLOC_APPLICATION_NAME": " Shop "},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, language.MustParse("pt-BR"), cfg.Resources.BaseLocaleTag)
				assert.Equal(t, "Shop", cfg.Resources.ApplicationName)
			},
		},
		{
			name: "Cache disabled ignores size",
			env:  map[string]string{"HTMLLOC_CACHE": "false", "HTMLLOC_CACHE_SIZE": "0"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Cache.Enabled)
			},
		},
		{
			name: "Log outputs list",
			env:  map[string]string{"HTMLLOC_LOG_OUTPUTS": "/dev/stderr, ,/dev/stdout", "HTMLLOC_LOG_LEVEL": "WARN"},
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, []string{"/dev/stderr", "/dev/stdout"}, cfg.Log.Outputs)
				assert.Equal(t, "warn", cfg.Log.Level)
			},
		},
		{name: "Invalid encoder", env: map[string]string{"HTMLLOC_ENCODER": "xml"}, wantErr: errInvalidEncoder},
		{name: "Invalid cache size", env: map[string]string{"HTMLLOC_CACHE_SIZE": "0"}, wantErr: errInvalidCacheSize},
		{name: "Unparsable cache size", env: map[string]string{"HTMLLOC_CACHE_SIZE": "lots"}, anyErr: true},
		{name: "Invalid base locale", env: map[string]string{"HTMLLOC_BASE_LOCALE": "!!"}, wantErr: errInvalidBaseLocale},
		{name: "Empty application name", env: map[string]string{"HTMLLOC_APPLICATION_NAME": "  "}, wantErr: errEmptyApplicationName},
		{name: "Invalid log level", env: map[string]string{"HTMLLOC_LOG_LEVEL": "loud"}, wantErr: errInvalidLogLevel},
		{name: "Invalid log format", env: map[string]string{"HTMLLOC_LOG_FORMAT": "xml"}, wantErr: errInvalidLogFormat},
		{name: "Missing resources path", env: map[string]string{"HTMLLOC_RESOURCES_PATH": "/does/not/exist"}, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := &Config{}
			err := cfg.LoadConfig(loadOptions(t))

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) { //nolint:paralleltest
	dir := t.TempDir()
	resources := filepath.Join(dir, "resources")
	require.NoError(t, os.Mkdir(resources, 0o755))

	path := filepath.Join(dir, "htmlloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`resources:
  path: `+resources+`
  applicationName: Docs
encoding:
  encoder: none
cache:
  cacheSize: 16
internationalization:
  strictMissingKeys: true
`), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("HTMLLOC_CACHE_SIZE", "32")

	cfg := &Config{}
	require.NoError(t, cfg.LoadConfig(LoadOptions{SkipDotEnv: true}))

	assert.Equal(t, resources, cfg.Resources.Path)
	assert.Equal(t, "Docs", cfg.Resources.ApplicationName)
	assert.Equal(t, "<b>", cfg.Encoding.Encode("<b>"))
	assert.Equal(t, 32, cfg.Cache.Size, "overwrite tag lets env win over YAML")
	assert.True(t, cfg.Internationalization.StrictMissingKeys)

	opts := cfg.CatalogOptions()
	assert.True(t, opts.StrictMissingKeys)
	assert.Equal(t, i18n.BaseLocale, opts.BaseLocale)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "applicationName: Docs")
	assert.NotContains(t, string(out), "BaseLocaleTag")
}

func TestLoadConfig_UnknownYAMLField(t *testing.T) { //nolint:paralleltest
	path := filepath.Join(t.TempDir(), "htmlloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resources:\n  nope: 1\n"), 0o600))

	cfg := &Config{}
	err := cfg.LoadConfig(LoadOptions{ConfigFile: path, ConfigFileSet: true, SkipDotEnv: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadConfig_EmptyYAML(t *testing.T) { //nolint:paralleltest
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "\n  \n"},
		{name: "comments only", body: "# nothing\n# here\n"},
		{name: "explicit null", body: "~\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "htmlloc.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			cfg := &Config{}
			require.NoError(t, cfg.LoadConfig(LoadOptions{ConfigFile: path, ConfigFileSet: true, SkipDotEnv: true}))
			assert.Equal(t, "App", cfg.Resources.ApplicationName)
			assert.Equal(t, i18n.BaseLocale, cfg.Resources.BaseLocale)
			assert.True(t, cfg.Cache.Enabled)
			assert.Equal(t, 256, cfg.Cache.Size)
		})
	}
}

func TestResolveConfigFile(t *testing.T) { //nolint:paralleltest
	assert.Equal(t, "flag.yaml", resolveConfigFile(LoadOptions{ConfigFile: "flag.yaml", ConfigFileSet: true}))

	t.Setenv(ConfigFileEnv, "env.yaml")
	assert.Equal(t, "env.yaml", resolveConfigFile(LoadOptions{ConfigFile: "ignored.yaml"}))
	assert.Equal(t, "flag.yaml", resolveConfigFile(LoadOptions{ConfigFile: "flag.yaml", ConfigFileSet: true}))

	t.Setenv(ConfigFileEnv, "")
	assert.Equal(t, DefaultConfigFile, resolveConfigFile(LoadOptions{}))
}

func TestReadEnv(t *testing.T) { //nolint:paralleltest
	type spec struct {
		Name  string   `env:"HTMLLOC_TEST_NAME"`
		Count int      `env:"HTMLLOC_TEST_COUNT,overwrite"`
		Flags []string `env:"HTMLLOC_TEST_FLAGS"`
		Inner struct {
			On bool `env:"HTMLLOC_TEST_ON"`
		}
	}

	t.Setenv("HTMLLOC_TEST_NAME", "from-env")
	t.Setenv("HTMLLOC_TEST_COUNT", "7")
	t.Setenv("HTMLLOC_TEST_FLAGS", "a,b")
	t.Setenv("HTMLLOC_TEST_ON", "true")

	s := spec{Name: "preset", Count: 1}
	require.NoError(t, readEnv(&s))

	assert.Equal(t, "preset", s.Name, "non-overwrite fields keep existing values")
	assert.Equal(t, 7, s.Count)
	assert.Equal(t, []string{"a", "b"}, s.Flags)
	assert.True(t, s.Inner.On)

	require.ErrorIs(t, readEnv(s), errExpectedPointerToStruct)

	n := 1
	require.ErrorIs(t, readEnv(&n), errExpectedPointerToStruct)

	type bad struct {
		Ratio float64 `env:"HTMLLOC_TEST_RATIO"`
	}

	t.Setenv("HTMLLOC_TEST_RATIO", "0.5")
	require.ErrorIs(t, readEnv(&bad{}), errUnsupportedFieldType)
}

func TestTryLoadDotEnv(t *testing.T) { //nolint:paralleltest
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`# comment
HTMLLOC_DOTENV_A="quoted value"
export HTMLLOC_DOTENV_B='single'
HTMLLOC_DOTENV_C=kept
not a pair
`), 0o600))

	t.Setenv("HTMLLOC_DOTENV_C", "already set")

	t.Cleanup(func() {
		os.Unsetenv("HTMLLOC_DOTENV_A")
		os.Unsetenv("HTMLLOC_DOTENV_B")
	})

	loaded, err := tryLoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, "quoted value", os.Getenv("HTMLLOC_DOTENV_A"))
	assert.Equal(t, "single", os.Getenv("HTMLLOC_DOTENV_B"))
	assert.Equal(t, "already set", os.Getenv("HTMLLOC_DOTENV_C"))

	loaded, err = tryLoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestBuildInfoRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{name: "unknown", info: BuildInfo{}, want: "unknown"},
		{name: "clean", info: BuildInfo{VcsRevision: "0123456789abcdef", VcsTime: "2025-01-02T03:04:05Z"}, want: "2025-01-02-01234567"},
		{name: "dirty short", info: BuildInfo{VcsRevision: "abc", VcsTime: "2025-01-02T03:04:05Z", VcsModified: true}, want: "2025-01-02-abc+dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.info.Revision())
		})
	}
}

func TestBuildInfoString(t *testing.T) {
	t.Parallel()

	info := BuildInfo{
		GoVersion:   "go1.25.5",
		VcsRevision: "0123456789abcdef",
		VcsTime:     "2025-01-02T03:04:05Z",
		Modules: map[string]string{
			"golang.org/x/text":    "v0.30.0",
			"github.com/a-h/templ": "v0.3.960",
			"example.com/ignored":  "v1.0.0",
		},
	}

	assert.Equal(t, "htmlloc "+BuildVersion+" (2025-01-02-01234567) go1.25.5\n"+
		"  github.com/a-h/templ v0.3.960\n"+
		"  golang.org/x/text v0.30.0", info.String())
}

func TestHTMLOptionsAndCatalog(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.SetDefaults()

	opts, err := cfg.HTMLOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	cfg.Cache.Enabled = false
	opts, err = cfg.HTMLOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)

	embedded := fstest.MapFS{
		"en/App.yaml": {Data: []byte("hi: \"Hi {0}\"\n")},
	}

	cat, err := cfg.LoadCatalog(embedded)
	require.NoError(t, err)
	assert.Equal(t, []string{"App"}, cat.BaseNames())
}

func TestPrettyMissingKey(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"sys":     "i18n",
		"message": "Missing i18n translation",
		"locale":  "fr",
		"base":    "App",
		"key":     "hello",
	}

	require.NoError(t, prettyMissingKey(m))
	assert.Equal(t, `[Missing i18n translation] fr/App: "hello"`, m["message"])
	assert.NotContains(t, m, "sys")

	other := map[string]any{"sys": "cli", "message": "x"}
	require.NoError(t, prettyMissingKey(other))
	assert.Equal(t, "x", other["message"])
}
