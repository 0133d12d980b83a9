// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package cli implements the htmlloc command line interface.

Configuration is loaded with the following precedence (highest first):
 1. --config flag
 2. HTMLLOC_CONFIGFILE environment variable
 3. ./htmlloc.yaml (or ./htmlloc.yml)

Individual settings can be overridden with HTMLLOC_* environment variables.
*/
package cli

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"codeberg.org/htmlloc/htmlloc/config"
	"codeberg.org/htmlloc/htmlloc/core/audit"
	"codeberg.org/htmlloc/htmlloc/i18n"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	embedded   fs.FS
	configFile string
	locale     string

	cfg      config.Config
	log      zerolog.Logger
	catalog  *i18n.Catalog
	htmlOpts []i18n.HTMLOption
}

// NewRootCommand returns the htmlloc command tree. embedded holds the
// resources used when resources.path is not configured.
func NewRootCommand(embedded fs.FS) *cobra.Command {
	a := &app{embedded: embedded, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "htmlloc",
		Short: "HTML-safe localization of resource strings",
		Long: `htmlloc formats composite format templates and localized resource strings
as HTML. Only interpolated arguments are encoded; markup in templates and
resource strings is kept as written.

Examples:
  htmlloc format "Hello, <b>{0}</b>!" "<World>"
  htmlloc html --base Shared --locale fr "Welcome, {0}!" Léa
  htmlloc view Views/Home/Index title
  htmlloc list --base Shared --locale fr-CA --ancestors
  htmlloc check`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", config.DefaultConfigFile,
		"config file (can also use "+config.ConfigFileEnv+" env var)")
	root.PersistentFlags().StringVar(&a.locale, "locale", "",
		"culture for lookups and number/date formatting (default: base locale)")

	root.AddCommand(
		a.newFormatCommand(),
		a.newHTMLCommand(),
		a.newViewCommand(),
		a.newListCommand(),
		a.newLocalesCommand(),
		a.newCheckCommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, embedded fs.FS, args []string) error {
	root := NewRootCommand(embedded)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	opts := config.LoadOptions{
		ConfigFile:    a.configFile,
		ConfigFileSet: cmd.Flags().Changed("config"),
	}

	if err := a.cfg.LoadConfig(opts); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a.log = audit.For("cli")

	return nil
}

// loadCatalog loads resources on first use.
func (a *app) loadCatalog() (*i18n.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}

	cat, err := a.cfg.LoadCatalog(a.embedded)
	if err != nil {
		return nil, err
	}

	opts, err := a.cfg.HTMLOptions()
	if err != nil {
		return nil, err
	}

	a.log.Debug().
		Int("locales", len(cat.Languages())).
		Int("baseNames", len(cat.BaseNames())).
		Msg("Initialized resource catalog")

	a.catalog = cat
	a.htmlOpts = opts

	return cat, nil
}

// culture returns the --locale tag, or the configured base locale.
func (a *app) culture() (language.Tag, error) {
	if a.locale == "" {
		return a.cfg.Resources.BaseLocaleTag, nil
	}

	tag, err := i18n.ParseLocale(a.locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid --locale %q: %w", a.locale, err)
	}

	return tag, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ReadBuildInfo())
		},
	}
}
