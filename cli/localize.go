// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/htmlloc/htmlloc/i18n"
)

func (a *app) newHTMLCommand() *cobra.Command {
	var (
		baseName string
		af       argFlags
	)

	cmd := &cobra.Command{
		Use:   "html KEY [ARG...]",
		Short: "Look up a resource string and format it as HTML",
		Example: `  htmlloc html --base Shared "Welcome, {0}!" "<Léa>"
  htmlloc html --base Shared --locale fr --typed "{0:N0} new messages" 1234`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			strs, err := cat.Create(baseName, a.cfg.Resources.ApplicationName)
			if err != nil {
				return err
			}

			tag, err := a.culture()
			if err != nil {
				return err
			}

			values, err := af.convert(args[1:])
			if err != nil {
				return err
			}

			loc := i18n.NewHTMLLocalizer(strs, a.cfg.Encoding.Encode, a.htmlOpts...).
				ForContext(i18n.WithTag(cmd.Context(), tag))

			return a.writeHTML(cmd, loc, args[0], values)
		},
	}

	cmd.Flags().StringVar(&baseName, "base", "", "resource base name, e.g. Shared or Views.Home.Index")
	_ = cmd.MarkFlagRequired("base")
	af.register(cmd)

	return cmd
}

func (a *app) newViewCommand() *cobra.Command {
	var af argFlags

	cmd := &cobra.Command{
		Use:   "view VIEWPATH KEY [ARG...]",
		Short: "Look up a resource string for a view and format it as HTML",
		Long: `view derives the resource base name from the view path: path separators
become dots and the application name is prefixed. With the default
application name "App", "Views/Home/Index" reads resources from
"Views.Home.Index".`,
		Example: `  htmlloc view Views/Home/Index title
  htmlloc view --locale fr Views/Home/Index greeting "<Léa>"`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			tag, err := a.culture()
			if err != nil {
				return err
			}

			values, err := af.convert(args[2:])
			if err != nil {
				return err
			}

			v := i18n.NewViewLocalizer(cat, a.cfg.Encoding.Encode, a.cfg.Resources.ApplicationName, a.htmlOpts...)
			if err := v.Contextualize(args[0]); err != nil {
				return err
			}

			a.log.Debug().
				Str("view", args[0]).
				Str("baseName", v.BaseName()).
				Msg("Contextualized view localizer")

			loc, err := v.WithCulture(tag)
			if err != nil {
				return err
			}

			return a.writeHTML(cmd, loc, args[1], values)
		},
	}

	af.register(cmd)

	return cmd
}

func (a *app) writeHTML(cmd *cobra.Command, loc i18n.Localizer, key string, args []any) error {
	h, err := loc.HTML(key, args...)
	if err != nil {
		return err
	}

	if h.ResourceNotFound {
		a.log.Warn().
			Str("key", key).
			Str("searched", h.SearchedLocation).
			Msg("Resource not found, using key")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), h.Value)

	return err
}
