// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

func (a *app) newListCommand() *cobra.Command {
	var (
		baseName  string
		ancestors bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every string of a resource set",
		Example: `  htmlloc list --base Shared --locale fr-CA
  htmlloc list --base Shared --locale fr-CA --ancestors --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			all := strs.WithCulture(tag).AllStrings(ancestors)

			switch output {
			case outputYAML:
				values := yaml.MapSlice{}
				for _, s := range all {
					values = append(values, yaml.MapItem{Key: s.Name, Value: s.Value})
				}

				out, err := yaml.Marshal(values)
				if err != nil {
					return fmt.Errorf("failed to marshal strings: %w", err)
				}

				_, err = cmd.OutOrStdout().Write(out)

				return err
			case outputText:
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
				for _, s := range all {
					fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Value)
				}

				return tw.Flush()
			default:
				return fmt.Errorf("unknown --output %q (expected %q or %q)", output, outputText, outputYAML)
			}
		},
	}

	cmd.Flags().StringVar(&baseName, "base", "", "resource base name")
	_ = cmd.MarkFlagRequired("base")
	cmd.Flags().BoolVar(&ancestors, "ancestors", false, "include strings inherited from parent cultures and the base locale")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or yaml")

	return cmd
}

func (a *app) newLocalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List loaded locales and resource sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			for _, tag := range cat.Languages() {
				marker := ""
				if tag == cat.Base() {
					marker = " (base)"
				}

				fmt.Fprintf(w, "%s%s\n", tag, marker)
			}

			fmt.Fprintln(w)

			for _, name := range cat.BaseNames() {
				fmt.Fprintln(w, name)
			}

			return nil
		},
	}
}
