// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/htmlloc/htmlloc/core/format"
	"codeberg.org/htmlloc/htmlloc/i18n"
)

func (a *app) newFormatCommand() *cobra.Command {
	var (
		encoder string
		af      argFlags
	)

	cmd := &cobra.Command{
		Use:   "format TEMPLATE [ARG...]",
		Short: "Format a composite format template, encoding only the arguments",
		Example: `  htmlloc format "Hello, <b>{0}</b>!" "<World>"
  htmlloc format --typed --locale de "{0:N2} | {1,-6}|" 1234.5 ab
  htmlloc format --trusted 0 "{0} and {1}" "<em>kept</em>" "<escaped>"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encode := a.cfg.Encoding.Encode
			if cmd.Flags().Changed("encoder") {
				e, err := i18n.EncoderByName(encoder)
				if err != nil {
					return err
				}

				encode = e
			}

			tag, err := a.culture()
			if err != nil {
				return err
			}

			values, err := af.convert(args[1:])
			if err != nil {
				return err
			}

			out, err := format.NewPrinter(tag).Format(args[0], values, encode)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().StringVar(&encoder, "encoder", i18n.EncoderHTML,
		"argument encoder: html, sanitize or none (default from config)")
	af.register(cmd)

	return cmd
}
