// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("resource check failed")

func (a *app) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every resource string",
		Long: `check compiles every resource string as a composite format template and
compares each translation's argument count against the base locale.
It exits with a non-zero status when any issue is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			issues := cat.Check()
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue)
			}

			if len(issues) > 0 {
				return fmt.Errorf("%w: %d issue(s)", errCheckFailed, len(issues))
			}

			a.log.Info().
				Int("locales", len(cat.Languages())).
				Int("baseNames", len(cat.BaseNames())).
				Msg("All resource strings are valid")

			return nil
		},
	}
}
