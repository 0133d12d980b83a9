// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/htmlloc/htmlloc/core/format"
)

// argFlags controls how positional command line values become format arguments.
type argFlags struct {
	typed   bool
	trusted []int
}

func (f *argFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.typed, "typed", false,
		"parse arguments that look like integers, decimals or RFC 3339 times")
	cmd.Flags().IntSliceVar(&f.trusted, "trusted", nil,
		"argument indexes whose values are trusted HTML and must not be encoded")
}

// convert turns raw command line values into format arguments.
func (f *argFlags) convert(raw []string) ([]any, error) {
	for _, i := range f.trusted {
		if i < 0 || i >= len(raw) {
			return nil, fmt.Errorf("--trusted index %d out of range (have %d argument(s))", i, len(raw))
		}
	}

	args := make([]any, len(raw))

	for i, s := range raw {
		switch {
		case slices.Contains(f.trusted, i):
			args[i] = format.HTML(s)
		case f.typed:
			args[i] = parseTyped(s)
		default:
			args[i] = s
		}
	}

	return args, nil
}

// parseTyped returns s as an int64, float64 or time.Time when it parses as
// one, and as a string otherwise.
func parseTyped(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return x
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}

	return s
}
