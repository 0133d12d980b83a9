// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
htmlloc formats localized resource strings as HTML from the command line.
*/
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/htmlloc/htmlloc/assets"
	"codeberg.org/htmlloc/htmlloc/cli"
	"codeberg.org/htmlloc/htmlloc/core/audit"
)

// embeddedContent holds the sample resource catalogues.
//
//go:embed all:resources
var embeddedContent embed.FS

// init assigns the embedded filesystem to the exported assets.FS variable.
//
//nolint:gochecknoinits // this is a good use of init()
func init() {
	assets.FS = embeddedContent
}

// main is the entry point of the application.
func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("htmlloc failed")
	}
}

// run executes the command line with args until completion or a shutdown signal.
func run(args []string) error {
	audit.SetDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := assets.Resources()
	if err != nil {
		return err
	}

	if err := cli.Execute(ctx, resources, args); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
