// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
extract scans Go packages for resource keys and writes a gettext template:

	go run ./cmd/extract -o resources/messages.pot ./...

A key is recorded when a constant string is
  - converted to i18n.MsgKey, or used where an i18n.MsgKey is expected,
  - passed as the key to Get or HTML on an i18n localizer,
  - passed as the key to i18n.NewUserError.
*/
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/htmlloc/htmlloc/config"
	"codeberg.org/htmlloc/htmlloc/core/audit"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

func main() {
	outPath := flag.String("o", "messages.pot", "output file")
	flag.Parse()

	audit.SetDefaultLogger()

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax | packages.NeedModule}, patterns...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, moduleRoot(pkgs, wd), findI18nPkgPaths(pkgs))

	if err := os.MkdirAll(filepath.Dir(*outPath), dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to create output directory")
	}

	if err := os.WriteFile(*outPath, []byte(renderPOT(refs, templateVersion(config.ReadBuildInfo()))), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write output file")
	}

	log.Info().
		Int("keys", len(refs)).
		Str("path", *outPath).
		Msg("Wrote message template")
}

// moduleRoot returns the directory of the main module the patterns were
// loaded from, so references are relative to it. It falls back to wd.
func moduleRoot(pkgs []*packages.Package, wd string) string {
	for _, p := range pkgs {
		if p.Module != nil && p.Module.Main && p.Module.Dir != "" {
			return p.Module.Dir
		}
	}

	return wd
}

// templateVersion is the Project-Id-Version written to the template header.
func templateVersion(b config.BuildInfo) string {
	if b.VcsRevision == "" {
		return config.BuildVersion
	}

	return config.BuildVersion + "+" + b.Revision()
}
