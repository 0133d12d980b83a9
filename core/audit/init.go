// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package audit provides the process-wide logging defaults.
*/
package audit

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger provides an ok log output format on startup if no config is set.
func SetDefaultLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.DateTime,
	})
}

// For returns a child of the global logger tagged with the subsystem name.
// Call it after configuration has been applied so the configured outputs are used.
func For(sys string) zerolog.Logger {
	return log.With().Str("sys", sys).Logger()
}
