// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// setupAudit configures the global logger from the log section.
func (cfg *Config) setupAudit() {
	switch cfg.Log.Level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
	}

	writers := []io.Writer{}

	if len(cfg.Log.Outputs) == 0 {
		writers = append(writers, ConsoleWriter(os.Stderr))
	} else {
		for _, output := range cfg.Log.Outputs {
			var w io.Writer

			switch output {
			case "/dev/stdout":
				w = ConsoleWriter(os.Stdout)
			case "/dev/stderr":
				w = ConsoleWriter(os.Stderr)
			default:
				file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

					continue
				}

				if cfg.Log.Format == "json" {
					w = file
				} else {
					w = ConsoleWriter(file)
				}
			}

			writers = append(writers, w)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isTerminal(f)

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}

	if !noColor {
		w.FormatPrepare = prettyMissingKey
	}

	return w
}

// prettyMissingKey condenses missing translation warnings into one line.
func prettyMissingKey(m map[string]any) error {
	if sys, ok := m["sys"]; !ok || sys != "i18n" {
		return nil
	}

	key, ok := m["key"]
	if !ok {
		return nil
	}

	m["message"] = fmt.Sprintf("[%s] %s/%s: %q", m["message"], m["locale"], m["base"], key)

	delete(m, "sys")
	delete(m, "locale")
	delete(m, "base")
	delete(m, "key")

	return nil
}
