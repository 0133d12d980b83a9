// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
genconfig writes example configuration files generated from the
configuration defaults:

	go run ./cmd/genconfig
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/htmlloc/htmlloc/config"
	"codeberg.org/htmlloc/htmlloc/core/audit"
)

const (
	envFileName  = ".env.example"
	yamlFileName = "config.yaml.example"
	filePerm     = 0o644
	dirPerm      = 0o755

	envFileHeader = `# htmlloc configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# htmlloc configuration (via configuration file)
#
# Copy this file to htmlloc.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	resourcesPathComment = `  # -- Directory holding <locale>/<baseName>.po, .po.zst or .yaml files.
  # Leave empty to use the embedded sample resources.`
)

func main() {
	outDir := flag.String("o", "deploy", "output directory")
	flag.Parse()

	audit.SetDefaultLogger()

	if err := os.MkdirAll(*outDir, dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", *outDir).Msg("Failed to create output directory")
	}

	cfg := &config.Config{}
	cfg.SetDefaults()

	writeFile(filepath.Join(*outDir, envFileName), generateEnvFile(cfg))

	yamlContent, err := generateYAMLFile(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	writeFile(filepath.Join(*outDir, yamlFileName), yamlContent)
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write file")
	}

	log.Info().Str("path", path).Msg("Successfully generated file")
}

// generateEnvFile lists every env-tagged field grouped by section.
func generateEnvFile(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch {
			case value.Kind() == reflect.Slice:
				items := make([]string, value.Len())
				for k := range value.Len() {
					items[k] = fmt.Sprint(value.Index(k).Interface())
				}

				fmt.Fprintf(&sb, "# %s=%s\n", envVarName, strings.Join(items, ","))
			case value.Kind() == reflect.String && value.Len() == 0:
				fmt.Fprintf(&sb, "# %s=\n", envVarName)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Configuration file\n# %s=%s\n", config.ConfigFileEnv, config.DefaultConfigFile)

	return sb.String()
}

// generateYAMLFile renders the defaults as a fully commented YAML template.
func generateYAMLFile(cfg *config.Config) (string, error) {
	var yamlContent strings.Builder

	if err := yaml.NewEncoder(&yamlContent, yaml.Indent(2)).Encode(cfg); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "resources:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		if strings.HasPrefix(trimmed, "path:") {
			sb.WriteString(resourcesPathComment + "\n")
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}
