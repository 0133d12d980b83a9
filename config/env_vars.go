// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	maxEnvironmentKeyValueParts = 2
	minQuotedValueLength        = 2
	dotEnvFile                  = ".env"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

// readEnv populates spec, a pointer to a struct, from the environment
// variables named by its `env` struct tags. Nested structs are walked
// recursively.
//
// A tag of the form `env:"NAME,overwrite"` replaces any value already set
// from defaults or YAML; without "overwrite" only zero fields are filled.
func readEnv(spec any) error {
	structValue := reflect.ValueOf(spec)
	if structValue.Kind() != reflect.Pointer {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	if structValue.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got a pointer to %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structType := structValue.Type()

	for fieldIndex := range structValue.NumField() {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			if field.Kind() == reflect.Struct && field.CanAddr() && fieldType.IsExported() {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		parts := strings.Split(tag, ",")
		envVarName := parts[0]
		overwrite := slices.Contains(parts[1:], "overwrite")

		envValue, exists := os.LookupEnv(envVarName)
		if !exists || !field.CanSet() {
			continue
		}

		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("env var %s (%s) for %s: %w", envVarName, envValue, fieldType.Name, err)
		}
	}

	return nil
}

// setFieldValue parses envValue into field according to its kind.
func setFieldValue(field reflect.Value, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(envValue, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}

		field.SetInt(intValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}

		field.SetBool(boolValue)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return errUnsupportedSliceType
		}

		field.Set(reflect.ValueOf(splitList(envValue)))
	default:
		return fmt.Errorf("%w: %s", errUnsupportedFieldType, field.Kind())
	}

	return nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(value string) []string {
	values := strings.Split(value, ",")
	out := make([]string, 0, len(values))

	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// useDotEnv loads environment variables from a .env file, checking
// the current working directory, then the directory of the binary.
//
// This function soft fails if the .env file doesn't exist in either location.
func useDotEnv() error {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn().
			Err(err).
			Msg("Could not get current working directory")
	} else {
		envPath := filepath.Join(cwd, dotEnvFile)
		if loaded, err := tryLoadDotEnv(envPath); err != nil || loaded {
			return err
		}
	}

	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}

	_, err = tryLoadDotEnv(filepath.Join(dir, dotEnvFile))

	return err
}

// tryLoadDotEnv parses the .env file at envPath and sets every variable that
// is not already defined. It reports whether a file was loaded. Missing or
// unreadable files are not errors.
func tryLoadDotEnv(envPath string) (bool, error) {
	// #nosec G304 - envPath is controlled and comes from known safe sources
	data, err := os.ReadFile(envPath)
	if os.IsNotExist(err) {
		log.Debug().
			Str("path", envPath).
			Msg("No .env file found, skipping")

		return false, nil
	}

	if err != nil {
		log.Warn().
			Err(err).
			Str("path", envPath).
			Msg("Could not read .env file")

		return false, nil
	}

	for lineNumber, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		parts := strings.SplitN(line, "=", maxEnvironmentKeyValueParts)
		if len(parts) != maxEnvironmentKeyValueParts {
			log.Warn().
				Str("path", envPath).
				Int("line", lineNumber+1).
				Str("content", line).
				Msg("Invalid format in .env file")

			continue
		}

		key, value := strings.TrimSpace(parts[0]), unquote(strings.TrimSpace(parts[1]))

		if _, defined := os.LookupEnv(key); defined {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			log.Warn().
				Err(err).
				Str("key", key).
				Msg("Could not set environment variable")
		}
	}

	log.Debug().
		Str("path", envPath).
		Msg("Loaded configuration from .env file")

	return true, nil
}

// unquote strips one pair of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= minQuotedValueLength && value[0] == value[len(value)-1] && (value[0] == '"' || value[0] == '\'') {
		return value[1 : len(value)-1]
	}

	return value
}
