// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/zstd"
	"github.com/leonelquinteros/gotext"
)

// resourceSet is a flat key to string mapping for one base name and locale.
type resourceSet interface {
	lookup(key string) (string, bool)
	keys() []string
}

type resourceKind int

const (
	kindPO resourceKind = iota
	kindPOZstd
	kindYAML
)

// resourceSuffixes is ordered so that ".po.zst" is tried before ".po".
var resourceSuffixes = []struct {
	suffix string
	kind   resourceKind
}{
	{".po.zst", kindPOZstd},
	{".po", kindPO},
	{".yaml", kindYAML},
	{".yml", kindYAML},
}

// splitResourceName splits "Views.Home.Index.po" into its base name and kind.
func splitResourceName(name string) (string, resourceKind, bool) {
	for _, s := range resourceSuffixes {
		if base, ok := strings.CutSuffix(name, s.suffix); ok && base != "" {
			return base, s.kind, true
		}
	}

	return "", 0, false
}

// parseResourceSet builds a resource set from raw file contents.
func parseResourceSet(kind resourceKind, data []byte, dec *zstd.Decoder) (resourceSet, error) {
	switch kind {
	case kindPOZstd:
		raw, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress catalog: %w", err)
		}

		return newPOSet(raw), nil
	case kindPO:
		return newPOSet(data), nil
	case kindYAML:
		return newYAMLSet(data)
	default:
		return nil, fmt.Errorf("unknown resource kind %d", kind)
	}
}

// poSet serves lookups from a parsed gettext catalogue. Keys are msgids;
// entries with an empty msgstr are treated as missing.
type poSet struct {
	translations map[string]string
}

func newPOSet(data []byte) *poSet {
	po := gotext.NewPo()
	po.Parse(data)

	all := po.GetDomain().GetTranslations()

	translations := make(map[string]string, len(all))
	for id, tr := range all {
		if id != "" && tr.IsTranslated() {
			translations[id] = tr.Get()
		}
	}

	return &poSet{translations: translations}
}

func (s *poSet) lookup(key string) (string, bool) {
	v, ok := s.translations[key]

	return v, ok
}

func (s *poSet) keys() []string {
	out := make([]string, 0, len(s.translations))
	for id := range s.translations {
		out = append(out, id)
	}

	sort.Strings(out)

	return out
}

// yamlSet serves lookups from a flat YAML mapping of key to string.
type yamlSet struct {
	values map[string]string
}

func newYAMLSet(data []byte) (*yamlSet, error) {
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
	}

	return &yamlSet{values: values}, nil
}

func (s *yamlSet) lookup(key string) (string, bool) {
	v, ok := s.values[key]

	return v, ok
}

func (s *yamlSet) keys() []string {
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
