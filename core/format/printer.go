// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Encoder escapes a substituted value for the output medium.
// It is called once per substituted value and never on literal text.
type Encoder func(string) string

// Printer formats templates for one language.
// A Printer is safe for concurrent use.
type Printer struct {
	tag     language.Tag
	numbers *message.Printer
}

// invariant formats numbers with root-locale separators.
var invariant = NewPrinter(language.Und)

// NewPrinter returns a Printer whose numeric specifiers use the
// conventions of tag.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{
		tag:     tag,
		numbers: message.NewPrinter(tag),
	}
}

// Tag returns the language the Printer formats for.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Format compiles template and executes it with args. See [Template.Execute].
func (p *Printer) Format(template string, args []any, encode Encoder) (string, error) {
	t, err := Compile(template)
	if err != nil {
		return "", err
	}

	return t.Execute(p, args, encode)
}

// Format formats template with args using the invariant culture, passing each
// substituted value through encode.
func Format(template string, args []any, encode Encoder) (string, error) {
	return invariant.Format(template, args, encode)
}
