// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"context"
	"strings"
	"unicode/utf8"
)

// maxPlaceholderNumber bounds argument indexes and alignment widths.
const maxPlaceholderNumber = 1_000_000

// Placeholder is one parsed {index[,alignment][:spec]} unit.
type Placeholder struct {
	// Index is the position of the argument the placeholder reads.
	Index int
	// Alignment is the minimum field width. Negative values left-justify.
	Alignment int
	// Spec is the format specifier, with "{{" and "}}" already unescaped.
	Spec string
}

// segment is either a literal run or a placeholder.
type segment struct {
	literal     string
	placeholder *Placeholder
	offset      int // byte offset of the opening '{'
}

// Template is a compiled composite format string.
// A Template is immutable and safe for concurrent use.
type Template struct {
	text     string
	segments []segment
}

// Compile parses text into a Template.
//
// Argument indexes are validated when the template is executed, since the
// argument count is unknown here.
func Compile(text string) (*Template, error) {
	t := &Template{text: text}

	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			t.segments = append(t.segments, segment{literal: literal.String()})
			literal.Reset()
		}
	}

	n := len(text)
	for pos := 0; pos < n; {
		switch text[pos] {
		case '{':
			if pos+1 < n && text[pos+1] == '{' {
				literal.WriteByte('{')
				pos += 2

				continue
			}

			flush()

			ph, next, err := parsePlaceholder(text, pos)
			if err != nil {
				return nil, err
			}

			t.segments = append(t.segments, segment{placeholder: ph, offset: pos})
			pos = next
		case '}':
			if pos+1 < n && text[pos+1] == '}' {
				literal.WriteByte('}')
				pos += 2

				continue
			}

			return nil, malformed(text, pos, reasonUnmatchedClose)
		default:
			// Braces are ASCII, so scanning bytes never splits a rune.
			end := strings.IndexAny(text[pos:], "{}")
			if end < 0 {
				literal.WriteString(text[pos:])
				pos = n
			} else {
				literal.WriteString(text[pos : pos+end])
				pos += end
			}
		}
	}

	flush()

	return t, nil
}

// parsePlaceholder parses the placeholder whose '{' is at start and returns it
// with the offset just past its closing '}'.
func parsePlaceholder(text string, start int) (*Placeholder, int, error) {
	n := len(text)
	pos := start + 1
	ph := &Placeholder{}

	index, next, reason := parseNumber(text, pos, reasonMissingIndex)
	if reason != "" {
		return nil, 0, malformed(text, next, reason)
	}

	ph.Index = index
	pos = next

	if pos >= n {
		return nil, 0, malformed(text, pos, reasonUnterminated)
	}

	switch text[pos] {
	case '}', ',', ':':
	default:
		return nil, 0, malformed(text, pos, reasonBadIndexEnd)
	}

	if text[pos] == ',' {
		pos = skipSpaces(text, pos+1)

		leftJustify := false
		if pos < n && text[pos] == '-' {
			leftJustify = true
			pos++
		}

		width, next, reason := parseNumber(text, pos, reasonMissingWidth)
		if reason != "" {
			return nil, 0, malformed(text, next, reason)
		}

		if leftJustify {
			width = -width
		}

		ph.Alignment = width
		pos = skipSpaces(text, next)

		if pos >= n {
			return nil, 0, malformed(text, pos, reasonUnterminated)
		}

		if text[pos] != '}' && text[pos] != ':' {
			return nil, 0, malformed(text, pos, reasonBadWidthEnd)
		}
	}

	if text[pos] == ':' {
		spec, next, err := parseSpec(text, pos+1)
		if err != nil {
			return nil, 0, err
		}

		ph.Spec = spec
		pos = next
	}

	// text[pos] is the closing '}'.
	return ph, pos + 1, nil
}

// parseSpec reads a format specifier up to the closing '}' and returns it with
// the offset of that brace.
func parseSpec(text string, pos int) (string, int, error) {
	var spec strings.Builder

	n := len(text)
	for {
		if pos >= n {
			return "", 0, malformed(text, pos, reasonUnterminated)
		}

		switch c := text[pos]; c {
		case '}':
			if pos+1 < n && text[pos+1] == '}' {
				spec.WriteByte('}')
				pos += 2

				continue
			}

			return spec.String(), pos, nil
		case '{':
			if pos+1 < n && text[pos+1] == '{' {
				spec.WriteByte('{')
				pos += 2

				continue
			}

			return "", 0, malformed(text, pos, reasonOpenInSpec)
		default:
			spec.WriteByte(c)
			pos++
		}
	}
}

// parseNumber reads one or more decimal digits starting at pos.
// On failure it returns a non-empty reason, using missing when no digit is
// present before the end of text.
func parseNumber(text string, pos int, missing string) (int, int, string) {
	start := pos
	value := 0

	for pos < len(text) && text[pos] >= '0' && text[pos] <= '9' {
		value = value*10 + int(text[pos]-'0')
		if value >= maxPlaceholderNumber {
			return 0, pos, reasonNumberTooLarge
		}

		pos++
	}

	if pos == start {
		if pos >= len(text) {
			return 0, pos, reasonUnterminated
		}

		return 0, pos, missing
	}

	return value, pos, ""
}

func skipSpaces(text string, pos int) int {
	for pos < len(text) && text[pos] == ' ' {
		pos++
	}

	return pos
}

// String returns the source text of the template.
func (t *Template) String() string {
	return t.text
}

// Placeholders returns the placeholders of t in template order.
func (t *Template) Placeholders() []Placeholder {
	out := make([]Placeholder, 0, len(t.segments))

	for _, seg := range t.segments {
		if seg.placeholder != nil {
			out = append(out, *seg.placeholder)
		}
	}

	return out
}

// ArgCount returns the minimum number of arguments t needs: one more than the
// highest referenced index, or zero when t has no placeholders.
func (t *Template) ArgCount() int {
	count := 0

	for _, seg := range t.segments {
		if seg.placeholder != nil && seg.placeholder.Index >= count {
			count = seg.placeholder.Index + 1
		}
	}

	return count
}

// Execute formats args into t using p, passing every substituted value that is
// not [Trusted] through encode. A nil p formats with the invariant culture and
// a nil encode leaves values unchanged.
func (t *Template) Execute(p *Printer, args []any, encode Encoder) (string, error) {
	return t.ExecuteContext(context.Background(), p, args, encode)
}

// ExecuteContext is [Template.Execute] with ctx handed to templ.Component
// arguments when they render.
func (t *Template) ExecuteContext(ctx context.Context, p *Printer, args []any, encode Encoder) (string, error) {
	if p == nil {
		p = invariant
	}

	var out strings.Builder

	out.Grow(len(t.text))

	for _, seg := range t.segments {
		ph := seg.placeholder
		if ph == nil {
			out.WriteString(seg.literal)

			continue
		}

		if ph.Index >= len(args) {
			return "", malformed(t.text, seg.offset, reasonIndexOutOfRange)
		}

		value, trusted, err := p.convert(ctx, args[ph.Index], ph.Spec)
		if err != nil {
			return "", err
		}

		value = pad(value, ph.Alignment)

		if !trusted && encode != nil {
			value = encode(value)
		}

		out.WriteString(value)
	}

	return out.String(), nil
}

// pad widens s with spaces to the width given by alignment.
func pad(s string, alignment int) string {
	width, leftJustify := alignment, false
	if width < 0 {
		width, leftJustify = -width, true
	}

	length := utf8.RuneCountInString(s)
	if length >= width {
		return s
	}

	fill := strings.Repeat(" ", width-length)
	if leftJustify {
		return s + fill
	}

	return fill + s
}
