// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"errors"
	"fmt"
)

// ErrMalformedTemplate is matched by every [*MalformedTemplateError].
var ErrMalformedTemplate = errors.New("malformed format template")

// Reasons reported in [MalformedTemplateError.Reason].
const (
	reasonUnmatchedClose  = "unmatched '}'"
	reasonUnterminated    = "unterminated placeholder"
	reasonMissingIndex    = "placeholder index must be a decimal number"
	reasonBadIndexEnd     = "placeholder index must be followed by '}', ',' or ':'"
	reasonMissingWidth    = "alignment must be a decimal number"
	reasonBadWidthEnd     = "alignment must be followed by '}' or ':'"
	reasonNumberTooLarge  = "number in placeholder is too large"
	reasonOpenInSpec      = "unescaped '{' in format specifier"
	reasonIndexOutOfRange = "argument index out of range"
)

// MalformedTemplateError reports a template that cannot be formatted.
type MalformedTemplateError struct {
	// Template is the full template text.
	Template string
	// Offset is the byte offset in Template where the problem was detected.
	Offset int
	// Reason describes the violation.
	Reason string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrMalformedTemplate, e.Reason, e.Offset, e.Template)
}

// Is makes errors.Is(err, ErrMalformedTemplate) hold.
func (e *MalformedTemplateError) Is(target error) bool {
	return target == ErrMalformedTemplate
}

func malformed(template string, offset int, reason string) *MalformedTemplateError {
	return &MalformedTemplateError{Template: template, Offset: offset, Reason: reason}
}
