// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
)

// UserError is an error whose message has been localized for display.
type UserError struct {
	Key     string
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError resolves key with args using the localizer in ctx.
// When no localizer is present or formatting fails, the key is used as the message.
func NewUserError(ctx context.Context, key string, args ...any) *UserError {
	msg := key

	if l, ok := LocalizerFrom(ctx); ok {
		if ls, err := l.Get(key, args...); err == nil {
			msg = ls.Value
		}
	}

	return &UserError{Key: key, Message: msg}
}
