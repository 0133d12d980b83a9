// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package format implements composite format strings for localized HTML.

A template mixes literal text with placeholders of the form

	{index[,alignment][:spec]}

where index selects a positional argument, alignment pads the rendered value
to a minimum width (negative values left-justify), and spec is handed to the
argument's own formatting routine. Literal braces are written as "{{" and "}}".

Only substituted values pass through the caller's [Encoder]; literal template
text is copied verbatim, so translators may embed markup in resource strings
while interpolated user data stays escaped:

	out, err := format.Format("Hello <b>{0}</b>", []any{name}, templ.EscapeString)

Values implementing [Trusted] (for example [HTML]) are already safe markup and
bypass the encoder.

# Culture

[Format] uses invariant formatting. Use [NewPrinter] to format numbers with the
separators of a specific language:

	format.NewPrinter(language.French).Format("{0:N2}", []any{1234.5}, nil)

Date and time patterns always use English month and day names.

# Errors

Any grammar violation or out-of-range argument index yields a
[*MalformedTemplateError], which matches [ErrMalformedTemplate] under
[errors.Is]. A failed call never returns partial output.
*/
package format
