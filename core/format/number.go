// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/number"
)

const (
	// maxNumericPrecision bounds the digits after a numeric specifier letter.
	maxNumericPrecision = 99

	defaultFixedPrecision    = 2
	defaultExponentPrecision = 6
)

// formatNumber applies a standard numeric specifier such as "N2" or "X8".
// It reports false when arg is not a number or spec is not understood.
func (p *Printer) formatNumber(arg any, spec string) (string, bool) {
	kind := spec[0]
	precision := -1

	if len(spec) > 1 {
		n, err := strconv.Atoi(spec[1:])
		if err != nil || n < 0 || n > maxNumericPrecision {
			return "", false
		}

		precision = n
	}

	switch v := arg.(type) {
	case int:
		return p.formatSigned(int64(v), kind, precision)
	case int8:
		return p.formatSigned(int64(v), kind, precision)
	case int16:
		return p.formatSigned(int64(v), kind, precision)
	case int32:
		return p.formatSigned(int64(v), kind, precision)
	case int64:
		return p.formatSigned(v, kind, precision)
	case uint:
		return p.formatUnsigned(uint64(v), kind, precision)
	case uint8:
		return p.formatUnsigned(uint64(v), kind, precision)
	case uint16:
		return p.formatUnsigned(uint64(v), kind, precision)
	case uint32:
		return p.formatUnsigned(uint64(v), kind, precision)
	case uint64:
		return p.formatUnsigned(v, kind, precision)
	case float32:
		return p.formatFloat(float64(v), kind, precision)
	case float64:
		return p.formatFloat(v, kind, precision)
	}

	return "", false
}

func (p *Printer) formatSigned(v int64, kind byte, precision int) (string, bool) {
	switch kind {
	case 'D', 'd':
		magnitude := uint64(v)
		if v < 0 {
			magnitude = -magnitude
		}

		digits := zeroPad(strconv.FormatUint(magnitude, 10), precision)
		if v < 0 {
			return "-" + digits, true
		}

		return digits, true
	case 'X', 'x':
		// Negative values print as 64-bit two's complement.
		return formatHex(uint64(v), kind, precision), true
	}

	return p.formatInteger(v, new(big.Float).SetInt64(v), kind, precision)
}

func (p *Printer) formatUnsigned(v uint64, kind byte, precision int) (string, bool) {
	switch kind {
	case 'D', 'd':
		return zeroPad(strconv.FormatUint(v, 10), precision), true
	case 'X', 'x':
		return formatHex(v, kind, precision), true
	}

	return p.formatInteger(v, new(big.Float).SetUint64(v), kind, precision)
}

// formatInteger handles the floating-point style specifiers for an integer v
// without going through float64, so no digits are lost above 2^53.
// exact holds the same value as v.
func (p *Printer) formatInteger(v any, exact *big.Float, kind byte, precision int) (string, bool) {
	switch kind {
	case 'E', 'e':
		return exact.Text(kind, orDefault(precision, defaultExponentPrecision)), true
	case 'G', 'g':
		if precision <= 0 {
			return exact.Text('f', 0), true
		}

		return exact.Text('g', precision), true
	}

	return p.formatDecimal(v, kind, precision)
}

func (p *Printer) formatFloat(v float64, kind byte, precision int) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64), true
	}

	switch kind {
	case 'E', 'e':
		return strconv.FormatFloat(v, kind, orDefault(precision, defaultExponentPrecision), 64), true
	case 'G', 'g':
		if precision == 0 {
			precision = -1
		}

		return strconv.FormatFloat(v, 'g', precision, 64), true
	}

	return p.formatDecimal(v, kind, precision)
}

// formatDecimal applies the culture-aware F, N and P specifiers to v, which
// is an int64, uint64 or float64.
func (p *Printer) formatDecimal(v any, kind byte, precision int) (string, bool) {
	digits := orDefault(precision, defaultFixedPrecision)

	switch kind {
	case 'F', 'f':
		return p.numbers.Sprint(number.Decimal(v,
			number.NoSeparator(),
			number.MinFractionDigits(digits),
			number.MaxFractionDigits(digits),
		)), true
	case 'N', 'n':
		return p.numbers.Sprint(number.Decimal(v,
			number.MinFractionDigits(digits),
			number.MaxFractionDigits(digits),
		)), true
	case 'P', 'p':
		return p.numbers.Sprint(number.Percent(v,
			number.MinFractionDigits(digits),
			number.MaxFractionDigits(digits),
		)), true
	}

	return "", false
}

func formatHex(v uint64, kind byte, precision int) string {
	s := strconv.FormatUint(v, 16)
	if kind == 'X' {
		s = strings.ToUpper(s)
	}

	return zeroPad(s, precision)
}

func zeroPad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}

	return strings.Repeat("0", width-len(digits)) + digits
}

func orDefault(precision, fallback int) int {
	if precision < 0 {
		return fallback
	}

	return precision
}
