// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package format

import (
	"strconv"
	"strings"
	"time"
)

// standardDateTimePatterns expands single-letter date/time specifiers into
// custom patterns using invariant-culture conventions.
var standardDateTimePatterns = map[string]string{
	"d": "MM/dd/yyyy",
	"D": "dddd, dd MMMM yyyy",
	"f": "dddd, dd MMMM yyyy HH:mm",
	"F": "dddd, dd MMMM yyyy HH:mm:ss",
	"g": "MM/dd/yyyy HH:mm",
	"G": "MM/dd/yyyy HH:mm:ss",
	"m": "MMMM dd",
	"M": "MMMM dd",
	"s": "yyyy'-'MM'-'dd'T'HH':'mm':'ss",
	"t": "HH:mm",
	"T": "HH:mm:ss",
	"y": "yyyy MMMM",
	"Y": "yyyy MMMM",
}

const maxFractionDigits = 9

// formatTime renders t using a standard or custom date/time pattern,
// for example "yyyy-MM-dd" or "dddd, MMMM d".
func formatTime(t time.Time, spec string) string {
	switch spec {
	case "o", "O":
		return t.Format("2006-01-02T15:04:05.0000000Z07:00")
	case "r", "R":
		return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
	case "u":
		return t.UTC().Format("2006-01-02 15:04:05Z")
	}

	if pattern, ok := standardDateTimePatterns[spec]; ok {
		spec = pattern
	}

	pattern := []rune(spec)

	var sb strings.Builder

	for i := 0; i < len(pattern); {
		c := pattern[i]

		switch c {
		case '\'', '"':
			end := i + 1
			for end < len(pattern) && pattern[end] != c {
				end++
			}

			sb.WriteString(string(pattern[i+1 : end]))
			i = end + 1

			continue
		case '\\':
			if i+1 < len(pattern) {
				sb.WriteRune(pattern[i+1])
			}

			i += 2

			continue
		case '%':
			// "%d" selects the one-letter custom specifier rather than the standard one.
			i++

			continue
		}

		run := 1
		for i+run < len(pattern) && pattern[i+run] == c {
			run++
		}

		if s, ok := dateToken(t, c, run); ok {
			sb.WriteString(s)
		} else {
			sb.WriteString(string(pattern[i : i+run]))
		}

		i += run
	}

	return sb.String()
}

// dateToken renders a run of count identical pattern letters.
//
//nolint:cyclop
func dateToken(t time.Time, letter rune, count int) (string, bool) {
	switch letter {
	case 'y':
		switch count {
		case 1:
			return strconv.Itoa(t.Year() % 100), true
		case 2:
			return zeroPad(strconv.Itoa(t.Year()%100), 2), true
		default:
			return zeroPad(strconv.Itoa(t.Year()), count), true
		}
	case 'M':
		switch count {
		case 1:
			return strconv.Itoa(int(t.Month())), true
		case 2:
			return zeroPad(strconv.Itoa(int(t.Month())), 2), true
		case 3:
			return t.Month().String()[:3], true
		default:
			return t.Month().String(), true
		}
	case 'd':
		switch count {
		case 1:
			return strconv.Itoa(t.Day()), true
		case 2:
			return zeroPad(strconv.Itoa(t.Day()), 2), true
		case 3:
			return t.Weekday().String()[:3], true
		default:
			return t.Weekday().String(), true
		}
	case 'H':
		return paddedField(t.Hour(), count), true
	case 'h':
		hour := t.Hour() % 12
		if hour == 0 {
			hour = 12
		}

		return paddedField(hour, count), true
	case 'm':
		return paddedField(t.Minute(), count), true
	case 's':
		return paddedField(t.Second(), count), true
	case 'f', 'F':
		return fraction(t, letter, count), true
	case 't':
		marker := "AM"
		if t.Hour() >= 12 {
			marker = "PM"
		}

		if count == 1 {
			return marker[:1], true
		}

		return marker, true
	case 'z':
		return offset(t, count), true
	case 'K':
		if t.Location() == time.UTC {
			return "Z", true
		}

		return offset(t, 3), true
	}

	return "", false
}

func paddedField(v, count int) string {
	if count == 1 {
		return strconv.Itoa(v)
	}

	return zeroPad(strconv.Itoa(v), 2)
}

// fraction renders count digits of the second fraction. The 'F' form drops
// trailing zeros.
func fraction(t time.Time, letter rune, count int) string {
	count = min(count, maxFractionDigits)

	digits := zeroPad(strconv.Itoa(t.Nanosecond()), maxFractionDigits)[:count]
	if letter == 'F' {
		digits = strings.TrimRight(digits, "0")
	}

	return digits
}

func offset(t time.Time, count int) string {
	_, seconds := t.Zone()

	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	hours, minutes := seconds/3600, (seconds%3600)/60

	switch count {
	case 1:
		return sign + strconv.Itoa(hours)
	case 2:
		return sign + zeroPad(strconv.Itoa(hours), 2)
	default:
		return sign + zeroPad(strconv.Itoa(hours), 2) + ":" + zeroPad(strconv.Itoa(minutes), 2)
	}
}
