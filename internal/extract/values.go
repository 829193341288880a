package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// absentMarkers are values the source documents use for "not reported".
// They parse to absent, never to zero.
var absentMarkers = map[string]bool{
	"na":   true,
	"n/a":  true,
	"n.a.": true,
	"-":    true,
	"--":   true,
	"nil":  true,
}

// dateLayouts are the day-month-year spellings seen across factsheet
// template versions.
var dateLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"Jan 02, 2006",
	"January 02, 2006",
	"January 2, 2006",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"02-Jan-2006",
	"02-Jan-06",
}

// outputDateLayout is the uniform rendering used in CSV output.
const outputDateLayout = "02 Jan 2006"

// NormalizeSpace collapses runs of whitespace (including newlines left by
// PDF text reflow) into single spaces and trims the ends.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// ParseNumber parses a numeric value as written in factsheets. It tolerates
// thousands separators, percent signs, parenthesised negatives ("(2.3)" is
// -2.3) and reflow whitespace. Explicit absence markers and garbled values
// both return nil.
func ParseNumber(raw string) *float64 {
	s := NormalizeSpace(raw)
	if s == "" || absentMarkers[strings.ToLower(s)] {
		return nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.ReplaceAll(s, ",", "")
	// Reflow can split a value across lines; drop interior spaces too
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || absentMarkers[strings.ToLower(s)] {
		return nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if negative {
		value = -value
	}
	return &value
}

// ParseCount parses a whole number such as a constituent count. Values with
// a fractional part are rejected as garbled.
func ParseCount(raw string) *int {
	value := ParseNumber(raw)
	if value == nil {
		return nil
	}
	n := int(*value)
	if float64(n) != *value {
		return nil
	}
	return &n
}

// ParseDate parses a date in any accepted layout and renders it uniformly.
// Unparseable dates return "" (absent).
func ParseDate(raw string) string {
	s := NormalizeSpace(raw)
	s = strings.TrimRight(s, ".")
	if s == "" || absentMarkers[strings.ToLower(s)] {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(outputDateLayout)
		}
	}
	return ""
}

// isNumericToken reports whether the string parses as a plain number once
// common decorations are stripped. Used to tell value cells from labels.
func isNumericToken(s string) bool {
	return ParseNumber(s) != nil
}
