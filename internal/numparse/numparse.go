// Package numparse turns the numeric tokens found in project sheets into
// canonical quantities: dirhams for amounts, square meters for surfaces.
// Source values may be single numbers or ranges ("10-20", "5 à 7"); ranges
// collapse to their arithmetic mean.
package numparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedNumber is returned when a token does not parse as a number
// after separator normalization. Callers treat it as a field miss.
var ErrMalformedNumber = errors.New("malformed numeric token")

// ErrUnknownUnit is returned for a unit suffix outside the conversion tables.
var ErrUnknownUnit = errors.New("unknown unit")

// Currency multipliers, MAD base units. MDH and its typographic variants
// denote millions; KDHS thousands; DH/DHS are already base units.
var currencyFactors = map[string]float64{
	"MDH":      1_000_000,
	"MDHS":     1_000_000,
	"MN MDHS":  1_000_000,
	"MNS MDHS": 1_000_000,
	"KDH":      1_000,
	"KDHS":     1_000,
	"DH":       1,
	"DHS":      1,
}

// Area multipliers, m² base units.
var areaFactors = map[string]float64{
	"M2": 1,
	"M²": 1,
	"HA": 10_000,
}

var rangeSep = regexp.MustCompile(`\s*(?:-|–|—|à)\s*`)

// ParseNumber parses a single numeric token. Spaces and non-breaking spaces
// are thousands separators, a comma is a decimal point. Any other non-digit
// character makes the token malformed.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrMalformedNumber
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrMalformedNumber
	}
	return v, nil
}

// CollapseRange parses "A-B" or "A à B" into the mean (A+B)/2. A single
// value passes through unchanged.
func CollapseRange(raw string) (float64, error) {
	parts := rangeSep.Split(strings.TrimSpace(raw), 2)
	a, err := ParseNumber(parts[0])
	if err != nil {
		return 0, err
	}
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return a, nil
	}
	b, err := ParseNumber(parts[1])
	if err != nil {
		return 0, err
	}
	return (a + b) / 2, nil
}

// Mean collapses an already-parsed pair. The second value is optional.
func Mean(a float64, b *float64) float64 {
	if b == nil {
		return a
	}
	return (a + *b) / 2
}

// Currency converts a value with a currency unit suffix into MAD.
func Currency(value float64, unit string) (float64, error) {
	f, ok := currencyFactors[canonUnit(unit)]
	if !ok {
		return 0, ErrUnknownUnit
	}
	return value * f, nil
}

// Area converts a value with an area unit suffix into square meters.
func Area(value float64, unit string) (float64, error) {
	f, ok := areaFactors[canonUnit(unit)]
	if !ok {
		return 0, ErrUnknownUnit
	}
	return value * f, nil
}

// CurrencyAmount parses a raw token (single value or range) followed by a
// currency unit into MAD.
func CurrencyAmount(raw, unit string) (float64, error) {
	v, err := CollapseRange(raw)
	if err != nil {
		return 0, err
	}
	return Currency(v, unit)
}

// AreaAmount parses a raw token (single value or range) followed by an area
// unit into square meters.
func AreaAmount(raw, unit string) (float64, error) {
	v, err := CollapseRange(raw)
	if err != nil {
		return 0, err
	}
	return Area(v, unit)
}

// Round2 rounds to two decimals, the precision persisted records carry.
func Round2(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return f
}

func canonUnit(unit string) string {
	u := strings.ToUpper(strings.TrimSpace(unit))
	u = strings.Join(strings.Fields(u), " ")
	return u
}
