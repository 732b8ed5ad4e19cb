// Package normalizer converts raw heterogeneous lead input (free-text
// budgets, source labels, padded contact fields) into canonical values.
// Everything here is pure; no I/O.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/raviminds/estate-crm/internal/entity"
)

var (
	rangeSplitRe = regexp.MustCompile(`-|–|\bto\b`)
	nonNumericRe = regexp.MustCompile(`[^0-9.]`)
)

// ParseBudgetRange parses budget strings like "₹12,00,000", "50 lakh - 1 cr"
// or "1.5cr to 2cr" into absolute rupee amounts. A single value fills both
// ends; unparseable or empty input yields (nil, nil). An inverted range is
// swapped so min <= max always holds when both are set.
func ParseBudgetRange(input string) (min, max *float64) {
	cleaned := strings.ToLower(strings.TrimSpace(
		strings.NewReplacer("₹", "", ",", "").Replace(input),
	))
	if cleaned == "" {
		return nil, nil
	}

	parts := splitRange(cleaned)
	if len(parts) == 2 {
		lo, hi := toAmount(parts[0]), toAmount(parts[1])
		if lo > hi {
			lo, hi = hi, lo
		}
		return &lo, &hi
	}

	n := toAmount(cleaned)
	if n == 0 {
		return nil, nil
	}
	return &n, &n
}

func splitRange(s string) []string {
	var parts []string
	for _, p := range rangeSplitRe.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// toAmount parses one side of a range, scaling Indian units:
// "50 lakh" -> 5_000_000, "1 cr" -> 10_000_000.
func toAmount(s string) float64 {
	n, err := strconv.ParseFloat(nonNumericRe.ReplaceAllString(s, ""), 64)
	if err != nil {
		n = 0
	}
	switch {
	case strings.Contains(s, "lakh"):
		return n * 100_000
	case strings.Contains(s, "cr"): // matches "cr" and "crore"
		return n * 10_000_000
	default:
		return n
	}
}

// NormalizeSource maps a free-text source label onto the canonical source
// vocabulary. Substring match, case-insensitive, in priority order; anything
// unrecognized is treated as manual entry.
func NormalizeSource(raw string) string {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "facebook"), strings.Contains(s, "meta"):
		return entity.SourceFacebook
	case strings.Contains(s, "google"):
		return entity.SourceGoogle
	case strings.Contains(s, "walk"):
		return entity.SourceWalkIn
	case strings.Contains(s, "agent"), strings.Contains(s, "broker"):
		return entity.SourceAgent
	case strings.Contains(s, "csv"):
		return entity.SourceCSV
	default:
		return entity.SourceManual
	}
}

// NormalizePhone trims surrounding whitespace. Digit layout is left alone:
// the uniqueness index compares phones verbatim.
func NormalizePhone(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeEmail trims and lowercases.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
