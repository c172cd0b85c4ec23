package dataset

import (
	"strconv"
	"strings"
)

// ParseNumber converts a heterogeneous numeric cell into a float64.
//
// The accepted micro-grammar is: optional whitespace, digits with an
// optional decimal point, comma thousand-separators, and an optional
// case-insensitive K (×1e3) or M (×1e6) suffix. Anything else is
// reported as missing (ok == false), never as an error: malformed cells
// degrade to null so a single bad value cannot fail the pipeline.
func ParseNumber(raw string) (value float64, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch {
	case strings.Contains(s, "k"):
		s = strings.Replace(s, "k", "", 1)
		multiplier = 1_000
	case strings.Contains(s, "m"):
		s = strings.Replace(s, "m", "", 1)
		multiplier = 1_000_000
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v * multiplier, true
}

// ParseCell converts a raw cell into an optional value: nil when the
// cell is empty or malformed.
func ParseCell(raw string) *float64 {
	v, ok := ParseNumber(raw)
	if !ok {
		return nil
	}
	return &v
}
