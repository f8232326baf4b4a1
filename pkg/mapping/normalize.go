package mapping

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/firmdash/firmdash-sync/pkg/jsonutil"
)

// dateLayouts are tried in order when parsing loose date values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// DateOnly parses a loose date value and truncates it to its calendar date
// in UTC. Returns nil when the value is absent or unparseable.
func DateOnly(v any) *time.Time {
	s := strings.TrimSpace(jsonutil.FlexibleString(v))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

// FirstDate resolves candidates like FirstString and normalizes the winner
// to a date-only value.
func FirstDate(raw Raw, candidates ...string) *time.Time {
	for _, c := range candidates {
		if d := DateOnly(Lookup(raw, c)); d != nil {
			return d
		}
	}
	return nil
}

// NormalizeEmail lower-cases and trims an email for identity comparison.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// yearPattern matches a plausible four-digit year embedded in free text.
var yearPattern = regexp.MustCompile(`\b(19[9][0-9]|20[0-9][0-9])\b`)

// YearFromText extracts a four-digit year from free text, accepting only
// 1990-2099. Returns nil when no year is embedded.
func YearFromText(s string) *int {
	match := yearPattern.FindString(s)
	if match == "" {
		return nil
	}
	y, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &y
}

// TaxYear derives a work item's tax year. This is a best-effort heuristic,
// not a guaranteed-correct derivation: the tiers are (1) an explicit year
// field, (2) the year of a fiscal/period end date, (3) a four-digit year
// matched out of a free-text title, else nil. Downstream consumers must
// treat nil as "unknown", not zero.
func TaxYear(raw Raw, yearFields, dateFields, titleFields []string) *int {
	for _, f := range yearFields {
		if v := Lookup(raw, f); v != nil {
			if n, ok := jsonutil.FlexibleFloat(v); ok {
				y := int(n)
				if y >= 1990 && y <= 2099 {
					return &y
				}
			}
		}
	}

	if d := FirstDate(raw, dateFields...); d != nil {
		y := d.Year()
		return &y
	}

	for _, f := range titleFields {
		if y := YearFromText(FirstString(raw, f)); y != nil {
			return y
		}
	}

	return nil
}
