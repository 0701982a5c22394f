package phone

import (
	"regexp"
	"strings"
)

// Country describes how a phone number is formatted and validated for one
// supported country. The set is fixed; profiles are never mutated.
type Country struct {
	Code        string
	Prefix      string // calling prefix, e.g. "+7"
	GroupSizes  []int  // local digit grouping for display
	Pattern     *regexp.Regexp
	Placeholder string
}

var countries = []Country{
	{
		Code:        "RU",
		Prefix:      "+7",
		GroupSizes:  []int{3, 3, 2, 2},
		Pattern:     regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`),
		Placeholder: "+7 (999) 123-45-67",
	},
	{
		Code:        "KZ",
		Prefix:      "+7",
		GroupSizes:  []int{3, 3, 2, 2},
		Pattern:     regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`),
		Placeholder: "+7 (701) 123-45-67",
	},
	{
		Code:        "BY",
		Prefix:      "+375",
		GroupSizes:  []int{2, 3, 2, 2},
		Pattern:     regexp.MustCompile(`^\+375 \(\d{2}\) \d{3}-\d{2}-\d{2}$`),
		Placeholder: "+375 (29) 123-45-67",
	},
	{
		Code:        "UA",
		Prefix:      "+380",
		GroupSizes:  []int{2, 3, 2, 2},
		Pattern:     regexp.MustCompile(`^\+380 \(\d{2}\) \d{3}-\d{2}-\d{2}$`),
		Placeholder: "+380 (67) 123-45-67",
	},
}

// Countries returns the supported country profiles in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// ByCode looks up a country profile by its code ("RU", "KZ", "BY", "UA").
func ByCode(code string) (Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

var nonDigits = regexp.MustCompile(`\D`)

// Format renders raw input as "+P (G1) G2-G3-G4" progressively: while a
// group is incomplete only its typed digits appear, a group's leading
// punctuation appears with its first digit, and digits beyond the pattern
// capacity are discarded. Input whose digits do not start with the
// country's calling prefix is returned unchanged.
func Format(raw string, c Country) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	prefix := nonDigits.ReplaceAllString(c.Prefix, "")
	if !strings.HasPrefix(digits, prefix) {
		return raw
	}
	local := digits[len(prefix):]

	var b strings.Builder
	b.WriteString(c.Prefix)
	b.WriteString(" (")

	pos := 0
	for i, size := range c.GroupSizes {
		if i > 0 && pos >= len(local) {
			break
		}
		if i == 1 {
			b.WriteString(") ")
		} else if i > 1 {
			b.WriteByte('-')
		}
		end := pos + size
		if end > len(local) {
			end = len(local)
		}
		b.WriteString(local[pos:end])
		pos = end
	}
	return b.String()
}

// Valid reports whether s is a complete, fully formatted number for the
// country. Partial matches are rejected.
func Valid(s string, c Country) bool {
	return c.Pattern.MatchString(s)
}
