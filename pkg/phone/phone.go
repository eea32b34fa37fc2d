// Package phone provides phone number normalization for matching and for
// building search queries.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number carries no country code.
const DefaultRegion = "US"

// Digits strips everything but ASCII digits.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// Last10 returns the last ten digits of raw, or all digits when shorter.
func Last10(raw string) string {
	d := Digits(raw)
	if len(d) > 10 {
		return d[len(d)-10:]
	}
	return d
}

// Equal compares two numbers on their last ten digits. Both must be non-empty.
func Equal(a, b string) bool {
	la, lb := Last10(a), Last10(b)
	return la != "" && la == lb
}

// Formatted renders raw in the region's national format, e.g.
// "(512) 555-0100". It returns "" when raw cannot be parsed.
func Formatted(raw, region string) string {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}

// E164 renders raw as +<country><number>. It returns "" when raw cannot be
// parsed.
func E164(raw, region string) string {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Variants returns up to four distinct textual forms of raw for directory
// search: as given, with a country-code prefix when the number has ten
// digits, human formatted, and digits only.
func Variants(raw, region string) []string {
	raw = strings.TrimSpace(raw)
	digits := Digits(raw)
	if digits == "" {
		return nil
	}

	candidates := []string{raw}
	if len(digits) == 10 {
		candidates = append(candidates, "+1"+digits)
	}
	if f := Formatted(raw, region); f != "" {
		candidates = append(candidates, f)
	}
	candidates = append(candidates, digits)

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, 4)
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == 4 {
			break
		}
	}
	return out
}
