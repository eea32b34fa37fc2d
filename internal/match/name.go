// Package match scores how well a directory candidate corroborates a lead.
package match

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixes are entity designators stripped from the end of a name.
var legalSuffixes = map[string]bool{
	"llc": true, "inc": true, "incorporated": true, "corp": true,
	"corporation": true, "co": true, "company": true, "ltd": true,
	"limited": true, "lp": true, "llp": true, "pc": true, "pllc": true,
	"pa": true, "plc": true, "dba": true,
}

// stopWords are ignored when counting significant words.
var stopWords = map[string]bool{
	"the": true, "and": true, "of": true, "a": true, "an": true, "at": true, "for": true,
}

// NormalizedName is a business name reduced for comparison: lowercase,
// accent-folded, punctuation, digits, legal suffixes and a leading "the"
// removed.
type NormalizedName struct {
	text  string
	words []string
}

// NormalizeName builds a NormalizedName from raw.
func NormalizeName(raw string) NormalizedName {
	folded := foldAccents(strings.ToLower(raw))

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r == '&':
			b.WriteString(" and ")
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '_':
			b.WriteByte(' ')
		}
		// Digits and other punctuation are dropped.
	}

	words := strings.Fields(b.String())
	for len(words) > 0 && legalSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	if len(words) > 1 && words[0] == "the" {
		words = words[1:]
	}

	return NormalizedName{text: strings.Join(words, " "), words: words}
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// String returns the normalized text.
func (n NormalizedName) String() string { return n.text }

// IsEmpty reports whether nothing survived normalization.
func (n NormalizedName) IsEmpty() bool { return n.text == "" }

// Significant returns the words that carry meaning for overlap counting.
func (n NormalizedName) Significant() []string {
	out := make([]string, 0, len(n.words))
	for _, w := range n.words {
		if !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// containsWord reports whether needle appears in text bounded by spaces or
// the string ends.
func containsWord(text, needle string) bool {
	return strings.Contains(" "+text+" ", " "+needle+" ")
}

// compact drops spaces so "a b c roofing" and "abc roofing" compare equal.
func (n NormalizedName) compact() string {
	return strings.ReplaceAll(n.text, " ", "")
}

// Matches reports whether two names plausibly refer to the same business:
// equal, one containing the other, equal once spacing is ignored, or at
// least half (rounded up) of the shorter name's significant words appearing
// in the longer one.
func (n NormalizedName) Matches(other NormalizedName) bool {
	if n.IsEmpty() || other.IsEmpty() {
		return false
	}
	if n.text == other.text {
		return true
	}
	if containsWord(n.text, other.text) || containsWord(other.text, n.text) {
		return true
	}
	if n.compact() == other.compact() {
		return true
	}

	shorter, longer := n.Significant(), other.Significant()
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return false
	}

	inLonger := make(map[string]bool, len(longer))
	for _, w := range longer {
		inLonger[w] = true
	}
	hits := 0
	for _, w := range shorter {
		if inLonger[w] {
			hits++
		}
	}
	return hits >= int(math.Ceil(float64(len(shorter))*0.5))
}

// NamesMatch is a convenience wrapper over NormalizeName + Matches.
func NamesMatch(a, b string) bool {
	return NormalizeName(a).Matches(NormalizeName(b))
}
