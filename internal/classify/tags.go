// Package classify maps directory category tags to a location class.
package classify

import "strings"

// CategoryTagSet is a normalized set of directory category tags. Tags are
// lowercase snake_case ("roofing_contractor").
type CategoryTagSet struct {
	tags map[string]struct{}
}

// NewCategoryTagSet normalizes raw tags: lowercased, spaces and hyphens
// folded to underscores, blanks dropped.
func NewCategoryTagSet(raw []string) CategoryTagSet {
	set := CategoryTagSet{tags: make(map[string]struct{}, len(raw))}
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.NewReplacer(" ", "_", "-", "_").Replace(t)
		if t != "" {
			set.tags[t] = struct{}{}
		}
	}
	return set
}

// Len returns the number of distinct tags.
func (s CategoryTagSet) Len() int { return len(s.tags) }

// Has reports whether tag is present verbatim.
func (s CategoryTagSet) Has(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// Intersects reports whether any tag contains one of keywords as a whole
// underscore-delimited token run. "store" matches "hardware_store" but not
// "self_storage".
func (s CategoryTagSet) Intersects(keywords []string) bool {
	for tag := range s.tags {
		padded := "_" + tag + "_"
		for _, kw := range keywords {
			if strings.Contains(padded, "_"+kw+"_") {
				return true
			}
		}
	}
	return false
}
