// Package fusion decides which directory values flow back into a lead.
package fusion

import (
	"fmt"
	"strings"

	"github.com/sells-group/lead-resolver/internal/match"
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/pkg/website"
)

// Change is one populated lead field replaced by a different directory value.
type Change struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result is the fused field set plus the overwrites it implies.
type Result struct {
	Fields  model.FusedFields `json:"fields"`
	Changes []Change          `json:"changes,omitempty"`
}

// Audit renders Changes as a single human-readable note, or "" when
// nothing previously populated was altered.
func (r Result) Audit() string {
	if len(r.Changes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		parts = append(parts, fmt.Sprintf("%s %q -> %q", c.Field, c.Before, c.After))
	}
	return "address overwritten from directory: " + strings.Join(parts, ", ")
}

type addressField struct {
	name      string
	lead      string
	candidate string
	set       func(*model.FusedFields, string)
	same      func(a, b string) bool
}

// Fuse merges candidate into lead under m. A missing candidate or a match
// that was not accepted yields nothing. Phone is never part of the output.
func Fuse(candidate *model.CandidateProfile, m *model.MatchResult, lead model.LeadRecord) Result {
	var res Result
	if candidate == nil || !m.Accepted() {
		return res
	}

	if site := website.Filter(candidate.Website); site != "" {
		res.Fields.Website = site
	}

	fields := []addressField{
		{"street", lead.Street, candidate.Street, func(f *model.FusedFields, v string) { f.Street = v }, sameText},
		{"city", lead.City, candidate.City, func(f *model.FusedFields, v string) { f.City = v }, sameText},
		{"state", lead.State, candidate.State, func(f *model.FusedFields, v string) { f.State = v }, sameState},
		{"zip", lead.Zip, candidate.Zip, func(f *model.FusedFields, v string) { f.Zip = v }, sameZip},
	}
	for _, fld := range fields {
		after := strings.TrimSpace(fld.candidate)
		before := strings.TrimSpace(fld.lead)
		if after == "" {
			continue
		}
		if before != "" && !m.ShouldOverwriteAddress {
			continue
		}
		fld.set(&res.Fields, after)
		if before != "" && !fld.same(before, after) {
			res.Changes = append(res.Changes, Change{Field: fld.name, Before: before, After: after})
		}
	}
	return res
}

func sameText(a, b string) bool { return strings.EqualFold(a, b) }

func sameState(a, b string) bool { return match.NormalizeState(a) == match.NormalizeState(b) }

func sameZip(a, b string) bool { return match.NormalizeZip(a) == match.NormalizeZip(b) }
