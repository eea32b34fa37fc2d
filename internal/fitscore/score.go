// Package fitscore computes the bounded lead fit score from an enrichment
// bundle. Every signal is read through an ordered fallback chain and scored
// against ascending thresholds.
package fitscore

import (
	"strings"

	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/pkg/website"
)

// Names of the sources that can supply a signal.
const (
	SourceDemographics = "demographics"
	SourceDomainAge    = "domain_age"
	SourceLegacy       = "legacy"
	SourceRange        = "employee_range"
	SourceFused        = "fused"
	SourceCandidate    = "candidate"
	SourceDefault      = "default"
)

// Breakdown is the per-signal point allocation and clamped total.
type Breakdown struct {
	Match     int `json:"match"`
	Website   int `json:"website"`
	Reviews   int `json:"reviews"`
	Age       int `json:"business_age"`
	Employees int `json:"employees"`
	Location  int `json:"location_type"`
	Tracking  int `json:"digital_marketing"`
	Total     int `json:"total"`

	Quality string `json:"quality_tier"`

	// Sources names the provider each chained signal was read from.
	Sources map[string]string `json:"sources,omitempty"`
}

// Calculator scores bundles against a Table.
type Calculator struct {
	table Table
}

// NewCalculator returns a Calculator using table.
func NewCalculator(table Table) *Calculator {
	return &Calculator{table: table}
}

// Compute scores b with the default table.
func Compute(b *model.EnrichmentBundle) Breakdown {
	return NewCalculator(DefaultTable()).Compute(b)
}

// Compute scores b. Missing parts of the bundle fall to their zero tier.
func (c *Calculator) Compute(b *model.EnrichmentBundle) Breakdown {
	if b == nil {
		b = &model.EnrichmentBundle{}
	}
	t := c.table
	out := Breakdown{Sources: make(map[string]string)}
	matched := b.HasMatch()

	if matched {
		out.Match = t.Match
	}

	if site, src, ok := c.websiteOf(b); ok {
		out.Sources["website"] = src
		switch website.Classify(site) {
		case website.KindCustom:
			out.Website = t.Website.Custom
		case website.KindHosted:
			out.Website = t.Website.Hosted
		}
	}

	if matched {
		out.Reviews = t.Reviews.Points(float64(b.Candidate.ReviewCount))
		out.Location = t.Location[string(b.Location)]
	}

	years, src := yearsInBusiness(b)
	out.Sources["business_age"] = src
	out.Age = t.Age.Points(years)

	if n, src, ok := employeeCount(b); ok {
		out.Sources["employees"] = src
		out.Employees = t.Employees.Points(float64(n))
	}

	if b.Web != nil {
		out.Tracking = t.Tracking.Points(float64(countDistinct(b.Web.TrackingTechnologies)))
	}

	websiteMax := t.Website.Custom
	if t.Website.Hosted > websiteMax {
		websiteMax = t.Website.Hosted
	}
	out.Match = clamp(out.Match, 0, t.Match)
	out.Website = clamp(out.Website, 0, websiteMax)
	out.Reviews = clamp(out.Reviews, 0, t.Reviews.Max())
	out.Age = clamp(out.Age, 0, t.Age.Max())
	out.Employees = clamp(out.Employees, 0, t.Employees.Max())
	out.Location = clamp(out.Location, 0, t.LocationMax())
	out.Tracking = clamp(out.Tracking, 0, t.Tracking.Max())

	sum := out.Match + out.Website + out.Reviews + out.Age + out.Employees + out.Location + out.Tracking
	out.Total = clamp(sum, 0, 100)
	out.Quality = t.Grade(out.Total)
	return out
}

func (c *Calculator) websiteOf(b *model.EnrichmentBundle) (string, string, bool) {
	return FirstOf(
		Source[string]{Name: SourceFused, Get: func() (string, bool) {
			return b.Website, strings.TrimSpace(b.Website) != ""
		}},
		Source[string]{Name: SourceCandidate, Get: func() (string, bool) {
			if !b.HasMatch() {
				return "", false
			}
			site := website.Filter(b.Candidate.Website)
			return site, site != ""
		}},
	)
}

// yearsInBusiness reads the primary provider, then domain registration age,
// then the legacy source, then zero.
func yearsInBusiness(b *model.EnrichmentBundle) (float64, string) {
	years, src, ok := FirstOf(
		ptrSource(SourceDemographics, func() *float64 {
			if b.Demographics == nil {
				return nil
			}
			return b.Demographics.YearsInBusiness
		}),
		ptrSource(SourceDomainAge, func() *float64 {
			if b.Domain == nil {
				return nil
			}
			return b.Domain.AgeYears
		}),
		ptrSource(SourceLegacy, func() *float64 {
			if b.Legacy == nil {
				return nil
			}
			return b.Legacy.YearsInBusiness
		}),
	)
	if !ok {
		return 0, SourceDefault
	}
	return years, src
}

// employeeCount reads the exact count, then the range midpoint, then the
// legacy estimate.
func employeeCount(b *model.EnrichmentBundle) (int, string, bool) {
	return FirstOf(
		ptrSource(SourceDemographics, func() *int {
			if b.Demographics == nil {
				return nil
			}
			return b.Demographics.EmployeeCount
		}),
		Source[int]{Name: SourceRange, Get: func() (int, bool) {
			if b.Demographics == nil {
				return 0, false
			}
			return ParseEmployeeRange(b.Demographics.EmployeeRange)
		}},
		ptrSource(SourceLegacy, func() *int {
			if b.Legacy == nil {
				return nil
			}
			return b.Legacy.EmployeeEstimate
		}),
	)
}

func countDistinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it != "" {
			seen[it] = struct{}{}
		}
	}
	return len(seen)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
