package model

// Demographics is firmographic data from the primary provider.
type Demographics struct {
	YearsInBusiness *float64 `json:"years_in_business,omitempty"`
	EmployeeCount   *int     `json:"employee_count,omitempty"`

	// EmployeeRange is a size band such as "11-50" or "1,000+".
	EmployeeRange string `json:"employee_range,omitempty"`
	Industry      string `json:"industry,omitempty"`
}

// LegacyFirmographics is the older, lower-priority data source.
type LegacyFirmographics struct {
	YearsInBusiness  *float64 `json:"years_in_business,omitempty"`
	EmployeeEstimate *int     `json:"employee_estimate,omitempty"`
}

// DomainSignals come from a WHOIS lookup of the lead's website.
type DomainSignals struct {
	AgeYears *float64 `json:"age_years,omitempty"`
}

// WebSignals come from pixel and tag detection on the lead's website.
type WebSignals struct {
	TrackingTechnologies []string `json:"tracking_technologies,omitempty"`
}

// EnrichmentBundle aggregates every source for one resolution. Each part is
// independently optional.
type EnrichmentBundle struct {
	Candidate    *CandidateProfile    `json:"candidate,omitempty"`
	Match        *MatchResult         `json:"match,omitempty"`
	Location     LocationClass        `json:"location,omitempty"`
	Website      string               `json:"website,omitempty"`
	Demographics *Demographics        `json:"demographics,omitempty"`
	Legacy       *LegacyFirmographics `json:"legacy,omitempty"`
	Domain       *DomainSignals       `json:"domain,omitempty"`
	Web          *WebSignals          `json:"web,omitempty"`
}

// HasMatch reports whether an accepted directory match is present.
func (b *EnrichmentBundle) HasMatch() bool {
	return b != nil && b.Candidate != nil && b.Match.Accepted()
}
