package model

// Field names recorded in MatchResult.MatchedFields.
const (
	FieldPhone        = "phone"
	FieldState        = "state"
	FieldCity         = "city"
	FieldZip          = "zip"
	FieldWebsite      = "website"
	FieldBusinessName = "businessName"
)

// VetoScore is the sentinel confidence assigned to every vetoed match.
const VetoScore = -10

// VetoReason explains why a candidate was rejected outright.
type VetoReason string

const (
	VetoNone          VetoReason = ""
	VetoPhoneMismatch VetoReason = "PHONE_MISMATCH"
	VetoStateMismatch VetoReason = "STATE_MISMATCH"
)

// MatchResult is the outcome of comparing a lead against one candidate.
type MatchResult struct {
	Score         int        `json:"score"`
	MatchedFields []string   `json:"matched_fields"`
	Vetoed        bool       `json:"vetoed"`
	VetoReason    VetoReason `json:"veto_reason,omitempty"`

	PhoneMatch bool `json:"phone_match"`
	NameMatch  bool `json:"name_match"`

	// HighConfidenceOverride is set when phone and business name both match.
	HighConfidenceOverride bool `json:"high_confidence_override"`
	// ShouldOverwriteAddress permits replacing populated address-family
	// fields. It never applies to phone.
	ShouldOverwriteAddress bool `json:"should_overwrite_address"`
}

// Accepted reports whether the candidate should be treated as the lead's
// profile. Anything else is equivalent to no match.
func (m *MatchResult) Accepted() bool {
	if m == nil || m.Vetoed {
		return false
	}
	return m.Score >= 1 || (m.PhoneMatch && m.NameMatch)
}

// Has reports whether field is in the matched set.
func (m *MatchResult) Has(field string) bool {
	if m == nil {
		return false
	}
	for _, f := range m.MatchedFields {
		if f == field {
			return true
		}
	}
	return false
}
