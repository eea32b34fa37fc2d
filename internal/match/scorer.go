package match

import (
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/pkg/phone"
	"github.com/sells-group/lead-resolver/pkg/website"
)

// Score compares lead against candidate. A phone mismatch always vetoes; a
// state mismatch vetoes unless phone and name both match or the postal codes
// are identical. The resulting score is the number of corroborating fields.
func Score(lead model.LeadRecord, candidate *model.CandidateProfile) model.MatchResult {
	if candidate == nil {
		return model.MatchResult{}
	}

	var res model.MatchResult
	matched := make([]string, 0, 6)

	if phone.Digits(lead.Phone) != "" && phone.Digits(candidate.Phone) != "" {
		if !phone.Equal(lead.Phone, candidate.Phone) {
			return veto(model.VetoPhoneMismatch)
		}
		res.PhoneMatch = true
		matched = append(matched, model.FieldPhone)
	}

	res.NameMatch = NamesMatch(lead.Name, candidate.Name)
	res.HighConfidenceOverride = res.PhoneMatch && res.NameMatch

	leadZip, candZip := NormalizeZip(lead.Zip), NormalizeZip(candidate.Zip)
	zipMatch := leadZip != "" && leadZip == candZip

	leadState, candState := NormalizeState(lead.State), NormalizeState(candidate.State)
	if leadState != "" && candState != "" {
		if leadState == candState {
			matched = append(matched, model.FieldState)
		} else if !res.HighConfidenceOverride && !zipMatch {
			return veto(model.VetoStateMismatch)
		} else {
			res.ShouldOverwriteAddress = true
		}
	}

	if CitiesMatch(lead.City, candidate.City) {
		matched = append(matched, model.FieldCity)
	}
	if zipMatch {
		matched = append(matched, model.FieldZip)
	}
	if website.SameDomain(lead.Website, candidate.Website) {
		matched = append(matched, model.FieldWebsite)
	}
	if res.NameMatch {
		matched = append(matched, model.FieldBusinessName)
	}

	if res.HighConfidenceOverride {
		res.ShouldOverwriteAddress = true
	}
	res.MatchedFields = matched
	res.Score = len(matched)
	return res
}

func veto(reason model.VetoReason) model.MatchResult {
	return model.MatchResult{
		Score:         model.VetoScore,
		MatchedFields: []string{string(reason)},
		Vetoed:        true,
		VetoReason:    reason,
	}
}
