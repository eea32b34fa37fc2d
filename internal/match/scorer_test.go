package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-resolver/internal/model"
)

func abcCandidate() *model.CandidateProfile {
	return &model.CandidateProfile{
		PlaceID:          "ChIJ-abc",
		Name:             "ABC Roofing LLC",
		Phone:            "5551234567",
		FormattedAddress: "100 Congress Ave, Austin, TX 78701, USA",
		City:             "Austin",
		State:            "TX",
		Zip:              "78701",
		Categories:       []string{"roofing_contractor"},
		ReviewCount:      31,
		Operational:      true,
		Website:          "https://abcroofing.com",
	}
}

func TestScore_PhoneAndNameMatch(t *testing.T) {
	lead := model.LeadRecord{Name: "ABC Roofing", Phone: "+15551234567", City: "Austin", State: "TX"}

	res := Score(lead, abcCandidate())

	assert.False(t, res.Vetoed)
	assert.True(t, res.PhoneMatch)
	assert.True(t, res.NameMatch)
	assert.True(t, res.HighConfidenceOverride)
	assert.True(t, res.ShouldOverwriteAddress)
	assert.Equal(t, []string{model.FieldPhone, model.FieldState, model.FieldCity, model.FieldBusinessName}, res.MatchedFields)
	assert.Equal(t, 4, res.Score)
	assert.True(t, res.Accepted())
}

func TestScore_PhoneMismatchAlwaysVetoes(t *testing.T) {
	// Every other field agrees; the phone alone decides.
	lead := model.LeadRecord{
		Name: "ABC Roofing", Phone: "555-999-0000", City: "Austin", State: "TX",
		Zip: "78701", Website: "abcroofing.com",
	}

	res := Score(lead, abcCandidate())

	assert.True(t, res.Vetoed)
	assert.Equal(t, model.VetoPhoneMismatch, res.VetoReason)
	assert.Equal(t, model.VetoScore, res.Score)
	assert.Equal(t, []string{"PHONE_MISMATCH"}, res.MatchedFields)
	assert.False(t, res.ShouldOverwriteAddress)
	assert.False(t, res.Accepted())
}

func TestScore_StateMismatchNoOverride(t *testing.T) {
	lead := model.LeadRecord{Name: "ABC Roofing", State: "TX", Zip: "75201"}
	cand := abcCandidate()
	cand.State = "CA"
	cand.Zip = "90012"

	res := Score(lead, cand)

	assert.True(t, res.Vetoed)
	assert.Equal(t, model.VetoStateMismatch, res.VetoReason)
	assert.Equal(t, []string{"STATE_MISMATCH"}, res.MatchedFields)
	assert.Equal(t, model.VetoScore, res.Score)
	assert.False(t, res.Accepted())
}

func TestScore_StateMismatchOverriddenByPhoneAndName(t *testing.T) {
	lead := model.LeadRecord{Name: "ABC Roofing", Phone: "5551234567", City: "Dallas", State: "TX"}
	cand := abcCandidate()
	cand.City = "Chicago"
	cand.State = "IL"

	res := Score(lead, cand)

	require.False(t, res.Vetoed)
	assert.True(t, res.ShouldOverwriteAddress)
	assert.NotContains(t, res.MatchedFields, model.FieldState)
	assert.True(t, res.Accepted())
}

func TestScore_StateMismatchOverriddenByZip(t *testing.T) {
	lead := model.LeadRecord{Name: "Totally Different Name", State: "Texas", Zip: "78701-0001"}
	cand := abcCandidate()
	cand.State = "OK"

	res := Score(lead, cand)

	require.False(t, res.Vetoed)
	assert.True(t, res.ShouldOverwriteAddress)
	assert.False(t, res.HighConfidenceOverride)
	assert.Contains(t, res.MatchedFields, model.FieldZip)
}

func TestScore_StateMismatchDifferentPostalCodesVetoes(t *testing.T) {
	lead := model.LeadRecord{Name: "Maple Dental", State: "ON", Zip: "M5V 3L9"}
	cand := &model.CandidateProfile{PlaceID: "p2", Name: "Other Clinic", State: "QC", Zip: "M5V 3A1"}

	res := Score(lead, cand)

	assert.True(t, res.Vetoed)
	assert.Equal(t, model.VetoStateMismatch, res.VetoReason)
	assert.False(t, res.ShouldOverwriteAddress)
	assert.False(t, res.Accepted())
}

func TestScore_StateMismatchSamePostalCodeOverrides(t *testing.T) {
	lead := model.LeadRecord{Name: "Maple Dental", State: "ON", Zip: "m5v 3l9"}
	cand := &model.CandidateProfile{PlaceID: "p2", Name: "Other Clinic", State: "QC", Zip: "M5V 3L9"}

	res := Score(lead, cand)

	require.False(t, res.Vetoed)
	assert.True(t, res.ShouldOverwriteAddress)
	assert.Contains(t, res.MatchedFields, model.FieldZip)
}

func TestScore_StateMismatchPhoneOnlyStillVetoes(t *testing.T) {
	lead := model.LeadRecord{Name: "Blue Sky Bakery", Phone: "5551234567", State: "TX"}
	cand := abcCandidate()
	cand.State = "CA"

	res := Score(lead, cand)
	assert.True(t, res.Vetoed)
	assert.Equal(t, model.VetoStateMismatch, res.VetoReason)
}

func TestScore_OverridePathsAreExhaustive(t *testing.T) {
	// State differs in every case; only phone+name or zip may rescue it.
	cases := []struct {
		name       string
		phone, zip string
		leadName   string
		wantVetoed bool
	}{
		{"phone+name", "5551234567", "", "ABC Roofing", false},
		{"zip", "", "78701", "Unrelated Co", false},
		{"name only", "", "", "ABC Roofing", true},
		{"phone only", "5551234567", "", "Unrelated Bakery", true},
		{"nothing", "", "", "Unrelated Bakery", true},
		{"zip differs", "", "10001", "ABC Roofing", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cand := abcCandidate()
			cand.State = "CA"
			lead := model.LeadRecord{Name: tc.leadName, Phone: tc.phone, State: "TX", Zip: tc.zip}
			res := Score(lead, cand)
			assert.Equal(t, tc.wantVetoed, res.Vetoed)
			if !res.Vetoed {
				assert.True(t, res.ShouldOverwriteAddress)
			}
		})
	}
}

func TestScore_NoPhoneNoOverwrite(t *testing.T) {
	lead := model.LeadRecord{Name: "ABC Roofing", City: "Austin", State: "TX", Website: "www.abcroofing.com"}

	res := Score(lead, abcCandidate())

	assert.False(t, res.PhoneMatch)
	assert.False(t, res.ShouldOverwriteAddress)
	assert.Equal(t, []string{model.FieldState, model.FieldCity, model.FieldWebsite, model.FieldBusinessName}, res.MatchedFields)
}

func TestScore_NothingCorroborates(t *testing.T) {
	lead := model.LeadRecord{Name: "Blue Sky Bakery"}
	res := Score(lead, abcCandidate())
	assert.False(t, res.Vetoed)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Accepted())
}

func TestScore_MonotonicInCorroboratingFields(t *testing.T) {
	base := model.LeadRecord{Name: "Blue Sky Bakery"}
	steps := []func(*model.LeadRecord){
		func(l *model.LeadRecord) { l.State = "TX" },
		func(l *model.LeadRecord) { l.City = "Austin" },
		func(l *model.LeadRecord) { l.Zip = "78701" },
		func(l *model.LeadRecord) { l.Website = "abcroofing.com" },
		func(l *model.LeadRecord) { l.Phone = "5551234567" },
		func(l *model.LeadRecord) { l.Name = "ABC Roofing" },
	}
	prev := Score(base, abcCandidate()).Score
	lead := base
	for _, step := range steps {
		step(&lead)
		got := Score(lead, abcCandidate()).Score
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 6, prev)
}

func TestScore_NilCandidate(t *testing.T) {
	res := Score(model.LeadRecord{Name: "x"}, nil)
	assert.False(t, res.Accepted())
}
