package leadio

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-resolver/internal/fitscore"
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/internal/resolve"
)

// Output is the downstream contract for one resolved lead. Match fields are
// present only when a directory match was accepted.
type Output struct {
	ResolutionID string             `json:"resolution_id"`
	Name         string             `json:"name"`
	FitScore     int                `json:"fit_score"`
	QualityTier  string             `json:"quality_tier"`
	Breakdown    fitscore.Breakdown `json:"score_breakdown"`

	PlaceID                string   `json:"place_id,omitempty"`
	MatchedFields          []string `json:"matched_fields,omitempty"`
	ShouldOverwriteAddress *bool    `json:"should_overwrite_address,omitempty"`
	VetoReason             string   `json:"veto_reason,omitempty"`
	Strategy               string   `json:"strategy,omitempty"`

	LocationType model.LocationClass `json:"location_type"`
	FusedFields  model.FusedFields   `json:"fused_fields"`
	AuditNote    string              `json:"audit_note,omitempty"`

	Error string `json:"error,omitempty"`
}

// FromResult builds the Output for res.
func FromResult(res *resolve.Result) Output {
	out := Output{
		ResolutionID: res.ID,
		Name:         res.Lead.Name,
		FitScore:     res.Score.Total,
		QualityTier:  res.Score.Quality,
		Breakdown:    res.Score,
		LocationType: model.LocationUnknown,
	}
	if res.Match != nil && res.Match.Vetoed {
		out.VetoReason = string(res.Match.VetoReason)
	}
	if !res.Matched() {
		return out
	}

	overwrite := res.Match.ShouldOverwriteAddress
	out.PlaceID = res.Candidate.PlaceID
	out.MatchedFields = append([]string(nil), res.Match.MatchedFields...)
	out.ShouldOverwriteAddress = &overwrite
	out.Strategy = res.Strategy
	if res.Location != "" {
		out.LocationType = res.Location
	}
	out.FusedFields = res.Fusion.Fields
	out.AuditNote = res.Fusion.Audit()
	return out
}

// FailedOutput records a lead that could not be resolved at all.
func FailedOutput(lead model.LeadRecord, err error) Output {
	return Output{Name: lead.Name, LocationType: model.LocationUnknown, Error: err.Error()}
}

// CRM custom field names.
const (
	CRMFitScore       = "Fit_Score__c"
	CRMQualityTier    = "Lead_Quality_Tier__c"
	CRMPlaceID        = "Google_Place_ID__c"
	CRMLocationType   = "Location_Type__c"
	CRMMatchedFields  = "Directory_Matched_Fields__c"
	CRMWebsite        = "Website"
	CRMStreet         = "Street"
	CRMCity           = "City"
	CRMState          = "State"
	CRMZip            = "PostalCode"
	CRMEnrichmentNote = "Enrichment_Note__c"
)

// CRMFields maps o onto CRM field names. Only approved fused values are
// included and no phone field is ever emitted.
func (o Output) CRMFields() map[string]any {
	fields := map[string]any{
		CRMFitScore:     o.FitScore,
		CRMQualityTier:  o.QualityTier,
		CRMLocationType: string(o.LocationType),
	}
	if o.PlaceID != "" {
		fields[CRMPlaceID] = o.PlaceID
		fields[CRMMatchedFields] = strings.Join(o.MatchedFields, ";")
	}
	for name, v := range map[string]string{
		CRMWebsite: o.FusedFields.Website,
		CRMStreet:  o.FusedFields.Street,
		CRMCity:    o.FusedFields.City,
		CRMState:   o.FusedFields.State,
		CRMZip:     o.FusedFields.Zip,
	} {
		if v != "" {
			fields[name] = v
		}
	}
	if o.AuditNote != "" {
		fields[CRMEnrichmentNote] = o.AuditNote
	}
	return fields
}

// Writer streams outputs as JSON lines or CSV.
type Writer interface {
	Write(Output) error
	Flush() error
}

// NewWriter returns a CSV writer when format is "csv" and a JSON-lines
// writer otherwise.
func NewWriter(w io.Writer, format string) (Writer, error) {
	switch format {
	case "csv":
		return &csvWriter{cw: csv.NewWriter(w)}, nil
	case "", "json", "jsonl":
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, eris.Errorf("leadio: unsupported format %q", format)
	}
}

type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Write(o Output) error {
	if err := j.enc.Encode(o); err != nil {
		return eris.Wrap(err, "leadio: encode output")
	}
	return nil
}

func (j *jsonWriter) Flush() error { return nil }

var csvHeader = []string{
	"resolution_id", "name", "fit_score", "quality_tier", "place_id", "matched_fields",
	"should_overwrite_address", "veto_reason", "location_type", "strategy",
	"website", "street", "city", "state", "zip", "audit_note", "error",
}

type csvWriter struct {
	cw          *csv.Writer
	wroteHeader bool
}

func (c *csvWriter) Write(o Output) error {
	if !c.wroteHeader {
		if err := c.cw.Write(csvHeader); err != nil {
			return eris.Wrap(err, "leadio: write CSV header")
		}
		c.wroteHeader = true
	}
	overwrite := ""
	if o.ShouldOverwriteAddress != nil {
		overwrite = strconv.FormatBool(*o.ShouldOverwriteAddress)
	}
	row := []string{
		o.ResolutionID,
		o.Name,
		strconv.Itoa(o.FitScore),
		o.QualityTier,
		o.PlaceID,
		strings.Join(o.MatchedFields, ";"),
		overwrite,
		o.VetoReason,
		string(o.LocationType),
		o.Strategy,
		o.FusedFields.Website,
		o.FusedFields.Street,
		o.FusedFields.City,
		o.FusedFields.State,
		o.FusedFields.Zip,
		o.AuditNote,
		o.Error,
	}
	if err := c.cw.Write(row); err != nil {
		return eris.Wrap(err, "leadio: write CSV row")
	}
	return nil
}

func (c *csvWriter) Flush() error {
	c.cw.Flush()
	if err := c.cw.Error(); err != nil {
		return eris.Wrap(err, "leadio: flush CSV")
	}
	return nil
}
