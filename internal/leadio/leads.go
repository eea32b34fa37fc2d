package leadio

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/internal/resolve"
)

// Canonical column names.
const (
	ColName                   = "name"
	ColPhone                  = "phone"
	ColStreet                 = "street"
	ColCity                   = "city"
	ColState                  = "state"
	ColZip                    = "zip"
	ColWebsite                = "website"
	ColYearsInBusiness        = "years_in_business"
	ColEmployeeCount          = "employee_count"
	ColEmployeeRange          = "employee_range"
	ColIndustry               = "industry"
	ColDomainAgeYears         = "domain_age_years"
	ColLegacyYearsInBusiness  = "legacy_years_in_business"
	ColLegacyEmployeeEstimate = "legacy_employee_estimate"
	ColTrackingTechnologies   = "tracking_technologies"
)

// columnAliases maps normalized header spellings to canonical columns.
var columnAliases = map[string]string{
	"business_name":   ColName,
	"company":         ColName,
	"company_name":    ColName,
	"phone_number":    ColPhone,
	"address":         ColStreet,
	"street_address":  ColStreet,
	"mailing_address": ColStreet,
	"zip_code":        ColZip,
	"postal_code":     ColZip,
	"url":             ColWebsite,
	"domain":          ColWebsite,
	"employees":       ColEmployeeCount,
	"tech_stack":      ColTrackingTechnologies,
}

// ParseStats summarizes a parse.
type ParseStats struct {
	Rows    int
	Leads   int
	Skipped int
	// BadValues counts numeric cells that could not be parsed and were ignored.
	BadValues int
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	if canon, ok := columnAliases[h]; ok {
		return canon
	}
	return h
}

// ParseLeads maps header-keyed rows into resolution requests. The first
// row is the header and must name a name column. Rows without a name are
// skipped and counted.
func ParseLeads(rows [][]string) ([]resolve.Request, ParseStats, error) {
	var stats ParseStats
	if len(rows) == 0 {
		return nil, stats, eris.New("leadio: input has no header row")
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		key := normalizeHeader(col)
		if _, dup := colIdx[key]; !dup {
			colIdx[key] = i
		}
	}
	if _, ok := colIdx[ColName]; !ok {
		return nil, stats, eris.Errorf("leadio: missing required column %q", ColName)
	}

	var reqs []resolve.Request
	for _, row := range rows[1:] {
		stats.Rows++
		get := func(col string) string { return getCol(row, colIdx, col) }

		lead := model.LeadRecord{
			Name:    get(ColName),
			Phone:   get(ColPhone),
			Street:  get(ColStreet),
			City:    get(ColCity),
			State:   get(ColState),
			Zip:     get(ColZip),
			Website: get(ColWebsite),
		}
		if lead.Name == "" {
			stats.Skipped++
			continue
		}

		req := resolve.Request{Lead: lead}
		p := &numberParser{stats: &stats}

		demo := model.Demographics{
			YearsInBusiness: p.float(get(ColYearsInBusiness)),
			EmployeeCount:   p.int(get(ColEmployeeCount)),
			EmployeeRange:   get(ColEmployeeRange),
			Industry:        get(ColIndustry),
		}
		if demo != (model.Demographics{}) {
			req.Demographics = &demo
		}

		legacy := model.LegacyFirmographics{
			YearsInBusiness:  p.float(get(ColLegacyYearsInBusiness)),
			EmployeeEstimate: p.int(get(ColLegacyEmployeeEstimate)),
		}
		if legacy != (model.LegacyFirmographics{}) {
			req.Legacy = &legacy
		}

		if age := p.float(get(ColDomainAgeYears)); age != nil {
			req.Domain = &model.DomainSignals{AgeYears: age}
		}
		if techs := splitList(get(ColTrackingTechnologies)); len(techs) > 0 {
			req.Web = &model.WebSignals{TrackingTechnologies: techs}
		}

		reqs = append(reqs, req)
		stats.Leads++
	}
	return reqs, stats, nil
}

// LoadLeads reads and parses location. Files ending in .xlsx are read as
// workbooks; everything else as CSV.
func LoadLeads(ctx context.Context, location string, opts SourceOptions) ([]resolve.Request, ParseStats, error) {
	rc, err := Open(ctx, location, opts)
	if err != nil {
		return nil, ParseStats{}, err
	}
	defer rc.Close() //nolint:errcheck

	var rows [][]string
	if isXLSX(location) {
		data, readErr := io.ReadAll(rc)
		if readErr != nil {
			return nil, ParseStats{}, eris.Wrap(readErr, "leadio: read workbook")
		}
		rows, err = ReadXLSX(data, "")
	} else {
		rows, err = ReadCSV(ctx, rc)
	}
	if err != nil {
		return nil, ParseStats{}, err
	}

	reqs, stats, err := ParseLeads(rows)
	if err != nil {
		return nil, stats, err
	}
	zap.L().Info("leadio: leads loaded",
		zap.String("source", location),
		zap.Int("rows", stats.Rows),
		zap.Int("leads", stats.Leads),
		zap.Int("skipped", stats.Skipped),
		zap.Int("bad_values", stats.BadValues),
	)
	return reqs, stats, nil
}

func isXLSX(location string) bool {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	return strings.EqualFold(path.Ext(p), ".xlsx")
}

func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type numberParser struct {
	stats *ParseStats
}

func (p *numberParser) float(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		p.stats.BadValues++
		return nil
	}
	return &v
}

func (p *numberParser) int(s string) *int {
	f := p.float(s)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}
