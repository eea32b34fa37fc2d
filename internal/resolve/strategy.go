// Package resolve turns a lead into a scored directory match: it generates
// search strategies, runs them through the shared rate-limited search
// client, validates the first candidate and fuses and scores the result.
package resolve

import (
	"strings"

	"github.com/sells-group/lead-resolver/internal/match"
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/pkg/phone"
	"github.com/sells-group/lead-resolver/pkg/places"
	"github.com/sells-group/lead-resolver/pkg/website"
)

// Strategy names, most specific first.
const (
	StrategyPhone         = "phone"
	StrategyNameAddress   = "name_address"
	StrategyNameCityState = "name_city_state"
	StrategyNameState     = "name_state"
	StrategyNameZip       = "name_zip"
	StrategyNamePhone     = "name_phone"
	StrategyWebsite       = "website_domain"
	StrategyShortName     = "short_name"
	StrategyDomainName    = "domain_name"
	StrategyNameOnly      = "name_only"
)

// shortNameWords is how many significant words an abbreviated name keeps.
const shortNameWords = 3

// Query is one directory search to attempt.
type Query struct {
	Strategy string
	Text     string
	// Center, when set, biases results toward the lead's metro.
	Center *places.LatLng
}

// GenerateQueries returns the ordered queries for lead, most specific first,
// with duplicates (case-insensitive) removed. It performs no I/O.
func GenerateQueries(lead model.LeadRecord, region string) []Query {
	lead = lead.Trimmed()
	name := lead.Name
	cityState := lead.CityState()

	var center *places.LatLng
	if ll, ok := LookupMetro(lead.City, lead.State); ok {
		center = &ll
	}

	b := &queryBuilder{center: center, seen: make(map[string]bool)}

	for _, v := range phone.Variants(lead.Phone, region) {
		b.add(StrategyPhone, v)
	}

	if name != "" {
		if lead.Street != "" {
			b.add(StrategyNameAddress, name, lead.Street+",", cityState)
		}
		if cityState != "" {
			b.add(StrategyNameCityState, name, cityState, lead.Zip)
		}
		if lead.State != "" {
			b.add(StrategyNameState, name, lead.State)
		}
		if lead.Zip != "" {
			b.add(StrategyNameZip, name, lead.Zip)
		}
		if lead.Phone != "" {
			b.add(StrategyNamePhone, name, lead.Phone)
		}
	}

	if host := website.Host(lead.Website); host != "" && !website.IsBlocked(lead.Website) {
		b.add(StrategyWebsite, host)
	}

	if short := abbreviate(name); short != "" && cityState != "" {
		b.add(StrategyShortName, short, cityState)
		if lead.Zip != "" {
			b.add(StrategyShortName, short, cityState, lead.Zip)
		}
	}

	if !website.IsBlocked(lead.Website) {
		derived := website.DerivedName(lead.Website)
		if derived != "" && cityState != "" && match.NormalizeName(derived).String() != match.NormalizeName(name).String() {
			b.add(StrategyDomainName, derived, cityState)
			if lead.Zip != "" {
				b.add(StrategyDomainName, derived, cityState, lead.Zip)
			}
		}
	}

	if name != "" {
		b.add(StrategyNameOnly, name)
	}

	return b.queries
}

// abbreviate keeps the first significant words of names too long to match
// verbatim. Short names return "".
func abbreviate(name string) string {
	words := match.NormalizeName(name).Significant()
	if len(words) <= shortNameWords {
		return ""
	}
	return strings.Join(words[:shortNameWords], " ")
}

type queryBuilder struct {
	center  *places.LatLng
	seen    map[string]bool
	queries []Query
}

func (b *queryBuilder) add(strategy string, parts ...string) {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != "," {
			kept = append(kept, p)
		}
	}
	text := strings.TrimSuffix(strings.Join(kept, " "), ",")
	if text == "" {
		return
	}
	key := strings.ToLower(text)
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.queries = append(b.queries, Query{Strategy: strategy, Text: text, Center: b.center})
}
