package places

import "strings"

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Circle is a center point plus radius in meters.
type Circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

// LocationBias biases results toward an area without restricting them.
type LocationBias struct {
	Circle Circle `json:"circle"`
}

// SearchTextRequest is the body of a places:searchText call.
type SearchTextRequest struct {
	TextQuery      string        `json:"textQuery"`
	LocationBias   *LocationBias `json:"locationBias,omitempty"`
	MaxResultCount int           `json:"maxResultCount,omitempty"`
	RegionCode     string        `json:"regionCode,omitempty"`
}

// SearchTextResponse is the response from Places Text Search.
type SearchTextResponse struct {
	Places []Place `json:"places"`
}

// DisplayName holds the place's display name.
type DisplayName struct {
	Text string `json:"text"`
}

// AddressComponent is one structured part of a formatted address.
type AddressComponent struct {
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
	Types     []string `json:"types"`
}

// Place represents a place returned by the API. Search responses only
// populate ID and DisplayName.
type Place struct {
	ID                       string             `json:"id"`
	DisplayName              DisplayName        `json:"displayName"`
	NationalPhoneNumber      string             `json:"nationalPhoneNumber,omitempty"`
	InternationalPhoneNumber string             `json:"internationalPhoneNumber,omitempty"`
	FormattedAddress         string             `json:"formattedAddress,omitempty"`
	AddressComponents        []AddressComponent `json:"addressComponents,omitempty"`
	Types                    []string           `json:"types,omitempty"`
	Rating                   float64            `json:"rating,omitempty"`
	UserRatingCount          int                `json:"userRatingCount,omitempty"`
	BusinessStatus           string             `json:"businessStatus,omitempty"`
	PureServiceAreaBusiness  bool               `json:"pureServiceAreaBusiness,omitempty"`
	WebsiteURI               string             `json:"websiteUri,omitempty"`
}

// Component returns the first component carrying typ. short selects the
// abbreviated text (e.g. "TX" instead of "Texas").
func (p *Place) Component(typ string, short bool) string {
	for _, c := range p.AddressComponents {
		for _, t := range c.Types {
			if t != typ {
				continue
			}
			if short {
				return strings.TrimSpace(c.ShortText)
			}
			return strings.TrimSpace(c.LongText)
		}
	}
	return ""
}

// Phone returns the national number, falling back to the international one.
func (p *Place) Phone() string {
	if p.NationalPhoneNumber != "" {
		return p.NationalPhoneNumber
	}
	return p.InternationalPhoneNumber
}
