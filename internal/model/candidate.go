package model

// CandidateProfile is a directory record fetched once per resolution
// attempt. Website has already been filtered against the social/directory
// blocklist.
type CandidateProfile struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone,omitempty"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Street           string   `json:"street,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Zip              string   `json:"zip,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	ReviewCount      int      `json:"review_count"`
	Operational      bool     `json:"operational"`
	ServiceArea      bool     `json:"service_area"`
	Website          string   `json:"website,omitempty"`
}

// HasAddress reports whether the directory lists a formatted address.
func (c *CandidateProfile) HasAddress() bool {
	return c != nil && c.FormattedAddress != ""
}
