package model

// FusedFields holds the values approved for propagation back to the caller.
// There is deliberately no phone field.
type FusedFields struct {
	Website string `json:"website,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// IsEmpty reports whether no field was approved.
func (f FusedFields) IsEmpty() bool {
	return f == FusedFields{}
}

// Apply returns lead with every approved field written over it.
func (f FusedFields) Apply(lead LeadRecord) LeadRecord {
	if f.Website != "" {
		lead.Website = f.Website
	}
	if f.Street != "" {
		lead.Street = f.Street
	}
	if f.City != "" {
		lead.City = f.City
	}
	if f.State != "" {
		lead.State = f.State
	}
	if f.Zip != "" {
		lead.Zip = f.Zip
	}
	return lead
}
