// Package model defines the value types that flow through a single lead
// resolution: the input record, the directory candidate, and the derived
// match, fusion and enrichment results.
package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

var validate = validator.New()

// LeadRecord is the caller-owned input to a resolution. It is never mutated.
type LeadRecord struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty" validate:"omitempty,min=2"`
	Zip     string `json:"zip,omitempty"`
	Website string `json:"website,omitempty"`
}

// Validate checks the record has the fields a resolution needs.
func (l LeadRecord) Validate() error {
	l = l.Trimmed()
	if err := validate.Struct(l); err != nil {
		return eris.Wrap(err, "model: invalid lead")
	}
	return nil
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (l LeadRecord) Trimmed() LeadRecord {
	return LeadRecord{
		Name:    strings.TrimSpace(l.Name),
		Phone:   strings.TrimSpace(l.Phone),
		Street:  strings.TrimSpace(l.Street),
		City:    strings.TrimSpace(l.City),
		State:   strings.TrimSpace(l.State),
		Zip:     strings.TrimSpace(l.Zip),
		Website: strings.TrimSpace(l.Website),
	}
}

// CityState renders "City, ST", or whichever half is present.
func (l LeadRecord) CityState() string {
	switch {
	case l.City != "" && l.State != "":
		return l.City + ", " + l.State
	case l.City != "":
		return l.City
	default:
		return l.State
	}
}
