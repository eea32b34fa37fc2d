package model

// LocationClass is a coarse label for how a business physically operates.
type LocationClass string

const (
	LocationStorefront  LocationClass = "storefront"
	LocationOffice      LocationClass = "office"
	LocationServiceArea LocationClass = "service_area"
	LocationResidential LocationClass = "residential"
	LocationUnknown     LocationClass = "unknown"
)

// Valid reports whether c is one of the known classes.
func (c LocationClass) Valid() bool {
	switch c {
	case LocationStorefront, LocationOffice, LocationServiceArea, LocationResidential, LocationUnknown:
		return true
	default:
		return false
	}
}
