package classify

import "github.com/sells-group/lead-resolver/internal/model"

var residentialTags = []string{
	"lodging", "campground", "rv_park", "hotel", "motel", "apartment",
	"apartment_building", "apartment_complex", "condominium_complex",
	"housing_complex", "mobile_home_park", "bed_and_breakfast",
	"extended_stay_hotel", "guest_house", "hostel", "cottage", "private_guest_room",
}

var storefrontTags = []string{
	"store", "shop", "restaurant", "cafe", "coffee_shop", "bakery", "bar",
	"meal_takeaway", "meal_delivery", "salon", "hair_care", "barber_shop",
	"beauty_salon", "nail_salon", "spa", "gym", "fitness_center", "car_dealer",
	"grocery_store", "supermarket", "convenience_store", "shopping_mall",
	"pharmacy", "drugstore", "florist", "liquor_store", "pet_store",
	"book_store", "jewelry_store", "clothing_store", "furniture_store",
	"hardware_store", "home_goods_store", "electronics_store", "bicycle_store",
	"gift_shop", "market", "car_wash", "gas_station", "laundry",
}

var officeTags = []string{
	"doctor", "dentist", "dental_clinic", "hospital", "medical_lab", "medical",
	"physiotherapist", "chiropractor", "veterinary_care", "lawyer", "legal",
	"accounting", "tax_preparation", "bank", "finance", "financial",
	"insurance_agency", "real_estate_agency", "real_estate", "car_repair",
	"auto_repair", "storage", "self_storage", "moving_and_storage",
	"travel_agency", "consultant", "corporate_office", "employment_agency",
}

var contractorTags = []string{
	"contractor", "general_contractor", "roofing_contractor", "plumber",
	"electrician", "roofer", "landscaper", "landscaping", "lawn_care",
	"cleaning", "house_cleaning_service", "carpet_cleaning", "handyman",
	"painter", "hvac", "hvac_contractor", "locksmith", "pest_control",
	"pool_cleaning", "tree_service", "moving_company", "fence_contractor",
	"flooring_contractor", "concrete_contractor", "pressure_washing",
}

// Classify assigns a location class. The explicit service-area flag wins
// over any tag; contractors only count as offices when the directory lists
// an operational business at a formatted address.
func Classify(c *model.CandidateProfile) model.LocationClass {
	if c == nil {
		return model.LocationUnknown
	}
	if c.ServiceArea {
		return model.LocationServiceArea
	}

	tags := NewCategoryTagSet(c.Categories)
	hasBase := c.Operational && c.HasAddress()

	switch {
	case tags.Intersects(residentialTags):
		return model.LocationResidential
	case tags.Intersects(storefrontTags):
		return model.LocationStorefront
	case tags.Intersects(officeTags):
		return model.LocationOffice
	case tags.Intersects(contractorTags):
		if hasBase {
			return model.LocationOffice
		}
		return model.LocationServiceArea
	case hasBase:
		return model.LocationOffice
	default:
		return model.LocationUnknown
	}
}
