// Package cost estimates directory API spend from call counts.
package cost

// Rates holds directory pricing in USD per 1,000 requests.
type Rates struct {
	SearchPer1K  float64 `yaml:"search_per_1k" mapstructure:"search_per_1k"`
	DetailsPer1K float64 `yaml:"details_per_1k" mapstructure:"details_per_1k"`
}

// DefaultRates returns list pricing for Text Search and Place Details with a
// contact and atmosphere field mask.
func DefaultRates() Rates {
	return Rates{
		SearchPer1K:  32.00,
		DetailsPer1K: 17.00,
	}
}

// Calculator computes costs for directory usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates. Zero rates fall
// back to the defaults.
func NewCalculator(rates Rates) *Calculator {
	def := DefaultRates()
	if rates.SearchPer1K <= 0 {
		rates.SearchPer1K = def.SearchPer1K
	}
	if rates.DetailsPer1K <= 0 {
		rates.DetailsPer1K = def.DetailsPer1K
	}
	return &Calculator{rates: rates}
}

// Search returns the cost of n text searches.
func (c *Calculator) Search(n int) float64 {
	return float64(n) / 1000 * c.rates.SearchPer1K
}

// Details returns the cost of n details lookups.
func (c *Calculator) Details(n int) float64 {
	return float64(n) / 1000 * c.rates.DetailsPer1K
}

// Directory returns the combined cost of searches and lookups.
func (c *Calculator) Directory(searches, lookups int) float64 {
	return c.Search(searches) + c.Details(lookups)
}
