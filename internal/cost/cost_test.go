package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_Directory(t *testing.T) {
	c := NewCalculator(Rates{SearchPer1K: 30, DetailsPer1K: 20})

	assert.InDelta(t, 0.03, c.Search(1), 1e-9)
	assert.InDelta(t, 0.02, c.Details(1), 1e-9)
	assert.InDelta(t, 0.30+0.10, c.Directory(10, 5), 1e-9)
	assert.Zero(t, c.Directory(0, 0))
}

func TestNewCalculator_ZeroRatesUseDefaults(t *testing.T) {
	c := NewCalculator(Rates{})
	def := DefaultRates()

	assert.InDelta(t, def.SearchPer1K, c.Search(1000), 1e-9)
	assert.InDelta(t, def.DetailsPer1K, c.Details(1000), 1e-9)
}

func TestNewCalculator_PartialOverride(t *testing.T) {
	c := NewCalculator(Rates{SearchPer1K: 5})

	assert.InDelta(t, 5.0, c.Search(1000), 1e-9)
	assert.InDelta(t, DefaultRates().DetailsPer1K, c.Details(1000), 1e-9)
}
