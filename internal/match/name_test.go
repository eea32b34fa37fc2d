package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABC Roofing LLC", "abc roofing"},
		{"The Roofing Co.", "roofing"},
		{"ABC Roofing, Inc.", "abc roofing"},
		{"Smith & Sons Plumbing", "smith and sons plumbing"},
		{"Café Olé 2", "cafe ole"},
		{"A-1 Auto Repair", "a auto repair"},
		{"The", "the"},
		{"  ", ""},
		{"Acme Holdings LLC Inc", "acme holdings"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in).String())
		})
	}
}

func TestNormalizedName_Significant(t *testing.T) {
	assert.Equal(t, []string{"bank", "america"}, NormalizeName("Bank of America").Significant())
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"legal suffix", "ABC Roofing", "ABC Roofing LLC", true},
		{"leading the", "The Home Depot", "Home Depot", true},
		{"containment", "Joe's Pizza", "Joe's Pizza Downtown Austin", true},
		{"spacing", "A B C Roofing", "ABC Roofing", true},
		{"trailing digits", "Storage Pros 24", "Storage Pros", true},
		{"half the words", "Austin Family Dental Care", "Family Dental of Round Rock", true},
		{"two-word half rule", "ABC Roofing", "XYZ Roofing", true},
		{"unrelated", "Blue Sky Bakery", "Red Rock Plumbing", false},
		{"partial word is not containment", "Art", "Smart Plumbing", false},
		{"empty", "", "ABC Roofing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesMatch(tt.a, tt.b))
			assert.Equal(t, tt.want, NamesMatch(tt.b, tt.a), "match must be symmetric")
		})
	}
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "TX", NormalizeState("Texas"))
	assert.Equal(t, "TX", NormalizeState(" tx "))
	assert.Equal(t, "NY", NormalizeState("New York"))
	assert.Equal(t, "ON", NormalizeState("on"))
	assert.Equal(t, "", NormalizeState(""))
}

func TestNormalizeZip(t *testing.T) {
	assert.Equal(t, "78701", NormalizeZip("78701-1234"))
	assert.Equal(t, "78701", NormalizeZip("787011234"))
	assert.Equal(t, "", NormalizeZip(" "))
	assert.Equal(t, "M5V3L9", NormalizeZip(" m5v 3l9 "))
	assert.NotEqual(t, NormalizeZip("M5V 3L9"), NormalizeZip("M5V 3A1"))
	assert.Equal(t, "7870112", NormalizeZip("7870112"))
}

func TestCitiesMatch(t *testing.T) {
	assert.True(t, CitiesMatch("Austin", "austin"))
	assert.True(t, CitiesMatch("St. Louis", "Saint Louis"))
	assert.True(t, CitiesMatch("Round Rock", "Round Rock City"))
	assert.False(t, CitiesMatch("Dallas", "Chicago"))
	assert.False(t, CitiesMatch("", "Chicago"))
}
