package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities_Years(t *testing.T) {
	bag := ExtractEntities("Trump wins the 2028 election, rematch in 2032")
	assert.Equal(t, map[string]bool{"2028": true, "2032": true}, bag.Years)
}

func TestExtractEntities_YearsOutOfRange(t *testing.T) {
	bag := ExtractEntities("Dow closes above 1999 levels by 2050")
	assert.Empty(t, bag.Years)
}

func TestExtractEntities_NumbersKScaling(t *testing.T) {
	a := ExtractEntities("Bitcoin above 100k")
	b := ExtractEntities("Bitcoin above 100000")
	assert.Equal(t, map[string]bool{"100000": true}, a.Numbers)
	assert.Equal(t, a.Numbers, b.Numbers)
}

func TestExtractEntities_NumbersFractionalAndPercent(t *testing.T) {
	bag := ExtractEntities("Unemployment at 4.5% with 1.5k layoffs")
	assert.True(t, bag.Numbers["4.5"])
	assert.True(t, bag.Numbers["1500"])
}

func TestExtractEntities_NumbersSingleDigitNoise(t *testing.T) {
	bag := ExtractEntities("Game 7 odds, seed 3")
	assert.Empty(t, bag.Numbers)
}

func TestExtractEntities_NumbersExcludeYears(t *testing.T) {
	bag := ExtractEntities("BTC hits 100k in 2026")
	assert.True(t, bag.Numbers["100000"])
	assert.False(t, bag.Numbers["2026"])
	assert.True(t, bag.Years["2026"])
}

func TestExtractEntities_Party(t *testing.T) {
	tests := []struct {
		title string
		want  Party
	}{
		{"Republican holds the Senate", PartyRepublican},
		{"GOP sweep in the midterms", PartyRepublican},
		{"Democrat wins the governorship", PartyDemocrat},
		{"Dems keep the House", PartyDemocrat},
		{"Fed cuts rates in June", ""},
		// Both families present: ambiguous, no party signal.
		{"Republicans flip a Democrat seat", ""},
	}
	for _, tt := range tests {
		bag := ExtractEntities(tt.title)
		assert.Equal(t, tt.want, bag.Party, tt.title)
	}
}

func TestExtractEntities_States(t *testing.T) {
	bag := ExtractEntities("Texas senate race goes to a runoff")
	assert.Equal(t, map[string]bool{"texas": true}, bag.States)

	bag = ExtractEntities("Will TX and FL both flip?")
	assert.True(t, bag.States["texas"])
	assert.True(t, bag.States["florida"])

	// Lowercase postal codes are ordinary words, not states.
	bag = ExtractEntities("will it flip tx seat")
	assert.Empty(t, bag.States)

	bag = ExtractEntities("New York City mayoral election")
	assert.True(t, bag.States["new york"])
}

func TestExtractEntities_TimeFrames(t *testing.T) {
	assert.Equal(t, map[string]bool{"q1": true}, ExtractEntities("GDP growth above 3% in Q1").TimeFrames)
	assert.Equal(t, map[string]bool{"q1": true}, ExtractEntities("First quarter GDP above 3%").TimeFrames)
	assert.Equal(t, map[string]bool{"mar": true}, ExtractEntities("Rate cut in March").TimeFrames)
	assert.Equal(t, map[string]bool{"sep": true}, ExtractEntities("Sep jobs report beats forecast").TimeFrames)
	assert.Empty(t, ExtractEntities("Rate cut this year").TimeFrames)
}

func TestExtractEntities_NamedEntities(t *testing.T) {
	bag := ExtractEntities("Will Donald Trump pardon anyone else?")
	assert.True(t, bag.Entities["trump"])

	bag = ExtractEntities("BTC above 100k")
	assert.True(t, bag.Entities["bitcoin"])

	bag = ExtractEntities("Chiefs win the Super Bowl")
	assert.True(t, bag.Entities["chiefs"])

	bag = ExtractEntities("Ocasio-Cortez announces a primary run")
	assert.True(t, bag.Entities["aoc"])
}

func TestExtractEntities_TotalOnGarbage(t *testing.T) {
	for _, title := range []string{"", "???", "     ", "\t\n", "!@#$%^&*()"} {
		bag := ExtractEntities(title)
		assert.NotNil(t, bag.Years, title)
		assert.Empty(t, bag.Years, title)
		assert.Empty(t, bag.Numbers, title)
		assert.Empty(t, bag.States, title)
		assert.Empty(t, bag.TimeFrames, title)
		assert.Empty(t, bag.Entities, title)
		assert.Equal(t, Party(""), bag.Party, title)
	}
}
