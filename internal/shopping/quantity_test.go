package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in     string
		want   Amount
		wantOK bool
	}{
		{in: "150 g", want: Amount{Grams, 150}, wantOK: true},
		{in: "150g", want: Amount{Grams, 150}, wantOK: true},
		{in: "80 GR", want: Amount{Grams, 80}, wantOK: true},
		{in: "n°2", want: Amount{Pieces, 2}, wantOK: true},
		{in: "N° 3", want: Amount{Pieces, 3}, wantOK: true},
		{in: "n. 4", want: Amount{Pieces, 4}, wantOK: true},
		{in: "2 pz", want: Amount{Pieces, 2}, wantOK: true},
		{in: "1 tazzina", want: Amount{Cups, 1}, wantOK: true},
		{in: "2 tazzine", want: Amount{Cups, 2}, wantOK: true},
		{in: "2 cucchiai", want: Amount{Spoons, 2}, wantOK: true},
		{in: "1 cucchiaino", want: Amount{Spoons, 1}, wantOK: true},
		{in: "1/2 cucchiaio", want: Amount{Spoons, 0.5}, wantOK: true},
		{in: "3/4 di cucchiaino", want: Amount{Spoons, 0.75}, wantOK: true},
		{in: "1/2 tazza", wantOK: false},
		{in: "1/0 cucchiaio", wantOK: false},
		{in: "qb", wantOK: false},
		{in: "un pizzico", wantOK: false},
		{in: "", wantOK: false},
		{in: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseQuantity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseQuantity_FirstRuleWins(t *testing.T) {
	// Grams are checked before pieces.
	got, ok := ParseQuantity("n°2 da 50 g")
	assert.True(t, ok)
	assert.Equal(t, Amount{Grams, 50}, got)

	// Pieces are checked before spoons.
	got, ok = ParseQuantity("2 pz (1 cucchiaio)")
	assert.True(t, ok)
	assert.Equal(t, Amount{Pieces, 2}, got)
}

func TestParseQuantity_PiecesNeedWordBoundary(t *testing.T) {
	// The "n" of "panino" is part of a word, not the n° abbreviation.
	_, ok := ParseQuantity("panino1")
	assert.False(t, ok)
}

func TestFormatQuantities(t *testing.T) {
	assert.Equal(t, "200 g", FormatQuantities(Quantities{Grams: 200}))
	assert.Equal(t, "151 g, 2 pz", FormatQuantities(Quantities{Pieces: 2, Grams: 150.2}))
	assert.Equal(t, "0.5 cucchiaini", FormatQuantities(Quantities{Spoons: 0.5}))
	assert.Equal(t, "2 tazz., 2 cucchiaini", FormatQuantities(Quantities{Cups: 2, Spoons: 1.5}))
	assert.Equal(t, "", FormatQuantities(Quantities{}))
}
