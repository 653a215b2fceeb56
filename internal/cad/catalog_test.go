package cad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{Entries: []Entry{
		{Code: "CAD:12", Name: "Pasta al pomodoro", Category: "Primi"},
		{Code: "CAD:30", Name: "Pollo alla piastra", Category: "Secondi"},
		{Code: "CAD:41", Name: "Macedonia", Category: "Frutta"},
		{Code: "CAD:50", Name: "Crema di ceci", Category: "Salse"},
		{Code: "CAD:51", Name: "Brodo vegetale", Category: "Brodi"},
		{Code: "CAD:60", Name: "Pane tostato"},
	}}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "CAD:12", NormalizeCode("12"))
	assert.Equal(t, "CAD:12", NormalizeCode("CAD:12"))
	assert.Equal(t, "CAD:12", NormalizeCode(" 12 "))
}

func TestLookup(t *testing.T) {
	c := testCatalog()

	e, ok := c.Lookup("30")
	require.True(t, ok)
	assert.Equal(t, "Pollo alla piastra", e.Name)

	e, ok = c.Lookup("CAD:12")
	require.True(t, ok)
	assert.Equal(t, "Pasta al pomodoro", e.Name)

	_, ok = c.Lookup("999")
	assert.False(t, ok)

	_, ok = c.Lookup("")
	assert.False(t, ok)

	var empty *Catalog
	_, ok = empty.Lookup("12")
	assert.False(t, ok)
}

func TestSearch_OrdersCategories(t *testing.T) {
	groups := testCatalog().Search("")

	var categories []string
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []string{"Primi", "Secondi", "Frutta", "Altro", "Brodi", "Salse"}, categories)
}

func TestSearch_MatchesNameOrCode(t *testing.T) {
	c := testCatalog()

	groups := c.Search("POLLO")
	require.Len(t, groups, 1)
	assert.Equal(t, "Secondi", groups[0].Category)
	assert.Equal(t, "CAD:30", groups[0].Entries[0].Code)

	groups = c.Search("cad:4")
	require.Len(t, groups, 1)
	assert.Equal(t, "Macedonia", groups[0].Entries[0].Name)

	assert.Empty(t, c.Search("nessun risultato"))
}
