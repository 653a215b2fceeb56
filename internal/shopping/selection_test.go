package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dietapp/internal/diet"
)

func TestSelection_TargetDays(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"day", Selection{Mode: ModeDay, Week: 1, Day: "giovedi"}, []string{"giovedi"}},
		{"range", Selection{Mode: ModeRange, Week: 1, From: "martedi", To: "giovedi"}, []string{"martedi", "mercoledi", "giovedi"}},
		{"reversed range", Selection{Mode: ModeRange, Week: 1, From: "venerdi", To: "mercoledi"}, []string{"mercoledi", "giovedi", "venerdi"}},
		{"single-day range", Selection{Mode: ModeRange, Week: 2, From: "sabato", To: "sabato"}, []string{"sabato"}},
		{"week", Selection{Mode: ModeWeek, Week: 3}, diet.Days},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.TargetDays()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelection_TargetDaysDoesNotAliasDays(t *testing.T) {
	got, err := Selection{Mode: ModeWeek, Week: 1}.TargetDays()
	require.NoError(t, err)
	got[0] = "changed"
	assert.Equal(t, "lunedi", diet.Days[0])
}

func TestSelection_Invalid(t *testing.T) {
	for _, sel := range []Selection{
		{Mode: ModeDay, Week: 0, Day: "lunedi"},
		{Mode: ModeDay, Week: 1, Day: "monday"},
		{Mode: ModeRange, Week: 1, From: "lunedi"},
		{Mode: "month", Week: 1},
	} {
		_, err := sel.TargetDays()
		assert.ErrorIs(t, err, ErrInvalidSelection, "%+v", sel)
	}
}

func TestSelection_ListKey(t *testing.T) {
	assert.Equal(t, "lunedi-W1", Selection{Mode: ModeDay, Week: 1, Day: "lunedi"}.ListKey())
	assert.Equal(t, "lunedi-domenica-W2", Selection{Mode: ModeRange, Week: 2, From: "lunedi", To: "domenica"}.ListKey())
	assert.Equal(t, "week-3", Selection{Mode: ModeWeek, Week: 3}.ListKey())
}

func TestGenerate_PicksStrategy(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi":   {"pranzo": {{Name: "Pane", Quantity: "50 g"}}},
		"domenica": {"pranzo": {{Name: "Pane", Quantity: "70 g"}}},
	})
	products := diet.ProductList{
		diet.WeekKey(1): diet.ProductWeek{"dispensa": {{Name: "Pane", Grams: float(500)}}},
	}

	res, err := Generate(Selection{Mode: ModeDay, Week: 1, Day: "lunedi"}, plan, products)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 50.0, res.Items[0].Quantities[Grams])

	res, err = Generate(Selection{Mode: ModeWeek, Week: 1}, plan, products)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 500.0, res.Items[0].Quantities[Grams])

	// Without a product list for the week the whole plan week is summed.
	res, err = Generate(Selection{Mode: ModeWeek, Week: 1}, plan, nil)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 120.0, res.Items[0].Quantities[Grams])

	_, err = Generate(Selection{Mode: ModeDay, Week: 1, Day: "x"}, plan, products)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
