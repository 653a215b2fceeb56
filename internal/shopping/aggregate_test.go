package shopping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dietapp/internal/diet"
)

func planWith(week int, days map[string]diet.DayPlan) diet.MealPlan {
	w := diet.WeekPlan{}
	for d, meals := range days {
		w[d] = meals
	}
	return diet.MealPlan{diet.WeekKey(week): w}
}

func float(v float64) *float64 { return &v }

func TestAggregate_SkipsCoffeeAndSugar(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"colazione": {
				{Name: "Petto di pollo", Quantity: "200 g"},
				{Name: "Caffè", Quantity: "1 tazzina"},
				{Name: "Zucchero", Quantity: "1 cucchiaino"},
			},
		},
	})

	got := Aggregate(plan, 1, []string{"lunedi"})

	want := []Item{{Key: "petto di pollo", Name: "Petto di pollo", Quantities: Quantities{Grams: 200}}}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.Unparsed)
}

func TestAggregate_SkipTermsIgnoreCase(t *testing.T) {
	for _, name := range []string{"PASTO LIBERO", "caffe d'orzo", "Cappuccino", "Zucchero di canna", "CAFFÈ"} {
		assert.True(t, Skip(name), name)
	}
	assert.False(t, Skip("Pomodoro"))
}

func TestAggregate_CompositionExpansion(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"martedi": {
			"pranzo": {
				{Name: "Insalata di riso", Composition: []diet.FoodEntry{
					{Name: "riso", Quantity: "80 g"},
					{Name: "tonno", Quantity: "50 g"},
				}},
			},
		},
	})

	got := Aggregate(plan, 1, []string{"martedi"})

	want := []Item{
		{Key: "riso", Name: "riso", Quantities: Quantities{Grams: 80}},
		{Key: "tonno", Name: "tonno", Quantities: Quantities{Grams: 50}},
	}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_CompositionQuantityOfParentIgnored(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"cena": {
				{Name: "Vellutata", Quantity: "300 g", Composition: []diet.FoodEntry{
					{Name: "Zucca", Quantity: "200 g"},
					{Name: "Zucchero", Quantity: "5 g"},
				}},
			},
		},
	})

	got := Aggregate(plan, 1, []string{"lunedi"})

	require.Len(t, got.Items, 1)
	assert.Equal(t, "Zucca", got.Items[0].Name)
	assert.Equal(t, Quantities{Grams: 200}, got.Items[0].Quantities)
}

func TestAggregate_SkippedDishHidesItsComposition(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"cena": {
				{Name: "Pasto libero", Composition: []diet.FoodEntry{{Name: "Pizza", Quantity: "300 g"}}},
			},
		},
	})

	got := Aggregate(plan, 1, []string{"lunedi"})
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Unparsed)
}

func TestAggregate_MergesAcrossDaysAndMeals(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"pranzo": {{Name: "Pomodoro", Quantity: "100 g"}},
		},
		"martedi": {
			"pranzo": {{Name: "pomodoro", Quantity: "100 g"}},
			"cena": {{Name: "Insalata", Composition: []diet.FoodEntry{
				{Name: "POMODORO", Quantity: "n°2"},
			}}},
		},
	})

	got := Aggregate(plan, 1, []string{"lunedi", "martedi"})

	want := []Item{{Key: "pomodoro", Name: "Pomodoro", Quantities: Quantities{Grams: 200, Pieces: 2}}}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_DropsUnparsedGroups(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"pranzo": {
				{Name: "Olio", Quantity: "qb"},
				{Name: "Sale"},
				{Name: "Pane", Quantity: "50 g"},
			},
		},
	})

	got := Aggregate(plan, 1, []string{"lunedi"})

	require.Len(t, got.Items, 1)
	assert.Equal(t, "Pane", got.Items[0].Name)
	assert.Equal(t, []string{"Olio", "Sale"}, got.Unparsed)
	for _, it := range got.Items {
		assert.NotEmpty(t, it.Quantities)
	}
}

func TestAggregate_MissingWeekOrDay(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {"pranzo": {{Name: "Pane", Quantity: "50 g"}}},
	})

	got := Aggregate(plan, 2, []string{"lunedi"})
	assert.Empty(t, got.Items)

	got = Aggregate(plan, 1, []string{"domenica", "lunedi"})
	require.Len(t, got.Items, 1)
	assert.Equal(t, Quantities{Grams: 50}, got.Items[0].Quantities)

	got = Aggregate(nil, 1, []string{"lunedi"})
	assert.Empty(t, got.Items)
}

func TestAggregate_SortsWithItalianCollation(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"pranzo": {
				{Name: "zucchine", Quantity: "200 g"},
				{Name: "Èrba cipollina", Quantity: "5 g"},
				{Name: "albicocche", Quantity: "n°3"},
				{Name: "Banane", Quantity: "n°1"},
			},
		},
	})

	got := Aggregate(plan, 1, []string{"lunedi"})

	var names []string
	for _, it := range got.Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"albicocche", "Banane", "Èrba cipollina", "zucchine"}, names)
}

func TestAggregate_IdempotentAndOrderIndependent(t *testing.T) {
	plan := planWith(1, map[string]diet.DayPlan{
		"lunedi": {
			"colazione": {{Name: "Latte", Quantity: "200 g"}, {Name: "Biscotti", Quantity: "n°4"}},
			"cena":      {{Name: "Latte", Quantity: "1 tazzina"}},
		},
		"mercoledi": {
			"pranzo": {{Name: "latte", Quantity: "100 g"}, {Name: "Olio", Quantity: "1/2 cucchiaio"}},
		},
		"venerdi": {
			"merenda": {{Name: "Olio", Quantity: "2 cucchiaini"}},
		},
	})

	first := Aggregate(plan, 1, []string{"lunedi", "mercoledi", "venerdi"})
	again := Aggregate(plan, 1, []string{"lunedi", "mercoledi", "venerdi"})
	shuffled := Aggregate(plan, 1, []string{"venerdi", "lunedi", "mercoledi", "lunedi"})

	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("not idempotent (-first +again):\n%s", diff)
	}
	if diff := cmp.Diff(first, shuffled); diff != "" {
		t.Errorf("depends on day order (-first +shuffled):\n%s", diff)
	}

	want := []Item{
		{Key: "biscotti", Name: "Biscotti", Quantities: Quantities{Pieces: 4}},
		{Key: "latte", Name: "Latte", Quantities: Quantities{Grams: 300, Cups: 1}},
		{Key: "olio", Name: "Olio", Quantities: Quantities{Spoons: 2.5}},
	}
	if diff := cmp.Diff(want, first.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestProductStrategy(t *testing.T) {
	products := diet.ProductList{
		diet.WeekKey(1): diet.ProductWeek{
			"frutta": {
				{Name: "Mele", Pieces: float(7)},
				{Name: "Banane", Pieces: float(3)},
			},
			"dispensa": {
				{Name: "mele", Grams: float(100)},
				{Name: "Caffè", Cups: float(14)},
				{Name: "Zucchero", Grams: float(50)},
				{Name: "Sale"},
			},
		},
	}

	got := ProductStrategy{Products: products}.Aggregate(1, nil)

	want := []Item{
		{Key: "banane", Name: "Banane", Quantities: Quantities{Pieces: 3}},
		{Key: "mele", Name: "mele", Quantities: Quantities{Grams: 100, Pieces: 7}},
	}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Sale"}, got.Unparsed)

	assert.Empty(t, ProductStrategy{Products: products}.Aggregate(2, nil).Items)
}

func TestStrategiesShareContract(t *testing.T) {
	var strategies []Strategy = []Strategy{PlanStrategy{}, ProductStrategy{}}
	for _, s := range strategies {
		res := s.Aggregate(1, diet.Days)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	}
}
