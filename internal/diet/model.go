package diet

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const weekKeyPrefix = "settimana_"

// FoodEntry is a single food line of a meal. Prepared dishes list their
// weighed ingredients in Composition.
type FoodEntry struct {
	Name        string      `json:"alimento"`
	Quantity    string      `json:"quantita,omitempty"`
	Composition []FoodEntry `json:"composizione,omitempty"`
	CAD         string      `json:"cad,omitempty"`
}

// IsPrepared reports whether the entry is a dish composed of other entries.
func (f FoodEntry) IsPrepared() bool {
	return len(f.Composition) > 0
}

// DayPlan maps a meal key (colazione, pranzo, ...) to its entries.
type DayPlan map[string][]FoodEntry

// WeekPlan maps a day key (lunedi, martedi, ...) to its meals.
type WeekPlan map[string]DayPlan

// MealPlan maps a week key (settimana_1, ...) to its days.
type MealPlan map[string]WeekPlan

// WeekKey returns the document key used for week n.
func WeekKey(n int) string {
	return weekKeyPrefix + strconv.Itoa(n)
}

// ParseWeekKey extracts the week number from a key such as "settimana_2".
func ParseWeekKey(key string) (int, error) {
	if !strings.HasPrefix(key, weekKeyPrefix) {
		return 0, fmt.Errorf("invalid week key %q", key)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, weekKeyPrefix))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid week key %q", key)
	}
	return n, nil
}

// Week returns the plan for week n.
func (p MealPlan) Week(n int) (WeekPlan, bool) {
	w, ok := p[WeekKey(n)]
	return w, ok
}

// Weeks returns the week numbers present in the plan, ascending.
func (p MealPlan) Weeks() []int {
	weeks := make([]int, 0, len(p))
	for key := range p {
		n, err := ParseWeekKey(key)
		if err != nil {
			continue
		}
		weeks = append(weeks, n)
	}
	sort.Ints(weeks)
	return weeks
}

// Days returns the day keys of a week in calendar order. Keys that are not
// known days are appended afterwards in lexical order.
func (w WeekPlan) Days() []string {
	var days []string
	for _, d := range Days {
		if _, ok := w[d]; ok {
			days = append(days, d)
		}
	}
	var extra []string
	for d := range w {
		if DayIndex(d) < 0 {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(days, extra...)
}

// Document is the top-level shape of dieta.json.
type Document struct {
	Plan MealPlan `json:"piano_alimentare"`
}

// Product is one line of the weekly product list, with explicit numeric
// quantities instead of free text.
type Product struct {
	Name   string   `json:"alimento"`
	Grams  *float64 `json:"quantita_g,omitempty"`
	Pieces *float64 `json:"quantita_n,omitempty"`
	Cups   *float64 `json:"quantita_tazzine,omitempty"`
}

// ProductWeek maps a category to its products.
type ProductWeek map[string][]Product

// UnmarshalJSON implements the json.Unmarshaler interface for ProductWeek.
// Category values that are not arrays (totals, comments) are ignored.
func (w *ProductWeek) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ProductWeek, len(raw))
	for category, value := range raw {
		trimmed := strings.TrimSpace(string(value))
		if !strings.HasPrefix(trimmed, "[") {
			continue
		}
		var products []Product
		if err := json.Unmarshal(value, &products); err != nil {
			return fmt.Errorf("failed to unmarshal category %q: %w", category, err)
		}
		out[category] = products
	}
	*w = out
	return nil
}

// ProductList maps a week key to that week's product categories.
type ProductList map[string]ProductWeek

// Week returns the product categories for week n.
func (l ProductList) Week(n int) (ProductWeek, bool) {
	w, ok := l[WeekKey(n)]
	return w, ok
}
