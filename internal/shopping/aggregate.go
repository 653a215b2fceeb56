// Package shopping builds shopping lists out of the meal plan: it parses
// free-text quantities, sums them per ingredient and unit, and keeps the
// user's check-off state for the generated list.
package shopping

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"dietapp/internal/diet"
)

// skipTerms are never put on a shopping list.
var skipTerms = []string{"pasto libero", "caffè", "caffe", "cappuccino", "zucchero"}

// Skip reports whether an item with this name is excluded from shopping
// lists: free meals, coffee and sugar.
func Skip(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range skipTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Item is one line of a shopping list.
type Item struct {
	Key        string     `json:"key"`
	Name       string     `json:"name"`
	Quantities Quantities `json:"quantities"`
}

// Result is the outcome of an aggregation. Unparsed names the ingredients
// that were dropped because none of their quantities could be read.
type Result struct {
	Items    []Item   `json:"items"`
	Unparsed []string `json:"unparsed,omitempty"`
}

// Strategy produces a shopping list for a week and a set of days.
type Strategy interface {
	Aggregate(week int, days []string) Result
}

// PlanStrategy reads the free-text quantities of the meal plan.
type PlanStrategy struct {
	Plan diet.MealPlan
}

// Aggregate sums the ingredients of the given days of week. A missing week
// yields an empty result and missing days are skipped. Duplicate days count
// once and the order of days does not matter.
func (s PlanStrategy) Aggregate(week int, days []string) Result {
	l := newLedger()
	w, ok := s.Plan.Week(week)
	if !ok {
		return l.result()
	}
	for _, day := range canonicalDays(days) {
		meals, ok := w[day]
		if !ok {
			continue
		}
		for _, meal := range mealKeys(meals) {
			for _, f := range meals[meal] {
				l.addEntry(f)
			}
		}
	}
	return l.result()
}

// ProductStrategy sums the numeric quantities of the weekly product list.
// The days argument is ignored: the list always covers the whole week.
type ProductStrategy struct {
	Products diet.ProductList
}

// Aggregate sums the products listed for week.
func (s ProductStrategy) Aggregate(week int, _ []string) Result {
	l := newLedger()
	w, ok := s.Products.Week(week)
	if !ok {
		return l.result()
	}
	categories := make([]string, 0, len(w))
	for c := range w {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		for _, p := range w[c] {
			if Skip(p.Name) {
				continue
			}
			g := l.group(p.Name)
			if g == nil {
				continue
			}
			if p.Grams != nil {
				g.quantities.Add(Amount{Unit: Grams, Value: *p.Grams})
			}
			if p.Pieces != nil {
				g.quantities.Add(Amount{Unit: Pieces, Value: *p.Pieces})
			}
			if p.Cups != nil {
				g.quantities.Add(Amount{Unit: Cups, Value: *p.Cups})
			}
		}
	}
	return l.result()
}

// Aggregate is shorthand for PlanStrategy{Plan: plan}.Aggregate(week, days).
func Aggregate(plan diet.MealPlan, week int, days []string) Result {
	return PlanStrategy{Plan: plan}.Aggregate(week, days)
}

type group struct {
	key        string
	name       string
	quantities Quantities
}

// ledger groups contributions by case-folded name. It is not safe for
// concurrent use; every aggregation builds its own.
type ledger struct {
	fold   cases.Caser
	groups map[string]*group
}

func newLedger() *ledger {
	return &ledger{fold: cases.Fold(), groups: make(map[string]*group)}
}

func (l *ledger) key(name string) string {
	return l.fold.String(strings.TrimSpace(name))
}

// group returns the group for name, creating it on first sight. Blank names
// have no group.
func (l *ledger) group(name string) *group {
	key := l.key(name)
	if key == "" {
		return nil
	}
	g, ok := l.groups[key]
	if !ok {
		g = &group{key: key, name: strings.TrimSpace(name), quantities: make(Quantities)}
		l.groups[key] = g
	}
	return g
}

func (l *ledger) addEntry(f diet.FoodEntry) {
	if Skip(f.Name) {
		return
	}
	if f.IsPrepared() {
		for _, sub := range f.Composition {
			l.addEntry(sub)
		}
		return
	}
	g := l.group(f.Name)
	if g == nil {
		return
	}
	if a, ok := ParseQuantity(f.Quantity); ok {
		g.quantities.Add(a)
	}
}

func (l *ledger) result() Result {
	col := collate.New(language.Italian)
	less := func(a, b *group) bool {
		if c := col.CompareString(a.name, b.name); c != 0 {
			return c < 0
		}
		return a.key < b.key
	}

	all := make([]*group, 0, len(l.groups))
	for _, g := range l.groups {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })

	res := Result{Items: make([]Item, 0, len(all))}
	for _, g := range all {
		if len(g.quantities) == 0 {
			res.Unparsed = append(res.Unparsed, g.name)
			continue
		}
		res.Items = append(res.Items, Item{Key: g.key, Name: g.name, Quantities: g.quantities})
	}
	return res
}

// canonicalDays deduplicates days and puts them in calendar order, unknown
// keys last in lexical order, so the first-seen name of an ingredient does
// not depend on how the caller ordered the days.
func canonicalDays(days []string) []string {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessKey(diet.DayIndex(out[i]), diet.DayIndex(out[j]), out[i], out[j])
	})
	return out
}

func mealKeys(meals diet.DayPlan) []string {
	keys := make([]string, 0, len(meals))
	for k := range meals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(diet.MealIndex(keys[i]), diet.MealIndex(keys[j]), keys[i], keys[j])
	})
	return keys
}

// lessKey orders known keys by index and unknown keys (index -1) after them.
func lessKey(ia, ib int, a, b string) bool {
	switch {
	case ia >= 0 && ib >= 0:
		return ia < ib
	case ia >= 0:
		return true
	case ib >= 0:
		return false
	}
	return a < b
}
